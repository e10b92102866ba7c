package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

func daemonConfig() *config.Config {
	cfg := &config.Config{
		Site: config.SiteConfig{Title: "Watch Blog", URL: "https://watch.example.com"},
	}
	cfg.ApplyDefaults()
	cfg.Watch.Debounce = config.Duration(50 * time.Millisecond)
	return cfg
}

func writeArticle(t *testing.T, rel, title string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(rel), 0o755))
	content := "---\ntitle: " + title + "\ndescription: d\ndate: \"2020-01-01\"\n---\nBody.\n"
	require.NoError(t, os.WriteFile(rel, []byte(content), 0o644))
}

func TestWatcher_TriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	triggers := make(chan string, 1)

	w, err := newWatcher(dir, 50*time.Millisecond, triggers)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.mdx"), []byte("# x\n\ny\n"), 0o644))

	select {
	case reason := <-triggers:
		require.Equal(t, "filesystem change", reason)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rebuild trigger after a file write")
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	triggers := make(chan string, 8)

	w, err := newWatcher(dir, 100*time.Millisecond, triggers)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "burst.mdx"), []byte("# x\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-triggers:
	case <-time.After(5 * time.Second):
		t.Fatal("expected at least one trigger")
	}

	// The debounce window collapses the burst; no second trigger follows.
	select {
	case <-triggers:
		t.Fatal("burst should coalesce into a single trigger")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDaemon_InitialBuildThenShutdown(t *testing.T) {
	t.Chdir(t.TempDir())
	writeArticle(t, "pages/posts/a.mdx", "First")

	d, err := New(Options{Config: daemonConfig()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat("public/rss.xml")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond, "startup build should publish artifacts")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop on context cancellation")
	}
}

func TestDaemon_RebuildFailureKeepsRunning(t *testing.T) {
	t.Chdir(t.TempDir())
	// A document with no title or description makes every pass fail.
	require.NoError(t, os.MkdirAll("pages/posts", 0o755))
	require.NoError(t, os.WriteFile("pages/posts/broken.mdx", []byte("no heading\n"), 0o644))

	d, err := New(Options{Config: daemonConfig()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	// Daemon must survive the failed startup build.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop on context cancellation")
	}
}
