// Package daemon implements watch mode: continuous rebuilds driven by
// filesystem events and an optional periodic schedule, with optional
// Prometheus metrics and NATS build notifications.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/notify"
)

// Options configure a watch-mode daemon.
type Options struct {
	Config      *config.Config
	Incremental bool

	// MetricsAddr, when non-empty, serves /metrics on this address.
	MetricsAddr string

	// Interval, when non-zero, schedules periodic rebuilds in addition to
	// filesystem-triggered ones.
	Interval time.Duration
}

// Daemon supervises rebuilds. The build pass itself stays single-threaded;
// the daemon only decides when to run it.
type Daemon struct {
	opts      Options
	svc       *build.Service
	recorder  *metrics.Recorder
	publisher *notify.Publisher
	triggers  chan string
}

// New creates a daemon. A NATS publisher is attached only when the config
// names a server URL; a connection failure there is fatal since the operator
// asked for notifications.
func New(opts Options) (*Daemon, error) {
	d := &Daemon{
		opts:     opts,
		svc:      build.NewService(),
		triggers: make(chan string, 1),
	}

	if opts.MetricsAddr != "" {
		d.recorder = metrics.NewRecorder(nil)
	}

	if url := opts.Config.Watch.NATSURL; url != "" {
		publisher, err := notify.NewPublisher(url, opts.Config.Watch.NATSSubject)
		if err != nil {
			return nil, err
		}
		d.publisher = publisher
	}
	return d, nil
}

// Run builds once, then rebuilds on every trigger until ctx is cancelled.
// Unlike a one-shot build, a failed rebuild is logged and the daemon keeps
// watching; the previously published artifacts stay in place.
func (d *Daemon) Run(ctx context.Context) error {
	defer func() {
		if d.publisher != nil {
			d.publisher.Close()
		}
	}()

	if d.recorder != nil {
		go d.serveMetrics(ctx)
	}

	watcher, err := newWatcher(d.opts.Config.Content.Root, d.opts.Config.Watch.Debounce.Std(), d.triggers)
	if err != nil {
		return err
	}
	defer watcher.Close()
	go watcher.Run(ctx)

	if d.opts.Interval > 0 {
		scheduler, err := d.startScheduler()
		if err != nil {
			return err
		}
		defer func() { _ = scheduler.Shutdown() }()
	}

	d.runOnce(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch mode stopping")
			return nil
		case reason := <-d.triggers:
			d.runOnce(ctx, reason)
		}
	}
}

// startScheduler wires the periodic rebuild trigger.
func (d *Daemon) startScheduler() (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(d.opts.Interval),
		gocron.NewTask(func() { d.trigger("schedule") }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	slog.Info("Periodic rebuilds scheduled", "interval", d.opts.Interval)
	return scheduler, nil
}

// trigger requests a rebuild; a pending request is enough, extra ones
// coalesce.
func (d *Daemon) trigger(reason string) {
	select {
	case d.triggers <- reason:
	default:
	}
}

// runOnce executes one build pass and records its outcome.
func (d *Daemon) runOnce(ctx context.Context, reason string) {
	slog.Info("Rebuilding", "reason", reason)
	started := time.Now()

	result, err := d.svc.Run(ctx, build.Request{
		Config:      d.opts.Config,
		Incremental: d.opts.Incremental,
	})
	duration := time.Since(started)

	if err != nil {
		slog.Error("Rebuild failed, keeping previous artifacts", logfields.Error(err))
		if d.recorder != nil {
			d.recorder.ObserveFailure(duration)
		}
		return
	}

	if d.recorder != nil {
		d.recorder.ObserveSuccess(duration, result.Published, result.Excluded)
	}
	if d.publisher != nil {
		event := notify.BuildEvent{
			BuildID:     result.BuildID,
			CompletedAt: time.Now(),
			Posts:       result.Published,
			Excluded:    result.Excluded,
			DurationMS:  float64(duration.Milliseconds()),
		}
		if err := d.publisher.PublishBuild(event); err != nil {
			slog.Warn("Build notification failed", logfields.Error(err))
		}
	}
}

// serveMetrics runs the metrics endpoint until ctx is cancelled.
func (d *Daemon) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.recorder.Handler())
	server := &http.Server{Addr: d.opts.MetricsAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Metrics endpoint listening", "addr", d.opts.MetricsAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics endpoint failed", logfields.Error(err))
	}
}
