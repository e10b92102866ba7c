// Package build provides the canonical build execution pipeline. All
// execution paths (CLI build/scan commands, watch mode) route through
// Service.
package build

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/cache"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/feed"
	"git.home.luguber.info/inful/blogbuilder/internal/gitmeta"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/scan"
)

// Request contains all inputs required to execute one build pass.
type Request struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// Incremental consults the extraction cache and only recompiles changed
	// sources.
	Incremental bool

	// DryRun extracts records without writing artifacts (the scan command).
	DryRun bool

	// Now is the build's reference time; future-dated posts are excluded
	// relative to it. Zero means time.Now().
	Now time.Time
}

// Result contains the outcome of one build pass.
type Result struct {
	// BuildID correlates log lines, metrics, and build events for this pass.
	BuildID string

	// Posts holds every extracted record in scan order, including
	// future-dated ones.
	Posts []post.Post

	// Published and Excluded count the records kept and filtered by the
	// date boundary.
	Published int
	Excluded  int

	StartTime time.Time
	Duration  time.Duration
}

// Service executes build passes. The zero-cost constructor exists so watch
// mode can hold one service across rebuilds.
type Service struct{}

// NewService creates a build service.
func NewService() *Service {
	return &Service{}
}

// Run executes a complete pass: scan, compile, extract, assemble, publish.
// It is single-threaded and linear; nothing is recovered locally,
// every error aborts the pass.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	cfg := req.Config
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := &Result{
		BuildID:   uuid.NewString(),
		StartTime: now,
	}
	started := time.Now()

	slog.Info("Starting build",
		logfields.BuildID(result.BuildID),
		logfields.Path(cfg.Content.Root),
		slog.Bool("incremental", req.Incremental))

	paths, err := scan.Scan(cfg.Content.Root, cfg.Content.Extension)
	if err != nil {
		return nil, err
	}

	extractOpts := post.Options{
		Now:         now,
		StripPrefix: cfg.Content.StripPrefix,
	}
	if cfg.Dates.FromGit {
		if resolver, gitErr := gitmeta.Open(cfg.Content.Root); gitErr != nil {
			slog.Warn("Git date resolution unavailable, using wall clock",
				logfields.Path(cfg.Content.Root), logfields.Error(gitErr))
		} else {
			extractOpts.FallbackDate = resolver.LastCommitTime
		}
	}

	var store *cache.Store
	if req.Incremental {
		store, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}

	result.Posts = make([]post.Post, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := s.extractOne(path, store, extractOpts)
		if err != nil {
			return nil, err
		}
		result.Posts = append(result.Posts, record)
	}

	result.Published = len(feed.Published(result.Posts, now))
	result.Excluded = len(result.Posts) - result.Published

	if !req.DryRun {
		listing, rss, err := feed.Assemble(result.Posts, now, cfg.Site)
		if err != nil {
			return nil, err
		}
		if err := feed.Publish(cfg.Output.Listing, listing, cfg.Output.Feed, rss); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(started)
	slog.Info("Build complete",
		logfields.BuildID(result.BuildID),
		logfields.Posts(result.Published),
		logfields.Excluded(result.Excluded),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

// extractOne loads, compiles, and extracts a single article, consulting the
// cache when one is attached.
func (s *Service) extractOne(path string, store *cache.Store, opts post.Options) (post.Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return post.Post{}, errors.Wrap(err, errors.CategoryScan, errors.SeverityFatal, "failed to read article source").
			WithContext("path", path)
	}

	var contentHash string
	if store != nil {
		contentHash = cache.HashContent(content)
		if cached, hit, err := store.Get(path, contentHash); err != nil {
			return post.Post{}, err
		} else if hit {
			slog.Debug("Cache hit", logfields.Path(path))
			return cached, nil
		}
	}

	doc, err := markdown.Compile(content)
	if err != nil {
		return post.Post{}, errors.CompileFailed(path, err)
	}

	record, err := post.Extract(path, doc, opts)
	if err != nil {
		return post.Post{}, err
	}

	if store != nil {
		if err := store.Put(path, contentHash, record); err != nil {
			return post.Post{}, err
		}
	}
	return record, nil
}
