package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/daemon"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Incremental bool          `short:"i" help:"Reuse cached records for unchanged sources"`
	Interval    time.Duration `help:"Also rebuild on this fixed interval (e.g. 15m); 0 disables"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9180)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	interval := w.Interval
	if interval == 0 {
		interval = cfg.Watch.Interval.Std()
	}
	metricsAddr := w.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.Watch.MetricsAddr
	}

	d, err := daemon.New(daemon.Options{
		Config:      cfg,
		Incremental: w.Incremental,
		Interval:    interval,
		MetricsAddr: metricsAddr,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (ctrl-c to stop)\n", cfg.Content.Root)
	return d.Run(ctx)
}
