package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Incremental bool `short:"i" help:"Reuse cached records for unchanged sources"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc := build.NewService()
	result, err := svc.Run(context.Background(), build.Request{
		Config:      cfg,
		Incremental: b.Incremental,
	})
	if err != nil {
		return err
	}

	// Friendly user-facing summary on stdout; details go to the log stream.
	fmt.Printf("Published %d posts (%d excluded) to %s and %s\n",
		result.Published, result.Excluded, cfg.Output.Listing, cfg.Output.Feed)
	return nil
}
