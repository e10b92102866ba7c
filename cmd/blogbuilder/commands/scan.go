package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// ScanCmd implements the 'scan' command: a dry run that derives records
// without writing artifacts.
type ScanCmd struct{}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc := build.NewService()
	result, err := svc.Run(context.Background(), build.Request{
		Config: cfg,
		DryRun: true,
	})
	if err != nil {
		return err
	}

	now := result.StartTime
	for _, p := range result.Posts {
		marker := " "
		if p.Date.After(now) {
			marker = "!"
		}
		fmt.Printf("%s %s  %-40s %s\n", marker, p.Date.Format(time.DateOnly), p.Title, p.URLPath)
	}
	fmt.Printf("%d posts, %d future-dated (marked !)\n", result.Published, result.Excluded)
	return nil
}
