// Package gitmeta resolves publish dates from git history for articles that
// declare no explicit frontmatter date.
package gitmeta

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Resolver answers last-commit-time queries against one repository.
type Resolver struct {
	repo *git.Repository
	root string
}

// Open locates the repository containing dir, searching parent directories
// for the .git directory the way the git CLI does.
func Open(dir string) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	return &Resolver{repo: repo, root: wt.Filesystem.Root()}, nil
}

// LastCommitTime returns the committer time of the most recent commit
// touching path. ok is false for untracked files and on any lookup error, so
// callers can fall through to their default date.
func (r *Resolver) LastCommitTime(path string) (time.Time, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return time.Time{}, false
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return time.Time{}, false
	}
	rel = filepath.ToSlash(rel)

	iter, err := r.repo.Log(&git.LogOptions{FileName: &rel, Order: git.LogOrderCommitterTime})
	if err != nil {
		slog.Debug("Git log failed", logfields.Path(path), logfields.Error(err))
		return time.Time{}, false
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return time.Time{}, false
	}
	return commit.Committer.When, true
}
