package feed

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Publish writes both artifacts with a two-step commit: each is written to a
// temporary file in its target directory first, then both are renamed into
// place. A failure before the rename step leaves any previously published
// artifacts untouched and removes the temporaries, so consumers never observe
// one updated artifact alongside a stale other.
func Publish(listingPath string, listing []byte, feedPath string, feed []byte) error {
	listingTmp, err := stage(listingPath, listing)
	if err != nil {
		return err
	}
	feedTmp, err := stage(feedPath, feed)
	if err != nil {
		_ = os.Remove(listingTmp)
		return err
	}

	if err := os.Rename(listingTmp, listingPath); err != nil {
		_ = os.Remove(listingTmp)
		_ = os.Remove(feedTmp)
		return errors.WriteFailed(listingPath, err)
	}
	if err := os.Rename(feedTmp, feedPath); err != nil {
		_ = os.Remove(feedTmp)
		return errors.WriteFailed(feedPath, err)
	}

	slog.Info("Artifacts published",
		logfields.Artifact(listingPath),
		logfields.Artifact(feedPath))
	return nil
}

// stage writes content to a temporary file next to target and returns the
// temporary path. Writing into the target directory keeps the final rename on
// one filesystem, which is what makes it atomic.
func stage(target string, content []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WriteFailed(target, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return "", errors.WriteFailed(target, err)
	}

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", errors.WriteFailed(target, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", errors.WriteFailed(target, err)
	}
	return tmp.Name(), nil
}
