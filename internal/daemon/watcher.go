package daemon

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// watcher debounces filesystem events under the content root into rebuild
// triggers.
type watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	triggers chan<- string
}

// newWatcher watches root and every directory below it. fsnotify watches are
// not recursive, so each subdirectory gets its own watch and newly created
// directories are added as they appear.
func newWatcher(root string, debounce time.Duration, triggers chan<- string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{fsw: fsw, debounce: debounce, triggers: triggers}
	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Run forwards debounced events until ctx is cancelled. A burst of events
// (editor save, git checkout) collapses into one trigger.
func (w *watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				// Newly created directories need their own watch.
				if err := w.addRecursive(event.Name); err != nil {
					slog.Debug("Watch add failed", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("Filesystem watch error", logfields.Error(err))

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.triggers <- "filesystem change":
			default:
			}
		}
	}
}

// Close releases the underlying watches.
func (w *watcher) Close() error {
	return w.fsw.Close()
}
