package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Watcher reports writes to the store made by other processes, such as the
// CLI adding a user while the browser is open.
type Watcher struct {
	store    *Store
	fs       *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
}

// NewWatcher watches the directory holding the store database. The
// directory is watched rather than the file because SQLite writes land in
// the -wal sibling first.
func NewWatcher(store *Store) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(store.Path()), err)
	}
	return &Watcher{
		store:    store,
		fs:       fw,
		logger:   store.logger.Named("watch"),
		debounce: defaultDebounce,
	}, nil
}

// Run blocks until ctx is done, calling onChange once per burst of foreign
// writes. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fs.Close()

	lastRev, _, err := w.store.Revision(ctx)
	if err != nil {
		w.logger.Warn("could not read initial revision", zap.Error(err))
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	base := filepath.Base(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			rev, writer, err := w.store.Revision(ctx)
			if err != nil {
				w.logger.Warn("could not read revision", zap.Error(err))
				continue
			}
			if rev == lastRev {
				continue
			}
			lastRev = rev
			if writer == w.store.writer {
				continue
			}
			w.logger.Debug("store changed externally", zap.Int64("revision", rev), zap.String("writer", writer))
			onChange()
		}
	}
}
