package directory

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leadline/crmdesk/internal/contact"
	"github.com/leadline/crmdesk/internal/logging"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading. Editors often emit several events for a single save.
const DefaultDebounce = 100 * time.Millisecond

// LoadFunc receives the reloaded contact list.
type LoadFunc func([]contact.Contact)

// Watcher reloads a directory whenever its backing file changes.
type Watcher struct {
	dir      Directory
	path     string
	debounce time.Duration
	onLoad   LoadFunc
	logger   *logging.Logger

	watcher *fsnotify.Watcher

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher watches path and reloads dir on change. The parent directory is
// watched rather than the file so that editors which replace the file on
// save are still picked up.
func NewWatcher(dir Directory, path string, onLoad LoadFunc, logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return &Watcher{
		dir:      dir,
		path:     abs,
		debounce: DefaultDebounce,
		onLoad:   onLoad,
		logger:   logger.WithComponent("watcher").With("source", abs),
		watcher:  fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce overrides the reload delay. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching in a background goroutine. The watcher stops when
// ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

// Stop stops the watcher and waits for the loop to exit. It must follow
// Start and is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	<-w.doneCh
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.doneCh)

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer
	defer debounceTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.stopOnce.Do(func() {
				close(w.stopCh)
				_ = w.watcher.Close()
			})
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	contacts, err := w.dir.List(ctx)
	if err != nil {
		// Keep the previous list; a half-written file will settle on the
		// next event.
		w.logger.Warn("reload failed", "error", err)
		return
	}
	w.logger.Info("directory reloaded", "count", len(contacts))
	if w.onLoad != nil {
		w.onLoad(contacts)
	}
}
