package templates

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-obituary/pkg/model"
)

// ReloadDebounce is how long Watch waits after the last file event before
// reloading, so an editor's write-rename sequence triggers one reload.
const ReloadDebounce = 250 * time.Millisecond

// Reloader serves templates from a directory and can swap in a fresh Store
// when the files change. A failed reload keeps the previous store.
type Reloader struct {
	dir    string
	logger *log.Logger

	mu    sync.RWMutex
	store *Store
}

// NewReloader loads dir once and returns a Reloader serving it.
func NewReloader(dir string, logger *log.Logger) (*Reloader, error) {
	if logger == nil {
		logger = log.Default()
	}
	r := &Reloader{dir: dir, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Dir reports the watched directory.
func (r *Reloader) Dir() string {
	return r.dir
}

// Store returns the store currently served.
func (r *Reloader) Store() *Store {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store
}

// Lookup resolves tone against the current store.
func (r *Reloader) Lookup(tone model.Tone) model.Template {
	return r.Store().Lookup(tone)
}

// Reload re-reads the directory.
func (r *Reloader) Reload() error {
	store, err := LoadFS(os.DirFS(r.dir))
	if err != nil {
		return fmt.Errorf("templates: reload %s: %w", r.dir, err)
	}
	r.mu.Lock()
	r.store = store
	r.mu.Unlock()
	return nil
}

// Watch reloads the directory whenever a template file in it is written,
// created, renamed or removed. It returns once the watcher is registered; the
// watch stops when ctx is done.
func (r *Reloader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("templates: create watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("templates: watch %s: %w", r.dir, err)
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isTemplateFile(filepath.Base(event.Name)) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(ReloadDebounce, func() {
					if err := r.Reload(); err != nil {
						r.logger.Printf("templates: keeping previous set: %v", err)
						return
					}
					r.logger.Printf("templates: reloaded %s", r.dir)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Printf("templates: watcher error: %v", err)
			}
		}
	}()
	return nil
}
