package site

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/trajview-io/trajview/internal/trajectory"
)

// debounceWindow collapses bursts of event writes from an active
// conversation into a single rebuild.
const debounceWindow = 500 * time.Millisecond

// Watcher rebuilds the data directory whenever the conversations directory
// changes.
type Watcher struct {
	builder   *Builder
	fsWatcher *fsnotify.Watcher
	done      chan struct{}

	debounceMu sync.Mutex
	debounce   *time.Timer

	buildMu sync.Mutex
}

// NewWatcher creates a watcher that rebuilds through the given builder.
func NewWatcher(builder *Builder) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		builder:   builder,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The conversations directory itself must be
// watchable; trajectory directories are picked up as they appear.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.builder.ConversationsDir); err != nil {
		return err
	}
	w.refreshWatches()
	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.debounceMu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounceMu.Unlock()
	_ = w.fsWatcher.Close()
}

// refreshWatches registers watches for every trajectory directory and its
// events directory. fsnotify is not recursive, so this runs again after
// every rebuild to pick up new trajectories.
func (w *Watcher) refreshWatches() {
	sources, err := trajectory.Scan(w.builder.ConversationsDir)
	if err != nil {
		log.Printf("Warning: failed to scan %s: %v", w.builder.ConversationsDir, err)
		return
	}
	for _, src := range sources {
		if err := w.fsWatcher.Add(src.Path); err != nil {
			log.Printf("Warning: failed to watch %s: %v", src.Path, err)
		}
		// The events directory may not exist yet for a fresh trajectory.
		_ = w.fsWatcher.Add(src.EventsDir())
	}
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// handleEvent schedules a rebuild for relevant events.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename matters: atomic writes (write tmp, rename over target) surface
	// as Rename on the target. Remove matters too, since deleting a
	// trajectory must sweep its record.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.scheduleRebuild()
}

// scheduleRebuild resets the debounce timer.
func (w *Watcher) scheduleRebuild() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceWindow, w.rebuild)
}

func (w *Watcher) rebuild() {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()

	result, err := w.builder.BuildData()
	if err != nil {
		log.Printf("Warning: rebuild failed: %v", err)
		return
	}
	log.Printf("[watch] rebuilt: %d, skipped: %d, removed: %d", result.Rebuilt, result.Skipped, result.Removed)
	w.refreshWatches()
}
