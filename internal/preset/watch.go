package preset

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
// New and deleted files in the watched directories count as changes.
type FileWatcher struct {
	Dirs      []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for *.yaml files in dirs.
func NewFileWatcher(dirs []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Dirs:      dirs,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *FileWatcher) Start() {
	// prime cache before returning so changes right after Start are seen
	w.Scan(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Scan checks mtimes once and invokes onChange for files that changed since
// the last scan. With prime set it only records the current state.
func (w *FileWatcher) Scan(prime bool) {
	seen := make(map[string]bool, len(w.lastMTime))
	for _, dir := range w.Dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if err != nil {
			continue
		}
		for _, p := range matches {
			fi, err := os.Stat(p)
			if err != nil {
				continue
			}
			seen[p] = true
			mt := fi.ModTime()
			last, ok := w.lastMTime[p]
			w.lastMTime[p] = mt
			if prime {
				continue
			}
			if !ok || mt.After(last) {
				w.notify(p)
			}
		}
	}
	for p := range w.lastMTime {
		if !seen[p] {
			delete(w.lastMTime, p)
			if !prime {
				w.notify(p)
			}
		}
	}
}

func (w *FileWatcher) notify(path string) {
	if w.onChange != nil {
		w.onChange(path)
	}
}
