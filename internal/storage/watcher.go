package storage

import (
	"context"
	"os"
	"time"
)

// Watcher polls the storage file for external modifications so the
// registry can reload when another process edits it.
type Watcher struct {
	path     string
	interval time.Duration
}

// NewWatcher creates a watcher for the given file path
func NewWatcher(path string) *Watcher {
	return &Watcher{
		path:     path,
		interval: 500 * time.Millisecond,
	}
}

// Run invokes onChange every time the file's mtime or size moves,
// until the context is cancelled. A missing file counts as unchanged
// until it appears.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	lastMod, lastSize, known := w.stat()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mod, size, ok := w.stat()
			if !ok {
				continue // file temporarily unavailable during save
			}
			if !known || !mod.Equal(lastMod) || size != lastSize {
				if known {
					onChange()
				}
				lastMod, lastSize, known = mod, size, true
			}
		}
	}
}

// WaitForChange blocks until the file is modified or the context ends.
// Returns true if a modification was seen.
func (w *Watcher) WaitForChange(ctx context.Context) bool {
	changed := make(chan struct{}, 1)
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go w.Run(watchCtx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	select {
	case <-ctx.Done():
		return false
	case <-changed:
		return true
	}
}

func (w *Watcher) stat() (time.Time, int64, bool) {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, 0, false
	}
	return info.ModTime(), info.Size(), true
}
