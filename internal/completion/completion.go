// Package completion suggests filesystem paths while the user types.
package completion

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"projman/internal/pathutil"
)

// Request is a completion query. IDs are assigned by the caller and
// must increase monotonically; they let the caller discard responses
// that arrive after a newer request was issued.
type Request struct {
	ID     int64
	Prefix string
}

// Response echoes the request ID alongside the suggestions.
type Response struct {
	ID          int64
	Suggestions []string
}

// Completer turns a typed prefix into directory suggestions.
type Completer struct {
	mu       sync.Mutex
	latestID int64
	maxItems int
}

// New creates a Completer capped at maxItems suggestions per query.
func New(maxItems int) *Completer {
	if maxItems <= 0 {
		maxItems = 20
	}
	return &Completer{maxItems: maxItems}
}

// NextID issues the next request id.
func (c *Completer) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latestID++
	return c.latestID
}

// Accept reports whether a response is still current. Responses for
// superseded requests are dropped.
func (c *Completer) Accept(resp Response) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return resp.ID == c.latestID
}

// Complete lists directories matching the typed prefix. The prefix is
// split into its parent directory and a partial final segment; the
// parent is listed and filtered case-insensitively.
func (c *Completer) Complete(req Request) Response {
	return Response{ID: req.ID, Suggestions: c.suggest(req.Prefix)}
}

func (c *Completer) suggest(prefix string) []string {
	if prefix == "" {
		return nil
	}
	expanded := pathutil.ExpandHome(prefix)

	dir := filepath.Dir(expanded)
	partial := filepath.Base(expanded)
	if strings.HasSuffix(expanded, "/") {
		dir = strings.TrimSuffix(expanded, "/")
		if dir == "" {
			dir = "/"
		}
		partial = ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	lowered := strings.ToLower(partial)
	var out []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if partial != "" && !strings.HasPrefix(strings.ToLower(name), lowered) {
			continue
		}
		if partial == "" && strings.HasPrefix(name, ".") {
			continue // hide dotdirs unless explicitly typed
		}
		out = append(out, filepath.Join(dir, name))
		if len(out) >= c.maxItems {
			break
		}
	}
	sort.Strings(out)
	return out
}

// Debouncer delays a function call until input has been quiet for the
// configured window. Only the last scheduled call fires.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, cancelling any previously scheduled call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
