// Package tracker maintains the cross-window heartbeat file that tells
// each window which projects are open elsewhere.
package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const trackerFileName = "active-windows.json"

// Entries older than this are assumed to belong to crashed windows and
// are pruned on read.
const staleThreshold = 24 * time.Hour

type windowEntry struct {
	ProjectPath string `json:"projectPath"`
	Timestamp   int64  `json:"timestamp"` // unix millis
}

type trackerData struct {
	Windows map[string]windowEntry `json:"windows"`
}

// Tracker registers this window's open project in a shared file and
// reads back what other windows have open.
type Tracker struct {
	path     string
	windowID string
}

// New creates a tracker storing its heartbeat file in dir. Each tracker
// instance represents one window and gets a unique id.
func New(dir string) *Tracker {
	return &Tracker{
		path:     filepath.Join(dir, trackerFileName),
		windowID: uuid.New().String(),
	}
}

// Register records the project open in this window.
func (t *Tracker) Register(projectPath string) error {
	if projectPath == "" {
		return nil
	}
	data := t.read()
	data.Windows[t.windowID] = windowEntry{
		ProjectPath: projectPath,
		Timestamp:   time.Now().UnixMilli(),
	}
	return t.write(data)
}

// Unregister removes this window's entry, normally at shutdown.
func (t *Tracker) Unregister() error {
	data := t.read()
	delete(data.Windows, t.windowID)
	return t.write(data)
}

// ActivePaths returns the project paths open in any window, pruning
// entries older than 24 hours. Pruning persists so dead entries do not
// linger for other windows.
func (t *Tracker) ActivePaths() []string {
	data := t.read()
	now := time.Now().UnixMilli()
	cleaned := false
	var paths []string

	for id, entry := range data.Windows {
		if now-entry.Timestamp > staleThreshold.Milliseconds() {
			delete(data.Windows, id)
			cleaned = true
			continue
		}
		paths = append(paths, entry.ProjectPath)
	}

	if cleaned {
		// Best effort; a failed prune just retries next read.
		_ = t.write(data)
	}
	return paths
}

// FilePath returns the heartbeat file location.
func (t *Tracker) FilePath() string {
	return t.path
}

func (t *Tracker) read() trackerData {
	data := trackerData{Windows: map[string]windowEntry{}}
	raw, err := os.ReadFile(t.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.Windows == nil {
		data.Windows = map[string]windowEntry{}
	}
	return data
}

func (t *Tracker) write(data trackerData) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, out, 0644)
}
