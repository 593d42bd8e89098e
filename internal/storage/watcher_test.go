package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_DetectsModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	if err := os.WriteFile(path, []byte(`{"version":1}`), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(path)
	w.interval = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		done <- w.WaitForChange(ctx)
	}()

	// Give the watcher a moment to take its baseline stat.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"version":1,"projects":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if !<-done {
		t.Error("expected WaitForChange to report a modification")
	}
}

func TestWatcher_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(path)
	w.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if w.WaitForChange(ctx) {
		t.Error("cancelled context should not report a change")
	}
}
