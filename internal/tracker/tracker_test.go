package tracker

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestRegisterAndActivePaths(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)
	b := New(dir)

	if err := a.Register("/home/u/one"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := b.Register("/home/u/two"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	paths := a.ActivePaths()
	if len(paths) != 2 {
		t.Fatalf("Expected 2 active paths, got %v", paths)
	}
}

func TestRegister_EmptyPathIsNoop(t *testing.T) {
	dir := t.TempDir()
	tr := New(dir)

	if err := tr.Register(""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := os.Stat(tr.FilePath()); !os.IsNotExist(err) {
		t.Error("Empty path must not create the heartbeat file")
	}
}

func TestUnregister(t *testing.T) {
	dir := t.TempDir()
	tr := New(dir)

	if err := tr.Register("/home/u/one"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Unregister(); err != nil {
		t.Fatal(err)
	}
	if paths := tr.ActivePaths(); len(paths) != 0 {
		t.Errorf("Expected no paths after unregister, got %v", paths)
	}
}

func TestActivePaths_PrunesStaleEntries(t *testing.T) {
	dir := t.TempDir()
	tr := New(dir)
	if err := tr.Register("/home/u/live"); err != nil {
		t.Fatal(err)
	}

	// Inject a stale entry directly into the file.
	raw, err := os.ReadFile(tr.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	var data trackerData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	data.Windows["dead-window"] = windowEntry{
		ProjectPath: "/home/u/dead",
		Timestamp:   time.Now().Add(-25 * time.Hour).UnixMilli(),
	}
	out, _ := json.Marshal(data)
	if err := os.WriteFile(tr.FilePath(), out, 0644); err != nil {
		t.Fatal(err)
	}

	paths := tr.ActivePaths()
	if len(paths) != 1 || paths[0] != "/home/u/live" {
		t.Errorf("Stale entry should be pruned, got %v", paths)
	}

	// The prune is persisted.
	second := tr.ActivePaths()
	if len(second) != 1 {
		t.Errorf("Prune should persist, got %v", second)
	}
}

func TestRead_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	tr := New(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tr.FilePath(), []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}

	if paths := tr.ActivePaths(); len(paths) != 0 {
		t.Errorf("Corrupt file should read as empty, got %v", paths)
	}
	if err := tr.Register("/home/u/x"); err != nil {
		t.Errorf("Register should recover from a corrupt file: %v", err)
	}
}
