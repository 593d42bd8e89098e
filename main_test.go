package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"projman/internal/completion"
	"projman/internal/config"
	"projman/internal/launcher"
	"projman/internal/registry"
	"projman/internal/sshconf"
	"projman/internal/storage"
)

func newTestModel(t *testing.T) (*Model, *registry.Registry, string) {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "projects.json")
	store := storage.New(storePath)
	reg := registry.New(store)
	reg.Load()

	launch := launcher.New(reg, nil, nil, "")
	sshcfg := sshconf.NewParser(filepath.Join(dir, "ssh_config"))
	watcher := storage.NewWatcher(storePath)
	return New(config.Default(), reg, launch, nil, sshcfg, watcher), reg, dir
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAvailabilitySweep_AppliedInUpdate(t *testing.T) {
	m, reg, dir := newTestModel(t)

	good := reg.AddProject(dir, "here")
	missing := reg.AddProject(filepath.Join(dir, "does-not-exist"), "gone")

	// The command only stats folders; the registry is untouched until
	// the result message is handled on the update loop.
	msg := m.sweepAvailability()()
	result, ok := msg.(availabilityMsg)
	if !ok {
		t.Fatalf("Expected availabilityMsg, got %T", msg)
	}
	if p, _ := reg.Project(missing.ID); !p.IsAvailable {
		t.Fatal("Command should not have written availability itself")
	}

	m.Update(result)

	if p, _ := reg.Project(good.ID); !p.IsAvailable {
		t.Error("Existing folder should stay available")
	}
	if p, _ := reg.Project(missing.ID); p.IsAvailable {
		t.Error("Missing folder should be marked unavailable")
	}
}

func TestExternalStorageChange_ReloadedInUpdate(t *testing.T) {
	m, reg, dir := newTestModel(t)

	// Another process writes the same storage file.
	other := registry.New(storage.New(reg.StorageFilePath()))
	other.Load()
	other.AddProject(dir, "from-elsewhere")

	_, cmd := m.Update(storageFileChangedMsg{})

	if _, ok := reg.ProjectByPath(dir); !ok {
		t.Error("External addition should be visible after the reload")
	}
	if cmd == nil {
		t.Error("Handler should rearm the storage watcher")
	}
}

func TestGroupRename_FromHeaderRow(t *testing.T) {
	m, reg, dir := newTestModel(t)

	p := reg.AddProject(dir, "api")
	reg.UpdateProject(p.ID, registry.ProjectUpdate{Group: registry.StringPtr("work")})
	m.refreshProjects()

	m.projectList.GoToFirst() // "work" header
	m.handleListKeys(keyRunes("e"))
	if m.renameGroupPath != "work" {
		t.Fatalf("Expected rename prompt for work, got %q", m.renameGroupPath)
	}

	m.groupInput.SetValue("dev")
	m.handleListKeys(tea.KeyMsg{Type: tea.KeyEnter})

	got, _ := reg.ProjectByPath(dir)
	if got.Group != "dev" {
		t.Errorf("Expected group dev after rename, got %q", got.Group)
	}
	if m.renameGroupPath != "" {
		t.Error("Rename prompt should close after enter")
	}
}

func TestGroupRename_RejectsNestedName(t *testing.T) {
	m, reg, dir := newTestModel(t)

	p := reg.AddProject(dir, "api")
	reg.UpdateProject(p.ID, registry.ProjectUpdate{Group: registry.StringPtr("work")})
	m.refreshProjects()

	m.projectList.GoToFirst()
	m.handleListKeys(keyRunes("e"))
	m.groupInput.SetValue("work/sub")
	m.handleListKeys(tea.KeyMsg{Type: tea.KeyEnter})

	got, _ := reg.ProjectByPath(dir)
	if got.Group != "work" {
		t.Errorf("Slash in the new name should be rejected, got group %q", got.Group)
	}
}

func TestExpandAllKey_RestoresFoldedRows(t *testing.T) {
	m, reg, dir := newTestModel(t)

	a := reg.AddProject(filepath.Join(dir, "api"), "api")
	reg.UpdateProject(a.ID, registry.ProjectUpdate{Group: registry.StringPtr("work")})
	b := reg.AddProject(filepath.Join(dir, "site"), "site")
	reg.UpdateProject(b.ID, registry.ProjectUpdate{Group: registry.StringPtr("work/frontend")})
	m.refreshProjects()

	total := len(m.projectList.Rows())
	m.projectList.GoToFirst() // "work" header
	m.handleListKeys(keyRunes("Z"))
	if len(m.projectList.Rows()) >= total {
		t.Fatal("Z should fold the subtree")
	}

	m.handleListKeys(keyRunes("E"))
	if len(m.projectList.Rows()) != total {
		t.Errorf("E should unfold every group, got %d of %d rows", len(m.projectList.Rows()), total)
	}
}

func TestPathCompletion_DebouncedWhileTyping(t *testing.T) {
	m, _, _ := newTestModel(t)

	fired := make(chan tea.Msg, 4)
	m.send = func(msg tea.Msg) { fired <- msg }
	m.debounce = completion.NewDebouncer(20 * time.Millisecond)

	m.screen = ScreenAdd
	m.resetAddForm()
	m.handleAddKeys(keyRunes("p"))
	m.handleAddKeys(keyRunes("r"))

	select {
	case msg := <-fired:
		req, ok := msg.(completionRequestMsg)
		if !ok {
			t.Fatalf("Expected completionRequestMsg, got %T", msg)
		}
		if req.prefix != "pr" {
			t.Errorf("Expected the final typed prefix, got %q", req.prefix)
		}
	case <-time.After(time.Second):
		t.Fatal("Debounced completion never fired")
	}

	// Only the last keystroke's request survives the quiet window.
	select {
	case msg := <-fired:
		t.Fatalf("Unexpected extra message %T", msg)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestCompletionRequest_RoutedThroughUpdate(t *testing.T) {
	m, _, dir := newTestModel(t)

	sub := filepath.Join(dir, "projects")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	m.screen = ScreenAdd
	m.resetAddForm()

	_, cmd := m.Update(completionRequestMsg{prefix: filepath.Join(dir, "pro")})
	if cmd == nil {
		t.Fatal("Request on the path field should produce a completion command")
	}
	m.Update(cmd())

	if len(m.suggestions) != 1 || m.suggestions[0] != sub {
		t.Errorf("Expected suggestion %q, got %v", sub, m.suggestions)
	}

	// Requests that land after leaving the form are ignored.
	m.screen = ScreenList
	if _, cmd := m.Update(completionRequestMsg{prefix: dir}); cmd != nil {
		t.Error("Request outside the add form should be dropped")
	}
}
