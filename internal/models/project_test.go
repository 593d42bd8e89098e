package models

import (
	"testing"
	"time"
)

func TestNewProject(t *testing.T) {
	before := time.Now().UnixMilli()
	p := NewProject("API Server", "/home/dev/api")
	after := time.Now().UnixMilli()

	if p.ID == "" {
		t.Error("Expected a generated ID")
	}
	if p.Name != "API Server" {
		t.Errorf("Expected name to be set, got %s", p.Name)
	}
	if p.AddedAt < before || p.AddedAt > after {
		t.Errorf("AddedAt %d outside [%d, %d]", p.AddedAt, before, after)
	}
	if p.LastOpenedAt != 0 {
		t.Error("A new project has never been opened")
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Error("Tags should be an empty slice, not nil")
	}
	if !p.IsAvailable {
		t.Error("New projects start available")
	}
}

func TestProject_IsRemote(t *testing.T) {
	p := NewProject("x", "/srv/app")
	if p.IsRemote() {
		t.Error("Project without a host is local")
	}
	p.RemoteHost = "prod"
	if !p.IsRemote() {
		t.Error("Project with a host is remote")
	}
}

func TestProject_HasTag(t *testing.T) {
	p := NewProject("x", "/p")
	p.Tags = []string{"go", "web"}

	if !p.HasTag("go") {
		t.Error("Expected HasTag to find an existing tag")
	}
	if p.HasTag("rust") {
		t.Error("HasTag should not match missing tags")
	}
	if p.HasTag("GO") {
		t.Error("Tag matching is case sensitive")
	}
}

func TestProject_DisplayIcon(t *testing.T) {
	p := NewProject("x", "/p")
	if p.DisplayIcon() != "" {
		t.Error("No icon configured should render empty")
	}

	p.CustomIcon = "folder"
	if p.DisplayIcon() != "folder" {
		t.Error("Custom icon should be used when set")
	}

	// Emoji wins over a custom icon.
	p.Emoji = "🚀"
	if p.DisplayIcon() != "🚀" {
		t.Error("Emoji should take precedence over the custom icon")
	}
}

func TestProject_Clone(t *testing.T) {
	p := NewProject("x", "/p")
	p.Tags = []string{"go"}
	p.EnvVars = map[string]string{"PORT": "8080"}

	c := p.Clone()
	c.Tags[0] = "changed"
	c.EnvVars["PORT"] = "9090"

	if p.Tags[0] != "go" {
		t.Error("Clone must not share the tags slice")
	}
	if p.EnvVars["PORT"] != "8080" {
		t.Error("Clone must not share the env map")
	}
}
