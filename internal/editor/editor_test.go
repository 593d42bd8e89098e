package editor

import (
	"errors"
	"testing"
)

func TestIsCommandAvailable(t *testing.T) {
	// Test with a command that should exist on all systems
	if !isCommandAvailable("ls") {
		t.Error("expected 'ls' command to be available")
	}

	// Test with a command that should not exist
	if isCommandAvailable("this-command-does-not-exist-12345") {
		t.Error("expected fake command to not be available")
	}
}

func TestEditorName(t *testing.T) {
	tests := []struct {
		editor   Editor
		expected string
	}{
		{NewVSCode(), "VS Code"},
		{NewCursor(), "Cursor"},
		{NewZed(), "Zed"},
	}

	for _, tt := range tests {
		if got := tt.editor.Name(); got != tt.expected {
			t.Errorf("Name() = %q, want %q", got, tt.expected)
		}
	}
}

func TestDetect_UnknownEditor(t *testing.T) {
	if _, err := Detect("emacs-but-wrong"); err == nil {
		t.Error("Detect should fail for an unknown editor name")
	}
}

func TestZed_RemoteUnsupported(t *testing.T) {
	err := NewZed().OpenRemote("dev", "/srv/app", false)
	if !errors.Is(err, ErrRemoteUnsupported) {
		t.Errorf("Zed remote open = %v, want ErrRemoteUnsupported", err)
	}
}

func TestWindowFlag(t *testing.T) {
	if windowFlag(true) != "--new-window" {
		t.Error("new window flag wrong")
	}
	if windowFlag(false) != "--reuse-window" {
		t.Error("reuse window flag wrong")
	}
}
