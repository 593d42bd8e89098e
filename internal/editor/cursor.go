package editor

import (
	"os/exec"
)

// Cursor implements Editor interface for Cursor IDE
type Cursor struct {
	baseEditor
}

// NewCursor creates a new Cursor editor instance
func NewCursor() Editor {
	return &Cursor{
		baseEditor: baseEditor{
			name:    "Cursor",
			command: "cursor",
		},
	}
}

// OpenFolder opens a local folder. Cursor ships the VS Code CLI surface.
func (e *Cursor) OpenFolder(path string, newWindow bool) error {
	return exec.Command(e.command, windowFlag(newWindow), path).Start()
}

// OpenRemote opens a folder over Remote-SSH.
func (e *Cursor) OpenRemote(host, path string, newWindow bool) error {
	return exec.Command(e.command, windowFlag(newWindow), "--remote", "ssh-remote+"+host, path).Start()
}
