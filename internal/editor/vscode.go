package editor

import (
	"os/exec"
)

// VSCode implements Editor interface for Visual Studio Code
type VSCode struct {
	baseEditor
}

// NewVSCode creates a new VS Code editor instance
func NewVSCode() Editor {
	return &VSCode{
		baseEditor: baseEditor{
			name:    "VS Code",
			command: "code",
		},
	}
}

// OpenFolder opens a local folder.
// Command: code [--new-window|--reuse-window] PATH
func (e *VSCode) OpenFolder(path string, newWindow bool) error {
	return exec.Command(e.command, windowFlag(newWindow), path).Start()
}

// OpenRemote opens a folder over the Remote-SSH extension.
// Command: code [--new-window|--reuse-window] --remote ssh-remote+HOST PATH
func (e *VSCode) OpenRemote(host, path string, newWindow bool) error {
	return exec.Command(e.command, windowFlag(newWindow), "--remote", "ssh-remote+"+host, path).Start()
}

func windowFlag(newWindow bool) string {
	if newWindow {
		return "--new-window"
	}
	return "--reuse-window"
}
