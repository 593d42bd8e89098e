package editor

import (
	"os/exec"
)

// Zed implements Editor interface for Zed editor
type Zed struct {
	baseEditor
}

// NewZed creates a new Zed editor instance
func NewZed() Editor {
	return &Zed{
		baseEditor: baseEditor{
			name:    "Zed",
			command: "zed",
		},
	}
}

// OpenFolder opens a local folder. Zed has no window-reuse flag; -n
// forces a new window, the default reuses.
func (e *Zed) OpenFolder(path string, newWindow bool) error {
	if newWindow {
		return exec.Command(e.command, "-n", path).Start()
	}
	return exec.Command(e.command, path).Start()
}

// OpenRemote is unsupported; Zed has no Remote-SSH equivalent CLI.
func (e *Zed) OpenRemote(host, path string, newWindow bool) error {
	return ErrRemoteUnsupported
}
