// Package editor provides IDE integration for opening project folders.
package editor

import (
	"fmt"
	"os/exec"
)

// Editor interface defines operations for IDE integration
type Editor interface {
	// Name returns the display name of the editor
	Name() string

	// IsInstalled checks if the editor is available on the system
	IsInstalled() bool

	// OpenFolder opens a local folder, reusing or forcing a new window
	OpenFolder(path string, newWindow bool) error

	// OpenRemote opens a folder on an SSH host. Editors without remote
	// support return ErrRemoteUnsupported.
	OpenRemote(host, path string, newWindow bool) error
}

// ErrRemoteUnsupported is returned by editors that cannot open SSH folders.
var ErrRemoteUnsupported = fmt.Errorf("editor has no remote SSH support")

// availableEditors is the list of all supported editors
var availableEditors = []func() Editor{
	NewCursor,
	NewVSCode,
	NewZed,
}

// editorsByName maps editor names to constructor functions
var editorsByName = map[string]func() Editor{
	"code":   NewVSCode,
	"cursor": NewCursor,
	"zed":    NewZed,
}

// defaultPriority is the auto-detection order.
var defaultPriority = []string{"cursor", "code", "zed"}

// Detect finds an installed editor. A name other than "auto" requests
// that editor specifically; otherwise priority order decides.
func Detect(name string) (Editor, error) {
	if name != "" && name != "auto" {
		constructor, ok := editorsByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown editor: %s", name)
		}
		ed := constructor()
		if !ed.IsInstalled() {
			return nil, fmt.Errorf("editor %s is not installed", name)
		}
		return ed, nil
	}

	for _, n := range defaultPriority {
		ed := editorsByName[n]()
		if ed.IsInstalled() {
			return ed, nil
		}
	}
	for _, constructor := range availableEditors {
		ed := constructor()
		if ed.IsInstalled() {
			return ed, nil
		}
	}
	return nil, fmt.Errorf("no supported editor found (install VS Code, Cursor, or Zed)")
}

// ListInstalled returns all installed editors
func ListInstalled() []Editor {
	var installed []Editor
	for _, constructor := range availableEditors {
		ed := constructor()
		if ed.IsInstalled() {
			installed = append(installed, ed)
		}
	}
	return installed
}

// baseEditor provides common functionality for editors
type baseEditor struct {
	name    string
	command string
}

func (e *baseEditor) Name() string {
	return e.name
}

func (e *baseEditor) IsInstalled() bool {
	return isCommandAvailable(e.command)
}

// isCommandAvailable checks if a command exists in PATH
func isCommandAvailable(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
