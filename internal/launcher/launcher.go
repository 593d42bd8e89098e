// Package launcher executes the open actions for projects: editor
// windows, terminals, file managers, and the clipboard.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"projman/internal/editor"
	"projman/internal/models"
	"projman/internal/registry"
	"projman/internal/tracker"
)

// Launcher wires registry state to external processes.
type Launcher struct {
	registry *registry.Registry
	tracker  *tracker.Tracker
	editor   editor.Editor
	terminal string
}

// New creates a launcher. tracker may be nil when heartbeat tracking
// is disabled, terminal may be empty to use the platform default.
func New(reg *registry.Registry, trk *tracker.Tracker, ed editor.Editor, terminal string) *Launcher {
	return &Launcher{
		registry: reg,
		tracker:  trk,
		editor:   ed,
		terminal: terminal,
	}
}

// Open launches a project in the editor, or via its openCommand
// override when one is set. Recency and the window heartbeat are
// recorded before the process starts so ranking reflects intent even
// if the editor is slow to come up.
func (l *Launcher) Open(p *models.Project, newWindow bool) error {
	l.registry.MarkOpened(p.RootPath)
	if l.tracker != nil && !p.IsRemote() {
		if err := l.tracker.Register(p.RootPath); err != nil {
			return fmt.Errorf("register window: %w", err)
		}
	}

	if p.OpenCommand != "" {
		return runOverride(p.OpenCommand, p.RootPath, p.EnvVars)
	}

	if p.IsRemote() {
		return l.editor.OpenRemote(p.RemoteHost, p.RootPath, newWindow)
	}
	return l.editor.OpenFolder(p.RootPath, newWindow)
}

// OpenInTerminal opens a terminal in the project directory, applying
// the project's terminal profile and environment overrides.
func (l *Launcher) OpenInTerminal(p *models.Project) error {
	if p.IsRemote() {
		return l.sshTerminal(p)
	}

	name, args := terminalCommand(l.terminal, p.TerminalProfile, runtime.GOOS)
	cmd := exec.Command(name, args...)
	cmd.Dir = p.RootPath
	cmd.Env = mergedEnv(os.Environ(), p.EnvVars)
	return cmd.Start()
}

func (l *Launcher) sshTerminal(p *models.Project) error {
	name, args := terminalCommand(l.terminal, p.TerminalProfile, runtime.GOOS)
	args = append(args, "ssh", "-t", p.RemoteHost, fmt.Sprintf("cd %q && exec $SHELL -l", p.RootPath))
	return exec.Command(name, args...).Start()
}

// RevealInFileExplorer shows the project folder in the platform file
// manager. Remote projects have no local folder to reveal.
func (l *Launcher) RevealInFileExplorer(p *models.Project) error {
	if p.IsRemote() {
		return fmt.Errorf("cannot reveal remote project %s in file explorer", p.Name)
	}
	name, args := revealCommand(runtime.GOOS, p.RootPath)
	return exec.Command(name, args...).Start()
}

// CopyPath copies the project path to the clipboard. Remote paths are
// formatted host:path so they paste directly into scp and rsync.
func (l *Launcher) CopyPath(p *models.Project) error {
	return clipboard.WriteAll(DisplayPath(p))
}

// ConnectRemoteHost opens an editor window on a bare SSH host, using
// the stored default path for that host when one exists.
func (l *Launcher) ConnectRemoteHost(host string, newWindow bool) error {
	path, ok := l.registry.RemotePath(host)
	if !ok || path == "" {
		path = "~"
	}
	return l.editor.OpenRemote(host, path, newWindow)
}

// EditStorageFile opens the raw registry file in the editor. The
// VS Code-family CLIs accept files as well as folders; the storage
// watcher picks up the save and reloads.
func (l *Launcher) EditStorageFile() error {
	return l.editor.OpenFolder(l.registry.StorageFilePath(), false)
}

// DisplayPath renders the path a user would paste elsewhere.
func DisplayPath(p *models.Project) string {
	if p.IsRemote() {
		return p.RemoteHost + ":" + p.RootPath
	}
	return p.RootPath
}

// runOverride executes a project's custom open command through the
// shell with PROJECT_PATH exported and {path} substituted.
func runOverride(command, path string, env map[string]string) error {
	expanded := strings.ReplaceAll(command, "{path}", path)
	cmd := exec.Command("sh", "-c", expanded)
	cmd.Dir = path
	merged := mergedEnv(os.Environ(), env)
	cmd.Env = append(merged, "PROJECT_PATH="+path)
	return cmd.Start()
}

// mergedEnv appends project overrides to the ambient environment in
// sorted key order so the result is deterministic.
func mergedEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, len(base), len(base)+len(keys))
	copy(out, base)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}

// terminalCommand picks the terminal binary and its profile args.
func terminalCommand(configured, profile, goos string) (string, []string) {
	name := configured
	if name == "" {
		switch goos {
		case "darwin":
			name = "open"
		default:
			name = "x-terminal-emulator"
		}
	}

	var args []string
	if name == "open" {
		args = append(args, "-a", "Terminal")
	}
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	return name, args
}

// revealCommand picks the platform file manager invocation.
func revealCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{"-R", path}
	case "windows":
		return "explorer", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}
