// Package scanner discovers candidate project folders in conventional
// development directories.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"projman/internal/pathutil"

	"github.com/go-git/go-git/v5"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[SCANNER] "+format+"\n", args...)
	}
}

// Candidate is a folder worth offering in the add-project flow.
type Candidate struct {
	Path   string
	Name   string // prettified folder name
	Branch string // current git branch, empty when unknown
}

// DefaultScanPaths returns the conventional project directories for the
// current platform, filtered to those that exist.
func DefaultScanPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"Developer", "Projects", "code", "work", "repos", "src", "GitHub"}
	case "windows":
		candidates = []string{"Projects", "code", "source", "repos"}
	default:
		candidates = []string{"projects", "code", "work", "repos", "src", "dev", "GitHub"}
	}

	var paths []string
	for _, name := range candidates {
		p := filepath.Join(home, name)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			paths = append(paths, p)
		}
	}
	return paths
}

// Scan walks one level under each scan path and returns the git
// worktrees found there. Branch detection is best effort.
func Scan(scanPaths []string) []Candidate {
	var out []Candidate
	seen := make(map[string]bool)

	for _, root := range scanPaths {
		entries, err := os.ReadDir(root)
		if err != nil {
			debugLog("cannot read %s: %v", root, err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(root, entry.Name())
			normalized := pathutil.Normalize(dir)
			if seen[normalized] {
				continue
			}
			if !isWorktree(dir) {
				continue
			}
			seen[normalized] = true
			out = append(out, Candidate{
				Path:   dir,
				Name:   pathutil.PrettifyName(entry.Name()),
				Branch: currentBranch(dir),
			})
		}
	}
	debugLog("found %d candidates under %d roots", len(out), len(scanPaths))
	return out
}

func isWorktree(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

func currentBranch(dir string) string {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Name().Short()
}
