// Package pathutil provides path normalization and display helpers.
package pathutil

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

// Normalize converts path separators to forward slashes. Path equality
// everywhere in the registry is computed on the normalized form.
func Normalize(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}

// ShortenHome replaces the home directory prefix with ~ for display.
func ShortenHome(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+string(os.PathSeparator)) || strings.HasPrefix(p, home+"/") {
		return "~" + p[len(home):]
	}
	return p
}

// FolderName derives a display name from the final path segment.
func FolderName(p string) string {
	return PrettifyName(path.Base(Normalize(p)))
}

// PrettifyName turns a folder name into a human-friendly title. It splits
// on hyphens, underscores, dots and camelCase boundaries, then
// title-cases each word: "my-cool-project" -> "My Cool Project",
// "next.js" -> "Next Js", "myApp" -> "My App".
func PrettifyName(name string) string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
