package view

import (
	"strings"

	"projman/internal/models"
	"projman/internal/pathutil"
)

// FilterByTags keeps projects carrying at least one of the selected tag
// names (OR semantics). An empty selection keeps everything.
func FilterByTags(projects []*models.Project, selected []string) []*models.Project {
	if len(selected) == 0 {
		return projects
	}
	var out []*models.Project
	for _, p := range projects {
		for _, name := range selected {
			if p.HasTag(name) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// FilterBySearch keeps projects whose name, root path or any tag
// contains the query, case-insensitively. A blank query keeps everything.
func FilterBySearch(projects []*models.Project, query string) []*models.Project {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return projects
	}
	var out []*models.Project
	for _, p := range projects {
		if matchesSearch(p, query) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSearch(p *models.Project, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.RootPath), query) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// IsCurrent reports whether the project is the one open in this window.
func IsCurrent(p *models.Project, currentPath string) bool {
	if currentPath == "" {
		return false
	}
	return pathutil.Normalize(p.RootPath) == pathutil.Normalize(currentPath)
}

// IsActive reports whether the project is open in some other window.
func IsActive(p *models.Project, activePaths []string) bool {
	normalized := pathutil.Normalize(p.RootPath)
	for _, path := range activePaths {
		if pathutil.Normalize(path) == normalized {
			return true
		}
	}
	return false
}
