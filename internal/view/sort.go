// Package view derives presentation orderings from the flat project
// list: quick-pick ranking, group trees and tag/search filtering. All
// functions are pure and never mutate their inputs.
package view

import (
	"fmt"
	"sort"
	"strings"

	"projman/internal/models"
)

// SortForQuickPick orders projects for the switcher: favorites first,
// then most recently opened. A never-opened project sorts as epoch and
// sinks to the bottom of its tier. Returns a new slice.
func SortForQuickPick(projects []*models.Project) []*models.Project {
	out := make([]*models.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		return out[i].LastOpenedAt > out[j].LastOpenedAt
	})
	return out
}

// SortProjects orders projects for list views: favorites first, then by
// the configured secondary key. Returns a new slice.
func SortProjects(projects []*models.Project, sortBy models.SortBy) []*models.Project {
	out := make([]*models.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		switch sortBy {
		case models.SortByRecency:
			return out[i].LastOpenedAt > out[j].LastOpenedAt
		default:
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
	})
	return out
}

// FormatRelativeTime renders how long ago tsMillis was, relative to
// nowMillis: "just now", "N min ago", "N hr ago", "N day(s) ago".
func FormatRelativeTime(nowMillis, tsMillis int64) string {
	minutes := (nowMillis - tsMillis) / 60_000
	if minutes < 1 {
		return "just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hr ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
