// Package models defines core data structures for projman.
package models

// Tag is a flat label with an optional display color. Identity is the name.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// SortBy selects the secondary sort key for project listings.
type SortBy string

const (
	// SortByName orders alphabetically by display name.
	SortByName SortBy = "name"
	// SortByRecency orders by last-opened time, most recent first.
	SortByRecency SortBy = "recency"
)

// OpenBehavior controls how a project is opened from the switcher.
type OpenBehavior string

const (
	// OpenCurrentWindow reuses the current editor window.
	OpenCurrentWindow OpenBehavior = "currentWindow"
	// OpenNewWindow always opens a new editor window.
	OpenNewWindow OpenBehavior = "newWindow"
	// OpenAsk prompts every time.
	OpenAsk OpenBehavior = "ask"
)

// StorageData is the persisted shape of the whole registry.
type StorageData struct {
	Version  int               `json:"version"`
	Projects []*Project        `json:"projects"`
	Tags     []Tag             `json:"tags"`
	Remote   map[string]string `json:"remote"`
}
