package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a tracked local or SSH-remote project folder.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	RootPath     string   `json:"rootPath"`
	Tags         []string `json:"tags"`
	Group        string   `json:"group,omitempty"`
	IsFavorite   bool     `json:"isFavorite"`
	LastOpenedAt int64    `json:"lastOpenedAt,omitempty"` // unix millis, 0 = never opened
	AddedAt      int64    `json:"addedAt"`                // unix millis
	IsAvailable  bool     `json:"isAvailable"`

	// Display overrides. Emoji wins when both are set.
	CustomIcon string `json:"customIcon,omitempty"`
	Emoji      string `json:"emoji,omitempty"`

	// RemoteHost is an SSH alias; non-empty marks the project as remote.
	RemoteHost string `json:"remoteHost,omitempty"`

	// Launch customization, passed through to the launcher as-is.
	OpenCommand     string            `json:"openCommand,omitempty"`
	TerminalProfile string            `json:"terminalProfile,omitempty"`
	EnvVars         map[string]string `json:"envVars,omitempty"`
}

// NewProject creates a project with a generated UUID and creation timestamp.
func NewProject(name, rootPath string) *Project {
	return &Project{
		ID:          uuid.New().String(),
		Name:        name,
		RootPath:    rootPath,
		Tags:        []string{},
		AddedAt:     time.Now().UnixMilli(),
		IsAvailable: true,
	}
}

// IsRemote reports whether the project lives on an SSH host.
func (p *Project) IsRemote() bool {
	return p.RemoteHost != ""
}

// HasTag reports whether the project carries the given tag name.
func (p *Project) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// DisplayIcon returns the icon override to render, if any.
func (p *Project) DisplayIcon() string {
	if p.Emoji != "" {
		return p.Emoji
	}
	return p.CustomIcon
}

// Clone returns a shallow copy with its own tag slice and env map.
func (p *Project) Clone() *Project {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	if p.EnvVars != nil {
		c.EnvVars = make(map[string]string, len(p.EnvVars))
		for k, v := range p.EnvVars {
			c.EnvVars[k] = v
		}
	}
	return &c
}
