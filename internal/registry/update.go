package registry

import "projman/internal/models"

// ProjectUpdate is a field-explicit patch for UpdateProject. A nil
// pointer leaves the field untouched; a set pointer overwrites it.
// Clearing an optional field is expressed by pointing at an empty string.
type ProjectUpdate struct {
	Name            *string
	RootPath        *string
	Group           *string
	CustomIcon      *string
	Emoji           *string
	RemoteHost      *string
	OpenCommand     *string
	TerminalProfile *string
	// EnvVars replaces the whole map when non-nil.
	EnvVars map[string]string
}

func (u ProjectUpdate) apply(p *models.Project) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.RootPath != nil {
		p.RootPath = *u.RootPath
	}
	if u.Group != nil {
		p.Group = *u.Group
	}
	if u.CustomIcon != nil {
		p.CustomIcon = *u.CustomIcon
	}
	if u.Emoji != nil {
		p.Emoji = *u.Emoji
	}
	if u.RemoteHost != nil {
		p.RemoteHost = *u.RemoteHost
	}
	if u.OpenCommand != nil {
		p.OpenCommand = *u.OpenCommand
	}
	if u.TerminalProfile != nil {
		p.TerminalProfile = *u.TerminalProfile
	}
	if u.EnvVars != nil {
		p.EnvVars = u.EnvVars
	}
}

// StringPtr is a convenience for building ProjectUpdate literals.
func StringPtr(s string) *string {
	return &s
}
