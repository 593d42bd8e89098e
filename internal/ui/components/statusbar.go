package components

import (
	"strings"

	"projman/internal/models"
	"projman/internal/ui"
)

// StatusBar shows the current project and transient notifications.
type StatusBar struct {
	Width int

	current      *models.Project
	notification string
	notifyType   string
}

// NewStatusBar creates the status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{Width: 80}
}

// SetCurrent sets the project shown as current, nil for none.
func (s *StatusBar) SetCurrent(p *models.Project) {
	s.current = p
}

// Notify shows a transient message. msgType is success, error or info.
func (s *StatusBar) Notify(msgType, message string) {
	s.notifyType = msgType
	s.notification = message
}

// ClearNotification removes the transient message.
func (s *StatusBar) ClearNotification() {
	s.notification = ""
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.notification != "" {
		return ui.StatusBarStyle.Render(ui.RenderNotification(s.notifyType, s.notification))
	}

	if s.current == nil {
		return ui.StatusBarStyle.Render(ui.MutedStyle.Render("no project open"))
	}

	icon := s.current.DisplayIcon()
	if icon == "" {
		icon = "·"
	}

	parts := []string{icon, ui.StatusTextStyle.Render(s.current.Name)}
	if s.current.IsRemote() {
		parts = append(parts, ui.RemoteStyle.Render("@"+s.current.RemoteHost))
	}
	if s.current.IsFavorite {
		parts = append(parts, ui.FavoriteStyle.Render("★"))
	}
	parts = append(parts, ui.PathStyle.Render(s.current.RootPath))

	return ui.StatusBarStyle.Render(strings.Join(parts, " "))
}
