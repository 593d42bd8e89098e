package components

import (
	"fmt"
	"strings"

	"projman/internal/models"
	"projman/internal/ui"
)

// HostList shows the deduplicated SSH hosts from the user's config.
type HostList struct {
	Cursor int
	Width  int
	Height int

	hosts []models.ResolvedHost
}

// NewHostList creates an empty host list
func NewHostList() *HostList {
	return &HostList{
		Width:  60,
		Height: 16,
	}
}

// SetHosts replaces the host list, clamping the cursor.
func (l *HostList) SetHosts(hosts []models.ResolvedHost) {
	l.hosts = hosts
	if l.Cursor >= len(hosts) {
		l.Cursor = max(0, len(hosts)-1)
	}
}

// Current returns the host under the cursor, or nil.
func (l *HostList) Current() *models.ResolvedHost {
	if len(l.hosts) == 0 || l.Cursor >= len(l.hosts) {
		return nil
	}
	return &l.hosts[l.Cursor]
}

// MoveUp moves cursor up
func (l *HostList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *HostList) MoveDown() {
	if l.Cursor < len(l.hosts)-1 {
		l.Cursor++
	}
}

// View renders the host list
func (l *HostList) View() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render(fmt.Sprintf("SSH Hosts (%d)", len(l.hosts))))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, l.Width-2))))
	b.WriteString("\n")

	if len(l.hosts) == 0 {
		b.WriteString(ui.MutedStyle.Render("No hosts found in ~/.ssh/config"))
		return ui.DialogStyle.Width(l.Width).Render(b.String())
	}

	for i := range l.hosts {
		host := &l.hosts[i]

		aliases := ""
		if len(host.Aliases) > 1 {
			aliases = ui.MutedStyle.Render("(" + strings.Join(host.Aliases[1:], ", ") + ")")
		}
		content := fmt.Sprintf("%s %s %s",
			ui.RemoteStyle.Render(host.Primary()),
			ui.PathStyle.Render(host.Endpoint()),
			aliases)

		if i == l.Cursor {
			b.WriteString(ui.SelectedItemStyle.Width(max(10, l.Width-6)).Render(content))
		} else {
			b.WriteString(ui.ItemStyle.Render(content))
		}
		if i < len(l.hosts)-1 {
			b.WriteString("\n")
		}
	}

	return ui.DialogStyle.Width(l.Width).Render(b.String())
}
