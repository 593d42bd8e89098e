package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"projman/internal/models"
	"projman/internal/ui"
	"projman/internal/view"
)

// QuickPick is the ranked project switcher: favorites first, then by
// recency, filtered live by the typed query.
type QuickPick struct {
	Cursor int
	Width  int
	Height int

	input    textinput.Model
	ranked   []*models.Project
	filtered []*models.Project
}

// NewQuickPick creates the switcher
func NewQuickPick() *QuickPick {
	input := textinput.New()
	input.Placeholder = "Type to filter projects..."
	input.Prompt = "> "
	input.Focus()

	return &QuickPick{
		Width:  60,
		Height: 18,
		input:  input,
	}
}

// SetProjects ranks the given projects and resets the filter.
func (q *QuickPick) SetProjects(projects []*models.Project) {
	q.ranked = view.SortForQuickPick(projects)
	q.applyFilter()
}

// Input exposes the filter text input for Update wiring.
func (q *QuickPick) Input() *textinput.Model {
	return &q.input
}

// Refilter re-applies the current query; call after the input changed.
func (q *QuickPick) Refilter() {
	q.applyFilter()
}

// Reset clears the query and cursor.
func (q *QuickPick) Reset() {
	q.input.SetValue("")
	q.Cursor = 0
	q.applyFilter()
}

func (q *QuickPick) applyFilter() {
	q.filtered = view.FilterBySearch(q.ranked, q.input.Value())
	if q.Cursor >= len(q.filtered) {
		q.Cursor = max(0, len(q.filtered)-1)
	}
}

// MoveUp moves cursor up
func (q *QuickPick) MoveUp() {
	if q.Cursor > 0 {
		q.Cursor--
	}
}

// MoveDown moves cursor down
func (q *QuickPick) MoveDown() {
	if q.Cursor < len(q.filtered)-1 {
		q.Cursor++
	}
}

// Current returns the project under the cursor, or nil.
func (q *QuickPick) Current() *models.Project {
	if len(q.filtered) == 0 || q.Cursor >= len(q.filtered) {
		return nil
	}
	return q.filtered[q.Cursor]
}

// Matches returns the currently visible ranked projects.
func (q *QuickPick) Matches() []*models.Project {
	return q.filtered
}

// View renders the switcher dialog
func (q *QuickPick) View() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Switch Project"))
	b.WriteString("\n")
	b.WriteString(q.input.View())
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, q.Width-2))))
	b.WriteString("\n")

	if len(q.filtered) == 0 {
		b.WriteString(ui.MutedStyle.Render("No matching projects"))
		return ui.DialogStyle.Width(q.Width).Render(b.String())
	}

	visibleHeight := q.Height - 4
	startIdx := 0
	if q.Cursor >= visibleHeight {
		startIdx = q.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(q.filtered))

	now := time.Now().UnixMilli()
	for i := startIdx; i < endIdx; i++ {
		b.WriteString(q.renderItem(q.filtered[i], now, i == q.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	return ui.DialogStyle.Width(q.Width).Render(b.String())
}

func (q *QuickPick) renderItem(p *models.Project, nowMillis int64, isCursor bool) string {
	icon := p.DisplayIcon()
	if icon == "" {
		icon = "·"
	}

	star := " "
	if p.IsFavorite {
		star = ui.FavoriteStyle.Render("★")
	}

	recency := ""
	if p.LastOpenedAt > 0 {
		recency = ui.RecencyStyle.Render(view.FormatRelativeTime(nowMillis, p.LastOpenedAt))
	}

	detail := p.RootPath
	if p.IsRemote() {
		detail = p.RemoteHost + ":" + p.RootPath
	}

	content := fmt.Sprintf("%s %s %s  %s  %s", star, icon, p.Name, ui.PathStyle.Render(detail), recency)
	if isCursor {
		return ui.SelectedItemStyle.Width(max(10, q.Width-6)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}
