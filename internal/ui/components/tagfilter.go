package components

import (
	"fmt"
	"strings"

	"projman/internal/models"
	"projman/internal/ui"
)

// TagFilter lets the user pick tags; a project matches when it carries
// any selected tag.
type TagFilter struct {
	Cursor int
	Width  int
	Height int

	tags     []models.Tag
	selected map[string]bool
}

// NewTagFilter creates an empty tag filter
func NewTagFilter() *TagFilter {
	return &TagFilter{
		Width:    40,
		Height:   14,
		selected: make(map[string]bool),
	}
}

// SetTags replaces the tag list, keeping selections that still exist.
func (f *TagFilter) SetTags(tags []models.Tag) {
	f.tags = tags
	known := make(map[string]bool, len(tags))
	for _, t := range tags {
		known[t.Name] = true
	}
	for name := range f.selected {
		if !known[name] {
			delete(f.selected, name)
		}
	}
	if f.Cursor >= len(tags) {
		f.Cursor = max(0, len(tags)-1)
	}
}

// Toggle flips selection of the tag under the cursor.
func (f *TagFilter) Toggle() {
	if len(f.tags) == 0 || f.Cursor >= len(f.tags) {
		return
	}
	name := f.tags[f.Cursor].Name
	if f.selected[name] {
		delete(f.selected, name)
	} else {
		f.selected[name] = true
	}
}

// Clear deselects every tag.
func (f *TagFilter) Clear() {
	f.selected = make(map[string]bool)
}

// Selected returns the selected tag names in list order.
func (f *TagFilter) Selected() []string {
	var out []string
	for _, t := range f.tags {
		if f.selected[t.Name] {
			out = append(out, t.Name)
		}
	}
	return out
}

// Active reports whether any tag is selected.
func (f *TagFilter) Active() bool {
	return len(f.selected) > 0
}

// MoveUp moves cursor up
func (f *TagFilter) MoveUp() {
	if f.Cursor > 0 {
		f.Cursor--
	}
}

// MoveDown moves cursor down
func (f *TagFilter) MoveDown() {
	if f.Cursor < len(f.tags)-1 {
		f.Cursor++
	}
}

// View renders the tag list
func (f *TagFilter) View() string {
	var b strings.Builder

	title := "Filter by Tag"
	if n := len(f.Selected()); n > 0 {
		title = fmt.Sprintf("Filter by Tag (%d selected)", n)
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, f.Width-2))))
	b.WriteString("\n")

	if len(f.tags) == 0 {
		b.WriteString(ui.MutedStyle.Render("No tags defined"))
		return ui.DialogStyle.Width(f.Width).Render(b.String())
	}

	for i, tag := range f.tags {
		mark := "[ ]"
		if f.selected[tag.Name] {
			mark = "[✓]"
		}
		content := fmt.Sprintf("%s %s", mark, ui.TagStyle.Render("#"+tag.Name))
		if tag.Color != "" {
			content += " " + ui.MutedStyle.Render(tag.Color)
		}
		if i == f.Cursor {
			b.WriteString(ui.SelectedItemStyle.Width(max(10, f.Width-6)).Render(content))
		} else {
			b.WriteString(ui.ItemStyle.Render(content))
		}
		if i < len(f.tags)-1 {
			b.WriteString("\n")
		}
	}

	return ui.DialogStyle.Width(f.Width).Render(b.String())
}
