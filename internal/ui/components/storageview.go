package components

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"projman/internal/ui"
)

// StorageView shows the raw registry file with syntax highlighting,
// plus a line diff when the file changed outside the app.
type StorageView struct {
	Width  int
	Height int
	Offset int
	Title  string

	filename    string
	lines       []string
	diffLines   []string
	highlighter *ui.Highlighter
}

// NewStorageView creates the raw storage viewer
func NewStorageView(filename string) *StorageView {
	return &StorageView{
		Width:       80,
		Height:      24,
		Title:       "Storage",
		filename:    filename,
		highlighter: ui.NewHighlighter(),
	}
}

// SetContent replaces the viewed content and resets scroll.
func (v *StorageView) SetContent(raw []byte) {
	v.lines = strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	v.Offset = 0
}

// SetDiff renders an external-change diff banner above the content.
// Pass nil to clear it.
func (v *StorageView) SetDiff(diffs []diffmatchpatch.Diff) {
	v.diffLines = v.diffLines[:0]
	for _, d := range diffs {
		for _, line := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				v.diffLines = append(v.diffLines, ui.SuccessNotifyStyle.Render("+ "+line))
			case diffmatchpatch.DiffDelete:
				v.diffLines = append(v.diffLines, ui.ErrorNotifyStyle.Render("- "+line))
			}
		}
	}
}

// HasDiff reports whether an external-change diff is showing.
func (v *StorageView) HasDiff() bool {
	return len(v.diffLines) > 0
}

// ScrollUp scrolls the content up
func (v *StorageView) ScrollUp() {
	if v.Offset > 0 {
		v.Offset--
	}
}

// ScrollDown scrolls the content down
func (v *StorageView) ScrollDown() {
	if v.Offset < max(0, len(v.lines)-v.contentHeight()) {
		v.Offset++
	}
}

// PageUp scrolls up a page
func (v *StorageView) PageUp() {
	v.Offset -= v.contentHeight()
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// PageDown scrolls down a page
func (v *StorageView) PageDown() {
	v.Offset += v.contentHeight()
	limit := max(0, len(v.lines)-v.contentHeight())
	if v.Offset > limit {
		v.Offset = limit
	}
}

func (v *StorageView) contentHeight() int {
	h := v.Height - 3 - len(v.diffLines)
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the storage file
func (v *StorageView) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s  %s", v.Title, ui.PathStyle.Render(v.filename))
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, v.Width-2))))
	b.WriteString("\n")

	for _, line := range v.diffLines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	end := min(v.Offset+v.contentHeight(), len(v.lines))
	for i := v.Offset; i < end; i++ {
		b.WriteString(v.highlighter.HighlightLine(v.lines[i], v.filename))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end < len(v.lines) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("  ↓ %d more lines", len(v.lines)-end)))
	}

	return ui.PanelStyle.Width(v.Width).Height(v.Height).Render(b.String())
}

func splitDiffLines(text string) []string {
	trimmed := strings.TrimRight(text, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
