// Package components holds the reusable widgets of the terminal UI.
package components

import (
	"fmt"
	"strings"

	"projman/internal/models"
	"projman/internal/ui"
	"projman/internal/view"
)

// RowKind distinguishes tree rows under the cursor.
type RowKind int

const (
	RowGroup RowKind = iota
	RowProject
)

// Row is one visible line of the flattened project tree.
type Row struct {
	Kind    RowKind
	Depth   int
	Group   *view.GroupNode // set for RowGroup
	Project *models.Project // set for RowProject
}

// ProjectList renders the grouped project tree with collapse state.
type ProjectList struct {
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string

	tree      *view.GroupTree
	collapsed map[string]bool
	rows      []Row

	// Paths used for row decorations.
	CurrentPath string
	ActivePaths map[string]bool
}

// NewProjectList creates an empty project list
func NewProjectList() *ProjectList {
	return &ProjectList{
		Width:     60,
		Height:    20,
		Focused:   true,
		Title:     "Projects",
		collapsed: make(map[string]bool),
	}
}

// SetTree replaces the tree and reflattens, clamping the cursor.
func (l *ProjectList) SetTree(tree *view.GroupTree) {
	l.tree = tree
	l.reflatten()
}

// Rows exposes the flattened rows for the current collapse state.
func (l *ProjectList) Rows() []Row {
	return l.rows
}

// Current returns the row under the cursor, or nil when empty.
func (l *ProjectList) Current() *Row {
	if len(l.rows) == 0 || l.Cursor >= len(l.rows) {
		return nil
	}
	return &l.rows[l.Cursor]
}

// CurrentProject returns the project under the cursor, or nil when the
// cursor sits on a group header.
func (l *ProjectList) CurrentProject() *models.Project {
	row := l.Current()
	if row == nil || row.Kind != RowProject {
		return nil
	}
	return row.Project
}

// ToggleCollapse folds or unfolds the group under the cursor. When the
// cursor is on a project it folds that project's enclosing group.
func (l *ProjectList) ToggleCollapse() {
	path := l.cursorGroupPath()
	if path == "" {
		return
	}
	l.collapsed[path] = !l.collapsed[path]
	l.reflatten()
}

// CollapseSubtree recursively folds the group under the cursor and
// every group below it.
func (l *ProjectList) CollapseSubtree() {
	path := l.cursorGroupPath()
	if path == "" {
		return
	}
	// The favorites pseudo-group has no descendants in the path set.
	l.collapsed[path] = true
	for _, target := range view.CollapseTargets(path, l.allGroupPaths()) {
		l.collapsed[target] = true
	}
	l.reflatten()
}

// ExpandAll unfolds every group.
func (l *ProjectList) ExpandAll() {
	l.collapsed = make(map[string]bool)
	l.reflatten()
}

func (l *ProjectList) cursorGroupPath() string {
	row := l.Current()
	if row == nil {
		return ""
	}
	if row.Kind == RowGroup {
		return row.Group.Path
	}
	return row.Project.Group
}

func (l *ProjectList) allGroupPaths() []string {
	if l.tree == nil {
		return nil
	}
	var paths []string
	var walk func(nodes []*view.GroupNode)
	walk = func(nodes []*view.GroupNode) {
		for _, n := range nodes {
			paths = append(paths, n.Path)
			walk(n.Children)
		}
	}
	walk(l.tree.Roots)
	return paths
}

// reflatten rebuilds the visible rows from the tree and collapse set.
func (l *ProjectList) reflatten() {
	l.rows = l.rows[:0]
	if l.tree == nil {
		l.Cursor = 0
		return
	}

	// Favorites render as a foldable pseudo-group keyed on the
	// reserved sentinel path.
	if len(l.tree.Favorites) > 0 {
		l.rows = append(l.rows, Row{Kind: RowGroup, Group: &view.GroupNode{
			Name:     "Favorites",
			Path:     view.FavoritesGroupKey,
			Projects: l.tree.Favorites,
		}})
		if !l.collapsed[view.FavoritesGroupKey] {
			for _, p := range l.tree.Favorites {
				l.rows = append(l.rows, Row{Kind: RowProject, Depth: 1, Project: p})
			}
		}
	}

	var walk func(nodes []*view.GroupNode, depth int)
	walk = func(nodes []*view.GroupNode, depth int) {
		for _, node := range nodes {
			l.rows = append(l.rows, Row{Kind: RowGroup, Depth: depth, Group: node})
			if l.collapsed[node.Path] {
				continue
			}
			walk(node.Children, depth+1)
			for _, p := range node.Projects {
				l.rows = append(l.rows, Row{Kind: RowProject, Depth: depth + 1, Project: p})
			}
		}
	}
	walk(l.tree.Roots, 0)

	for _, p := range l.tree.Ungrouped {
		l.rows = append(l.rows, Row{Kind: RowProject, Project: p})
	}

	if l.Cursor >= len(l.rows) {
		l.Cursor = max(0, len(l.rows)-1)
	}
}

// MoveUp moves cursor up
func (l *ProjectList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *ProjectList) MoveDown() {
	if l.Cursor < len(l.rows)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *ProjectList) PageUp() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor -= pageSize
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *ProjectList) PageDown() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor += pageSize
	if l.Cursor >= len(l.rows) {
		l.Cursor = max(0, len(l.rows)-1)
	}
}

// GoToFirst moves cursor to the first row
func (l *ProjectList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last row
func (l *ProjectList) GoToLast() {
	if len(l.rows) > 0 {
		l.Cursor = len(l.rows) - 1
	}
}

// View renders the project tree
func (l *ProjectList) View() string {
	var b strings.Builder

	projectCount := 0
	for _, row := range l.rows {
		if row.Kind == RowProject {
			projectCount++
		}
	}
	title := l.Title
	if projectCount > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, projectCount)
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, l.Width-2))))
	b.WriteString("\n")

	if len(l.rows) == 0 {
		b.WriteString(ui.ItemStyle.Render("No projects yet. Press 'a' to add one."))
		return l.wrapInPanel(b.String())
	}

	visibleHeight := l.Height - 3
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.rows))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderRow(l.rows[i], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(l.rows) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return l.wrapInPanel(b.String())
}

func (l *ProjectList) renderRow(row Row, isCursor bool) string {
	indent := strings.Repeat("  ", row.Depth)

	var content string
	if row.Kind == RowGroup {
		marker := "▾"
		if l.collapsed[row.Group.Path] {
			marker = "▸"
		}
		count := ui.GroupCountStyle.Render(fmt.Sprintf("(%d)", row.Group.TotalCount()))
		content = fmt.Sprintf("%s%s %s %s", indent, marker, ui.GroupStyle.Render(row.Group.Name), count)
	} else {
		content = indent + l.renderProject(row.Project)
	}

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(max(10, l.Width-4)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

func (l *ProjectList) renderProject(p *models.Project) string {
	icon := p.DisplayIcon()
	if icon == "" {
		icon = "·"
	}

	name := p.Name
	maxNameLen := l.Width - 24
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	var marks []string
	if p.IsFavorite {
		marks = append(marks, ui.FavoriteStyle.Render("★"))
	}
	if p.IsRemote() {
		marks = append(marks, ui.RemoteStyle.Render("@"+p.RemoteHost))
	}
	if view.IsCurrent(p, l.CurrentPath) {
		marks = append(marks, ui.CurrentStyle.Render("●"))
	} else if l.ActivePaths != nil && l.ActivePaths[p.RootPath] {
		marks = append(marks, ui.ActiveWindowStyle.Render("○"))
	}

	styledName := name
	if !p.IsAvailable && !p.IsRemote() {
		styledName = ui.UnavailableStyle.Render(name)
	}

	parts := []string{icon, styledName}
	if tags := ui.RenderTags(p.Tags); tags != "" {
		parts = append(parts, tags)
	}
	parts = append(parts, marks...)
	return strings.Join(parts, " ")
}

func (l *ProjectList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
