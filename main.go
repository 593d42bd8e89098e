package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"projman/internal/completion"
	"projman/internal/config"
	"projman/internal/editor"
	"projman/internal/launcher"
	"projman/internal/models"
	"projman/internal/registry"
	"projman/internal/scanner"
	"projman/internal/sshconf"
	"projman/internal/storage"
	"projman/internal/tracker"
	"projman/internal/ui"
	"projman/internal/ui/components"
	"projman/internal/view"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	debugMode = false // Enable with --debug flag
)

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if debugMode {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// Screen represents different screens in the app
type Screen int

const (
	ScreenList Screen = iota
	ScreenQuickPick
	ScreenTagFilter
	ScreenRemotes
	ScreenAdd
	ScreenEdit
	ScreenScan
	ScreenStorage
	ScreenConfirmDelete
	ScreenHelp
)

// AddField enumerates inputs on the add-project form
type AddField int

const (
	AddFieldPath AddField = iota
	AddFieldName
	AddFieldHost
	AddFieldRemotePath
)

// EditField enumerates inputs on the edit-project form
type EditField int

const (
	EditFieldName EditField = iota
	EditFieldGroup
	EditFieldTags
	EditFieldEmoji
	EditFieldIcon
	EditFieldOpenCommand
	EditFieldTerminalProfile
)

const editFieldCount = 7

// Model is the top-level bubbletea model
type Model struct {
	screen Screen
	width  int
	height int
	keys   ui.KeyMap

	cfg      *config.Config
	reg      *registry.Registry
	launch   *launcher.Launcher
	trk      *tracker.Tracker
	sshcfg   *sshconf.Parser
	complete *completion.Completer
	watcher  *storage.Watcher

	projectList *components.ProjectList
	quickPick   *components.QuickPick
	tagFilter   *components.TagFilter
	hostList    *components.HostList
	statusBar   *components.StatusBar
	storageView *components.StorageView

	searchInput textinput.Model
	searching   bool

	// Tag management state (on the tag filter screen)
	tagInput     textinput.Model
	tagEditMode  string // "", "new", "rename"
	renameTarget string

	// Group rename state (inline on the list screen)
	groupInput      textinput.Model
	renameGroupPath string

	// Add-project form state
	addField    AddField
	addRemote   bool
	addInputs   [4]textinput.Model
	suggestions []string
	suggestIdx  int

	// Edit-project form state
	editField  EditField
	editID     string
	editInputs [editFieldCount]textinput.Model

	// Scan results
	candidates []scanner.Candidate
	scanCursor int

	// Delete confirmation
	deleteTarget *models.Project

	watchCancel context.CancelFunc

	// debounce coalesces completion requests while typing; send posts
	// the fire back into the program's update loop.
	debounce *completion.Debouncer
	send     func(tea.Msg)
}

type storageFileChangedMsg struct{}

type scanCompleteMsg struct {
	candidates []scanner.Candidate
}

type availabilityMsg struct {
	available map[string]bool // project id -> folder exists
}

type completionRequestMsg struct {
	prefix string
}

type completionMsg struct {
	resp completion.Response
}

type clearNotifyMsg struct{}

// New creates the top-level model
func New(cfg *config.Config, reg *registry.Registry, launch *launcher.Launcher,
	trk *tracker.Tracker, sshcfg *sshconf.Parser, watcher *storage.Watcher) *Model {

	searchInput := textinput.New()
	searchInput.Placeholder = "Search projects..."
	searchInput.Prompt = "/ "

	tagInput := textinput.New()
	tagInput.Placeholder = "tag name"

	groupInput := textinput.New()
	groupInput.Placeholder = "group name"

	m := &Model{
		screen:      ScreenList,
		keys:        ui.DefaultKeyMap(),
		cfg:         cfg,
		reg:         reg,
		launch:      launch,
		trk:         trk,
		sshcfg:      sshcfg,
		complete:    completion.New(10),
		watcher:     watcher,
		projectList: components.NewProjectList(),
		quickPick:   components.NewQuickPick(),
		tagFilter:   components.NewTagFilter(),
		hostList:    components.NewHostList(),
		statusBar:   components.NewStatusBar(),
		storageView: components.NewStorageView(reg.StorageFilePath()),
		searchInput: searchInput,
		tagInput:    tagInput,
		groupInput:  groupInput,
		debounce:    completion.NewDebouncer(200 * time.Millisecond),
	}

	for i := range m.addInputs {
		m.addInputs[i] = textinput.New()
	}
	m.addInputs[AddFieldPath].Placeholder = "/path/to/project"
	m.addInputs[AddFieldName].Placeholder = "Name (optional)"
	m.addInputs[AddFieldHost].Placeholder = "ssh host alias"
	m.addInputs[AddFieldRemotePath].Placeholder = "/remote/path"

	for i := range m.editInputs {
		m.editInputs[i] = textinput.New()
	}

	m.refreshProjects()
	return m
}

// refreshProjects rebuilds the tree and quick pick from the registry.
func (m *Model) refreshProjects() {
	projects := view.SortProjects(m.reg.Projects(), m.cfg.SortBy)
	if m.tagFilter.Active() {
		projects = view.FilterByTags(projects, m.tagFilter.Selected())
	}
	if m.searching || m.searchInput.Value() != "" {
		projects = view.FilterBySearch(projects, m.searchInput.Value())
	}

	if m.trk != nil {
		active := make(map[string]bool)
		for _, p := range m.trk.ActivePaths() {
			active[p] = true
		}
		m.projectList.ActivePaths = active
	}

	m.projectList.SetTree(view.BuildGroupTree(projects))
	m.quickPick.SetProjects(m.reg.Projects())
	m.tagFilter.SetTags(m.reg.Tags())
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sweepAvailability()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForStorageChange())
	}
	return tea.Batch(cmds...)
}

// sweepAvailability stats every local project root. The registry is
// single-owner, so the command only touches the filesystem and reports
// its findings back as a message; Update applies them.
func (m *Model) sweepAvailability() tea.Cmd {
	type target struct{ id, path string }
	var targets []target
	for _, p := range m.reg.Projects() {
		if p.IsRemote() {
			continue
		}
		targets = append(targets, target{p.ID, p.RootPath})
	}

	return func() tea.Msg {
		available := make(map[string]bool, len(targets))
		for _, t := range targets {
			_, err := os.Stat(t.path)
			available[t.id] = err == nil
		}
		return availabilityMsg{available: available}
	}
}

// waitForStorageChange blocks on the file watcher. The command carries
// no registry access; the reload runs in Update when the message lands.
func (m *Model) waitForStorageChange() tea.Cmd {
	var ctx context.Context
	if m.watchCancel != nil {
		m.watchCancel()
	}
	ctx, m.watchCancel = context.WithCancel(context.Background())

	return func() tea.Msg {
		if !m.watcher.WaitForChange(ctx) {
			return nil
		}
		return storageFileChangedMsg{}
	}
}

// scanForProjects walks the configured scan roots for git worktrees.
func (m *Model) scanForProjects() tea.Msg {
	paths := m.cfg.ScanPaths
	if len(paths) == 0 {
		paths = scanner.DefaultScanPaths()
	}
	found := scanner.Scan(paths)

	// Drop worktrees that are already registered.
	var fresh []scanner.Candidate
	for _, c := range found {
		if _, exists := m.reg.ProjectByPath(c.Path); !exists {
			fresh = append(fresh, c)
		}
	}
	return scanCompleteMsg{candidates: fresh}
}

// completePath issues a completion request for the typed path prefix.
func (m *Model) completePath(prefix string) tea.Cmd {
	id := m.complete.NextID()
	return func() tea.Msg {
		return completionMsg{resp: m.complete.Complete(completion.Request{ID: id, Prefix: prefix})}
	}
}

// scheduleCompletion debounces completion while the user types. The
// fire posts a request message back into the program, and Update turns
// it into a completePath command.
func (m *Model) scheduleCompletion(prefix string) {
	m.debounce.Trigger(func() {
		if m.send != nil {
			m.send(completionRequestMsg{prefix: prefix})
		}
	})
}

func clearNotifyAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNotifyMsg{}
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case availabilityMsg:
		unavailable := 0
		for id, ok := range msg.available {
			m.reg.SetAvailability(id, ok)
			if !ok {
				unavailable++
			}
		}
		debugLog("availability sweep done, %d unavailable", unavailable)
		m.refreshProjects()
		if unavailable > 0 {
			m.statusBar.Notify("info", fmt.Sprintf("%d project(s) unavailable", unavailable))
			return m, clearNotifyAfter(4 * time.Second)
		}
		return m, nil

	case storageFileChangedMsg:
		before := m.reg.Snapshot()
		m.reg.Load()
		after := m.reg.Snapshot()
		m.refreshProjects()
		m.storageView.SetDiff(storage.DiffSnapshots(before, after))
		m.reloadStorageView()
		m.statusBar.Notify("info", "storage file changed on disk, reloaded")
		return m, tea.Batch(m.waitForStorageChange(), clearNotifyAfter(4*time.Second))

	case completionRequestMsg:
		if m.screen == ScreenAdd && m.addField == AddFieldPath && !m.addRemote {
			return m, m.completePath(msg.prefix)
		}
		return m, nil

	case scanCompleteMsg:
		m.candidates = msg.candidates
		m.scanCursor = 0
		m.screen = ScreenScan
		return m, nil

	case completionMsg:
		if m.complete.Accept(msg.resp) {
			m.suggestions = msg.resp.Suggestions
			m.suggestIdx = 0
		}
		return m, nil

	case clearNotifyMsg:
		m.statusBar.ClearNotification()
		return m, nil
	}

	return m, nil
}

func (m *Model) updateSizes() {
	m.projectList.Width = max(40, m.width-4)
	m.projectList.Height = max(10, m.height-6)
	m.quickPick.Width = max(40, m.width-10)
	m.storageView.Width = max(40, m.width-4)
	m.storageView.Height = max(10, m.height-4)
	m.statusBar.Width = m.width
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenList:
		return m.handleListKeys(msg)
	case ScreenQuickPick:
		return m.handleQuickPickKeys(msg)
	case ScreenTagFilter:
		return m.handleTagFilterKeys(msg)
	case ScreenRemotes:
		return m.handleRemoteKeys(msg)
	case ScreenAdd:
		return m.handleAddKeys(msg)
	case ScreenEdit:
		return m.handleEditKeys(msg)
	case ScreenScan:
		return m.handleScanKeys(msg)
	case ScreenStorage:
		return m.handleStorageKeys(msg)
	case ScreenConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ScreenHelp:
		if msg.String() == "esc" || msg.String() == "q" || msg.String() == "?" {
			m.screen = ScreenList
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.renameGroupPath != "" {
		switch msg.String() {
		case "esc":
			m.renameGroupPath = ""
			m.groupInput.Blur()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.groupInput.Value())
			path := m.renameGroupPath
			m.renameGroupPath = ""
			m.groupInput.Blur()
			if name == "" || strings.Contains(name, "/") {
				return m.notifyErrorText("group name must be a single segment")
			}
			count := m.reg.RenameGroup(path, name)
			m.refreshProjects()
			return m.notifySuccess(fmt.Sprintf("renamed group, %d project(s) moved", count))
		default:
			var cmd tea.Cmd
			m.groupInput, cmd = m.groupInput.Update(msg)
			return m, cmd
		}
	}

	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.refreshProjects()
			return m, nil
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.refreshProjects()
			return m, cmd
		}
	}

	switch {
	case msg.String() == "q", msg.String() == "ctrl+c":
		return m, tea.Quit

	case msg.String() == "?":
		m.screen = ScreenHelp

	case msg.String() == "/":
		m.searching = true
		m.searchInput.Focus()

	case msg.String() == "up", msg.String() == "k":
		m.projectList.MoveUp()
	case msg.String() == "down", msg.String() == "j":
		m.projectList.MoveDown()
	case msg.String() == "pgup", msg.String() == "ctrl+u":
		m.projectList.PageUp()
	case msg.String() == "pgdown", msg.String() == "ctrl+d":
		m.projectList.PageDown()
	case msg.String() == "home":
		m.projectList.GoToFirst()
	case msg.String() == "end", msg.String() == "G":
		m.projectList.GoToLast()

	case msg.String() == " ", msg.String() == "left", msg.String() == "h":
		m.projectList.ToggleCollapse()
	case msg.String() == "right", msg.String() == "l":
		m.projectList.ToggleCollapse()
	case msg.String() == "Z":
		m.projectList.CollapseSubtree()
	case msg.String() == "E":
		m.projectList.ExpandAll()

	case msg.String() == "enter":
		return m.openCurrent(false)
	case msg.String() == "o":
		return m.openCurrent(true)

	case msg.String() == "T":
		if p := m.projectList.CurrentProject(); p != nil {
			if err := m.launch.OpenInTerminal(p); err != nil {
				return m.notifyError(err)
			}
			return m.notifySuccess("terminal opened in " + p.Name)
		}

	case msg.String() == "F":
		if p := m.projectList.CurrentProject(); p != nil {
			if err := m.launch.RevealInFileExplorer(p); err != nil {
				return m.notifyError(err)
			}
		}

	case msg.String() == "y":
		if p := m.projectList.CurrentProject(); p != nil {
			if err := m.launch.CopyPath(p); err != nil {
				return m.notifyError(err)
			}
			return m.notifySuccess("path copied")
		}

	case msg.String() == "f":
		if p := m.projectList.CurrentProject(); p != nil {
			m.reg.ToggleFavorite(p.ID)
			m.refreshProjects()
		}

	case msg.String() == "p", msg.String() == "ctrl+p":
		m.quickPick.Reset()
		m.quickPick.SetProjects(m.reg.Projects())
		m.screen = ScreenQuickPick

	case msg.String() == "t":
		m.screen = ScreenTagFilter

	case msg.String() == "R":
		m.hostList.SetHosts(sshconf.Dedup(m.sshcfg.Hosts()))
		m.screen = ScreenRemotes

	case msg.String() == "a":
		m.resetAddForm()
		m.screen = ScreenAdd

	case msg.String() == "e":
		// On a group header, e renames the group in place.
		if row := m.projectList.Current(); row != nil && row.Kind == components.RowGroup {
			if row.Group.Path != view.FavoritesGroupKey {
				m.renameGroupPath = row.Group.Path
				m.groupInput.SetValue(row.Group.Name)
				m.groupInput.CursorEnd()
				m.groupInput.Focus()
			}
			return m, nil
		}
		if p := m.projectList.CurrentProject(); p != nil {
			m.loadEditForm(p)
			m.screen = ScreenEdit
		}

	case msg.String() == "d", msg.String() == "x":
		if p := m.projectList.CurrentProject(); p != nil {
			m.deleteTarget = p
			m.screen = ScreenConfirmDelete
		}

	case msg.String() == "s":
		return m, m.scanForProjects

	case msg.String() == "r":
		m.reg.Load()
		m.refreshProjects()
		return m.notifySuccess("reloaded from disk")

	case msg.String() == "v":
		m.reloadStorageView()
		m.storageView.SetDiff(nil)
		m.screen = ScreenStorage
	}

	return m, nil
}

func (m *Model) openCurrent(newWindow bool) (tea.Model, tea.Cmd) {
	p := m.projectList.CurrentProject()
	if p == nil {
		// Enter on a group header folds it.
		m.projectList.ToggleCollapse()
		return m, nil
	}
	if !p.IsAvailable && !p.IsRemote() {
		return m.notifyErrorText("project folder is missing: " + p.RootPath)
	}
	if err := m.launch.Open(p, newWindow); err != nil {
		return m.notifyError(err)
	}
	m.statusBar.SetCurrent(p)
	m.projectList.CurrentPath = p.RootPath
	m.refreshProjects()
	return m.notifySuccess("opened " + p.Name)
}

func (m *Model) handleQuickPickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = ScreenList
		return m, nil
	case "up", "ctrl+k":
		m.quickPick.MoveUp()
		return m, nil
	case "down", "ctrl+j", "tab":
		m.quickPick.MoveDown()
		return m, nil
	case "enter":
		p := m.quickPick.Current()
		if p == nil {
			return m, nil
		}
		m.screen = ScreenList
		if err := m.launch.Open(p, m.cfg.OpenBehavior == models.OpenNewWindow); err != nil {
			return m.notifyError(err)
		}
		m.statusBar.SetCurrent(p)
		m.projectList.CurrentPath = p.RootPath
		m.refreshProjects()
		return m.notifySuccess("opened " + p.Name)
	default:
		var cmd tea.Cmd
		*m.quickPick.Input(), cmd = m.quickPick.Input().Update(msg)
		m.quickPick.Refilter()
		return m, cmd
	}
}

func (m *Model) handleTagFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tagEditMode != "" {
		switch msg.String() {
		case "esc":
			m.tagEditMode = ""
			m.tagInput.Blur()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.tagInput.Value())
			if name != "" {
				if m.tagEditMode == "rename" {
					m.reg.RenameTag(m.renameTarget, name)
				} else {
					m.reg.AddTag(name, "")
				}
			}
			m.tagEditMode = ""
			m.tagInput.Blur()
			m.refreshProjects()
			return m, nil
		default:
			var cmd tea.Cmd
			m.tagInput, cmd = m.tagInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "esc", "t":
		m.screen = ScreenList
		m.refreshProjects()
	case "up", "k":
		m.tagFilter.MoveUp()
	case "down", "j":
		m.tagFilter.MoveDown()
	case " ", "enter":
		m.tagFilter.Toggle()
		m.refreshProjects()
	case "c":
		m.tagFilter.Clear()
		m.refreshProjects()
	case "n":
		m.tagEditMode = "new"
		m.tagInput.SetValue("")
		m.tagInput.Focus()
	case "r":
		current := m.cursorTag()
		if current == "" {
			return m, nil
		}
		m.tagEditMode = "rename"
		m.renameTarget = current
		m.tagInput.SetValue(current)
		m.tagInput.CursorEnd()
		m.tagInput.Focus()
	case "d":
		if current := m.cursorTag(); current != "" {
			m.reg.RemoveTag(current)
			m.refreshProjects()
			return m.notifySuccess("removed tag #" + current)
		}
	}
	return m, nil
}

// cursorTag returns the tag name under the tag filter cursor.
func (m *Model) cursorTag() string {
	tags := m.reg.Tags()
	if len(tags) == 0 || m.tagFilter.Cursor >= len(tags) {
		return ""
	}
	return tags[m.tagFilter.Cursor].Name
}

func (m *Model) handleRemoteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "R":
		m.screen = ScreenList
	case "up", "k":
		m.hostList.MoveUp()
	case "down", "j":
		m.hostList.MoveDown()
	case "enter":
		host := m.hostList.Current()
		if host == nil {
			return m, nil
		}
		if err := m.launch.ConnectRemoteHost(host.Primary(), m.cfg.OpenBehavior == models.OpenNewWindow); err != nil {
			return m.notifyError(err)
		}
		m.screen = ScreenList
		return m.notifySuccess("connecting to " + host.Primary())
	}
	return m, nil
}

func (m *Model) resetAddForm() {
	for i := range m.addInputs {
		m.addInputs[i].SetValue("")
		m.addInputs[i].Blur()
	}
	m.addField = AddFieldPath
	m.addRemote = false
	m.suggestions = nil
	m.addInputs[AddFieldPath].Focus()
}

func (m *Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.debounce.Stop()
		m.screen = ScreenList
		return m, nil

	case "ctrl+r":
		// Toggle between local folder and remote host entry.
		m.addRemote = !m.addRemote
		if m.addRemote {
			m.setAddFocus(AddFieldHost)
		} else {
			m.setAddFocus(AddFieldPath)
		}
		return m, nil

	case "tab":
		if len(m.suggestions) > 0 && m.addField == AddFieldPath {
			// Cycle through path suggestions.
			m.addInputs[AddFieldPath].SetValue(m.suggestions[m.suggestIdx])
			m.addInputs[AddFieldPath].CursorEnd()
			m.suggestIdx = (m.suggestIdx + 1) % len(m.suggestions)
			return m, nil
		}
		m.advanceAddField()
		return m, nil

	case "shift+tab":
		m.retreatAddField()
		return m, nil

	case "enter":
		return m.submitAddForm()

	default:
		var cmd tea.Cmd
		m.addInputs[m.addField], cmd = m.addInputs[m.addField].Update(msg)
		if m.addField == AddFieldPath && !m.addRemote {
			m.scheduleCompletion(m.addInputs[AddFieldPath].Value())
		}
		return m, cmd
	}
}

func (m *Model) setAddFocus(field AddField) {
	m.addInputs[m.addField].Blur()
	m.addField = field
	m.addInputs[m.addField].Focus()
}

func (m *Model) advanceAddField() {
	if m.addRemote {
		switch m.addField {
		case AddFieldHost:
			m.setAddFocus(AddFieldRemotePath)
		case AddFieldRemotePath:
			m.setAddFocus(AddFieldName)
		default:
			m.setAddFocus(AddFieldHost)
		}
		return
	}
	if m.addField == AddFieldPath {
		m.setAddFocus(AddFieldName)
	} else {
		m.setAddFocus(AddFieldPath)
	}
}

func (m *Model) retreatAddField() {
	if m.addRemote {
		switch m.addField {
		case AddFieldName:
			m.setAddFocus(AddFieldRemotePath)
		case AddFieldRemotePath:
			m.setAddFocus(AddFieldHost)
		default:
			m.setAddFocus(AddFieldName)
		}
		return
	}
	if m.addField == AddFieldName {
		m.setAddFocus(AddFieldPath)
	} else {
		m.setAddFocus(AddFieldName)
	}
}

func (m *Model) submitAddForm() (tea.Model, tea.Cmd) {
	m.debounce.Stop()
	name := strings.TrimSpace(m.addInputs[AddFieldName].Value())

	if m.addRemote {
		host := strings.TrimSpace(m.addInputs[AddFieldHost].Value())
		remotePath := strings.TrimSpace(m.addInputs[AddFieldRemotePath].Value())
		if host == "" || remotePath == "" {
			return m.notifyErrorText("host and remote path are required")
		}
		p := m.reg.AddProject(remotePath, name)
		m.reg.UpdateProject(p.ID, registry.ProjectUpdate{RemoteHost: registry.StringPtr(host)})
		m.reg.SetRemotePath(host, remotePath)
		m.screen = ScreenList
		m.refreshProjects()
		return m.notifySuccess("added " + p.Name)
	}

	path := strings.TrimSpace(m.addInputs[AddFieldPath].Value())
	if path == "" {
		return m.notifyErrorText("path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return m.notifyErrorText("folder does not exist: " + path)
	}
	p := m.reg.AddProject(path, name)
	m.screen = ScreenList
	m.refreshProjects()
	return m.notifySuccess("added " + p.Name)
}

func (m *Model) loadEditForm(p *models.Project) {
	m.editID = p.ID
	values := [editFieldCount]string{
		p.Name,
		p.Group,
		strings.Join(p.Tags, ", "),
		p.Emoji,
		p.CustomIcon,
		p.OpenCommand,
		p.TerminalProfile,
	}
	for i := range m.editInputs {
		m.editInputs[i].SetValue(values[i])
		m.editInputs[i].Blur()
	}
	m.editField = EditFieldName
	m.editInputs[EditFieldName].Focus()
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = ScreenList
		return m, nil

	case "tab", "down":
		m.editInputs[m.editField].Blur()
		m.editField = (m.editField + 1) % editFieldCount
		m.editInputs[m.editField].Focus()
		return m, nil

	case "shift+tab", "up":
		m.editInputs[m.editField].Blur()
		m.editField = (m.editField + editFieldCount - 1) % editFieldCount
		m.editInputs[m.editField].Focus()
		return m, nil

	case "enter":
		return m.submitEditForm()

	default:
		var cmd tea.Cmd
		m.editInputs[m.editField], cmd = m.editInputs[m.editField].Update(msg)

		// Emoji and custom icon are mutually exclusive; typing into
		// one clears the other.
		if m.editField == EditFieldEmoji && m.editInputs[EditFieldEmoji].Value() != "" {
			m.editInputs[EditFieldIcon].SetValue("")
		}
		if m.editField == EditFieldIcon && m.editInputs[EditFieldIcon].Value() != "" {
			m.editInputs[EditFieldEmoji].SetValue("")
		}
		return m, cmd
	}
}

func (m *Model) submitEditForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.editInputs[EditFieldName].Value())
	if name == "" {
		return m.notifyErrorText("name cannot be empty")
	}

	update := registry.ProjectUpdate{
		Name:            registry.StringPtr(name),
		Group:           registry.StringPtr(strings.TrimSpace(m.editInputs[EditFieldGroup].Value())),
		Emoji:           registry.StringPtr(strings.TrimSpace(m.editInputs[EditFieldEmoji].Value())),
		CustomIcon:      registry.StringPtr(strings.TrimSpace(m.editInputs[EditFieldIcon].Value())),
		OpenCommand:     registry.StringPtr(strings.TrimSpace(m.editInputs[EditFieldOpenCommand].Value())),
		TerminalProfile: registry.StringPtr(strings.TrimSpace(m.editInputs[EditFieldTerminalProfile].Value())),
	}
	m.reg.UpdateProject(m.editID, update)

	var tags []string
	for _, t := range strings.Split(m.editInputs[EditFieldTags].Value(), ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
			m.reg.AddTag(trimmed, "")
		}
	}
	m.reg.SetProjectTags(m.editID, tags)

	m.screen = ScreenList
	m.refreshProjects()
	return m.notifySuccess("saved " + name)
}

func (m *Model) handleScanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = ScreenList
	case "up", "k":
		if m.scanCursor > 0 {
			m.scanCursor--
		}
	case "down", "j":
		if m.scanCursor < len(m.candidates)-1 {
			m.scanCursor++
		}
	case "enter", " ":
		if len(m.candidates) == 0 {
			return m, nil
		}
		c := m.candidates[m.scanCursor]
		m.reg.AddProject(c.Path, c.Name)
		m.candidates = append(m.candidates[:m.scanCursor], m.candidates[m.scanCursor+1:]...)
		if m.scanCursor >= len(m.candidates) {
			m.scanCursor = max(0, len(m.candidates)-1)
		}
		m.refreshProjects()
		return m.notifySuccess("added " + c.Name)
	case "A":
		for _, c := range m.candidates {
			m.reg.AddProject(c.Path, c.Name)
		}
		count := len(m.candidates)
		m.candidates = nil
		m.screen = ScreenList
		m.refreshProjects()
		return m.notifySuccess(fmt.Sprintf("added %d projects", count))
	}
	return m, nil
}

func (m *Model) handleStorageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v":
		m.screen = ScreenList
	case "e":
		if err := m.launch.EditStorageFile(); err != nil {
			return m.notifyError(err)
		}
		return m.notifySuccess("storage file opened in editor")
	case "up", "k":
		m.storageView.ScrollUp()
	case "down", "j":
		m.storageView.ScrollDown()
	case "pgup", "ctrl+u":
		m.storageView.PageUp()
	case "pgdown", "ctrl+d":
		m.storageView.PageDown()
	}
	return m, nil
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.deleteTarget != nil {
			name := m.deleteTarget.Name
			m.reg.RemoveProject(m.deleteTarget.ID)
			m.deleteTarget = nil
			m.screen = ScreenList
			m.refreshProjects()
			return m.notifySuccess("removed " + name)
		}
		m.screen = ScreenList
	case "n", "esc":
		m.deleteTarget = nil
		m.screen = ScreenList
	}
	return m, nil
}

func (m *Model) reloadStorageView() {
	raw, err := os.ReadFile(m.reg.StorageFilePath())
	if err != nil {
		raw = []byte("{}")
	}
	m.storageView.SetContent(raw)
}

func (m *Model) notifySuccess(text string) (tea.Model, tea.Cmd) {
	m.statusBar.Notify("success", text)
	return m, clearNotifyAfter(3 * time.Second)
}

func (m *Model) notifyError(err error) (tea.Model, tea.Cmd) {
	debugLog("error: %v", err)
	m.statusBar.Notify("error", err.Error())
	return m, clearNotifyAfter(5 * time.Second)
}

func (m *Model) notifyErrorText(text string) (tea.Model, tea.Cmd) {
	m.statusBar.Notify("error", text)
	return m, clearNotifyAfter(5 * time.Second)
}

// View implements tea.Model
func (m *Model) View() string {
	var body string
	switch m.screen {
	case ScreenQuickPick:
		body = m.quickPick.View()
	case ScreenTagFilter:
		body = m.tagFilter.View()
		if m.tagEditMode != "" {
			label := "New tag:"
			if m.tagEditMode == "rename" {
				label = "Rename #" + m.renameTarget + ":"
			}
			body += "\n" + ui.HelpKeyStyle.Render(label) + " " + m.tagInput.View()
		}
	case ScreenRemotes:
		body = m.hostList.View()
	case ScreenAdd:
		body = m.renderAddForm()
	case ScreenEdit:
		body = m.renderEditForm()
	case ScreenScan:
		body = m.renderScan()
	case ScreenStorage:
		body = m.storageView.View()
	case ScreenConfirmDelete:
		body = m.renderConfirmDelete()
	case ScreenHelp:
		body = m.renderHelp()
	default:
		body = m.renderList()
	}

	sections := []string{m.renderHeader(), body}
	if m.cfg.ShowStatusBar {
		sections = append(sections, m.statusBar.View())
	}
	sections = append(sections, m.renderHelpBar())
	return ui.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("projman")
	ver := ui.VersionStyle.Render("v" + version)
	return ui.HeaderStyle.Render(title + " " + ver)
}

func (m *Model) renderList() string {
	body := m.projectList.View()
	if m.renameGroupPath != "" {
		body += "\n" + ui.HelpKeyStyle.Render("Rename group "+m.renameGroupPath+":") + " " + m.groupInput.View()
	}
	if m.searching || m.searchInput.Value() != "" {
		return m.searchInput.View() + "\n" + body
	}
	return body
}

func (m *Model) renderAddForm() string {
	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render("Add Project"))
	b.WriteString("\n\n")

	if m.addRemote {
		b.WriteString(m.renderFormField("SSH Host", m.addInputs[AddFieldHost].View(), m.addField == AddFieldHost))
		b.WriteString(m.renderFormField("Remote Path", m.addInputs[AddFieldRemotePath].View(), m.addField == AddFieldRemotePath))
	} else {
		b.WriteString(m.renderFormField("Path", m.addInputs[AddFieldPath].View(), m.addField == AddFieldPath))
		for _, s := range m.suggestions {
			b.WriteString(ui.MutedStyle.Render("    " + s))
			b.WriteString("\n")
		}
	}
	b.WriteString(m.renderFormField("Name", m.addInputs[AddFieldName].View(), m.addField == AddFieldName))

	b.WriteString("\n")
	mode := "local folder"
	if m.addRemote {
		mode = "remote host"
	}
	b.WriteString(ui.HelpBarStyle.Render(
		ui.RenderHelpItem("tab", "next/complete") + "  " +
			ui.RenderHelpItem("ctrl+r", "mode: "+mode) + "  " +
			ui.RenderHelpItem("enter", "add") + "  " +
			ui.RenderHelpItem("esc", "cancel")))

	return ui.DialogStyle.Render(b.String())
}

func (m *Model) renderEditForm() string {
	labels := [editFieldCount]string{
		"Name", "Group", "Tags", "Emoji", "Icon", "Open Command", "Terminal Profile",
	}

	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render("Edit Project"))
	b.WriteString("\n\n")
	for i := 0; i < editFieldCount; i++ {
		b.WriteString(m.renderFormField(labels[i], m.editInputs[i].View(), EditField(i) == m.editField))
	}
	b.WriteString("\n")
	b.WriteString(ui.HelpBarStyle.Render(
		ui.RenderHelpItem("tab", "next") + "  " +
			ui.RenderHelpItem("enter", "save") + "  " +
			ui.RenderHelpItem("esc", "cancel")))

	return ui.DialogStyle.Render(b.String())
}

func (m *Model) renderFormField(label, input string, active bool) string {
	style := ui.MutedStyle
	if active {
		style = ui.HelpKeyStyle
	}
	return fmt.Sprintf("%s\n  %s\n", style.Render(label), input)
}

func (m *Model) renderScan() string {
	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render(fmt.Sprintf("Discovered Worktrees (%d)", len(m.candidates))))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	if len(m.candidates) == 0 {
		b.WriteString(ui.MutedStyle.Render("Nothing new found"))
	}
	for i, c := range m.candidates {
		branch := ""
		if c.Branch != "" {
			branch = ui.MutedStyle.Render(" [" + c.Branch + "]")
		}
		line := fmt.Sprintf("%s%s  %s", c.Name, branch, ui.PathStyle.Render(c.Path))
		if i == m.scanCursor {
			b.WriteString(ui.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(ui.ItemStyle.Render(line))
		}
		if i < len(m.candidates)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(ui.HelpBarStyle.Render(
		ui.RenderHelpItem("enter", "add") + "  " +
			ui.RenderHelpItem("A", "add all") + "  " +
			ui.RenderHelpItem("esc", "back")))
	return ui.DialogStyle.Render(b.String())
}

func (m *Model) renderConfirmDelete() string {
	if m.deleteTarget == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render("Remove Project"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Remove %s from the registry?\n", ui.TitleStyle.Render(m.deleteTarget.Name)))
	b.WriteString(ui.MutedStyle.Render("The folder itself is not touched."))
	b.WriteString("\n\n")
	b.WriteString(ui.RenderButton("Yes (y)", true))
	b.WriteString("  ")
	b.WriteString(ui.RenderButton("No (n)", false))
	return ui.DialogStyle.Render(b.String())
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(ui.PanelTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	for _, group := range groups {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				ui.HelpKeyStyle.Render(binding.Help().Key),
				ui.HelpDescStyle.Render(binding.Help().Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(ui.MutedStyle.Render("press esc to close"))
	return ui.DialogStyle.Render(b.String())
}

func (m *Model) renderHelpBar() string {
	items := []string{
		ui.RenderHelpItem("enter", "open"),
		ui.RenderHelpItem("p", "switch"),
		ui.RenderHelpItem("a", "add"),
		ui.RenderHelpItem("t", "tags"),
		ui.RenderHelpItem("?", "help"),
		ui.RenderHelpItem("q", "quit"),
	}
	return ui.HelpBarStyle.Render(strings.Join(items, "  "))
}

func main() {
	var (
		showVersion bool
		storagePath string
	)
	flag.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&storagePath, "storage", "", "override the storage file path")
	flag.Parse()

	if showVersion {
		fmt.Printf("projman %s (built %s)\n", version, buildTime)
		return
	}

	scanner.DebugMode = debugMode
	registry.DebugMode = debugMode

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.FirstRun {
		if err := cfg.Save(); err != nil {
			debugLog("could not write initial config: %v", err)
		}
	}

	if storagePath == "" {
		storagePath = storage.DefaultPath()
	}
	store := storage.New(storagePath)
	reg := registry.New(store)
	reg.Load()

	ed, err := editor.Detect(cfg.Editor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	debugLog("using editor %s", ed.Name())

	trk := tracker.New(filepath.Dir(store.FilePath()))
	defer func() {
		if err := trk.Unregister(); err != nil {
			debugLog("tracker unregister: %v", err)
		}
	}()

	launch := launcher.New(reg, trk, ed, cfg.Terminal)
	sshcfg := sshconf.NewParser(sshconf.DefaultPath())
	watcher := storage.NewWatcher(store.FilePath())

	model := New(cfg, reg, launch, trk, sshcfg, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen())
	model.send = program.Send
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
