// Package registry owns the in-memory project, tag and remote-alias
// collections. All reads and writes go through it; every mutation
// persists the full snapshot first and notifies subscribers after.
package registry

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"projman/internal/models"
	"projman/internal/pathutil"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[REGISTRY] "+format+"\n", args...)
	}
}

// Persister is the storage collaborator the registry round-trips through.
type Persister interface {
	Load() models.StorageData
	Save(models.StorageData) error
	FilePath() string
}

// Registry is the single source of truth for tracked projects.
// It is not safe for concurrent use; the surrounding program is
// single-threaded and event-driven.
type Registry struct {
	store Persister

	projects []*models.Project
	byID     map[string]*models.Project
	tags     []models.Tag
	remote   map[string]string

	projectSubs subscriberList
	tagSubs     subscriberList
	remoteSubs  subscriberList
}

// New creates a registry backed by the given persister. Call Load before use.
func New(store Persister) *Registry {
	return &Registry{
		store:  store,
		byID:   make(map[string]*models.Project),
		remote: make(map[string]string),
	}
}

// Load discards all in-memory state and rebuilds it from the persister.
// Project and tag notifications fire unconditionally, even when nothing
// changed, so consumers re-derive after an external edit of the file.
func (r *Registry) Load() {
	data := r.store.Load()

	r.projects = r.projects[:0]
	r.byID = make(map[string]*models.Project, len(data.Projects))
	for _, p := range data.Projects {
		if p.Tags == nil {
			p.Tags = []string{}
		}
		r.projects = append(r.projects, p)
		r.byID[p.ID] = p
	}
	r.tags = data.Tags
	r.remote = data.Remote

	debugLog("loaded %d projects, %d tags", len(r.projects), len(r.tags))
	r.projectSubs.fire()
	r.tagSubs.fire()
}

// Snapshot returns the full persisted shape of the current state.
func (r *Registry) Snapshot() models.StorageData {
	projects := make([]*models.Project, len(r.projects))
	copy(projects, r.projects)
	tags := make([]models.Tag, len(r.tags))
	copy(tags, r.tags)
	remote := make(map[string]string, len(r.remote))
	for k, v := range r.remote {
		remote[k] = v
	}
	return models.StorageData{Version: 1, Projects: projects, Tags: tags, Remote: remote}
}

// StorageFilePath returns the on-disk location of the persisted store.
func (r *Registry) StorageFilePath() string {
	return r.store.FilePath()
}

// persist writes the full snapshot. A failed write is logged and the
// in-memory state stands as the truth until the next successful write.
func (r *Registry) persist() {
	if err := r.store.Save(r.Snapshot()); err != nil {
		debugLog("persist failed: %v", err)
	}
}

// ── Projects ──

// Projects returns the tracked projects. The slice is a copy; the
// elements are live records for immediate, synchronous use only.
func (r *Registry) Projects() []*models.Project {
	out := make([]*models.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// Project looks up a project by id.
func (r *Registry) Project(id string) (*models.Project, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// ProjectByPath looks up a project by slash-normalized root path.
func (r *Registry) ProjectByPath(rootPath string) (*models.Project, bool) {
	normalized := pathutil.Normalize(rootPath)
	for _, p := range r.projects {
		if pathutil.Normalize(p.RootPath) == normalized {
			return p, true
		}
	}
	return nil, false
}

// AddProject tracks a new folder. Adding a path that is already tracked
// returns the existing project unchanged and still fires a project
// notification. An empty name derives a prettified folder name.
func (r *Registry) AddProject(rootPath, name string) *models.Project {
	if existing, ok := r.ProjectByPath(rootPath); ok {
		r.projectSubs.fire()
		return existing
	}

	if name == "" {
		name = pathutil.FolderName(rootPath)
	}
	p := models.NewProject(name, rootPath)
	r.projects = append(r.projects, p)
	r.byID[p.ID] = p

	r.persist()
	r.projectSubs.fire()
	debugLog("added project %s (%s)", p.Name, rootPath)
	return p
}

// RemoveProject deletes a project by id and reports whether it existed.
func (r *Registry) RemoveProject(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, p := range r.projects {
		if p.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			break
		}
	}
	r.persist()
	r.projectSubs.fire()
	return true
}

// UpdateProject applies a field-explicit patch. Unset fields are left
// untouched; set fields overwrite last-write-wins. Returns the updated
// project, or false for an unknown id.
func (r *Registry) UpdateProject(id string, update ProjectUpdate) (*models.Project, bool) {
	p, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	update.apply(p)
	r.persist()
	r.projectSubs.fire()
	return p, true
}

// MarkOpened records an open of the project at the given path. Lookup is
// by path because callers often have only a filesystem path at hand.
func (r *Registry) MarkOpened(rootPath string) {
	p, ok := r.ProjectByPath(rootPath)
	if !ok {
		return
	}
	p.LastOpenedAt = time.Now().UnixMilli()
	r.persist()
	r.projectSubs.fire()
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (r *Registry) ToggleFavorite(id string) (bool, bool) {
	p, ok := r.byID[id]
	if !ok {
		return false, false
	}
	p.IsFavorite = !p.IsFavorite
	r.persist()
	r.projectSubs.fire()
	return p.IsFavorite, true
}

// SetProjectTags replaces the project's full tag list.
func (r *Registry) SetProjectTags(id string, tags []string) {
	p, ok := r.byID[id]
	if !ok {
		return
	}
	if tags == nil {
		tags = []string{}
	}
	p.Tags = append([]string{}, tags...)
	r.persist()
	r.projectSubs.fire()
}

// SetAvailability caches the result of an external folder-existence
// check. It only writes when the value actually changes; the check runs
// over every project at startup and must not cause a write storm.
func (r *Registry) SetAvailability(id string, available bool) {
	p, ok := r.byID[id]
	if !ok || p.IsAvailable == available {
		return
	}
	p.IsAvailable = available
	r.persist()
	r.projectSubs.fire()
}

// ── Tags ──

// Tags returns a defensive copy of the tag collection, sorted by name.
func (r *Registry) Tags() []models.Tag {
	out := make([]models.Tag, len(r.tags))
	copy(out, r.tags)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// AddTag creates a tag, or returns the existing one for an exact name match.
func (r *Registry) AddTag(name, color string) models.Tag {
	for _, t := range r.tags {
		if t.Name == name {
			return t
		}
	}
	tag := models.Tag{Name: name, Color: color}
	r.tags = append(r.tags, tag)
	r.persist()
	r.tagSubs.fire()
	return tag
}

// RemoveTag deletes a tag and strips it from every project's tag list in
// the same persisted snapshot.
func (r *Registry) RemoveTag(name string) {
	kept := r.tags[:0]
	for _, t := range r.tags {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	r.tags = kept

	for _, p := range r.projects {
		filtered := p.Tags[:0]
		for _, t := range p.Tags {
			if t != name {
				filtered = append(filtered, t)
			}
		}
		p.Tags = filtered
	}

	r.persist()
	r.tagSubs.fire()
	r.projectSubs.fire()
}

// RenameTag renames a tag and rewrites every project's list entry in
// place, preserving order. No-op when oldName is unknown.
func (r *Registry) RenameTag(oldName, newName string) {
	found := false
	for i := range r.tags {
		if r.tags[i].Name == oldName {
			r.tags[i].Name = newName
			found = true
			break
		}
	}
	if !found {
		return
	}

	for _, p := range r.projects {
		for i, t := range p.Tags {
			if t == oldName {
				p.Tags[i] = newName
			}
		}
	}

	r.persist()
	r.tagSubs.fire()
	r.projectSubs.fire()
}

// UpdateTagColor changes a tag's color. No-op when the name is unknown.
func (r *Registry) UpdateTagColor(name, color string) {
	for i := range r.tags {
		if r.tags[i].Name == name {
			r.tags[i].Color = color
			r.persist()
			r.tagSubs.fire()
			return
		}
	}
}

// ── Groups ──

// RenameGroup renames the last segment of a group path and cascades the
// prefix into every descendant group. The affected set is computed from
// a single read before any write begins. Returns the number of projects
// updated.
func (r *Registry) RenameGroup(oldPath, newName string) int {
	segments := strings.Split(oldPath, "/")
	segments[len(segments)-1] = newName
	newPath := strings.Join(segments, "/")

	type change struct {
		id    string
		group string
	}
	var changes []change
	for _, p := range r.projects {
		switch {
		case p.Group == "":
		case p.Group == oldPath:
			changes = append(changes, change{p.ID, newPath})
		case strings.HasPrefix(p.Group, oldPath+"/"):
			changes = append(changes, change{p.ID, newPath + p.Group[len(oldPath):]})
		}
	}

	for _, c := range changes {
		group := c.group
		r.UpdateProject(c.id, ProjectUpdate{Group: &group})
	}
	return len(changes)
}

// ── Remote aliases ──

// RemotePaths returns a defensive copy of the alias -> default-path map.
func (r *Registry) RemotePaths() map[string]string {
	out := make(map[string]string, len(r.remote))
	for k, v := range r.remote {
		out[k] = v
	}
	return out
}

// RemotePath returns the default remote path for an alias.
func (r *Registry) RemotePath(alias string) (string, bool) {
	p, ok := r.remote[alias]
	return p, ok
}

// SetRemotePath sets the default remote path for an alias. An empty path
// deletes the alias.
func (r *Registry) SetRemotePath(alias, path string) {
	if path == "" {
		delete(r.remote, alias)
	} else {
		r.remote[alias] = path
	}
	r.persist()
	r.remoteSubs.fire()
}

// ── Change notification ──

// OnProjectsChanged subscribes to project-set changes. The returned
// function unsubscribes.
func (r *Registry) OnProjectsChanged(fn func()) func() {
	return r.projectSubs.add(fn)
}

// OnTagsChanged subscribes to tag-set changes.
func (r *Registry) OnTagsChanged(fn func()) func() {
	return r.tagSubs.add(fn)
}

// OnRemoteChanged subscribes to remote-alias changes.
func (r *Registry) OnRemoteChanged(fn func()) func() {
	return r.remoteSubs.add(fn)
}

type subscriberList struct {
	nextID int
	subs   map[int]func()
}

func (l *subscriberList) add(fn func()) func() {
	if l.subs == nil {
		l.subs = make(map[int]func())
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() { delete(l.subs, id) }
}

func (l *subscriberList) fire() {
	for _, fn := range l.subs {
		fn()
	}
}
