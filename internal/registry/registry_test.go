package registry

import (
	"errors"
	"reflect"
	"testing"

	"projman/internal/models"
	"projman/internal/storage"
)

// fakeStore counts writes and can simulate failures.
type fakeStore struct {
	data      models.StorageData
	saveCount int
	failSaves bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: storage.Empty()}
}

func (s *fakeStore) Load() models.StorageData { return s.data }

func (s *fakeStore) Save(data models.StorageData) error {
	s.saveCount++
	if s.failSaves {
		return errors.New("disk full")
	}
	s.data = data
	return nil
}

func (s *fakeStore) FilePath() string { return "/tmp/fake/projects.json" }

func newTestRegistry() (*Registry, *fakeStore) {
	store := newFakeStore()
	reg := New(store)
	reg.Load()
	return reg, store
}

func TestAddProject_Idempotent(t *testing.T) {
	reg, _ := newTestRegistry()

	first := reg.AddProject("/home/u/x", "")
	second := reg.AddProject("/home/u/x", "")

	if len(reg.Projects()) != 1 {
		t.Fatalf("Expected 1 project, got %d", len(reg.Projects()))
	}
	if first.ID != second.ID {
		t.Errorf("Duplicate add should return the existing project, got %s and %s", first.ID, second.ID)
	}
}

func TestAddProject_PathNormalization(t *testing.T) {
	reg, _ := newTestRegistry()

	added := reg.AddProject("/home/u/x", "")
	dup := reg.AddProject("\\home\\u\\x", "")
	if dup.ID != added.ID {
		t.Error("Backslash path should dedup against the slash form")
	}

	found, ok := reg.ProjectByPath("\\home\\u\\x")
	if !ok || found.ID != added.ID {
		t.Error("Lookup by backslash path should resolve the same project")
	}
}

func TestAddProject_DefaultName(t *testing.T) {
	reg, _ := newTestRegistry()

	p := reg.AddProject("/home/dev/my-cool-project", "")
	if p.Name != "My Cool Project" {
		t.Errorf("Default name = %q, want %q", p.Name, "My Cool Project")
	}

	named := reg.AddProject("/home/dev/other", "Custom")
	if named.Name != "Custom" {
		t.Errorf("Explicit name = %q, want %q", named.Name, "Custom")
	}
}

func TestAddProject_Defaults(t *testing.T) {
	reg, _ := newTestRegistry()

	p := reg.AddProject("/home/dev/app", "")
	if p.IsFavorite {
		t.Error("New project should not be a favorite")
	}
	if !p.IsAvailable {
		t.Error("New project should start available")
	}
	if p.LastOpenedAt != 0 {
		t.Error("New project should have no last-opened time")
	}
	if p.AddedAt == 0 {
		t.Error("New project should have a creation timestamp")
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Errorf("New project tags = %v, want empty", p.Tags)
	}
}

func TestRemoveProject(t *testing.T) {
	reg, store := newTestRegistry()
	p := reg.AddProject("/a", "")
	writes := store.saveCount

	if !reg.RemoveProject(p.ID) {
		t.Error("Removing an existing project should report true")
	}
	if len(reg.Projects()) != 0 {
		t.Error("Project should be gone")
	}
	if store.saveCount != writes+1 {
		t.Error("Removal should persist once")
	}

	if reg.RemoveProject("nope") {
		t.Error("Removing an unknown id should report false")
	}
	if store.saveCount != writes+1 {
		t.Error("A miss should not persist")
	}
}

func TestUpdateProject_PartialPatch(t *testing.T) {
	reg, _ := newTestRegistry()
	p := reg.AddProject("/a", "Original")
	reg.SetProjectTags(p.ID, []string{"go"})

	updated, ok := reg.UpdateProject(p.ID, ProjectUpdate{Name: StringPtr("Renamed")})
	if !ok {
		t.Fatal("Update of a known id should succeed")
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q, want %q", updated.Name, "Renamed")
	}
	if updated.RootPath != "/a" || !reflect.DeepEqual(updated.Tags, []string{"go"}) {
		t.Error("Unset fields must be left untouched")
	}

	reg.UpdateProject(p.ID, ProjectUpdate{Group: StringPtr("work/frontend")})
	reg.UpdateProject(p.ID, ProjectUpdate{Group: StringPtr("")})
	if got, _ := reg.Project(p.ID); got.Group != "" {
		t.Error("Empty group pointer should clear the group")
	}

	if _, ok := reg.UpdateProject("nope", ProjectUpdate{Name: StringPtr("x")}); ok {
		t.Error("Update of an unknown id should report false")
	}
}

func TestMarkOpened(t *testing.T) {
	reg, _ := newTestRegistry()
	p := reg.AddProject("/home/u/x", "")

	reg.MarkOpened("\\home\\u\\x")
	if got, _ := reg.Project(p.ID); got.LastOpenedAt == 0 {
		t.Error("MarkOpened by normalized path should set the timestamp")
	}

	// Unknown paths are a silent no-op.
	reg.MarkOpened("/not/tracked")
}

func TestToggleFavorite(t *testing.T) {
	reg, _ := newTestRegistry()
	p := reg.AddProject("/a", "")

	val, ok := reg.ToggleFavorite(p.ID)
	if !ok || !val {
		t.Errorf("First toggle = (%v, %v), want (true, true)", val, ok)
	}
	val, _ = reg.ToggleFavorite(p.ID)
	if val {
		t.Error("Second toggle should flip back to false")
	}

	if _, ok := reg.ToggleFavorite("nope"); ok {
		t.Error("Unknown id should report false")
	}
}

func TestRemoveTag_Cascade(t *testing.T) {
	reg, _ := newTestRegistry()
	reg.AddTag("go", "")
	reg.AddTag("web", "")
	a := reg.AddProject("/a", "")
	b := reg.AddProject("/b", "")
	reg.SetProjectTags(a.ID, []string{"go", "web"})
	reg.SetProjectTags(b.ID, []string{"go"})

	reg.RemoveTag("go")

	if len(reg.Tags()) != 1 || reg.Tags()[0].Name != "web" {
		t.Errorf("Tag collection after delete: %+v", reg.Tags())
	}
	for _, p := range reg.Projects() {
		if p.HasTag("go") {
			t.Errorf("Project %s still references deleted tag", p.RootPath)
		}
	}
	if got, _ := reg.Project(a.ID); !reflect.DeepEqual(got.Tags, []string{"web"}) {
		t.Errorf("Other tags must survive, got %v", got.Tags)
	}
}

func TestRenameTag_Cascade(t *testing.T) {
	reg, _ := newTestRegistry()
	reg.AddTag("old", "")
	reg.AddTag("keep", "")
	p := reg.AddProject("/a", "")
	reg.SetProjectTags(p.ID, []string{"keep", "old", "zz"})

	reg.RenameTag("old", "new")

	got, _ := reg.Project(p.ID)
	if !reflect.DeepEqual(got.Tags, []string{"keep", "new", "zz"}) {
		t.Errorf("Rename must rewrite in place preserving order, got %v", got.Tags)
	}

	names := tagNames(reg.Tags())
	if !reflect.DeepEqual(names, []string{"keep", "new"}) {
		t.Errorf("Tag collection = %v", names)
	}

	// Unknown old name is a no-op.
	reg.RenameTag("missing", "whatever")
	if len(reg.Tags()) != 2 {
		t.Error("Renaming an unknown tag must not create one")
	}
}

func TestAddTag_Idempotent(t *testing.T) {
	reg, _ := newTestRegistry()

	first := reg.AddTag("go", "#00add8")
	second := reg.AddTag("go", "#ffffff")

	if len(reg.Tags()) != 1 {
		t.Fatalf("Expected 1 tag, got %d", len(reg.Tags()))
	}
	if second.Color != first.Color {
		t.Error("Duplicate add should return the existing tag unchanged")
	}

	// Case-sensitive exact match: "Go" is a different tag.
	reg.AddTag("Go", "")
	if len(reg.Tags()) != 2 {
		t.Error("Tag names are matched case-sensitively")
	}
}

func TestTags_SortedEnumeration(t *testing.T) {
	reg, _ := newTestRegistry()
	reg.AddTag("zeta", "")
	reg.AddTag("alpha", "")
	reg.AddTag("Mid", "")

	names := tagNames(reg.Tags())
	if !reflect.DeepEqual(names, []string{"alpha", "Mid", "zeta"}) {
		t.Errorf("Tags should enumerate alphabetically, got %v", names)
	}
}

func TestUpdateTagColor(t *testing.T) {
	reg, _ := newTestRegistry()
	reg.AddTag("go", "")

	reg.UpdateTagColor("go", "#00add8")
	if reg.Tags()[0].Color != "#00add8" {
		t.Error("Color update did not stick")
	}

	reg.UpdateTagColor("missing", "#fff") // no-op
}

func TestSetAvailability_WriteSuppression(t *testing.T) {
	reg, store := newTestRegistry()
	p := reg.AddProject("/a", "")
	writes := store.saveCount

	reg.SetAvailability(p.ID, true) // already true
	if store.saveCount != writes {
		t.Error("Setting the same availability must not persist")
	}

	reg.SetAvailability(p.ID, false)
	if store.saveCount != writes+1 {
		t.Error("A real availability change must persist")
	}

	reg.SetAvailability("nope", false) // unknown id, no-op
	if store.saveCount != writes+1 {
		t.Error("Unknown id must not persist")
	}
}

func TestRemoteAliases(t *testing.T) {
	reg, _ := newTestRegistry()

	reg.SetRemotePath("dev", "/srv/app")
	if p, ok := reg.RemotePath("dev"); !ok || p != "/srv/app" {
		t.Errorf("RemotePath = (%q, %v)", p, ok)
	}

	// The map accessor hands out a copy.
	all := reg.RemotePaths()
	all["dev"] = "/mutated"
	if p, _ := reg.RemotePath("dev"); p != "/srv/app" {
		t.Error("RemotePaths must return a defensive copy")
	}

	// Empty path deletes.
	reg.SetRemotePath("dev", "")
	if _, ok := reg.RemotePath("dev"); ok {
		t.Error("Empty path should delete the alias")
	}
}

func TestRenameGroup_Cascade(t *testing.T) {
	reg, _ := newTestRegistry()
	exact := reg.AddProject("/a", "")
	nested := reg.AddProject("/b", "")
	deeper := reg.AddProject("/c", "")
	sibling := reg.AddProject("/d", "")
	prefixLookalike := reg.AddProject("/e", "")

	reg.UpdateProject(exact.ID, ProjectUpdate{Group: StringPtr("work/frontend")})
	reg.UpdateProject(nested.ID, ProjectUpdate{Group: StringPtr("work/frontend/ui")})
	reg.UpdateProject(deeper.ID, ProjectUpdate{Group: StringPtr("work/frontend/ui/widgets")})
	reg.UpdateProject(sibling.ID, ProjectUpdate{Group: StringPtr("work/backend")})
	reg.UpdateProject(prefixLookalike.ID, ProjectUpdate{Group: StringPtr("work/frontenders")})

	count := reg.RenameGroup("work/frontend", "web")

	if count != 3 {
		t.Errorf("Expected 3 projects updated, got %d", count)
	}
	assertGroup(t, reg, exact.ID, "work/web")
	assertGroup(t, reg, nested.ID, "work/web/ui")
	assertGroup(t, reg, deeper.ID, "work/web/ui/widgets")
	assertGroup(t, reg, sibling.ID, "work/backend")
	assertGroup(t, reg, prefixLookalike.ID, "work/frontenders")
}

func TestLoad_FiresUnconditionally(t *testing.T) {
	reg, _ := newTestRegistry()

	projectFires, tagFires := 0, 0
	reg.OnProjectsChanged(func() { projectFires++ })
	reg.OnTagsChanged(func() { tagFires++ })

	reg.Load()
	reg.Load()

	if projectFires != 2 || tagFires != 2 {
		t.Errorf("Load must always fire both notifications, got %d/%d", projectFires, tagFires)
	}
}

func TestLoad_ReplacesCollections(t *testing.T) {
	store := newFakeStore()
	reg := New(store)
	reg.Load()
	reg.AddProject("/a", "")

	// Simulate an external edit: the persisted file now has different content.
	external := storage.Empty()
	external.Projects = append(external.Projects, models.NewProject("External", "/x"))
	store.data = external

	reg.Load()

	projects := reg.Projects()
	if len(projects) != 1 || projects[0].Name != "External" {
		t.Errorf("Load should rebuild wholesale from the store, got %+v", projects)
	}
}

func TestUnsubscribe(t *testing.T) {
	reg, _ := newTestRegistry()

	fires := 0
	unsubscribe := reg.OnProjectsChanged(func() { fires++ })
	reg.AddProject("/a", "")
	unsubscribe()
	reg.AddProject("/b", "")

	if fires != 1 {
		t.Errorf("Expected exactly 1 notification before unsubscribe, got %d", fires)
	}
}

func TestPersistBeforeNotify(t *testing.T) {
	reg, store := newTestRegistry()

	writesAtNotify := -1
	reg.OnProjectsChanged(func() { writesAtNotify = store.saveCount })

	reg.AddProject("/a", "")

	if writesAtNotify != store.saveCount || writesAtNotify == 0 {
		t.Error("Notification must fire after the persistence write completed")
	}
}

func TestPersistFailure_StateStandsAndNotifies(t *testing.T) {
	reg, store := newTestRegistry()
	store.failSaves = true

	fires := 0
	reg.OnProjectsChanged(func() { fires++ })

	p := reg.AddProject("/a", "")

	if fires == 0 {
		t.Error("Notification still fires when the write fails")
	}
	if _, ok := reg.Project(p.ID); !ok {
		t.Error("In-memory state stands as the truth after a failed write")
	}
}

func assertGroup(t *testing.T, reg *Registry, id, want string) {
	t.Helper()
	p, ok := reg.Project(id)
	if !ok {
		t.Fatalf("Project %s missing", id)
	}
	if p.Group != want {
		t.Errorf("Group = %q, want %q", p.Group, want)
	}
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
