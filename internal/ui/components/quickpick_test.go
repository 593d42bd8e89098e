package components

import (
	"testing"

	"projman/internal/models"
)

func pickProject(name string, favorite bool, lastOpened int64) *models.Project {
	p := models.NewProject(name, "/home/dev/"+name)
	p.IsFavorite = favorite
	p.LastOpenedAt = lastOpened
	return p
}

func TestQuickPick_RankedOrder(t *testing.T) {
	qp := NewQuickPick()
	qp.SetProjects([]*models.Project{
		pickProject("old", false, 100),
		pickProject("fresh", false, 900),
		pickProject("starred", true, 0),
	})

	matches := qp.Matches()
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}
	if matches[0].Name != "starred" {
		t.Errorf("Favorite should rank first, got %s", matches[0].Name)
	}
	if matches[1].Name != "fresh" || matches[2].Name != "old" {
		t.Error("Non-favorites should order by recency descending")
	}
}

func TestQuickPick_Filter(t *testing.T) {
	qp := NewQuickPick()
	qp.SetProjects([]*models.Project{
		pickProject("api-server", false, 0),
		pickProject("blog", false, 0),
	})

	qp.Input().SetValue("api")
	qp.Refilter()

	matches := qp.Matches()
	if len(matches) != 1 || matches[0].Name != "api-server" {
		t.Errorf("Filter should keep only matching projects, got %v", len(matches))
	}
}

func TestQuickPick_CursorClampedByFilter(t *testing.T) {
	qp := NewQuickPick()
	qp.SetProjects([]*models.Project{
		pickProject("alpha", false, 0),
		pickProject("beta", false, 0),
		pickProject("gamma", false, 0),
	})
	qp.Cursor = 2

	qp.Input().SetValue("alpha")
	qp.Refilter()

	if qp.Cursor != 0 {
		t.Errorf("Cursor should clamp to filtered range, got %d", qp.Cursor)
	}
	if cur := qp.Current(); cur == nil || cur.Name != "alpha" {
		t.Error("Current should return the only filtered project")
	}
}

func TestQuickPick_Reset(t *testing.T) {
	qp := NewQuickPick()
	qp.SetProjects([]*models.Project{
		pickProject("alpha", false, 0),
		pickProject("beta", false, 0),
	})

	qp.Input().SetValue("alp")
	qp.Refilter()
	qp.Reset()

	if qp.Input().Value() != "" {
		t.Error("Reset should clear the query")
	}
	if len(qp.Matches()) != 2 {
		t.Error("Reset should restore all projects")
	}
}

func TestQuickPick_EmptyCurrent(t *testing.T) {
	qp := NewQuickPick()
	qp.SetProjects(nil)

	if qp.Current() != nil {
		t.Error("Current on empty switcher should be nil")
	}
}
