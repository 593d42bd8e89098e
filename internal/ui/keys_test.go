package ui

import "testing"

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	if len(keys.Up.Keys()) == 0 {
		t.Error("Up binding should have keys")
	}
	if len(keys.Quit.Keys()) == 0 {
		t.Error("Quit binding should have keys")
	}
	if len(keys.QuickPick.Keys()) == 0 {
		t.Error("QuickPick binding should have keys")
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	keys := DefaultKeyMap()
	short := keys.ShortHelp()

	if len(short) == 0 {
		t.Error("ShortHelp should return bindings")
	}
	for i, binding := range short {
		if binding.Help().Key == "" {
			t.Errorf("ShortHelp binding %d has no help key", i)
		}
	}
}

func TestKeyMap_FullHelp(t *testing.T) {
	keys := DefaultKeyMap()
	full := keys.FullHelp()

	if len(full) == 0 {
		t.Error("FullHelp should return binding groups")
	}
	for i, group := range full {
		if len(group) == 0 {
			t.Errorf("FullHelp group %d is empty", i)
		}
	}
}

func TestKeyMap_NoDuplicateActionKeys(t *testing.T) {
	keys := DefaultKeyMap()

	// Single-view action keys must not collide within the list screen.
	seen := make(map[string]string)
	actions := map[string][]string{
		"Favorite":    keys.Favorite.Keys(),
		"ExpandAll":   keys.ExpandAll.Keys(),
		"CollapseAll": keys.CollapseAll.Keys(),
		"AddProject":  keys.AddProject.Keys(),
		"EditProject": keys.EditProject.Keys(),
		"TagFilter":   keys.TagFilter.Keys(),
		"Storage":     keys.Storage.Keys(),
		"Refresh":     keys.Refresh.Keys(),
		"Scan":        keys.Scan.Keys(),
		"CopyPath":    keys.CopyPath.Keys(),
		"Terminal":    keys.Terminal.Keys(),
		"Remotes":     keys.Remotes.Keys(),
	}
	for action, ks := range actions {
		for _, k := range ks {
			if prev, ok := seen[k]; ok {
				t.Errorf("Key %q bound to both %s and %s", k, prev, action)
			}
			seen[k] = action
		}
	}
}
