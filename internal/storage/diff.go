package storage

import (
	"encoding/json"

	"projman/internal/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffSnapshots renders a line-oriented diff between two registry
// snapshots. Used to show what an external edit changed before the
// registry reloads over it.
func DiffSnapshots(before, after models.StorageData) []diffmatchpatch.Diff {
	a, _ := json.MarshalIndent(before, "", "  ")
	b, _ := json.MarshalIndent(after, "", "  ")

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(string(a), string(b))
	diffs := dmp.DiffMain(chars1, chars2, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// DiffSummary counts added and removed lines between two snapshots.
func DiffSummary(before, after models.StorageData) (added, removed int) {
	for _, d := range DiffSnapshots(before, after) {
		lines := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += lines
		case diffmatchpatch.DiffDelete:
			removed += lines
		}
	}
	return added, removed
}

func countLines(text string) int {
	n := 0
	for _, c := range text {
		if c == '\n' {
			n++
		}
	}
	return n
}
