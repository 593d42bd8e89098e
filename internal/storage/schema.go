package storage

import (
	"encoding/json"

	"projman/internal/models"
)

// Empty returns the empty storage shape at the current schema version.
func Empty() models.StorageData {
	return models.StorageData{
		Version:  1,
		Projects: []*models.Project{},
		Tags:     []models.Tag{},
		Remote:   map[string]string{},
	}
}

// Parse decodes persisted bytes into StorageData. It tolerates anything:
// invalid JSON or a non-object root yields the empty store, non-array
// projects/tags yield empty arrays, and a non-object remote yields an
// empty map. Version is always normalized to 1 regardless of input.
// A corrupt store reads the same as a first run.
func Parse(raw []byte) models.StorageData {
	out := Empty()

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil || root == nil {
		return out
	}

	var projects []*models.Project
	if err := json.Unmarshal(root["projects"], &projects); err == nil {
		for _, p := range projects {
			if p == nil {
				continue
			}
			if p.Tags == nil {
				p.Tags = []string{}
			}
			out.Projects = append(out.Projects, p)
		}
	}

	var tags []models.Tag
	if err := json.Unmarshal(root["tags"], &tags); err == nil && tags != nil {
		out.Tags = tags
	}

	var remote map[string]string
	if err := json.Unmarshal(root["remote"], &remote); err == nil && remote != nil {
		out.Remote = remote
	}

	return out
}
