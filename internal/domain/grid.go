package domain

import (
	"fmt"
	"strings"
)

// NoneVersion is the grid bucket for user stories without a release.
const NoneVersion = "none"

// GridIndex is the Epic × Feature × Version index rendered by the grid view.
// It is rebuilt on every request and never stored.
type GridIndex struct {
	Index              map[string][]string `json:"index"`
	EpicOrder          []string            `json:"epic_order"`
	FeatureOrderByEpic map[string][]string `json:"feature_order_by_epic"`
	VersionOrder       []string            `json:"version_order"`
}

// NewGridIndex returns an index with every collection allocated, so the JSON
// form never carries null in place of an empty array or object.
func NewGridIndex() *GridIndex {
	return &GridIndex{
		Index:              map[string][]string{},
		EpicOrder:          []string{},
		FeatureOrderByEpic: map[string][]string{},
		VersionOrder:       []string{},
	}
}

// Cell returns the story ids stored under the key and whether the cell exists.
func (g *GridIndex) Cell(epicID, featureID, versionKey string) ([]string, bool) {
	ids, ok := g.Index[CellKey(epicID, featureID, versionKey)]
	return ids, ok
}

// StoryCount is the number of story ids across all cells.
func (g *GridIndex) StoryCount() int {
	n := 0
	for _, ids := range g.Index {
		n += len(ids)
	}
	return n
}

// CellKey joins the three coordinates of a grid cell. An empty version key
// maps to NoneVersion.
func CellKey(epicID, featureID, versionKey string) string {
	if versionKey == "" {
		versionKey = NoneVersion
	}
	return epicID + ":" + featureID + ":" + versionKey
}

// ParseCellKey splits a cell key into its epic, feature and version tokens.
func ParseCellKey(key string) (epicID, featureID, versionKey string, err error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("cell key %q: expected 3 tokens, got %d", key, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return "", "", "", fmt.Errorf("cell key %q: token %d is empty", key, i+1)
		}
	}
	return parts[0], parts[1], parts[2], nil
}
