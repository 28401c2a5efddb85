package models

import "time"

// ContentDiffStats summarizes the raw-body diff between two consecutive
// snapshots (character counts per diff operation).
type ContentDiffStats struct {
	InsertedChars  int `json:"inserted_chars"`
	DeletedChars   int `json:"deleted_chars"`
	UnchangedChars int `json:"unchanged_chars"`
}

// ChangeReport is the pairwise comparison of two consecutive FetchResults.
// It is only computed when a prior successful FetchResult exists.
//
// Fields absent from either snapshot are skipped silently: an extracted
// field appearing or disappearing between cycles does not count as a change.
type ChangeReport struct {
	URL                string          `json:"url"`
	TitleChanged       bool            `json:"title_changed"`
	DescriptionChanged bool            `json:"description_changed"`
	ByteLengthChanged  bool            `json:"byte_length_changed"`
	FieldChanges       map[string]bool `json:"field_changes,omitempty"`
	DetectedAt         time.Time       `json:"detected_at"`

	ContentDiff *ContentDiffStats `json:"content_diff,omitempty"`
}

// HasChanges returns true if any comparison flag is set.
func (cr *ChangeReport) HasChanges() bool {
	if cr.TitleChanged || cr.DescriptionChanged || cr.ByteLengthChanged {
		return true
	}
	for _, changed := range cr.FieldChanges {
		if changed {
			return true
		}
	}
	return false
}
