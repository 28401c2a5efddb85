package differ

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/aleister1102/pagewatch/internal/models"
)

// ContentDiffer computes character-level diff statistics between the raw
// bodies of two consecutive fetches.
type ContentDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
	// maxContentSize skips the detailed diff for oversized bodies.
	maxContentSize int
}

// NewContentDiffer creates a new ContentDiffer. maxContentSize of 0 means
// no size limit.
func NewContentDiffer(maxContentSize int) *ContentDiffer {
	return &ContentDiffer{
		dmp:            diffmatchpatch.New(),
		maxContentSize: maxContentSize,
	}
}

// DiffStats diffs the two bodies and returns per-operation character
// counts, or nil when either body exceeds the configured size limit.
func (cd *ContentDiffer) DiffStats(previous, current []byte) *models.ContentDiffStats {
	if cd.maxContentSize > 0 && (len(previous) > cd.maxContentSize || len(current) > cd.maxContentSize) {
		return nil
	}

	diffs := cd.dmp.DiffMain(string(previous), string(current), false)
	cd.dmp.DiffCleanupSemantic(diffs)

	stats := &models.ContentDiffStats{}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			stats.InsertedChars += len(d.Text)
		case diffmatchpatch.DiffDelete:
			stats.DeletedChars += len(d.Text)
		case diffmatchpatch.DiffEqual:
			stats.UnchangedChars += len(d.Text)
		}
	}
	return stats
}
