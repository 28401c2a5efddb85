package differ

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/pagewatch/internal/models"
)

func snapshot(title string) *models.FetchResult {
	return &models.FetchResult{
		URL:             "https://example.com",
		Title:           title,
		MetaDescription: "a page",
		ByteLength:      1000,
		FetchedAt:       time.Now(),
		ExtractedFields: map[string]models.FieldValue{
			"headline": models.ScalarField("hello"),
			"prices":   models.ListField([]string{"$1", "$2"}),
		},
	}
}

func TestCompare_IdenticalSnapshotsAllFlagsFalse(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())

	report := cd.Compare(snapshot("A"), snapshot("A"))
	require.NotNil(t, report)
	assert.False(t, report.HasChanges())
	assert.False(t, report.TitleChanged)
	assert.False(t, report.DescriptionChanged)
	assert.False(t, report.ByteLengthChanged)
	for name, changed := range report.FieldChanges {
		assert.False(t, changed, "field %s should be unchanged", name)
	}
	assert.False(t, report.DetectedAt.IsZero())
}

func TestCompare_TitleChangeFlipsExactlyOneFlag(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())

	report := cd.Compare(snapshot("A"), snapshot("B"))
	require.NotNil(t, report)
	assert.True(t, report.TitleChanged)
	assert.False(t, report.DescriptionChanged)
	assert.False(t, report.ByteLengthChanged)
	for _, changed := range report.FieldChanges {
		assert.False(t, changed)
	}
}

func TestCompare_FieldValueChange(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())

	previous := snapshot("A")
	current := snapshot("A")
	current.ExtractedFields["prices"] = models.ListField([]string{"$1", "$3"})

	report := cd.Compare(previous, current)
	require.NotNil(t, report)
	assert.True(t, report.FieldChanges["prices"])
	assert.False(t, report.FieldChanges["headline"])
}

func TestCompare_SkipsFieldsAbsentOnEitherSide(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())

	previous := snapshot("A")
	current := snapshot("A")
	delete(previous.ExtractedFields, "prices")
	current.ExtractedFields["fresh"] = models.ScalarField("new field")

	report := cd.Compare(previous, current)
	require.NotNil(t, report)
	assert.NotContains(t, report.FieldChanges, "prices")
	assert.NotContains(t, report.FieldChanges, "fresh")
	assert.False(t, report.HasChanges())
}

func TestCompare_NeverAgainstErrorResult(t *testing.T) {
	cd := NewChangeDetector(zerolog.Nop())

	failed := snapshot("A")
	failed.Error = "fetch failed"

	assert.Nil(t, cd.Compare(failed, snapshot("B")))
	assert.Nil(t, cd.Compare(nil, snapshot("B")))
	assert.Nil(t, cd.Compare(snapshot("A"), failed))
}

func TestDiffStats(t *testing.T) {
	differ := NewContentDiffer(0)

	stats := differ.DiffStats([]byte("hello world"), []byte("hello brave world"))
	require.NotNil(t, stats)
	assert.Equal(t, 6, stats.InsertedChars)
	assert.Equal(t, 0, stats.DeletedChars)
	assert.Equal(t, 11, stats.UnchangedChars)
}

func TestDiffStats_SizeLimit(t *testing.T) {
	differ := NewContentDiffer(8)
	assert.Nil(t, differ.DiffStats([]byte("tiny"), []byte("far too large to diff")))
}
