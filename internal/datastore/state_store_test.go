package datastore

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/pagewatch/internal/models"
)

func newTestStore(t *testing.T) *StateStore {
	t.Helper()
	store, err := NewStateStore(filepath.Join(t.TempDir(), "state", "pagewatch.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSnapshot(count int) *models.StateSnapshot {
	results := make([]models.FetchResult, 0, count)
	for i := 0; i < count; i++ {
		results = append(results, models.FetchResult{
			URL:        "https://example.com",
			Title:      "Example",
			ByteLength: 100 + i,
			FetchedAt:  time.Now(),
			ExtractedFields: map[string]models.FieldValue{
				"headline": models.ScalarField("hello"),
				"missing":  models.NullField(),
			},
		})
	}
	return &models.StateSnapshot{
		TargetURL:    "https://example.com",
		Results:      results,
		LastScrapeAt: time.Now(),
		TotalScrapes: count,
	}
}

func TestStateStore_SaveTailRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveTail(sampleSnapshot(3)))

	loaded, err := store.LoadSnapshot("tail")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", loaded.TargetURL)
	assert.Len(t, loaded.Results, 3)
	assert.Equal(t, 3, loaded.TotalScrapes)
	assert.False(t, loaded.Terminal)
	assert.Equal(t, "hello", loaded.Results[0].ExtractedFields["headline"].Scalar())
	assert.False(t, loaded.Results[0].ExtractedFields["missing"].Present)
}

func TestStateStore_TailOverwritten(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveTail(sampleSnapshot(2)))
	require.NoError(t, store.SaveTail(sampleSnapshot(5)))

	loaded, err := store.LoadSnapshot("tail")
	require.NoError(t, err)
	assert.Len(t, loaded.Results, 5)
}

func TestStateStore_TerminalDistinctFromTail(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveTail(sampleSnapshot(2)))
	require.NoError(t, store.SaveTerminal(sampleSnapshot(7)))

	tail, err := store.LoadSnapshot("tail")
	require.NoError(t, err)
	terminal, err := store.LoadSnapshot("terminal")
	require.NoError(t, err)

	assert.Len(t, tail.Results, 2)
	assert.Len(t, terminal.Results, 7)
	assert.True(t, terminal.Terminal)
}

func TestStateStore_MissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadSnapshot("terminal")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
