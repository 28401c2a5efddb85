package scraper

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/pagewatch/internal/models"
)

func resultWithTitle(title string) models.FetchResult {
	return models.FetchResult{URL: "https://example.com", Title: title}
}

func TestRollingBuffer_AppendBelowCapacity(t *testing.T) {
	rb := NewRollingBuffer(5)

	rb.Append(resultWithTitle("a"))
	rb.Append(resultWithTitle("b"))

	assert.Equal(t, 2, rb.Len())
	all := rb.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Title)
	assert.Equal(t, "b", all[1].Title)
}

func TestRollingBuffer_EvictsOldestWhenFull(t *testing.T) {
	rb := NewRollingBuffer(3)

	for i := 0; i < 5; i++ {
		rb.Append(resultWithTitle(strconv.Itoa(i)))
	}

	assert.Equal(t, 3, rb.Len())
	all := rb.All()
	assert.Equal(t, "2", all[0].Title)
	assert.Equal(t, "4", all[2].Title)
}

func TestRollingBuffer_TailShorterThanRequested(t *testing.T) {
	rb := NewRollingBuffer(10)
	rb.Append(resultWithTitle("only"))

	tail := rb.Tail(10)
	require.Len(t, tail, 1)
	assert.Equal(t, "only", tail[0].Title)
}

func TestRollingBuffer_TailReturnsNewest(t *testing.T) {
	rb := NewRollingBuffer(10)
	for i := 0; i < 7; i++ {
		rb.Append(resultWithTitle(strconv.Itoa(i)))
	}

	tail := rb.Tail(3)
	require.Len(t, tail, 3)
	assert.Equal(t, "4", tail[0].Title)
	assert.Equal(t, "6", tail[2].Title)
}

func TestRollingBuffer_LastSkipsFailedResults(t *testing.T) {
	rb := NewRollingBuffer(10)
	rb.Append(resultWithTitle("good"))
	rb.Append(models.FetchResult{URL: "https://example.com", Error: "fetch failed"})

	last := rb.Last()
	require.NotNil(t, last)
	assert.Equal(t, "good", last.Title)
}

func TestRollingBuffer_LastEmptyOrAllFailed(t *testing.T) {
	rb := NewRollingBuffer(10)
	assert.Nil(t, rb.Last())

	rb.Append(models.FetchResult{Error: "boom"})
	assert.Nil(t, rb.Last())
}

func TestRollingBuffer_CopiesAreIndependent(t *testing.T) {
	rb := NewRollingBuffer(5)
	rb.Append(resultWithTitle("a"))

	all := rb.All()
	all[0].Title = "mutated"

	assert.Equal(t, "a", rb.All()[0].Title)
}
