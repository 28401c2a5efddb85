package extractor

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Release Notes</title>
  <meta name="description" content="Weekly release notes.">
</head>
<body>
  <h1 class="headline">Version 2.1 shipped</h1>
  <span class="price">$10</span>
  <span class="price">$20</span>
  <span class="price">$30</span>
  <a href="/changelog" title="changelog">Full changelog</a>
  <a href="https://other.example.org/docs">Docs</a>
  <img src="images/banner.png" alt="banner">
</body>
</html>`

func TestExtract_SelectorCardinality(t *testing.T) {
	pe := NewPageExtractor(zerolog.Nop())

	page, err := pe.Extract(ExtractInput{
		Body:    []byte(samplePage),
		PageURL: "https://example.com/releases/",
		Selectors: map[string]string{
			"headline": "h1.headline",
			"prices":   "span.price",
			"missing":  "div.nonexistent",
		},
	})
	require.NoError(t, err)

	headline := page.Fields["headline"]
	assert.True(t, headline.IsScalar())
	assert.Equal(t, "Version 2.1 shipped", headline.Scalar())

	prices := page.Fields["prices"]
	assert.True(t, prices.Present)
	assert.Equal(t, []string{"$10", "$20", "$30"}, prices.Values)

	missing := page.Fields["missing"]
	assert.False(t, missing.Present)
}

func TestExtract_TitleAndDescription(t *testing.T) {
	pe := NewPageExtractor(zerolog.Nop())

	page, err := pe.Extract(ExtractInput{Body: []byte(samplePage), PageURL: "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "Release Notes", page.Title)
	assert.Equal(t, "Weekly release notes.", page.MetaDescription)
}

func TestExtract_ResolvesRelativeURLs(t *testing.T) {
	pe := NewPageExtractor(zerolog.Nop())

	page, err := pe.Extract(ExtractInput{Body: []byte(samplePage), PageURL: "https://example.com/releases/"})
	require.NoError(t, err)

	require.Len(t, page.Links, 2)
	assert.Equal(t, "https://example.com/changelog", page.Links[0].URL)
	assert.Equal(t, "Full changelog", page.Links[0].Text)
	assert.Equal(t, "changelog", page.Links[0].Title)
	assert.Equal(t, "https://other.example.org/docs", page.Links[1].URL)

	require.Len(t, page.Images, 1)
	assert.Equal(t, "https://example.com/releases/images/banner.png", page.Images[0].URL)
	assert.Equal(t, "banner", page.Images[0].Text)
}

func TestExtract_Stats(t *testing.T) {
	pe := NewPageExtractor(zerolog.Nop())

	page, err := pe.Extract(ExtractInput{Body: []byte(samplePage), PageURL: "https://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Stats.ImageCount)
	assert.Equal(t, 2, page.Stats.LinkCount)
	assert.Greater(t, page.Stats.WordCount, 5)
}

func TestExtract_BadSelectorConfinedToField(t *testing.T) {
	pe := NewPageExtractor(zerolog.Nop())

	page, err := pe.Extract(ExtractInput{
		Body:    []byte(samplePage),
		PageURL: "https://example.com/",
		Selectors: map[string]string{
			"broken": "div[unclosed",
			"title":  "title",
		},
	})
	require.NoError(t, err)
	assert.False(t, page.Fields["broken"].Present)
	assert.Equal(t, "Release Notes", page.Fields["title"].Scalar())
}
