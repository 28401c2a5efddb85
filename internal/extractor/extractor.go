package extractor

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/models"
)

// PageExtractor evaluates selector mappings against parsed HTML and
// collects page-level assets and stats.
type PageExtractor struct {
	logger zerolog.Logger
}

// NewPageExtractor creates a new PageExtractor.
func NewPageExtractor(logger zerolog.Logger) *PageExtractor {
	return &PageExtractor{
		logger: logger.With().Str("component", "PageExtractor").Logger(),
	}
}

// ExtractInput holds parameters for Extract.
type ExtractInput struct {
	Body      []byte
	PageURL   string
	Selectors map[string]string
}

// ExtractedPage is everything pulled out of one parsed document.
type ExtractedPage struct {
	Title           string
	MetaDescription string
	Fields          map[string]models.FieldValue
	Links           []models.PageAsset
	Images          []models.PageAsset
	Stats           models.PageStats
}

// Extract parses the body once and evaluates every selector entry plus the
// standard link/image/stat extraction. A failure on one selector is
// confined to that field; the rest of the extraction proceeds.
func (pe *PageExtractor) Extract(input ExtractInput) (*ExtractedPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input.Body))
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(input.PageURL)
	if err != nil {
		pe.logger.Warn().Err(err).Str("page_url", input.PageURL).Msg("Failed to parse page URL, links will not be resolved")
		baseURL = nil
	}

	page := &ExtractedPage{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: pe.extractMetaDescription(doc),
		Fields:          make(map[string]models.FieldValue, len(input.Selectors)),
	}

	for fieldName, selector := range input.Selectors {
		page.Fields[fieldName] = pe.extractField(doc, fieldName, selector)
	}

	page.Links = pe.extractAssets(doc, baseURL, "a[href]", "href")
	page.Images = pe.extractAssets(doc, baseURL, "img[src]", "src")
	page.Stats = models.PageStats{
		WordCount:  len(strings.Fields(doc.Text())),
		LinkCount:  len(page.Links),
		ImageCount: len(page.Images),
	}

	return page, nil
}

// extractField evaluates a single selector. Zero matches yield the null
// value, one match a trimmed scalar, several an ordered list. Panics from
// malformed selectors are confined to this field.
func (pe *PageExtractor) extractField(doc *goquery.Document, fieldName, selector string) (value models.FieldValue) {
	defer func() {
		if r := recover(); r != nil {
			pe.logger.Warn().
				Str("field", fieldName).
				Str("selector", selector).
				Interface("panic", r).
				Msg("Selector evaluation failed, recording null for field")
			value = models.NullField()
		}
	}()

	selection := doc.Find(selector)
	switch selection.Length() {
	case 0:
		return models.NullField()
	case 1:
		return models.ScalarField(strings.TrimSpace(selection.Text()))
	default:
		values := make([]string, 0, selection.Length())
		selection.Each(func(_ int, s *goquery.Selection) {
			values = append(values, strings.TrimSpace(s.Text()))
		})
		return models.ListField(values)
	}
}

// extractMetaDescription reads the meta description content attribute.
func (pe *PageExtractor) extractMetaDescription(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// extractAssets collects elements matching the query, resolving each URL
// attribute against the page URL.
func (pe *PageExtractor) extractAssets(doc *goquery.Document, baseURL *url.URL, query, attrName string) []models.PageAsset {
	assets := make([]models.PageAsset, 0, 16)
	doc.Find(query).Each(func(_ int, s *goquery.Selection) {
		rawURL, exists := s.Attr(attrName)
		rawURL = strings.TrimSpace(rawURL)
		if !exists || rawURL == "" {
			return
		}

		resolved := resolveURL(baseURL, rawURL)
		if resolved == "" {
			return
		}

		asset := models.PageAsset{URL: resolved}
		if attrName == "href" {
			asset.Text = strings.TrimSpace(s.Text())
		} else {
			asset.Text = strings.TrimSpace(s.AttrOr("alt", ""))
		}
		asset.Title = strings.TrimSpace(s.AttrOr("title", ""))

		assets = append(assets, asset)
	})
	return assets
}

// resolveURL resolves a possibly-relative reference against the page URL.
func resolveURL(baseURL *url.URL, rawURL string) string {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if baseURL == nil {
		return ref.String()
	}
	return baseURL.ResolveReference(ref).String()
}
