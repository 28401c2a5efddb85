package httpclient

import (
	"context"
	"strings"
)

// FetchPageInput holds parameters for FetchPage.
type FetchPageInput struct {
	URL     string
	Headers map[string]string
	Context context.Context
}

// FetchPageResult holds the raw outcome of one page fetch.
type FetchPageResult struct {
	Body        []byte
	ContentType string
	StatusCode  int
	Headers     map[string]string
}

// IsHTML reports whether the response declared an HTML content type. A
// missing Content-Type header is treated as HTML rather than rejected.
func (r *FetchPageResult) IsHTML() bool {
	if r.ContentType == "" {
		return true
	}
	ct := strings.ToLower(r.ContentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

// FetchPage issues a GET for the target page through the client's retry
// policy and returns the successful response body as-is. The caller parses
// it; a non-HTML content type is the caller's warning to raise, not an
// error here.
func (c *HTTPClient) FetchPage(input FetchPageInput) (*FetchPageResult, error) {
	ctx := input.Context
	if ctx == nil {
		ctx = context.Background()
	}

	req := &HTTPRequest{
		URL:     input.URL,
		Method:  "GET",
		Headers: input.Headers,
		Context: ctx,
	}

	resp, err := c.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to fetch page")
		return nil, err
	}

	result := &FetchPageResult{
		Body:        resp.Body,
		ContentType: resp.ContentType(),
		StatusCode:  resp.StatusCode,
		Headers:     resp.Headers,
	}

	c.logger.Debug().
		Str("url", input.URL).
		Int("status_code", result.StatusCode).
		Int("content_size", len(result.Body)).
		Str("content_type", result.ContentType).
		Msg("Page fetched successfully")

	return result, nil
}
