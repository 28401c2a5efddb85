package models

import (
	"encoding/json"
	"time"
)

// FieldValue holds the outcome of evaluating one selector against a page.
// A selector matching zero elements yields an absent value, one element a
// scalar, and more than one an ordered list. It marshals to JSON as null,
// a string, or an array of strings accordingly.
type FieldValue struct {
	Present bool     `json:"-"`
	Values  []string `json:"-"`
}

// NullField returns the absent value used when a selector matched nothing
// or its extraction failed.
func NullField() FieldValue {
	return FieldValue{}
}

// ScalarField returns a single-match value.
func ScalarField(value string) FieldValue {
	return FieldValue{Present: true, Values: []string{value}}
}

// ListField returns a multi-match value preserving document order.
func ListField(values []string) FieldValue {
	return FieldValue{Present: true, Values: values}
}

// IsScalar returns true if the value came from exactly one match.
func (fv FieldValue) IsScalar() bool {
	return fv.Present && len(fv.Values) == 1
}

// Scalar returns the single matched text, or "" when the value is absent
// or a list.
func (fv FieldValue) Scalar() string {
	if fv.IsScalar() {
		return fv.Values[0]
	}
	return ""
}

// Equal compares two field values by cardinality and content.
func (fv FieldValue) Equal(other FieldValue) bool {
	if fv.Present != other.Present {
		return false
	}
	if len(fv.Values) != len(other.Values) {
		return false
	}
	for i := range fv.Values {
		if fv.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}

// MarshalJSON renders the null/scalar/list shape.
func (fv FieldValue) MarshalJSON() ([]byte, error) {
	if !fv.Present {
		return []byte("null"), nil
	}
	if len(fv.Values) == 1 {
		return json.Marshal(fv.Values[0])
	}
	return json.Marshal(fv.Values)
}

// UnmarshalJSON accepts null, a string, or an array of strings.
func (fv *FieldValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*fv = NullField()
		return nil
	}
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*fv = ScalarField(scalar)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*fv = ListField(list)
	return nil
}

// PageAsset is one hyperlink or image found on the page, with its URL
// resolved against the page's own URL.
type PageAsset struct {
	URL   string `json:"url"`
	Text  string `json:"text,omitempty"`
	Title string `json:"title,omitempty"`
}

// PageStats holds derived counts for one snapshot.
type PageStats struct {
	WordCount  int `json:"word_count"`
	LinkCount  int `json:"link_count"`
	ImageCount int `json:"image_count"`
}

// FetchResult is one snapshot of the target page. It is constructed fresh
// each poll cycle and never mutated afterwards.
type FetchResult struct {
	URL             string                `json:"url"`
	Title           string                `json:"title,omitempty"`
	MetaDescription string                `json:"meta_description,omitempty"`
	FetchedAt       time.Time             `json:"fetched_at"`
	ByteLength      int                   `json:"byte_length"`
	ContentType     string                `json:"content_type,omitempty"`
	StatusCode      int                   `json:"status_code,omitempty"`
	ExtractedFields map[string]FieldValue `json:"extracted_fields,omitempty"`
	Links           []PageAsset           `json:"links,omitempty"`
	Images          []PageAsset           `json:"images,omitempty"`
	Stats           PageStats             `json:"stats"`

	// Warning carries non-fatal annotations, e.g. a non-HTML content type.
	Warning string `json:"warning,omitempty"`
	// Error is set when the cycle failed; such a result never participates
	// in change detection.
	Error string `json:"error,omitempty"`
}

// IsSuccess returns true when the snapshot carries no error indicator.
func (fr *FetchResult) IsSuccess() bool {
	return fr != nil && fr.Error == ""
}
