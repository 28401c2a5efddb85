package models

import "time"

// StateSnapshot is the structured value handed to the durable state sink.
// The per-cycle snapshot carries the persisted tail of recent results; the
// terminal snapshot written at shutdown carries the full in-memory buffer.
type StateSnapshot struct {
	TargetURL    string        `json:"target_url"`
	Results      []FetchResult `json:"results"`
	LastScrapeAt time.Time     `json:"last_scrape_at"`
	TotalScrapes int           `json:"total_scrapes"`
	Terminal     bool          `json:"terminal"`
	SavedAt      time.Time     `json:"saved_at"`
}
