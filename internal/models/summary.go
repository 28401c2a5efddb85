package models

// WatchStatus describes how a watch run ended.
type WatchStatus string

const (
	WatchStatusStopped     WatchStatus = "STOPPED"
	WatchStatusCompleted   WatchStatus = "COMPLETED"
	WatchStatusInterrupted WatchStatus = "INTERRUPTED"
)

// WatchSummary is returned when the poll loop exits.
type WatchSummary struct {
	Status       WatchStatus `json:"status"`
	TargetURL    string      `json:"target_url"`
	TotalScrapes int         `json:"total_scrapes"`
}
