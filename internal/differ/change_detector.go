package differ

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/models"
)

// ChangeDetector computes shallow change reports between two consecutive
// snapshots of the same page.
type ChangeDetector struct {
	logger zerolog.Logger
}

// NewChangeDetector creates a new ChangeDetector.
func NewChangeDetector(logger zerolog.Logger) *ChangeDetector {
	return &ChangeDetector{
		logger: logger.With().Str("component", "ChangeDetector").Logger(),
	}
}

// Compare builds a ChangeReport from the previous and current snapshots.
// The previous snapshot must be a successful one; comparing against an
// error-carrying result is a caller bug and yields nil.
//
// Only scalar top-level fields and extracted fields present in BOTH
// snapshots are compared; a field appearing or disappearing between cycles
// is skipped silently.
func (cd *ChangeDetector) Compare(previous, current *models.FetchResult) *models.ChangeReport {
	if previous == nil || !previous.IsSuccess() || current == nil || !current.IsSuccess() {
		cd.logger.Debug().Msg("Skipping change detection: no prior successful snapshot to compare against")
		return nil
	}

	report := &models.ChangeReport{
		URL:                current.URL,
		TitleChanged:       previous.Title != current.Title,
		DescriptionChanged: previous.MetaDescription != current.MetaDescription,
		ByteLengthChanged:  previous.ByteLength != current.ByteLength,
		FieldChanges:       make(map[string]bool),
		DetectedAt:         time.Now(),
	}

	for name, currentValue := range current.ExtractedFields {
		previousValue, inBoth := previous.ExtractedFields[name]
		if !inBoth {
			continue
		}
		report.FieldChanges[name] = !previousValue.Equal(currentValue)
	}

	if report.HasChanges() {
		cd.logger.Info().
			Str("url", current.URL).
			Bool("title_changed", report.TitleChanged).
			Bool("description_changed", report.DescriptionChanged).
			Bool("byte_length_changed", report.ByteLengthChanged).
			Msg("Change detected between consecutive snapshots")
	}

	return report
}
