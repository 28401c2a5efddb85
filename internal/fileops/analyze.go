package fileops

import (
	"context"
	"time"

	"github.com/aleister1102/pagewatch/internal/models"
)

// analyzeBatch collects metadata for every enumerated file and folds it
// into a single aggregate result. Files whose metadata could not be read
// stay out of the aggregates but are still listed in the details.
func (o *BatchOperator) analyzeBatch(ctx context.Context, files []string) models.FileOperationResult {
	aggregate := &models.AnalyzeAggregate{
		ByExtension: make(map[string]int),
		BySizeTier:  make(map[models.SizeTier]int),
		Details:     make([]models.FileMetadata, 0, len(files)),
	}

	var oldest, newest, largest models.FileMetadata
	for _, file := range files {
		if cancelled(ctx) {
			o.logger.Warn().Msg("Analyze batch cancelled, remaining files skipped")
			break
		}

		meta := o.collectMetadata(file)
		aggregate.Details = append(aggregate.Details, meta)
		if meta.Error != "" {
			o.logger.Warn().Str("path", meta.Path).Str("error", meta.Error).Msg("Metadata collection failed")
			continue
		}

		aggregate.TotalFiles++
		aggregate.TotalSizeBytes += meta.SizeBytes
		ext := meta.Extension
		if ext == "" {
			ext = "(none)"
		}
		aggregate.ByExtension[ext]++
		aggregate.BySizeTier[sizeTier(meta.SizeBytes)]++

		if oldest.Path == "" || meta.ModTime.Before(oldest.ModTime) {
			oldest = meta
		}
		if newest.Path == "" || meta.ModTime.After(newest.ModTime) {
			newest = meta
		}
		if largest.Path == "" || meta.SizeBytes > largest.SizeBytes {
			largest = meta
		}
	}

	aggregate.OldestFile = oldest.Path
	aggregate.NewestFile = newest.Path
	aggregate.LargestFile = largest.Path

	return models.FileOperationResult{
		Operation: models.OperationAnalyze,
		Success:   true,
		Path:      o.cfg.InputPath,
		Timestamp: time.Now(),
		Aggregate: aggregate,
	}
}

func sizeTier(sizeBytes int64) models.SizeTier {
	switch {
	case sizeBytes < 1<<20:
		return models.SizeTierSmall
	case sizeBytes < 50<<20:
		return models.SizeTierMedium
	default:
		return models.SizeTierLarge
	}
}
