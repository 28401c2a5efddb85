package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/models"
)

// ArchiveRecord is the flat Parquet projection of one FetchResult.
// Extracted fields keep their null/scalar/list shape as a JSON column.
type ArchiveRecord struct {
	URL             string  `parquet:"url"`
	Title           *string `parquet:"title,optional"`
	MetaDescription *string `parquet:"meta_description,optional"`
	FetchedAt       int64   `parquet:"fetched_at"` // TIMESTAMP_MILLIS
	ByteLength      int64   `parquet:"byte_length"`
	ContentType     *string `parquet:"content_type,optional"`
	StatusCode      *int32  `parquet:"status_code,optional"`
	ExtractedJSON   *string `parquet:"extracted_fields_json,optional"`
	WordCount       int32   `parquet:"word_count"`
	LinkCount       int32   `parquet:"link_count"`
	ImageCount      int32   `parquet:"image_count"`
	Warning         *string `parquet:"warning,optional"`
	Error           *string `parquet:"error,optional"`
}

// HistoryArchiver writes the full scrape buffer to a Parquet file at
// shutdown.
type HistoryArchiver struct {
	archiveDir string
	logger     zerolog.Logger
}

// NewHistoryArchiver creates a new HistoryArchiver.
func NewHistoryArchiver(archiveDir string, logger zerolog.Logger) *HistoryArchiver {
	return &HistoryArchiver{
		archiveDir: archiveDir,
		logger:     logger.With().Str("component", "HistoryArchiver").Logger(),
	}
}

// Archive writes all results to a timestamped Parquet file and returns its
// path. An empty result set writes nothing.
func (ha *HistoryArchiver) Archive(results []models.FetchResult) (string, error) {
	if len(results) == 0 {
		ha.logger.Debug().Msg("No results to archive, skipping")
		return "", nil
	}

	if err := os.MkdirAll(ha.archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory %s: %w", ha.archiveDir, err)
	}

	fileName := fmt.Sprintf("history_%s.parquet", time.Now().Format("20060102-150405"))
	filePath := filepath.Join(ha.archiveDir, fileName)

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file %s: %w", filePath, err)
	}
	defer file.Close()

	records := make([]ArchiveRecord, 0, len(results))
	for i := range results {
		records = append(records, toArchiveRecord(&results[i]))
	}

	writer := parquet.NewGenericWriter[ArchiveRecord](file, parquet.Compression(&parquet.Zstd))
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("failed to write archive records: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive writer: %w", err)
	}

	ha.logger.Info().
		Str("path", filePath).
		Int("record_count", len(records)).
		Msg("Scrape history archived")
	return filePath, nil
}

func toArchiveRecord(result *models.FetchResult) ArchiveRecord {
	record := ArchiveRecord{
		URL:             result.URL,
		Title:           stringPtrOrNil(result.Title),
		MetaDescription: stringPtrOrNil(result.MetaDescription),
		FetchedAt:       result.FetchedAt.UnixMilli(),
		ByteLength:      int64(result.ByteLength),
		ContentType:     stringPtrOrNil(result.ContentType),
		WordCount:       int32(result.Stats.WordCount),
		LinkCount:       int32(result.Stats.LinkCount),
		ImageCount:      int32(result.Stats.ImageCount),
		Warning:         stringPtrOrNil(result.Warning),
		Error:           stringPtrOrNil(result.Error),
	}
	if result.StatusCode != 0 {
		code := int32(result.StatusCode)
		record.StatusCode = &code
	}
	if len(result.ExtractedFields) > 0 {
		if data, err := json.Marshal(result.ExtractedFields); err == nil {
			record.ExtractedJSON = stringPtrOrNil(string(data))
		}
	}
	return record
}

// stringPtrOrNil converts a string to a pointer, or nil if empty.
func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
