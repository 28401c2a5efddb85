package models

import "time"

// FileOperation identifies one of the fixed batch operations.
type FileOperation string

const (
	OperationCopy      FileOperation = "copy"
	OperationCompress  FileOperation = "compress"
	OperationAnalyze   FileOperation = "analyze"
	OperationTransform FileOperation = "transform"
)

// IsValid reports whether the operation name is one of the known set.
func (op FileOperation) IsValid() bool {
	switch op {
	case OperationCopy, OperationCompress, OperationAnalyze, OperationTransform:
		return true
	}
	return false
}

// FileMetadata describes one enumerated file. Metadata failures degrade to
// a partial record carrying only Path and Error.
type FileMetadata struct {
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	Extension string    `json:"extension,omitempty"`
	ModTime   time.Time `json:"mod_time"`
	// Hash is the whole-file SHA-256, empty for files above the hash size
	// ceiling or when metadata collection failed.
	Hash  string `json:"hash,omitempty"`
	Error string `json:"error,omitempty"`
}

// SizeTier buckets files by size for the analyze aggregate.
type SizeTier string

const (
	SizeTierSmall  SizeTier = "small"  // < 1 MiB
	SizeTierMedium SizeTier = "medium" // < 50 MiB
	SizeTierLarge  SizeTier = "large"  // >= 50 MiB
)

// AnalyzeAggregate is the single summary record produced by the analyze
// operation over a batch.
type AnalyzeAggregate struct {
	TotalFiles     int              `json:"total_files"`
	TotalSizeBytes int64            `json:"total_size_bytes"`
	ByExtension    map[string]int   `json:"by_extension"`
	BySizeTier     map[SizeTier]int `json:"by_size_tier"`
	OldestFile     string           `json:"oldest_file,omitempty"`
	NewestFile     string           `json:"newest_file,omitempty"`
	LargestFile    string           `json:"largest_file,omitempty"`
	Details        []FileMetadata   `json:"details,omitempty"`
}

// FileOperationResult is the outcome of one operation over one file, or
// over the whole batch for compress/analyze.
type FileOperationResult struct {
	Operation FileOperation `json:"operation"`
	Success   bool          `json:"success"`
	Path      string        `json:"path,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`

	// copy payload
	SourceSizeBytes int64  `json:"source_size_bytes,omitempty"`
	DestSizeBytes   int64  `json:"dest_size_bytes,omitempty"`
	DestPath        string `json:"dest_path,omitempty"`
	Hash            string `json:"hash,omitempty"`

	// compress payload
	ArchivePath       string  `json:"archive_path,omitempty"`
	OriginalSizeBytes int64   `json:"original_size_bytes,omitempty"`
	ArchiveSizeBytes  int64   `json:"archive_size_bytes,omitempty"`
	CompressionRatio  float64 `json:"compression_ratio,omitempty"`
	FileCount         int     `json:"file_count,omitempty"`

	// analyze payload
	Aggregate *AnalyzeAggregate `json:"aggregate,omitempty"`

	// transform payload
	TransformedBytes int64 `json:"transformed_bytes,omitempty"`
}

// BatchSummary summarizes one operator pass.
type BatchSummary struct {
	Operation    FileOperation `json:"operation"`
	TotalFiles   int           `json:"total_files"`
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
	Duration     time.Duration `json:"duration"`
}
