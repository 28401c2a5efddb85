package fileops

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
)

// BatchOperator runs one configured operation over an enumerated file set.
// Operations run sequentially; per-file failures are recorded as failed
// results while the batch continues. Configuration problems surface as an
// error from Execute before any file is touched.
type BatchOperator struct {
	cfg    config.BatchConfig
	logger zerolog.Logger

	// results is the processed-results log, FIFO-bounded at
	// cfg.ResultsLogCapacity.
	results []models.FileOperationResult
}

// NewBatchOperator creates a batch operator from configuration.
func NewBatchOperator(cfg config.BatchConfig, logger zerolog.Logger) *BatchOperator {
	if cfg.GlobPattern == "" {
		cfg.GlobPattern = "*"
	}
	if cfg.ResultsLogCapacity <= 0 {
		cfg.ResultsLogCapacity = config.DefaultResultsLogCapacity
	}
	if cfg.HashSizeCeiling <= 0 {
		cfg.HashSizeCeiling = config.DefaultHashSizeCeiling
	}
	return &BatchOperator{
		cfg:    cfg,
		logger: logger.With().Str("component", "BatchOperator").Logger(),
	}
}

// Results returns a copy of the processed-results log.
func (o *BatchOperator) Results() []models.FileOperationResult {
	out := make([]models.FileOperationResult, len(o.results))
	copy(out, o.results)
	return out
}

// Execute validates the configuration, enumerates the input, and runs the
// configured operation. Validation and enumeration failures return an error
// with no results recorded.
func (o *BatchOperator) Execute(ctx context.Context) (*models.BatchSummary, error) {
	started := time.Now()

	op := models.FileOperation(o.cfg.Operation)
	if err := o.validate(op); err != nil {
		return nil, err
	}

	files, err := o.enumerate()
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("operation", string(op)).
		Str("input_path", o.cfg.InputPath).
		Int("files", len(files)).
		Msg("Starting batch operation")

	var results []models.FileOperationResult
	switch op {
	case models.OperationCopy:
		results = o.copyFiles(ctx, files)
	case models.OperationTransform:
		results = o.transformFiles(ctx, files)
	case models.OperationCompress:
		results = []models.FileOperationResult{o.compressBatch(ctx, files)}
	case models.OperationAnalyze:
		results = []models.FileOperationResult{o.analyzeBatch(ctx, files)}
	}

	summary := &models.BatchSummary{
		Operation:  op,
		TotalFiles: len(files),
		Duration:   time.Since(started),
	}
	for i := range results {
		o.appendResult(results[i])
		if results[i].Success {
			summary.SuccessCount++
		} else {
			summary.FailureCount++
		}
	}

	o.logger.Info().
		Str("operation", string(op)).
		Int("success", summary.SuccessCount).
		Int("failure", summary.FailureCount).
		Dur("duration", summary.Duration).
		Msg("Batch operation finished")

	return summary, nil
}

// validate rejects unknown operations and missing output paths before any
// file work happens.
func (o *BatchOperator) validate(op models.FileOperation) error {
	if !op.IsValid() {
		return fmt.Errorf("unknown operation %q", o.cfg.Operation)
	}
	if o.cfg.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	switch op {
	case models.OperationCopy, models.OperationCompress:
		if o.cfg.OutputPath == "" {
			return fmt.Errorf("operation %q requires an output path", op)
		}
	}
	return nil
}

// appendResult adds one result to the log, evicting the oldest entry when
// the log is at capacity.
func (o *BatchOperator) appendResult(result models.FileOperationResult) {
	if len(o.results) == o.cfg.ResultsLogCapacity {
		copy(o.results, o.results[1:])
		o.results = o.results[:len(o.results)-1]
	}
	o.results = append(o.results, result)
}

// cancelled reports whether the context ended; checked between files so a
// shutdown falls on a file boundary.
func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func failedResult(op models.FileOperation, path string, err error) models.FileOperationResult {
	return models.FileOperationResult{
		Operation: op,
		Success:   false,
		Path:      path,
		Error:     err.Error(),
		Timestamp: time.Now(),
	}
}
