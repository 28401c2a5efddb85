package fileops

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/pagewatch/internal/models"
)

const (
	copyMaxAttempts = 3
	copyBaseDelay   = 100 * time.Millisecond
)

// copyFiles copies every enumerated file into the output directory,
// producing one result per file. Each copy is retried with exponential
// backoff and verified by size afterwards.
func (o *BatchOperator) copyFiles(ctx context.Context, files []string) []models.FileOperationResult {
	results := make([]models.FileOperationResult, 0, len(files))

	if err := os.MkdirAll(o.cfg.OutputPath, 0o755); err != nil {
		for _, file := range files {
			results = append(results, failedResult(models.OperationCopy, file,
				fmt.Errorf("failed to create output directory: %w", err)))
		}
		return results
	}

	for _, file := range files {
		if cancelled(ctx) {
			o.logger.Warn().Msg("Copy batch cancelled, remaining files skipped")
			break
		}
		results = append(results, o.copyOne(file))
	}
	return results
}

func (o *BatchOperator) copyOne(src string) models.FileOperationResult {
	result := models.FileOperationResult{
		Operation: models.OperationCopy,
		Path:      src,
		Timestamp: time.Now(),
	}

	meta := o.collectMetadata(src)
	if meta.Error != "" {
		result.Error = meta.Error
		return result
	}
	result.SourceSizeBytes = meta.SizeBytes
	result.Hash = meta.Hash

	dest := filepath.Join(o.cfg.OutputPath, filepath.Base(src))
	result.DestPath = dest

	var lastErr error
	for attempt := 1; attempt <= copyMaxAttempts; attempt++ {
		if lastErr = copyContents(src, dest); lastErr == nil {
			break
		}
		o.logger.Warn().Err(lastErr).
			Str("src", src).
			Int("attempt", attempt).
			Msg("Copy attempt failed")
		if attempt < copyMaxAttempts {
			time.Sleep(copyBaseDelay * (1 << (attempt - 1)))
		}
	}
	if lastErr != nil {
		result.Error = fmt.Sprintf("copy failed after %d attempts: %v", copyMaxAttempts, lastErr)
		return result
	}

	destInfo, err := os.Stat(dest)
	if err != nil {
		result.Error = fmt.Sprintf("failed to verify copy: %v", err)
		return result
	}
	result.DestSizeBytes = destInfo.Size()
	if result.DestSizeBytes != result.SourceSizeBytes {
		result.Error = fmt.Sprintf("size mismatch after copy: source %d bytes, destination %d bytes",
			result.SourceSizeBytes, result.DestSizeBytes)
		return result
	}

	result.Success = true
	return result
}

// copyContents streams src into dest, preserving the source's file mode.
func copyContents(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
