package fileops

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/pagewatch/internal/models"
)

// compressBatch writes the whole enumerated set into a single zip archive
// at the output path and reports one batch-level result. Any failure along
// the way yields one failed result for the batch.
func (o *BatchOperator) compressBatch(ctx context.Context, files []string) models.FileOperationResult {
	result := models.FileOperationResult{
		Operation:   models.OperationCompress,
		ArchivePath: o.cfg.OutputPath,
		Timestamp:   time.Now(),
	}

	if err := o.writeArchive(ctx, files, &result); err != nil {
		// A partial archive is worse than none.
		_ = os.Remove(o.cfg.OutputPath)
		result.Error = err.Error()
		return result
	}

	info, err := os.Stat(o.cfg.OutputPath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to stat archive: %v", err)
		return result
	}
	result.ArchiveSizeBytes = info.Size()
	result.CompressionRatio = compressionRatio(result.OriginalSizeBytes, result.ArchiveSizeBytes)
	result.Success = true

	o.logger.Info().
		Str("archive", o.cfg.OutputPath).
		Int("files", result.FileCount).
		Int64("original_bytes", result.OriginalSizeBytes).
		Int64("archive_bytes", result.ArchiveSizeBytes).
		Float64("ratio_percent", result.CompressionRatio).
		Msg("Archive written")

	return result
}

func (o *BatchOperator) writeArchive(ctx context.Context, files []string, result *models.FileOperationResult) error {
	if dir := filepath.Dir(o.cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	out, err := os.Create(o.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	for _, file := range files {
		if cancelled(ctx) {
			zw.Close()
			out.Close()
			return fmt.Errorf("compress batch cancelled")
		}
		size, err := o.addToArchive(zw, file)
		if err != nil {
			zw.Close()
			out.Close()
			return fmt.Errorf("failed to archive %q: %w", file, err)
		}
		result.OriginalSizeBytes += size
		result.FileCount++
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return out.Close()
}

func (o *BatchOperator) addToArchive(zw *zip.Writer, path string) (int64, error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	// Entry names are relative to the input root so the archive does not
	// leak absolute paths.
	name, err := filepath.Rel(o.cfg.InputPath, path)
	if err != nil || name == "." {
		name = filepath.Base(path)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, err
	}
	header.Name = filepath.ToSlash(name)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(w, in); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// compressionRatio returns the space saving as a percentage; an empty input
// set reports zero rather than dividing by it.
func compressionRatio(originalBytes, archiveBytes int64) float64 {
	if originalBytes == 0 {
		return 0
	}
	return (1 - float64(archiveBytes)/float64(originalBytes)) * 100
}
