package fileops

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/pagewatch/internal/models"
)

// collectMetadata gathers size, extension, modification time, and content
// hash for one file. Failures degrade to a partial record carrying the path
// and error; the caller decides whether that excludes the file from
// aggregation.
func (o *BatchOperator) collectMetadata(path string) models.FileMetadata {
	meta := models.FileMetadata{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		meta.Error = err.Error()
		return meta
	}

	meta.SizeBytes = info.Size()
	meta.ModTime = info.ModTime()
	meta.Extension = strings.ToLower(filepath.Ext(path))

	// Hashing is skipped, not failed, above the ceiling.
	if info.Size() <= o.cfg.HashSizeCeiling {
		hash, err := hashFile(path)
		if err != nil {
			meta.Error = err.Error()
			return meta
		}
		meta.Hash = hash
	}

	return meta
}

// hashFile computes the whole-file SHA-256 as a hex string.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
