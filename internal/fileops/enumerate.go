package fileops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// enumerate resolves the input path to the batch's file list. A regular
// file yields itself regardless of the glob; a directory is walked
// recursively with the glob matched against base names. Only regular files
// are included.
func (o *BatchOperator) enumerate() ([]string, error) {
	info, err := os.Stat(o.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input path %q: %w", o.cfg.InputPath, err)
	}

	if info.Mode().IsRegular() {
		return []string{o.cfg.InputPath}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %q is neither a regular file nor a directory", o.cfg.InputPath)
	}

	var files []string
	err = filepath.WalkDir(o.cfg.InputPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			o.logger.Warn().Err(walkErr).Str("path", path).Msg("Skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		matched, matchErr := filepath.Match(o.cfg.GlobPattern, d.Name())
		if matchErr != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", o.cfg.GlobPattern, matchErr)
		}
		if matched {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// WalkDir is already lexical, but sort explicitly so batch order never
	// depends on walk internals.
	sort.Strings(files)
	return files, nil
}
