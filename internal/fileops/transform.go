package fileops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aleister1102/pagewatch/internal/models"
)

// transformableExtensions is the fixed set of text formats the transform
// operation accepts. Anything else is rejected per file, not per batch.
var transformableExtensions = map[string]struct{}{
	".txt":  {},
	".csv":  {},
	".json": {},
	".log":  {},
}

// transformFiles applies the configured rule set to every enumerated file,
// producing one result per file. Output goes to the output directory when
// one is configured, otherwise in place.
func (o *BatchOperator) transformFiles(ctx context.Context, files []string) []models.FileOperationResult {
	if o.cfg.OutputPath != "" {
		if err := os.MkdirAll(o.cfg.OutputPath, 0o755); err != nil {
			results := make([]models.FileOperationResult, 0, len(files))
			for _, file := range files {
				results = append(results, failedResult(models.OperationTransform, file,
					fmt.Errorf("failed to create output directory: %w", err)))
			}
			return results
		}
	}

	results := make([]models.FileOperationResult, 0, len(files))
	for _, file := range files {
		if cancelled(ctx) {
			o.logger.Warn().Msg("Transform batch cancelled, remaining files skipped")
			break
		}
		results = append(results, o.transformOne(file))
	}
	return results
}

func (o *BatchOperator) transformOne(path string) models.FileOperationResult {
	result := models.FileOperationResult{
		Operation: models.OperationTransform,
		Path:      path,
		Timestamp: time.Now(),
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := transformableExtensions[ext]; !ok {
		result.Error = fmt.Sprintf("unsupported extension %q for transform", ext)
		return result
	}

	info, err := os.Stat(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	content, err := os.ReadFile(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	transformed := o.applyRules(string(content))

	dest := path
	if o.cfg.OutputPath != "" {
		dest = filepath.Join(o.cfg.OutputPath, filepath.Base(path))
	}
	if err := os.WriteFile(dest, []byte(transformed), info.Mode().Perm()); err != nil {
		result.Error = err.Error()
		return result
	}

	result.DestPath = dest
	result.TransformedBytes = int64(len(transformed))
	result.Success = true
	return result
}

// applyRules runs literal replacements first, then case folding. When both
// case flags are set, lowercase is applied last and wins.
func (o *BatchOperator) applyRules(content string) string {
	rules := o.cfg.TransformRules

	// Replacement order must not depend on map iteration.
	keys := make([]string, 0, len(rules.Replacements))
	for key := range rules.Replacements {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		content = strings.ReplaceAll(content, key, rules.Replacements[key])
	}

	if rules.Uppercase {
		content = strings.ToUpper(content)
	}
	if rules.Lowercase {
		content = strings.ToLower(content)
	}
	return content
}
