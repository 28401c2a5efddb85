package config

// TransformRules defines the ordered rule set applied by the transform
// operation: literal replacements first, then optional case folding.
type TransformRules struct {
	Replacements map[string]string `json:"replacements,omitempty" yaml:"replacements,omitempty"`
	Uppercase    bool              `json:"uppercase" yaml:"uppercase"`
	Lowercase    bool              `json:"lowercase" yaml:"lowercase"`
}

// BatchConfig defines the file-batch operator configuration.
type BatchConfig struct {
	// InputPath is a directory to walk, or a single regular file.
	InputPath string `json:"input_path,omitempty" yaml:"input_path,omitempty"`
	// GlobPattern matches file base names during recursive enumeration.
	GlobPattern string `json:"glob_pattern,omitempty" yaml:"glob_pattern,omitempty"`
	// Operation is one of copy, compress, analyze, transform.
	Operation string `json:"operation,omitempty" yaml:"operation,omitempty"`
	// OutputPath is required by copy and compress; optional for transform
	// (in-place when unset).
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	TransformRules TransformRules `json:"transform_rules,omitempty" yaml:"transform_rules,omitempty"`

	// ResultsLogCapacity bounds the processed-results log, FIFO eviction.
	ResultsLogCapacity int `json:"results_log_capacity,omitempty" yaml:"results_log_capacity,omitempty" validate:"omitempty,min=1"`
	// HashSizeCeiling is the max file size in bytes for content hashing.
	HashSizeCeiling int64 `json:"hash_size_ceiling,omitempty" yaml:"hash_size_ceiling,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultBatchConfig creates default batch configuration.
func NewDefaultBatchConfig() BatchConfig {
	return BatchConfig{
		GlobPattern:        "*",
		ResultsLogCapacity: DefaultResultsLogCapacity,
		HashSizeCeiling:    DefaultHashSizeCeiling,
	}
}
