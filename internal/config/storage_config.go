package config

// StorageConfig defines durable state persistence configuration.
type StorageConfig struct {
	// SQLiteDBPath is the durable state sink for per-cycle snapshots.
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty"`
	// ArchiveDir receives the Parquet archive of the full in-memory buffer
	// written at shutdown.
	ArchiveDir string `json:"archive_dir,omitempty" yaml:"archive_dir,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SQLiteDBPath: DefaultSQLiteDBPath,
		ArchiveDir:   DefaultArchiveDir,
	}
}
