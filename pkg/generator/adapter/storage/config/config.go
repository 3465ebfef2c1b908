// Package config holds settings for the staging storage.
package config

// StorageConfig holds configuration for the staging area where chunk files are written
// before they are bulk loaded or downloaded.
type StorageConfig struct {
	// Type selects the adapter. Only "local" is supported.
	Type string `yaml:"type"`
	// BaseDir is the root directory for staged files. Empty means the OS temp directory.
	BaseDir string `yaml:"base_dir"`
	// Bucket is a sub directory under BaseDir.
	Bucket string `yaml:"bucket"`
}
