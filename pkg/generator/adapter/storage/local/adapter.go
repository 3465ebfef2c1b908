// Package local provides a local file system implementation of storage.Stager.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/storage"
	storageConfig "github.com/tigerroll/wpgen/pkg/generator/adapter/storage/config"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const (
	// ProviderType defines the type identifier for this adapter.
	ProviderType = "local"

	moduleName = "storage"
)

// Adapter stages files below a base directory.
type Adapter struct {
	cfg  storageConfig.StorageConfig
	root string
}

// Verify that Adapter implements storage.Stager.
var _ storage.Stager = (*Adapter)(nil)

// NewAdapter validates cfg and creates the staging directory if it doesn't exist.
// An empty BaseDir selects a "wpgen" directory under the OS temp directory.
func NewAdapter(cfg storageConfig.StorageConfig) (*Adapter, error) {
	if cfg.Type != "" && cfg.Type != ProviderType {
		return nil, exception.ConfigurationMismatch(moduleName,
			fmt.Sprintf("storage type mismatch: expected '%s', got '%s'", ProviderType, cfg.Type))
	}
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "wpgen")
	}
	root, err := filepath.Abs(filepath.Join(baseDir, cfg.Bucket))
	if err != nil {
		return nil, exception.IO(moduleName, fmt.Sprintf("failed to resolve staging directory '%s'", baseDir), err)
	}

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, exception.IO(moduleName, fmt.Sprintf("failed to create staging directory '%s'", root), err)
		}
	case err != nil:
		return nil, exception.IO(moduleName, fmt.Sprintf("failed to stat staging directory '%s'", root), err)
	case !info.IsDir():
		return nil, exception.ConfigurationMismatch(moduleName, fmt.Sprintf("staging path '%s' is not a directory", root))
	}

	logger.Debugf("Local staging directory: %s", root)
	return &Adapter{cfg: cfg, root: root}, nil
}

// Type returns "local".
func (a *Adapter) Type() string {
	return ProviderType
}

// Root returns the absolute staging directory.
func (a *Adapter) Root() string {
	return a.root
}

// Put implements storage.Stager.
func (a *Adapter) Put(ctx context.Context, objectName string, data io.Reader) (string, error) {
	fullPath, err := a.Path(objectName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", exception.IO(moduleName, fmt.Sprintf("failed to create directory for '%s'", objectName), err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", exception.IO(moduleName, fmt.Sprintf("failed to create file '%s'", fullPath), err)
	}
	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(fullPath)
		return "", exception.IO(moduleName, fmt.Sprintf("failed to write file '%s'", fullPath), err)
	}
	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return "", exception.IO(moduleName, fmt.Sprintf("failed to close file '%s'", fullPath), err)
	}
	logger.Debugf("Staged '%s'.", fullPath)
	return fullPath, nil
}

// Open implements storage.Stager.
func (a *Adapter) Open(ctx context.Context, objectName string) (io.ReadCloser, error) {
	fullPath, err := a.Path(objectName)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, exception.IO(moduleName, fmt.Sprintf("failed to open file '%s'", fullPath), err)
	}
	return file, nil
}

// Delete implements storage.Stager.
func (a *Adapter) Delete(ctx context.Context, objectName string) error {
	fullPath, err := a.Path(objectName)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warnf("Attempted to delete non-existent staged file '%s'.", fullPath)
			return nil
		}
		return exception.IO(moduleName, fmt.Sprintf("failed to delete file '%s'", fullPath), err)
	}
	logger.Debugf("Deleted staged file '%s'.", fullPath)
	return nil
}

// Path implements storage.Stager. Names resolving outside the staging directory are rejected.
func (a *Adapter) Path(objectName string) (string, error) {
	if objectName == "" {
		return "", exception.Validation(moduleName, "object name must not be empty", nil)
	}
	fullPath := filepath.Join(a.root, filepath.FromSlash(objectName))
	if fullPath != a.root && !strings.HasPrefix(fullPath, a.root+string(filepath.Separator)) {
		return "", exception.Validation(moduleName,
			fmt.Sprintf("resolved path '%s' is outside of the staging directory '%s'", fullPath, a.root), nil)
	}
	return fullPath, nil
}
