// Package storage defines the staging area chunk files are written to before they are
// bulk loaded into the database or concatenated into a SQL download.
package storage

import (
	"context"
	"io"
)

// Stager stores staged chunk files by object name.
type Stager interface {
	// Put writes data under objectName and returns the absolute path of the stored file.
	// Intermediate directories are created as needed.
	Put(ctx context.Context, objectName string, data io.Reader) (string, error)
	// Open returns a reader over objectName. The caller closes it.
	Open(ctx context.Context, objectName string) (io.ReadCloser, error)
	// Delete removes objectName. A missing object is not an error.
	Delete(ctx context.Context, objectName string) error
	// Path resolves objectName to its absolute path without touching the file.
	Path(objectName string) (string, error)
	// Type returns the adapter type.
	Type() string
}
