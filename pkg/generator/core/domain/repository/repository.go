// Package repository declares the persistence ports for generator state that lives
// outside the content database.
package repository

import (
	"context"
	"errors"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

// ErrStagedRunNotFound is returned when no staged run exists under a key.
var ErrStagedRunNotFound = errors.New("staged run not found")

// Options persists the generator settings as raw strings.
type Options interface {
	// LoadOptions returns all stored options. A fresh store returns an empty map.
	LoadOptions(ctx context.Context) (map[string]string, error)
	// SaveOptions merges options into the store.
	SaveOptions(ctx context.Context, options map[string]string) error
}

// StagedRuns keeps the registry of staged SQL fragments per run.
type StagedRuns interface {
	// AppendStagedFile adds file to the run under run.Key, creating the run from run's
	// descriptive fields when absent.
	AppendStagedFile(ctx context.Context, run model.StagedRun, file string) (*model.StagedRun, error)
	// FindStagedRun returns ErrStagedRunNotFound when key is unknown.
	FindStagedRun(ctx context.Context, key string) (*model.StagedRun, error)
	DeleteStagedRun(ctx context.Context, key string) error
}

// Repository is the full state store.
type Repository interface {
	Options
	StagedRuns
	Close() error
}
