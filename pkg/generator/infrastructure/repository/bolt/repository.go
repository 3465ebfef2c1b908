// Package bolt implements the state repository on a bbolt file.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/repository"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "state"

var (
	optionsBucket    = []byte("options")
	stagedRunsBucket = []byte("staged_runs")
)

// Repository implements repository.Repository using bbolt.
type Repository struct {
	db *bolt.DB
}

var _ repository.Repository = (*Repository)(nil)

// Open opens (or creates) the bbolt file at cfg.Path and ensures the buckets exist.
func Open(cfg config.StateConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, exception.Validation(moduleName, "state path must be set", nil)
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, exception.IO(moduleName, fmt.Sprintf("failed to create state directory '%s'", dir), err)
		}
	}

	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, exception.IO(moduleName, fmt.Sprintf("failed to open bbolt database '%s'", cfg.Path), err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{optionsBucket, stagedRunsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, exception.IO(moduleName, "failed to initialize state buckets", err)
	}

	logger.Debugf("State store opened at %s", cfg.Path)
	return &Repository{db: db}, nil
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// LoadOptions implements repository.Options.
func (r *Repository) LoadOptions(ctx context.Context) (map[string]string, error) {
	options := make(map[string]string)
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(optionsBucket).ForEach(func(k, v []byte) error {
			options[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, exception.IO(moduleName, "failed to load options", err)
	}
	return options, nil
}

// SaveOptions implements repository.Options.
func (r *Repository) SaveOptions(ctx context.Context, options map[string]string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(optionsBucket)
		for k, v := range options {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return exception.IO(moduleName, "failed to save options", err)
	}
	return nil
}

// AppendStagedFile implements repository.StagedRuns.
func (r *Repository) AppendStagedFile(ctx context.Context, run model.StagedRun, file string) (*model.StagedRun, error) {
	var stored model.StagedRun
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(stagedRunsBucket)
		if v := b.Get([]byte(run.Key)); v != nil {
			if err := json.Unmarshal(v, &stored); err != nil {
				return fmt.Errorf("failed to decode staged run %s: %w", run.Key, err)
			}
			if stored.ItemType != run.ItemType {
				return exception.Validation(moduleName,
					fmt.Sprintf("staged run %s holds %s items, not %s", run.Key, stored.ItemType, run.ItemType), nil)
			}
		} else {
			stored = run
			stored.Files = nil
		}
		// A retried chunk rewrites the same step-indexed object.
		if !slices.Contains(stored.Files, file) {
			stored.Files = append(stored.Files, file)
		}
		if run.LastCommentID > stored.LastCommentID {
			stored.LastCommentID = run.LastCommentID
		}

		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		return b.Put([]byte(run.Key), data)
	})
	if err != nil {
		if exception.KindOf(err) == exception.KindValidation {
			return nil, err
		}
		return nil, exception.IO(moduleName, "failed to register staged file", err)
	}
	return &stored, nil
}

// FindStagedRun implements repository.StagedRuns.
func (r *Repository) FindStagedRun(ctx context.Context, key string) (*model.StagedRun, error) {
	var run *model.StagedRun
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(stagedRunsBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		run = &model.StagedRun{}
		return json.Unmarshal(v, run)
	})
	if err != nil {
		return nil, exception.IO(moduleName, fmt.Sprintf("failed to read staged run %s", key), err)
	}
	if run == nil {
		return nil, repository.ErrStagedRunNotFound
	}
	return run, nil
}

// DeleteStagedRun implements repository.StagedRuns. Deleting an unknown key is a no-op.
func (r *Repository) DeleteStagedRun(ctx context.Context, key string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stagedRunsBucket).Delete([]byte(key))
	})
	if err != nil {
		return exception.IO(moduleName, fmt.Sprintf("failed to delete staged run %s", key), err)
	}
	return nil
}
