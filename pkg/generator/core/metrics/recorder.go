package metrics

import (
	"context"
	"time"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

// Mode labels how a chunk was stored.
type Mode string

const (
	ModeLoad     Mode = "load"
	ModeDownload Mode = "download"
)

// MetricRecorder is an abstract interface for recording generator metrics.
type MetricRecorder interface {
	// RecordChunk records a successful chunk: rows generated and the time spent in the
	// generate and store phases.
	RecordChunk(ctx context.Context, itemType model.ItemType, mode Mode, report model.ChunkReport)

	// RecordChunkFailure records a failed chunk. kind is the error kind (e.g. "storage").
	RecordChunkFailure(ctx context.Context, itemType model.ItemType, kind string)

	// RecordDeletion records the outcome of the swap for one table.
	RecordDeletion(ctx context.Context, table string, deleted bool)

	// RecordDuration records the execution time of a named operation.
	//
	// tags: additional labels, e.g. `{"status": "success"}`.
	RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string)
}
