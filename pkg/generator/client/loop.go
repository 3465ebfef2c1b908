// Package client drives a whole generation or deletion run: it issues the chunks one
// after another and then runs the follow-up maintenance operations.
package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/settings"
	"github.com/tigerroll/wpgen/pkg/generator/engine/chunk"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const (
	MessageNothingToDo   = "Nothing to do."
	MessageGenerating    = "Generating items..."
	MessageDeleting      = "Deleting generated items..."
	MessageUpdatingCount = "Updating comment counts..."
)

// Sink receives progress messages.
type Sink func(message string)

// Chunks runs one chunk.
type Chunks interface {
	Run(ctx context.Context, req model.GenerationRequest) (model.ChunkReport, error)
}

// Maintenance runs the follow-up operations.
type Maintenance interface {
	UpdateCommentCounts(ctx context.Context) (string, error)
	CacheFlush(ctx context.Context) (string, error)
}

// Deleter removes generated items.
type Deleter interface {
	Run(ctx context.Context) (deletion.Result, error)
}

// Dumper streams a staged SQL run.
type Dumper interface {
	Write(ctx context.Context, w io.Writer, key string) error
}

// Params are the Loop dependencies.
type Params struct {
	fx.In

	Chunks      Chunks
	Maintenance Maintenance
	Deleter     Deleter
	Dumper      Dumper
}

// Options configure one run.
type Options struct {
	Principal model.Principal
	// RunID names the staged SQL run. A random one is used when empty.
	RunID string
	// Download receives the SQL dump in SQL mode.
	Download io.Writer
}

// Summary describes a finished run.
type Summary struct {
	Chunks int
	Failed bool
	Total  time.Duration
}

// Loop issues chunks sequentially.
type Loop struct {
	chunks      Chunks
	maintenance Maintenance
	deleter     Deleter
	dumper      Dumper
	sink        Sink
	now         func() time.Time
}

// NewLoop creates a Loop that reports to sink.
func NewLoop(p Params, sink Sink) *Loop {
	if sink == nil {
		sink = func(message string) { logger.Infof("%s", message) }
	}
	return &Loop{
		chunks:      p.Chunks,
		maintenance: p.Maintenance,
		deleter:     p.Deleter,
		dumper:      p.Dumper,
		sink:        sink,
		now:         time.Now,
	}
}

// Run generates s.Number items in chunks of s.ChunkSize. It stops at the first failed
// chunk. The comment counts are reconciled after comments and the object cache is
// flushed in every case; in SQL mode a complete run is then written to opts.Download.
// The returned error is the first failure.
func (l *Loop) Run(ctx context.Context, s settings.Settings, opts Options) (Summary, error) {
	var summary Summary
	if s.Number <= 0 {
		l.sink(MessageNothingToDo)
		return summary, nil
	}
	if s.SQL && opts.Download == nil {
		return summary, exception.Validation("client", "SQL mode needs a download destination", nil)
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	start := l.now()
	l.sink(MessageGenerating)

	var first error
	for index := 0; index < s.Number; index += s.ChunkSize {
		report, err := l.chunks.Run(ctx, s.Request(index, opts.Principal, opts.RunID))
		summary.Chunks++
		l.sink(chunk.Message(report, err))
		if err != nil {
			first = err
			summary.Failed = true
			break
		}
	}

	if s.PostType == model.ItemComment {
		first = firstOf(first, l.updateCommentCounts(ctx))
	}
	first = firstOf(first, l.step(ctx, l.maintenance.CacheFlush))

	summary.Total = l.now().Sub(start)
	l.sink(totalTime(summary.Total))

	if s.SQL {
		if summary.Failed {
			logger.Warnf("Run %s failed; the SQL dump is not downloaded.", opts.RunID)
			return summary, first
		}
		key := model.StagedRunKey(opts.Principal.ID, opts.RunID)
		if err := l.dumper.Write(ctx, opts.Download, key); err != nil {
			l.sink(exception.Diagnostics(err))
			first = firstOf(first, err)
		}
	}
	return summary, first
}

// Delete removes every generated item, then reconciles the comment counts and flushes
// the object cache.
func (l *Loop) Delete(ctx context.Context) (Summary, error) {
	var summary Summary
	start := l.now()
	l.sink(MessageDeleting)

	result, err := l.deleter.Run(ctx)
	if err != nil {
		summary.Failed = true
		l.sink(exception.Diagnostics(err) + ".")
	} else {
		l.sink(result.Message)
	}

	err = firstOf(err, l.updateCommentCounts(ctx))
	err = firstOf(err, l.step(ctx, l.maintenance.CacheFlush))

	summary.Total = l.now().Sub(start)
	l.sink(totalTime(summary.Total))
	return summary, err
}

func (l *Loop) updateCommentCounts(ctx context.Context) error {
	l.sink(MessageUpdatingCount)
	return l.step(ctx, l.maintenance.UpdateCommentCounts)
}

func (l *Loop) step(ctx context.Context, op func(context.Context) (string, error)) error {
	msg, err := op(ctx)
	if err != nil {
		l.sink(exception.Diagnostics(err))
		return err
	}
	l.sink(msg)
	return nil
}

func totalTime(d time.Duration) string {
	return fmt.Sprintf("Total time used: %.3f sec.", d.Seconds())
}

func firstOf(first, err error) error {
	if first != nil {
		return first
	}
	return err
}
