// Package deletion removes every generated row by rebuilding the affected tables without
// the rows that carry the generator marker.
package deletion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/component/item"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "deletion"

const (
	MessageDeleted = "All generated items have been deleted."
	MessageNothing = "Nothing to delete."
)

// Result is the outcome of a deletion.
type Result struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

// target is one table and the column holding the marker.
type target struct {
	itemType model.ItemType
	table    string
	field    string
}

// Params are the Engine dependencies.
type Params struct {
	fx.In

	Store    database.Maintainer
	Tables   model.Tables
	Recorder metrics.MetricRecorder
	Tracer   metrics.Tracer
}

// Engine deletes generated items.
type Engine struct {
	store    database.Maintainer
	tables   model.Tables
	registry item.Registry
	recorder metrics.MetricRecorder
	tracer   metrics.Tracer

	mu sync.Mutex
}

// NewEngine creates an Engine over the default item registry.
func NewEngine(p Params) *Engine {
	return NewEngineWithRegistry(p, item.DefaultRegistry())
}

// NewEngineWithRegistry creates an Engine over registry.
func NewEngineWithRegistry(p Params, registry item.Registry) *Engine {
	return &Engine{
		store:    p.Store,
		tables:   p.Tables,
		registry: registry,
		recorder: p.Recorder,
		tracer:   p.Tracer,
	}
}

// targets lists the distinct (table, field) pairs of the registered types, built-in
// types first. Posts and pages share one table, so it is swapped once.
func (e *Engine) targets() []target {
	types := make([]model.ItemType, 0, len(e.registry))
	for _, t := range model.ItemTypes() {
		if _, ok := e.registry[t]; ok {
			types = append(types, t)
		}
	}
	for _, t := range e.registry.Types() {
		if _, err := model.ParseItemType(string(t)); err != nil {
			types = append(types, t)
		}
	}

	seen := make(map[[2]string]bool)
	var out []target
	for _, t := range types {
		reg := e.registry[t]
		tg := target{itemType: t, table: e.tables.Name(reg.Table), field: reg.MarkerField}
		key := [2]string{tg.table, tg.field}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tg)
	}
	return out
}

// Run deletes every row whose marker field starts with model.Marker. Tables without
// generated rows are left untouched. A failing table does not stop the others; all
// failures are returned together as a StorageFailure.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, end := e.tracer.StartSpan(ctx, "wpgen.delete")
	defer end()
	start := time.Now()

	var result Result
	var errs error
	for _, tg := range e.targets() {
		deleted, err := e.swap(ctx, tg)
		if err != nil {
			errs = multierror.Append(errs, exception.Storage(moduleName,
				fmt.Sprintf("Error deleting generated items of type %s", tg.itemType), err))
			continue
		}
		result.Deleted = result.Deleted || deleted
	}

	status := "success"
	if errs != nil {
		status = "failure"
		e.tracer.RecordError(ctx, moduleName, errs)
	}
	e.recorder.RecordDuration(ctx, "delete", time.Since(start), map[string]string{"status": status})
	if errs != nil {
		logger.Errorf("Deletion failed: %v", errs)
		return result, errs
	}

	result.Message = MessageNothing
	if result.Deleted {
		result.Message = MessageDeleted
	}
	logger.Infof("%s", result.Message)
	return result, nil
}

func (e *Engine) swap(ctx context.Context, tg target) (bool, error) {
	found, err := e.store.HasMarkedRows(ctx, tg.table, tg.field, model.Marker)
	if err != nil {
		return false, err
	}
	if !found {
		logger.Debugf("No generated rows in %s.", tg.table)
		e.recorder.RecordDeletion(ctx, tg.table, false)
		return false, nil
	}
	if err := e.store.SwapWithout(ctx, tg.table, tg.field, model.Marker); err != nil {
		return false, err
	}
	logger.Infof("Removed generated rows from %s.", tg.table)
	e.recorder.RecordDeletion(ctx, tg.table, true)
	return true, nil
}
