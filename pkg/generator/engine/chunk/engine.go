// Package chunk runs one generation chunk: it generates rows, stages them as a file and
// either bulk loads the file or registers it for a later SQL download.
package chunk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/adapter/storage"
	"github.com/tigerroll/wpgen/pkg/generator/component/item"
	"github.com/tigerroll/wpgen/pkg/generator/component/lorem"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/repository"
	"github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "chunk"

var runIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// Params are the Engine dependencies.
type Params struct {
	fx.In

	Store     database.Store
	Stager    storage.Stager
	Runs      repository.StagedRuns
	Generator config.GeneratorConfig
	System    config.SystemConfig
	Tables    model.Tables
	Recorder  metrics.MetricRecorder
	Tracer    metrics.Tracer
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRandSource makes every chunk draw from rng instead of a freshly seeded source.
func WithRandSource(rng *rand.Rand) Option {
	return func(e *Engine) { e.newRand = func() *rand.Rand { return rng } }
}

// WithRegistry replaces item.DefaultRegistry.
func WithRegistry(r item.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// Engine executes chunks one at a time.
type Engine struct {
	store    database.Store
	stager   storage.Stager
	runs     repository.StagedRuns
	registry item.Registry
	cfg      config.GeneratorConfig
	tables   model.Tables
	location *time.Location
	recorder metrics.MetricRecorder
	tracer   metrics.Tracer
	now      func() time.Time
	newRand  func() *rand.Rand

	mu sync.Mutex
}

// NewEngine creates an Engine.
func NewEngine(p Params, opts ...Option) *Engine {
	e := &Engine{
		store:    p.Store,
		stager:   p.Stager,
		runs:     p.Runs,
		registry: item.DefaultRegistry(),
		cfg:      p.Generator,
		tables:   p.Tables,
		location: p.System.Location(),
		recorder: p.Recorder,
		tracer:   p.Tracer,
		now:      time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the item registry the engine generates from.
func (e *Engine) Registry() item.Registry {
	return e.registry
}

// Run executes the chunk described by req. The returned report carries the chunk plan
// even when err is not nil, so callers can render a failure message.
func (e *Engine) Run(ctx context.Context, req model.GenerationRequest) (model.ChunkReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := req.Validate(); err != nil {
		return model.ChunkReport{}, exception.Validation(moduleName, err.Error(), err)
	}
	if !runIDPattern.MatchString(req.RunID) {
		return model.ChunkReport{}, exception.Validation(moduleName, fmt.Sprintf("invalid run id %q", req.RunID), nil)
	}

	report := model.ChunkReport{Plan: model.Plan(req), Total: req.Number}
	mode := metrics.ModeLoad
	if req.SQL {
		mode = metrics.ModeDownload
	}

	ctx, end := e.tracer.StartChunkSpan(ctx, req)
	defer end()

	logger.Debugf("Chunk %d/%d of %s: generating %d rows.", report.Plan.Step, report.Plan.Steps, req.ItemType, report.Plan.Count)
	if err := e.run(ctx, req, &report); err != nil {
		e.tracer.RecordError(ctx, moduleName, err)
		e.recorder.RecordChunkFailure(ctx, req.ItemType, exception.KindOf(err).String())
		logger.Errorf("Chunk %d/%d of %s failed: %v", report.Plan.Step, report.Plan.Steps, req.ItemType, err)
		return report, err
	}

	e.recorder.RecordChunk(ctx, req.ItemType, mode, report)
	logger.Infof("%s", report.Message())
	return report, nil
}

// Message renders the outcome of Run for the operator.
func Message(report model.ChunkReport, err error) string {
	if err != nil {
		return model.FailureMessage(report.Plan, exception.Diagnostics(err))
	}
	return report.Message()
}

func (e *Engine) run(ctx context.Context, req model.GenerationRequest, report *model.ChunkReport) error {
	source, err := e.source(ctx, req)
	if err != nil {
		return err
	}
	gen, err := e.registry.New(ctx, e.env(source), req)
	if err != nil {
		return err
	}

	start := e.now()
	var buf bytes.Buffer
	var w rowWriter
	if req.SQL {
		w = newSQLWriter(&buf, gen.Table(), gen.Fields())
	} else {
		w = newCSVWriter(&buf)
	}
	for i := 0; i < report.Plan.Count; i++ {
		if err := w.Write(gen.Generate()); err != nil {
			return exception.IO(moduleName, "failed to write generated rows to the buffer", err)
		}
	}
	if err := w.Flush(); err != nil {
		return exception.IO(moduleName, "failed to write generated rows to the buffer", err)
	}

	objectName := e.objectName(req, report.Plan)
	path, err := e.stager.Put(ctx, objectName, &buf)
	if err != nil {
		return err
	}
	report.Generate = e.now().Sub(start)
	e.tracer.RecordEvent(ctx, "staged", map[string]interface{}{"object": objectName, "rows": report.Plan.Count})

	start = e.now()
	if req.SQL {
		if err := e.register(ctx, req, gen, objectName, source.lastIssued(report.Plan.Count)); err != nil {
			if delErr := e.stager.Delete(ctx, objectName); delErr != nil {
				return multierror.Append(err, delErr)
			}
			return err
		}
		report.StagedFile = objectName
	} else {
		err := e.load(ctx, gen, path)
		if delErr := e.stager.Delete(ctx, objectName); delErr != nil {
			err = multierror.Append(err, delErr)
		}
		if err != nil {
			return err
		}
	}
	report.Store = e.now().Sub(start)
	return nil
}

// source returns the store as seen by the generators of req. A download-mode chunk that
// continues a staged run sees comment IDs issued by the earlier chunks as taken.
func (e *Engine) source(ctx context.Context, req model.GenerationRequest) (*runSource, error) {
	src := &runSource{Source: e.store}
	if !req.SQL || req.Index == 0 {
		return src, nil
	}
	run, err := e.runs.FindStagedRun(ctx, model.StagedRunKey(req.Principal.ID, req.RunID))
	if errors.Is(err, repository.ErrStagedRunNotFound) {
		return src, nil
	}
	if err != nil {
		return nil, err
	}
	src.floor = run.LastCommentID
	return src, nil
}

type runSource struct {
	database.Source
	floor int64
	base  int64
	used  bool
}

func (s *runSource) MaxCommentID(ctx context.Context) (int64, error) {
	id, err := s.Source.MaxCommentID(ctx)
	if err != nil {
		return 0, err
	}
	s.base = max(id, s.floor)
	s.used = true
	return s.base, nil
}

// lastIssued is the highest comment ID after count comments were generated, or 0 when
// the chunk produced no comments.
func (s *runSource) lastIssued(count int) int64 {
	if !s.used {
		return 0
	}
	return s.base + int64(count)
}

func (e *Engine) env(source database.Source) item.Env {
	rng := e.newRand()
	return item.Env{
		Source:   source,
		Lorem:    lorem.New(rng),
		Rand:     rng,
		Now:      e.now,
		Location: e.location,
		Config:   e.cfg,
		Tables:   e.tables,
	}
}

func (e *Engine) objectName(req model.GenerationRequest, plan model.ChunkPlan) string {
	if req.SQL {
		return fmt.Sprintf("%s/%06d.sql", runDir(req), plan.Step)
	}
	return fmt.Sprintf("chunks/%s.csv", uuid.NewString())
}

func runDir(req model.GenerationRequest) string {
	runID := req.RunID
	if runID == "" {
		runID = "default"
	}
	return fmt.Sprintf("runs/%d-%s", req.Principal.ID, runID)
}

// load bulk loads the staged file. LOAD DATA LOCAL is used when secure_file_priv
// restricts server side reads; local_infile is then switched on for the duration of the
// load and restored afterwards.
func (e *Engine) load(ctx context.Context, gen item.Generator, path string) (err error) {
	secure, err := e.store.SecureFilePriv(ctx)
	if err != nil {
		return err
	}
	local := secure != ""

	if local {
		restore, err := e.enableLocalInfile(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if rerr := restore(); rerr != nil {
				err = multierror.Append(err, rerr)
			}
		}()
	}

	rows, err := e.store.LoadFile(ctx, database.LoadSpec{
		Path:   path,
		Table:  gen.Table(),
		Fields: gen.Fields(),
		Local:  local,
	})
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d rows into %s.", rows, gen.Table())
	return nil
}

func (e *Engine) enableLocalInfile(ctx context.Context) (func() error, error) {
	prev, err := e.store.LocalInfile(ctx)
	if err != nil {
		return nil, err
	}
	if prev == "ON" {
		return func() error { return nil }, nil
	}
	if err := e.store.SetLocalInfile(ctx, "ON"); err != nil {
		return nil, err
	}
	return func() error {
		return e.store.SetLocalInfile(context.WithoutCancel(ctx), "OFF")
	}, nil
}

// register appends the staged fragment to the principal's run. The first chunk of a run
// discards whatever an earlier run left under the same key.
func (e *Engine) register(ctx context.Context, req model.GenerationRequest, gen item.Generator, objectName string, lastCommentID int64) error {
	key := model.StagedRunKey(req.Principal.ID, req.RunID)
	if req.Index == 0 {
		if err := e.discard(ctx, key, objectName); err != nil {
			return err
		}
	}
	_, err := e.runs.AppendStagedFile(ctx, model.StagedRun{
		Key:           key,
		Table:         gen.Table(),
		ItemType:      gen.Type(),
		Fields:        gen.Fields(),
		LastCommentID: lastCommentID,
	}, objectName)
	return err
}

func (e *Engine) discard(ctx context.Context, key, keep string) error {
	run, err := e.runs.FindStagedRun(ctx, key)
	if errors.Is(err, repository.ErrStagedRunNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var result error
	for _, f := range run.Files {
		if f == keep {
			continue
		}
		if err := e.stager.Delete(ctx, f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := e.runs.DeleteStagedRun(ctx, key); err != nil {
		result = multierror.Append(result, err)
	}
	if result == nil {
		logger.Debugf("Discarded staged run %s (%d files).", key, len(run.Files))
	}
	return result
}

// Advisory is a configuration notice shown before generation starts.
type Advisory struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Advisories inspects the staging area and the server variables the bulk load depends on.
func (e *Engine) Advisories(ctx context.Context) []Advisory {
	var out []Advisory
	add := func(kind exception.Kind, msg string) {
		out = append(out, Advisory{Kind: kind.String(), Message: msg})
	}

	probe, err := e.stager.Path("chunks/probe.csv")
	if err == nil {
		err = database.CheckLoadPath(probe)
	}
	if err != nil {
		add(exception.KindConfigurationMismatch,
			"The staging directory path contains characters that cannot be used in a bulk load statement. "+
				"Set storage.base_dir to a path without quotes or backslashes.")
	}

	secure, err := e.store.SecureFilePriv(ctx)
	if err != nil {
		add(exception.KindStorage, exception.UserMessage(err))
		return out
	}
	if secure == "" {
		return out
	}
	infile, err := e.store.LocalInfile(ctx)
	if err != nil {
		add(exception.KindStorage, exception.UserMessage(err))
		return out
	}
	if infile != "ON" {
		add(exception.KindConfigurationMismatch,
			"secure_file_priv is set, so chunks are loaded with LOAD DATA LOCAL, but local_infile is OFF. "+
				"It is switched on for every chunk, which needs the SYSTEM_VARIABLES_ADMIN privilege.")
	}
	return out
}
