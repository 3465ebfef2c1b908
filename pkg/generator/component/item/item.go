// Package item holds the per-type row generators.
//
// A Generator is built for one chunk: its constructor reads whatever it needs from the
// database (random posts, users, the last comment ID) and Generate then produces rows
// without further I/O.
package item

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/component/lorem"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

const moduleName = "item"

// Generator produces rows of one item type.
type Generator interface {
	Type() model.ItemType
	// Table returns the prefixed destination table.
	Table() string
	// MarkerField names the column that carries model.Marker.
	MarkerField() string
	// Fields lists destination columns in the order Row.Values uses.
	Fields() []string
	Generate() Row
}

// Env carries the collaborators a constructor may use.
type Env struct {
	Source   database.Source
	Lorem    *lorem.Engine
	Rand     *rand.Rand
	Now      func() time.Time
	Location *time.Location
	Config   config.GeneratorConfig
	Tables   model.Tables
}

// Shift holds the time window of one chunk.
type Shift struct {
	// Initial is how far before now the chunk's first date lies, in seconds.
	Initial int64
	// Max bounds a single random step between two consecutive dates.
	Max int64
}

// NewShift scales the configured initial shift to the chunk at req.Index, so that
// consecutive chunks continue where the previous one stopped.
func NewShift(initial int64, req model.GenerationRequest) Shift {
	total := int64(max(req.Number, 1))
	remaining := total - int64(req.Index)
	return Shift{
		Initial: initial * remaining / total,
		Max:     initial / total,
	}
}

// Constructor builds a Generator for one chunk.
type Constructor func(ctx context.Context, env Env, req model.GenerationRequest) (Generator, error)

// Registration describes a registered item type.
type Registration struct {
	// Table is the unprefixed table name.
	Table       string
	MarkerField string
	New         Constructor
}

// Registry maps item types to their registration.
type Registry map[model.ItemType]Registration

// DefaultRegistry returns the registry of all built-in item types.
func DefaultRegistry() Registry {
	return Registry{
		model.ItemPost:    {Table: "posts", MarkerField: "guid", New: NewPost},
		model.ItemPage:    {Table: "posts", MarkerField: "guid", New: NewPage},
		model.ItemComment: {Table: "comments", MarkerField: "comment_author_url", New: NewComment},
		model.ItemUser:    {Table: "users", MarkerField: "user_url", New: NewUser},
	}
}

// New builds the generator registered for req.ItemType.
func (r Registry) New(ctx context.Context, env Env, req model.GenerationRequest) (Generator, error) {
	reg, ok := r[req.ItemType]
	if !ok {
		return nil, exception.Validation(moduleName, fmt.Sprintf("unknown item type %q", req.ItemType), nil)
	}
	return reg.New(ctx, env, req)
}

// Types returns the registered types in a stable order.
func (r Registry) Types() []model.ItemType {
	types := make([]model.ItemType, 0, len(r))
	for t := range r {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// base carries the descriptive part every generator shares.
type base struct {
	itemType    model.ItemType
	table       string
	markerField string
	fields      []string
}

func (b base) Type() model.ItemType { return b.itemType }
func (b base) Table() string        { return b.table }
func (b base) MarkerField() string  { return b.markerField }
func (b base) Fields() []string     { return b.fields }

func principalRef(p model.Principal) database.UserRef {
	return database.UserRef{ID: p.ID, Login: p.Login, DisplayName: p.DisplayName, Email: p.Email}
}

func (e Env) location() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}
