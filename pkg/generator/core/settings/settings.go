// Package settings resolves the generation settings from the persisted options and the
// submitted form.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/repository"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/configbinder"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

const (
	// OptionKey prefixes every settings field name in submitted forms.
	OptionKey = "wpgen_settings"

	// DefaultChunkSize is the number of items generated per request unless configured.
	DefaultChunkSize = 50 * 1000

	moduleName = "settings"
)

var optionField = regexp.MustCompile(regexp.QuoteMeta(OptionKey) + `\[(.+)]`)

// Settings are the user facing generation options.
type Settings struct {
	PostType  model.ItemType `yaml:"post_type" validate:"required,oneof=post page comment user"`
	Number    int            `yaml:"number" validate:"gte=0"`
	ChunkSize int            `yaml:"chunk_size" validate:"gte=1"`
	// SQL selects download mode: no database writes, a SQL file is produced instead.
	SQL bool `yaml:"sql"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{
		PostType:  model.ItemPost,
		Number:    0,
		ChunkSize: DefaultChunkSize,
	}
}

// Options renders s as stored option strings. Booleans are stored as "yes"/"no".
func (s Settings) Options() map[string]string {
	sql := "no"
	if s.SQL {
		sql = "yes"
	}
	return map[string]string{
		"post_type":  string(s.PostType),
		"number":     strconv.Itoa(s.Number),
		"chunk_size": strconv.Itoa(s.ChunkSize),
		"sql":        sql,
	}
}

// Request builds the generation request for the chunk starting at index.
func (s Settings) Request(index int, principal model.Principal, runID string) model.GenerationRequest {
	return model.GenerationRequest{
		ItemType:  s.PostType,
		Number:    s.Number,
		ChunkSize: s.ChunkSize,
		Index:     index,
		SQL:       s.SQL,
		RunID:     runID,
		Principal: principal,
	}
}

// FormField is one entry of a serialized form.
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseFormData decodes a JSON array of form fields and keeps the values of fields named
// OptionKey[<key>], indexed by <key>. Other fields are ignored.
func ParseFormData(data string) (map[string]string, error) {
	var fields []FormField
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, exception.Validation(moduleName, "malformed form data", err)
	}
	options := make(map[string]string, len(fields))
	for _, f := range fields {
		if m := optionField.FindStringSubmatch(f.Name); m != nil {
			options[m[1]] = f.Value
		}
	}
	return options, nil
}

// Bind overlays raw option strings on Defaults and validates the result.
func Bind(raw map[string]string) (Settings, error) {
	s := Defaults()
	if err := configbinder.BindStrings(raw, &s); err != nil {
		return Settings{}, exception.Validation(moduleName, "invalid settings", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return Settings{}, exception.Validation(moduleName, fmt.Sprintf("invalid settings: %v", err), err)
	}
	return s, nil
}

// Store persists settings through a repository.Options.
type Store struct {
	repo repository.Options
}

// NewStore creates a Store.
func NewStore(repo repository.Options) *Store {
	return &Store{repo: repo}
}

// Load returns the stored settings, falling back to defaults for missing keys.
func (s *Store) Load(ctx context.Context) (Settings, error) {
	raw, err := s.repo.LoadOptions(ctx)
	if err != nil {
		return Settings{}, err
	}
	return Bind(raw)
}

// Save persists settings.
func (s *Store) Save(ctx context.Context, settings Settings) error {
	return s.repo.SaveOptions(ctx, settings.Options())
}

// Resolve overlays submitted option values on the stored ones, validates the result and
// persists it.
func (s *Store) Resolve(ctx context.Context, submitted map[string]string) (Settings, error) {
	raw, err := s.repo.LoadOptions(ctx)
	if err != nil {
		return Settings{}, err
	}
	if raw == nil {
		raw = make(map[string]string, len(submitted))
	}
	for k, v := range submitted {
		raw[k] = v
	}
	settings, err := Bind(raw)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Save(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
