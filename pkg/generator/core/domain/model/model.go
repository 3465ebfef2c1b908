// Package model defines the value types shared by the generation pipeline.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Marker prefixes the marker field of every generated row. Deletion relies on it.
const Marker = "https://wpgen.local/"

// ItemType names a kind of generated content.
type ItemType string

const (
	ItemPost    ItemType = "post"
	ItemPage    ItemType = "page"
	ItemComment ItemType = "comment"
	ItemUser    ItemType = "user"
)

// ItemTypes lists the supported item types in display order.
func ItemTypes() []ItemType {
	return []ItemType{ItemPost, ItemPage, ItemComment, ItemUser}
}

// ParseItemType validates s as an item type.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ItemTypes() {
		if t == known {
			return t, nil
		}
	}
	names := make([]string, 0, len(ItemTypes()))
	for _, known := range ItemTypes() {
		names = append(names, string(known))
	}
	sort.Strings(names)
	return "", fmt.Errorf("unknown item type %q (expected one of %s)", s, strings.Join(names, ", "))
}

// Principal is the authenticated administrator a request runs for.
type Principal struct {
	ID          int64    `json:"id"`
	Login       string   `json:"login"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	Caps        []string `json:"caps,omitempty"`
}

// Can reports whether the principal holds capability.
func (p Principal) Can(capability string) bool {
	for _, c := range p.Caps {
		if c == capability {
			return true
		}
	}
	return false
}

// GenerationRequest describes one chunk call.
type GenerationRequest struct {
	ItemType  ItemType
	Number    int
	ChunkSize int
	Index     int
	SQL       bool
	RunID     string
	Principal Principal
	Extra     map[string]string
}

// Validate checks the request invariants: a positive chunk size and an index inside
// [0, Number).
func (r GenerationRequest) Validate() error {
	if _, err := ParseItemType(string(r.ItemType)); err != nil {
		return err
	}
	if r.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", r.ChunkSize)
	}
	if r.Number <= 0 {
		return fmt.Errorf("number of items must be positive, got %d", r.Number)
	}
	if r.Index < 0 || r.Index >= r.Number {
		return fmt.Errorf("index %d is outside [0, %d)", r.Index, r.Number)
	}
	return nil
}

// ChunkPlan is the work of one chunk call.
type ChunkPlan struct {
	Count int // Rows to generate in this chunk.
	Step  int // 1-based chunk number.
	Steps int // Total number of chunks.
	// Generated is the running total reported once this chunk succeeds.
	Generated int
}

// Plan computes the chunk plan for r. r must be valid.
func Plan(r GenerationRequest) ChunkPlan {
	return ChunkPlan{
		Count:     min(r.Number-r.Index, r.ChunkSize),
		Step:      r.Index/r.ChunkSize + 1,
		Steps:     (r.Number + r.ChunkSize - 1) / r.ChunkSize,
		Generated: min((r.Index/r.ChunkSize+1)*r.ChunkSize, r.Number),
	}
}

// Tables resolves content table names for a given prefix.
type Tables struct {
	Prefix string
}

// Name returns the prefixed table name for base (e.g. "posts").
func (t Tables) Name(base string) string {
	return t.Prefix + base
}

func (t Tables) Posts() string    { return t.Name("posts") }
func (t Tables) Comments() string { return t.Name("comments") }
func (t Tables) Users() string    { return t.Name("users") }
