// Package database defines the relational store port used by the generators, the
// chunk engine and the deletion engine.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

// PostRef is an existing post a comment may be attached to.
// Dates are kept as the raw DATETIME strings the server returned.
type PostRef struct {
	ID          int64  `gorm:"column:ID"`
	PostDate    string `gorm:"column:post_date"`
	PostDateGMT string `gorm:"column:post_date_gmt"`
}

// UserRef is an existing user a post or comment may be attributed to.
type UserRef struct {
	ID          int64  `gorm:"column:ID"`
	Login       string `gorm:"column:user_login"`
	DisplayName string `gorm:"column:display_name"`
	Email       string `gorm:"column:user_email"`
}

// LoadSpec describes one bulk load.
type LoadSpec struct {
	Path   string
	Table  string
	Fields []string
	// Local selects LOAD DATA LOCAL INFILE, reading the file through the client connection.
	Local bool
}

// Source is the read side used while preparing a generation run.
type Source interface {
	// RandomPosts returns up to limit random posts of postType.
	RandomPosts(ctx context.Context, postType string, limit int) ([]PostRef, error)
	// RandomUsers returns up to limit random users.
	RandomUsers(ctx context.Context, limit int) ([]UserRef, error)
	// MaxCommentID returns the highest comment ID, or 0 for an empty table.
	MaxCommentID(ctx context.Context) (int64, error)
	// UserLogins returns every existing user_login.
	UserLogins(ctx context.Context) ([]string, error)
}

// Loader performs bulk loads and the server variable handling around them.
type Loader interface {
	// SecureFilePriv returns the value of the secure_file_priv server variable.
	SecureFilePriv(ctx context.Context) (string, error)
	// LocalInfile returns the value of the local_infile server variable ("ON" or "OFF").
	LocalInfile(ctx context.Context) (string, error)
	// SetLocalInfile sets the global local_infile server variable.
	SetLocalInfile(ctx context.Context, value string) error
	// LoadFile bulk loads a '|' separated, '"' enclosed file and returns the affected row count.
	LoadFile(ctx context.Context, spec LoadSpec) (int64, error)
}

// Maintainer covers destructive and reconciling operations.
type Maintainer interface {
	// HasMarkedRows reports whether any row of table has field starting with marker.
	HasMarkedRows(ctx context.Context, table, field, marker string) (bool, error)
	// SwapWithout rebuilds table without the rows whose field starts with marker. The
	// swap is not atomic: only failures before the original table is dropped are harmless.
	SwapWithout(ctx context.Context, table, field, marker string) error
	// UpdateCommentCounts reconciles posts.comment_count with the comments table.
	UpdateCommentCounts(ctx context.Context) error
}

// Store is the full relational store port.
type Store interface {
	Source
	Loader
	Maintainer
	Close() error
}

// CheckLoadPath rejects paths that cannot be inlined safely into a LOAD DATA statement.
func CheckLoadPath(path string) error {
	if path == "" || strings.ContainsAny(path, "'\\\"\x00\n\r") {
		return exception.ConfigurationMismatch("database",
			fmt.Sprintf("staging path %q contains characters that cannot be used in a bulk load statement", path))
	}
	return nil
}
