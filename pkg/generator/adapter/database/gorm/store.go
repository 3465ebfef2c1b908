package gorm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "database"

// identifierPattern guards table and column names that have to be inlined into SQL.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Store implements database.Store over a GORM MySQL connection.
type Store struct {
	db     *gorm.DB
	tables model.Tables
}

// Verify that Store implements the database.Store interface.
var _ database.Store = (*Store)(nil)

// NewStore wraps db. tables resolves the prefixed content table names.
func NewStore(db *gorm.DB, tables model.Tables) *Store {
	return &Store{db: db, tables: tables}
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RandomPosts implements database.Source.
func (s *Store) RandomPosts(ctx context.Context, postType string, limit int) ([]database.PostRef, error) {
	posts := s.tables.Posts()
	query := fmt.Sprintf(
		"SELECT p.ID, p.post_date, p.post_date_gmt FROM %s AS p "+
			"INNER JOIN (SELECT ID FROM %s WHERE post_type = ? ORDER BY RAND() LIMIT ?) AS t ON p.ID = t.ID",
		quote(posts), quote(posts))

	var refs []database.PostRef
	if err := s.db.WithContext(ctx).Raw(query, postType, limit).Scan(&refs).Error; err != nil {
		return nil, exception.Storage(moduleName, "failed to sample posts", err)
	}
	return refs, nil
}

// RandomUsers implements database.Source.
func (s *Store) RandomUsers(ctx context.Context, limit int) ([]database.UserRef, error) {
	users := s.tables.Users()
	query := fmt.Sprintf(
		"SELECT u.ID, u.user_login, u.display_name, u.user_email FROM %s AS u "+
			"INNER JOIN (SELECT ID FROM %s ORDER BY RAND() LIMIT ?) AS t ON u.ID = t.ID",
		quote(users), quote(users))

	var refs []database.UserRef
	if err := s.db.WithContext(ctx).Raw(query, limit).Scan(&refs).Error; err != nil {
		return nil, exception.Storage(moduleName, "failed to sample users", err)
	}
	return refs, nil
}

// MaxCommentID implements database.Source.
func (s *Store) MaxCommentID(ctx context.Context) (int64, error) {
	var ids []int64
	query := fmt.Sprintf("SELECT comment_ID FROM %s ORDER BY comment_ID DESC LIMIT 1", quote(s.tables.Comments()))
	if err := s.db.WithContext(ctx).Raw(query).Scan(&ids).Error; err != nil {
		return 0, exception.Storage(moduleName, "failed to read the last comment ID", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// UserLogins implements database.Source.
func (s *Store) UserLogins(ctx context.Context) ([]string, error) {
	var logins []string
	if err := s.db.WithContext(ctx).Table(s.tables.Users()).Pluck("user_login", &logins).Error; err != nil {
		return nil, exception.Storage(moduleName, "failed to read user logins", err)
	}
	return logins, nil
}

type serverVariable struct {
	Name  string `gorm:"column:Variable_name"`
	Value string `gorm:"column:Value"`
}

func (s *Store) variable(ctx context.Context, name string) (string, error) {
	var rows []serverVariable
	if err := s.db.WithContext(ctx).Raw("SHOW VARIABLES LIKE ?", name).Scan(&rows).Error; err != nil {
		return "", exception.Storage(moduleName, fmt.Sprintf("failed to read server variable %s", name), err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Value, nil
}

// SecureFilePriv implements database.Loader.
func (s *Store) SecureFilePriv(ctx context.Context) (string, error) {
	return s.variable(ctx, "secure_file_priv")
}

// LocalInfile implements database.Loader.
func (s *Store) LocalInfile(ctx context.Context) (string, error) {
	return s.variable(ctx, "local_infile")
}

// SetLocalInfile implements database.Loader. value must be "ON" or "OFF".
func (s *Store) SetLocalInfile(ctx context.Context, value string) error {
	value = strings.ToUpper(value)
	if value != "ON" && value != "OFF" {
		return exception.Validation(moduleName, fmt.Sprintf("invalid local_infile value %q", value), nil)
	}
	if err := s.db.WithContext(ctx).Exec("SET GLOBAL local_infile = '" + value + "'").Error; err != nil {
		return exception.Storage(moduleName, "failed to set local_infile", err)
	}
	logger.Debugf("local_infile set to %s", value)
	return nil
}

// LoadStatement renders the LOAD DATA statement for spec.
// The file path cannot be a bind parameter, so it is inlined after validation.
func LoadStatement(spec database.LoadSpec) (string, error) {
	if err := database.CheckLoadPath(spec.Path); err != nil {
		return "", err
	}
	if !identifierPattern.MatchString(spec.Table) {
		return "", exception.Validation(moduleName, fmt.Sprintf("invalid table name %q", spec.Table), nil)
	}
	fields := make([]string, len(spec.Fields))
	for i, f := range spec.Fields {
		if !identifierPattern.MatchString(f) {
			return "", exception.Validation(moduleName, fmt.Sprintf("invalid field name %q", f), nil)
		}
		fields[i] = quote(f)
	}

	local := ""
	if spec.Local {
		local = "LOCAL "
	}
	return fmt.Sprintf(
		"LOAD DATA %sINFILE '%s' INTO TABLE %s CHARACTER SET utf8mb4 "+
			"FIELDS TERMINATED BY '|' ENCLOSED BY '\"' ESCAPED BY '' LINES TERMINATED BY '\\n' (%s)",
		local, spec.Path, quote(spec.Table), strings.Join(fields, ", ")), nil
}

// LoadFile implements database.Loader. For LOCAL loads the file is registered with the
// driver allowlist for the duration of the statement.
func (s *Store) LoadFile(ctx context.Context, spec database.LoadSpec) (int64, error) {
	stmt, err := LoadStatement(spec)
	if err != nil {
		return 0, err
	}

	if spec.Local {
		mysql.RegisterLocalFile(spec.Path)
		defer mysql.DeregisterLocalFile(spec.Path)
	}

	result := s.db.WithContext(ctx).Exec(stmt)
	if result.Error != nil {
		return 0, exception.Storage(moduleName, fmt.Sprintf("bulk load into %s failed", spec.Table), result.Error)
	}
	return result.RowsAffected, nil
}

// HasMarkedRows implements database.Maintainer.
func (s *Store) HasMarkedRows(ctx context.Context, table, field, marker string) (bool, error) {
	if err := checkIdentifiers(table, field); err != nil {
		return false, err
	}
	var found []string
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIKE ? LIMIT 1", quote(field), quote(table), quote(field))
	if err := s.db.WithContext(ctx).Raw(query, likePrefix(marker)).Scan(&found).Error; err != nil {
		return false, exception.Storage(moduleName, fmt.Sprintf("failed to look for generated rows in %s", table), err)
	}
	return len(found) > 0, nil
}

// SwapWithout implements database.Maintainer. The surviving rows are copied into a
// fresh table that then replaces the original.
//
// MySQL commits every DDL statement implicitly, so the transaction does not roll the
// swap back. A failure before DROP TABLE leaves the original table intact. A failing
// RENAME after it leaves the surviving rows in <table>_copy, to be renamed back by hand;
// later deletions stop at HasMarkedRows while the table is missing.
func (s *Store) SwapWithout(ctx context.Context, table, field, marker string) error {
	if err := checkIdentifiers(table, field); err != nil {
		return err
	}
	copyTable := table + "_copy"

	statements := []struct {
		sql  string
		args []interface{}
	}{
		{sql: fmt.Sprintf("DROP TABLE IF EXISTS %s", quote(copyTable))},
		{sql: fmt.Sprintf("CREATE TABLE %s LIKE %s", quote(copyTable), quote(table))},
		{
			sql:  fmt.Sprintf("INSERT INTO %s SELECT * FROM %s WHERE %s NOT LIKE ?", quote(copyTable), quote(table), quote(field)),
			args: []interface{}{likePrefix(marker)},
		},
		{sql: fmt.Sprintf("DROP TABLE %s", quote(table))},
		{sql: fmt.Sprintf("RENAME TABLE %s TO %s", quote(copyTable), quote(table))},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, st := range statements {
			if err := tx.Exec(st.sql, st.args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return exception.Storage(moduleName, fmt.Sprintf("failed to remove generated rows from %s", table), err)
	}
	return nil
}

// UpdateCommentCounts implements database.Maintainer.
func (s *Store) UpdateCommentCounts(ctx context.Context) error {
	query := fmt.Sprintf(
		"UPDATE %s AS p LEFT JOIN (SELECT comment_post_ID, COUNT(*) AS comment_count FROM %s GROUP BY comment_post_ID) AS t "+
			"ON p.ID = t.comment_post_ID SET p.comment_count = COALESCE(t.comment_count, 0) "+
			"WHERE p.comment_count != COALESCE(t.comment_count, 0)",
		quote(s.tables.Posts()), quote(s.tables.Comments()))

	result := s.db.WithContext(ctx).Exec(query)
	if result.Error != nil {
		return exception.Storage(moduleName, "failed to update comment counts", result.Error)
	}
	logger.Debugf("Comment counts updated on %d posts.", result.RowsAffected)
	return nil
}

func checkIdentifiers(names ...string) error {
	for _, n := range names {
		if !identifierPattern.MatchString(n) {
			return exception.Validation(moduleName, fmt.Sprintf("invalid identifier %q", n), nil)
		}
	}
	return nil
}

func quote(identifier string) string {
	return "`" + identifier + "`"
}

// likePrefix escapes LIKE wildcards in prefix and appends %.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
