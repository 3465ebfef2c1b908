package chunk

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tigerroll/wpgen/pkg/generator/component/item"
)

// insertBatch bounds the number of value tuples per INSERT statement in SQL mode.
const insertBatch = 100

// rowWriter serializes generated rows.
type rowWriter interface {
	Write(row item.Row) error
	// Flush completes the output. It must be called once after the last Write.
	Flush() error
}

// csvWriter emits '|' separated, '"' enclosed lines for LOAD DATA.
type csvWriter struct {
	w *csv.Writer
}

func newCSVWriter(w io.Writer) *csvWriter {
	cw := csv.NewWriter(w)
	cw.Comma = '|'
	return &csvWriter{w: cw}
}

func (c *csvWriter) Write(row item.Row) error {
	values := row.Values()
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = formatValue(v)
	}
	return c.w.Write(record)
}

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// sqlWriter emits extended INSERT statements.
type sqlWriter struct {
	w      *bufio.Writer
	header string
	inStmt int
}

func newSQLWriter(w io.Writer, table string, fields []string) *sqlWriter {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "`" + f + "`"
	}
	return &sqlWriter{
		w:      bufio.NewWriter(w),
		header: fmt.Sprintf("INSERT INTO `%s` (%s) VALUES ", table, strings.Join(quoted, ", ")),
	}
}

func (s *sqlWriter) Write(row item.Row) error {
	if s.inStmt == 0 {
		s.w.WriteString(s.header)
	} else {
		s.w.WriteString(",")
	}
	s.w.WriteString("(")
	for i, v := range row.Values() {
		if i > 0 {
			s.w.WriteString(",")
		}
		s.w.WriteString(sqlLiteral(v))
	}
	s.w.WriteString(")")

	s.inStmt++
	if s.inStmt == insertBatch {
		s.inStmt = 0
		_, err := s.w.WriteString(";\n")
		return err
	}
	return nil
}

func (s *sqlWriter) Flush() error {
	if s.inStmt > 0 {
		s.w.WriteString(";\n")
		s.inStmt = 0
	}
	return s.w.Flush()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}

// sqlLiteral renders v as a MySQL literal. Strings are quoted with the escapes
// mysqldump uses.
func sqlLiteral(v any) string {
	switch val := v.(type) {
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case string:
		return "'" + sqlEscaper.Replace(val) + "'"
	default:
		return "'" + sqlEscaper.Replace(fmt.Sprint(val)) + "'"
	}
}

var sqlEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"'", "\\'",
	"\"", "\\\"",
	"\x00", "\\0",
	"\n", "\\n",
	"\r", "\\r",
	"\x1a", "\\Z",
)
