// Package dump assembles the SQL fragments staged by SQL mode chunks into one
// mysqldump style script.
package dump

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/storage"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/repository"
	"github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "dump"

const preamble = `/*!40101 SET @OLD_CHARACTER_SET_CLIENT=@@CHARACTER_SET_CLIENT */;
/*!40101 SET @OLD_CHARACTER_SET_RESULTS=@@CHARACTER_SET_RESULTS */;
/*!40101 SET @OLD_COLLATION_CONNECTION=@@COLLATION_CONNECTION */;
/*!40101 SET NAMES utf8mb4 */;
/*!40014 SET @OLD_UNIQUE_CHECKS=@@UNIQUE_CHECKS, UNIQUE_CHECKS=0 */;
/*!40014 SET @OLD_FOREIGN_KEY_CHECKS=@@FOREIGN_KEY_CHECKS, FOREIGN_KEY_CHECKS=0 */;
/*!40101 SET @OLD_SQL_MODE=@@SQL_MODE, SQL_MODE='NO_AUTO_VALUE_ON_ZERO' */;
/*!40111 SET @OLD_SQL_NOTES=@@SQL_NOTES, SQL_NOTES=0 */;
`

const postamble = `/*!40101 SET SQL_MODE=@OLD_SQL_MODE */;
/*!40014 SET FOREIGN_KEY_CHECKS=@OLD_FOREIGN_KEY_CHECKS */;
/*!40014 SET UNIQUE_CHECKS=@OLD_UNIQUE_CHECKS */;
/*!40101 SET CHARACTER_SET_CLIENT=@OLD_CHARACTER_SET_CLIENT */;
/*!40101 SET CHARACTER_SET_RESULTS=@OLD_CHARACTER_SET_RESULTS */;
/*!40101 SET COLLATION_CONNECTION=@OLD_COLLATION_CONNECTION */;
/*!40111 SET SQL_NOTES=@OLD_SQL_NOTES */;
`

// Writer streams staged runs.
type Writer struct {
	stager   storage.Stager
	runs     repository.StagedRuns
	recorder metrics.MetricRecorder
	now      func() time.Time
}

// NewWriter creates a Writer.
func NewWriter(stager storage.Stager, runs repository.StagedRuns, recorder metrics.MetricRecorder) *Writer {
	return &Writer{stager: stager, runs: runs, recorder: recorder, now: time.Now}
}

// Filename returns the attachment name for the run.
func (d *Writer) Filename(run *model.StagedRun) string {
	return fmt.Sprintf("%s-%s.sql", run.Table, d.now().UTC().Format("20060102-150405"))
}

// Find returns the staged run stored under key.
func (d *Writer) Find(ctx context.Context, key string) (*model.StagedRun, error) {
	run, err := d.runs.FindStagedRun(ctx, key)
	if errors.Is(err, repository.ErrStagedRunNotFound) {
		return nil, exception.Validation(moduleName, "There is no generated SQL to download.", err)
	}
	return run, err
}

// Write streams the run stored under key to w. Once the whole script has been written
// the staged fragments and the run entry are removed.
func (d *Writer) Write(ctx context.Context, w io.Writer, key string) error {
	start := d.now()
	run, err := d.Find(ctx, key)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "-- wpgen SQL dump\n-- Table: %s\n-- Items: %s\n\n", run.Table, run.ItemType)
	bw.WriteString(preamble)
	fmt.Fprintf(bw, "\nLOCK TABLES `%s` WRITE;\n/*!40000 ALTER TABLE `%s` DISABLE KEYS */;\n", run.Table, run.Table)
	for _, file := range run.Files {
		if err := d.copyFragment(ctx, bw, file); err != nil {
			return err
		}
	}
	fmt.Fprintf(bw, "/*!40000 ALTER TABLE `%s` ENABLE KEYS */;\nUNLOCK TABLES;\n\n", run.Table)
	bw.WriteString(postamble)
	if err := bw.Flush(); err != nil {
		return exception.IO(moduleName, "failed to write the SQL dump", err)
	}

	d.recorder.RecordDuration(ctx, "download", d.now().Sub(start), map[string]string{"item_type": string(run.ItemType)})
	logger.Infof("Downloaded staged run %s (%d fragments).", key, len(run.Files))
	return d.Purge(ctx, run)
}

func (d *Writer) copyFragment(ctx context.Context, w io.Writer, file string) error {
	r, err := d.stager.Open(ctx, file)
	if err != nil {
		return err
	}
	defer r.Close()
	if _, err := io.Copy(w, r); err != nil {
		return exception.IO(moduleName, fmt.Sprintf("failed to copy fragment %s", file), err)
	}
	return nil
}

// Purge removes the staged fragments of run and its registry entry.
func (d *Writer) Purge(ctx context.Context, run *model.StagedRun) error {
	var result error
	for _, file := range run.Files {
		if err := d.stager.Delete(ctx, file); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := d.runs.DeleteStagedRun(ctx, run.Key); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}
