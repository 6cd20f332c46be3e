package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vcfcheck/internal/validate"
)

// Run is one recorded validation of a file.
type Run struct {
	File      FileFingerprint
	Options   string // validate.Options.Key()
	Result    *validate.Result
	CheckedAt time.Time
}

const runColumns = `path, size, mod_time, options, valid, kind, rule, line, value, message,
	lines, meta_lines, data_lines, samples, elapsed_ms, checked_at`

// WriteRuns batch-inserts runs using the Appender API.
func (s *Store) WriteRuns(runs []Run) error {
	if len(runs) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "validation_runs")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, run := range runs {
		res := run.Result
		var kind, rule, value, message string
		var line int64
		if ve := res.ValidationError(); ve != nil {
			kind, rule, value, message = ve.Kind.String(), string(ve.Rule), ve.Value, ve.Message
			line = int64(ve.Line)
		}

		checkedAt := run.CheckedAt
		if checkedAt.IsZero() {
			checkedAt = time.Now()
		}

		if err := appender.AppendRow(
			run.File.Path, run.File.Size, run.File.ModTime.UnixNano(), run.Options,
			res.Valid(), kind, rule, line, value, message,
			int64(res.Lines), int64(res.MetaLines), int64(res.DataLines), int64(res.Samples),
			float64(res.Elapsed)/float64(time.Millisecond), checkedAt.UTC(),
		); err != nil {
			return fmt.Errorf("append validation run: %w", err)
		}
	}

	return appender.Flush()
}

// LookupRun returns the most recent run for the fingerprint and options,
// or nil if the file has not been validated in that state.
func (s *Store) LookupRun(fp FileFingerprint, options string) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+`
		FROM validation_runs
		WHERE path=? AND size=? AND mod_time=? AND options=?
		ORDER BY checked_at DESC
		LIMIT 1`,
		fp.Path, fp.Size, fp.ModTime.UnixNano(), options)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

// History returns recorded runs, newest first. An empty path returns runs
// for all files. limit <= 0 means no limit.
func (s *Store) History(path string, limit int) ([]*Run, error) {
	var (
		where []string
		args  []any
	)
	if path != "" {
		where = append(where, "path=?")
		args = append(args, path)
	}

	q := `SELECT ` + runColumns + ` FROM validation_runs`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY checked_at DESC"
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ClearRuns removes all recorded runs.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM validation_runs")
	return err
}

func scanRuns(rows *sql.Rows) ([]*Run, error) {
	var runs []*Run
	for rows.Next() {
		var (
			run                                  Run
			modTime, line                        int64
			lines, metaLines, dataLines, samples int64
			valid                                bool
			kind, rule, value, message           string
			elapsedMS                            float64
		)
		if err := rows.Scan(
			&run.File.Path, &run.File.Size, &modTime, &run.Options,
			&valid, &kind, &rule, &line, &value, &message,
			&lines, &metaLines, &dataLines, &samples, &elapsedMS, &run.CheckedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.File.ModTime = time.Unix(0, modTime)
		res := &validate.Result{
			Path:      run.File.Path,
			Lines:     int(lines),
			MetaLines: int(metaLines),
			DataLines: int(dataLines),
			Samples:   int(samples),
			Elapsed:   time.Duration(elapsedMS * float64(time.Millisecond)),
			Cached:    true,
		}
		if !valid {
			k, _ := validate.ParseErrorKind(kind)
			res.Err = &validate.ValidationError{
				Kind:    k,
				Rule:    validate.Rule(rule),
				Line:    int(line),
				Value:   value,
				Message: message,
			}
		}
		run.Result = res
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
