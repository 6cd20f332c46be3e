// Package output formats validation verdicts for the terminal.
package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inodb/vcfcheck/internal/validate"
)

// ReportWriter writes one tab-aligned row per validated file.
type ReportWriter struct {
	w       *tabwriter.Writer
	total   int
	valid   int
	invalid int
	cached  int
	showAll bool // if false, only show invalid files
}

// NewReportWriter creates a new report writer.
func NewReportWriter(w io.Writer, showAll bool) *ReportWriter {
	return &ReportWriter{
		w:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		showAll: showAll,
	}
}

// WriteHeader writes the report header.
func (r *ReportWriter) WriteHeader() error {
	_, err := fmt.Fprintln(r.w, "File\tStatus\tLines\tSamples\tKind\tRule\tLine\tMessage")
	return err
}

// WriteResult writes the row for one verdict.
func (r *ReportWriter) WriteResult(res *validate.Result) error {
	r.total++
	if res.Cached {
		r.cached++
	}

	status := "OK"
	var kind, rule, line, message string
	if res.Valid() {
		r.valid++
	} else {
		r.invalid++
		status = "FAIL"
		if ve := res.ValidationError(); ve != nil {
			kind, rule, message = ve.Kind.String(), string(ve.Rule), ve.Message
			if ve.Line > 0 {
				line = fmt.Sprint(ve.Line)
			}
		} else {
			message = res.Err.Error()
		}
	}

	if !r.showAll && res.Valid() {
		return nil
	}

	_, err := fmt.Fprintf(r.w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
		res.Path,
		status,
		res.Lines,
		res.Samples,
		kind,
		rule,
		line,
		message,
	)
	return err
}

// Flush flushes the writer.
func (r *ReportWriter) Flush() error {
	return r.w.Flush()
}

// Summary returns verdict counts.
func (r *ReportWriter) Summary() (total, valid, invalid int) {
	return r.total, r.valid, r.invalid
}

// WriteSummary writes a summary of the batch.
func (r *ReportWriter) WriteSummary(w io.Writer) {
	validRate := float64(0)
	if r.total > 0 {
		validRate = float64(r.valid) / float64(r.total) * 100
	}
	fmt.Fprintf(w, "\nValidation Summary:\n")
	fmt.Fprintf(w, "  Total files:  %d\n", r.total)
	fmt.Fprintf(w, "  Valid:        %d (%.1f%%)\n", r.valid, validRate)
	fmt.Fprintf(w, "  Invalid:      %d (%.1f%%)\n", r.invalid, 100-validRate)
	if r.cached > 0 {
		fmt.Fprintf(w, "  From cache:   %d\n", r.cached)
	}
}
