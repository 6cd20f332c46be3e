package validate

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vcfcheck/internal/vcf"
)

// LineSource yields decoded lines. Next returns io.EOF at end of input.
// *vcf.Reader implements this interface.
type LineSource interface {
	Next() (string, error)
}

// Options configures a Validator.
type Options struct {
	// CheckColumns requires the column header line to start with
	// #CHROM POS ID REF ALT QUAL FILTER INFO.
	CheckColumns bool
}

// Key encodes the options that influence a verdict, for use as a cache key.
func (o Options) Key() string {
	return "check_columns=" + strconv.FormatBool(o.CheckColumns)
}

// Validator validates VCF files. It holds no per-file state and may be
// used from multiple goroutines.
type Validator struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Validator.
func New(opts Options) *Validator {
	return &Validator{
		opts:   opts,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for debug messages.
func (v *Validator) SetLogger(l *zap.Logger) {
	v.logger = l
}

// Result is the verdict for one file.
type Result struct {
	Path      string
	Lines     int // lines examined, including the rejected one
	MetaLines int
	DataLines int
	Samples   int // sample columns named on the column header line
	Elapsed   time.Duration
	Err       error // nil if valid, otherwise a *ValidationError
	Cached    bool  // verdict was served from the result cache
}

// Valid reports whether the file passed validation.
func (r *Result) Valid() bool {
	return r.Err == nil
}

// ValidationError returns the failure, or nil if the file is valid.
func (r *Result) ValidationError() *ValidationError {
	var ve *ValidationError
	if errors.As(r.Err, &ve) {
		return ve
	}
	return nil
}

// fileState is the per-file phase of the line state machine.
type fileState struct {
	headerSeen bool
}

// ValidateFile opens path (plain or gzip-compressed, "-" for stdin) and
// validates it. Failure to open the file is reported as KindIO.
func (v *Validator) ValidateFile(path string) *Result {
	start := time.Now()

	r, err := vcf.Open(path)
	if err != nil {
		return &Result{
			Path:    path,
			Elapsed: time.Since(start),
			Err: &ValidationError{
				Kind:    KindIO,
				Rule:    RuleOpen,
				Value:   path,
				Message: fmt.Sprintf("cannot open %s: %v", path, err),
				Err:     err,
			},
		}
	}
	defer r.Close()

	res := v.Validate(r)
	res.Path = path
	res.Elapsed = time.Since(start)
	return res
}

// ValidateReader validates a VCF stream, decompressing it if needed.
func (v *Validator) ValidateReader(rd io.Reader) *Result {
	start := time.Now()

	r, err := vcf.NewReader(rd)
	if err != nil {
		return &Result{
			Elapsed: time.Since(start),
			Err: &ValidationError{
				Kind:    KindIO,
				Rule:    RuleRead,
				Message: err.Error(),
				Err:     err,
			},
		}
	}
	defer r.Close()

	res := v.Validate(r)
	res.Elapsed = time.Since(start)
	return res
}

// Validate consumes src line by line and returns at the first rejected
// line. A file without a column header line is invalid even if it has no
// data lines.
func (v *Validator) Validate(src LineSource) *Result {
	res := &Result{}
	var st fileState

	for {
		text, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Err = &ValidationError{
				Kind:    KindIO,
				Rule:    RuleRead,
				Line:    res.Lines + 1,
				Message: err.Error(),
				Err:     err,
			}
			return res
		}
		res.Lines++

		line := vcf.Line{
			Number: res.Lines,
			Text:   text,
			Kind:   vcf.Classify(text, st.headerSeen),
		}
		if verr := v.step(&st, res, line); verr != nil {
			verr.Line = line.Number
			verr.Text = line.Text
			v.logger.Debug("line rejected",
				zap.Int("line", line.Number),
				zap.Stringer("kind", verr.Kind),
				zap.String("rule", string(verr.Rule)))
			res.Err = verr
			return res
		}
	}

	if !st.headerSeen {
		res.Err = &ValidationError{
			Kind:    KindStructural,
			Rule:    RuleMissingHeader,
			Message: "missing column header line",
		}
	}
	return res
}

// step applies one line to the state machine.
func (v *Validator) step(st *fileState, res *Result, line vcf.Line) *ValidationError {
	switch line.Kind {
	case vcf.KindMeta:
		res.MetaLines++
		return CheckMeta(line.Text)

	case vcf.KindColumnHeader:
		st.headerSeen = true
		// Sample names may contain spaces; only tabs separate columns.
		if columns := vcf.SplitRecord(line.Text); len(columns) > vcf.ColFormat+1 {
			res.Samples = len(columns) - (vcf.ColFormat + 1)
		}
		if v.opts.CheckColumns {
			return CheckColumns(strings.Fields(line.Text))
		}
		return nil

	default:
		// A repeated "#" line lands here as data.
		if !st.headerSeen {
			return &ValidationError{
				Kind:    KindStructural,
				Rule:    RuleBeforeHeader,
				Value:   line.Text,
				Message: fmt.Sprintf("unexpected line before header: %q", line.Text),
			}
		}
		res.DataLines++
		return CheckRecord(line.Text)
	}
}

// CheckColumns verifies that the column header names start with the eight
// mandatory VCF columns.
func CheckColumns(columns []string) *ValidationError {
	want := vcf.HeaderColumns
	if len(columns) < len(want) {
		return &ValidationError{
			Kind:    KindStructural,
			Rule:    RuleColumnNames,
			Value:   strings.Join(columns, "\t"),
			Message: fmt.Sprintf("insufficient columns in column header line: found %d, need %d", len(columns), len(want)),
		}
	}
	for i, name := range want {
		if columns[i] != name {
			return &ValidationError{
				Kind:    KindStructural,
				Rule:    RuleColumnNames,
				Value:   columns[i],
				Message: fmt.Sprintf("column %d is %q, expected %q", i+1, columns[i], name),
			}
		}
	}
	return nil
}
