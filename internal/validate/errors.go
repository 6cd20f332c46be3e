package validate

import "fmt"

// ErrorKind is the category of a validation failure.
type ErrorKind int

// Error kinds. Numeric conversion failures are reported as KindGrammar.
const (
	KindStructural ErrorKind = iota + 1
	KindGrammar
	KindArity
	KindIO
)

var kindNames = map[ErrorKind]string{
	KindStructural: "StructuralError",
	KindGrammar:    "GrammarError",
	KindArity:      "ArityError",
	KindIO:         "IOError",
}

func (k ErrorKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "UnknownError"
}

// ParseErrorKind is the inverse of ErrorKind.String.
func ParseErrorKind(s string) (ErrorKind, bool) {
	for k, n := range kindNames {
		if n == s {
			return k, true
		}
	}
	return 0, false
}

// Rule names the check that rejected a line.
type Rule string

// Structural and I/O rules.
const (
	RuleBeforeHeader  Rule = "line before header"
	RuleMissingHeader Rule = "column header"
	RuleColumnNames   Rule = "column names"
	RuleOpen          Rule = "open"
	RuleRead          Rule = "read"
)

// Meta-information rules.
const (
	RuleFileFormat Rule = "fileformat"
	RuleInfoMeta   Rule = "INFO"
	RuleFormatMeta Rule = "FORMAT"
	RuleFilterMeta Rule = "FILTER"
	RuleContigMeta Rule = "contig"
	RuleAltMeta    Rule = "ALT"
)

// Data record rules. Per-sample failures use SampleRule.
const (
	RuleFieldCount  Rule = "field count"
	RuleChrom       Rule = "CHROM"
	RulePos         Rule = "POS"
	RuleID          Rule = "ID"
	RuleRef         Rule = "REF"
	RuleAlt         Rule = "ALT field"
	RuleQual        Rule = "QUAL"
	RuleFilter      Rule = "FILTER field"
	RuleInfo        Rule = "INFO field"
	RuleSampleArity Rule = "sample arity"
)

// SampleRule returns the rule for a FORMAT descriptor's per-sample value.
func SampleRule(descriptor string) Rule {
	return Rule("FORMAT/" + descriptor)
}

// ValidationError describes the first line that failed validation.
type ValidationError struct {
	Kind    ErrorKind
	Rule    Rule
	Line    int    // 1-based line number; 0 when not tied to a line
	Value   string // offending field or sub-value
	Text    string // full offending line
	Message string
	Err     error // underlying conversion or I/O error, if any
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func grammarError(rule Rule, value, expected string) *ValidationError {
	return &ValidationError{
		Kind:    KindGrammar,
		Rule:    rule,
		Value:   value,
		Message: fmt.Sprintf("invalid %s %q: expected %s", rule, value, expected),
	}
}

func numericError(rule Rule, value, expected string, err error) *ValidationError {
	e := grammarError(rule, value, expected)
	e.Err = err
	return e
}
