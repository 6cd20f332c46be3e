// Package vcf provides line-level access to VCF files.
package vcf

import "strings"

// Kind classifies a VCF line.
type Kind int

// Line kinds.
const (
	KindMeta         Kind = iota // "##" meta-information line
	KindColumnHeader             // the single "#CHROM ..." line
	KindData                     // data record
)

// String returns a human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMeta:
		return "meta"
	case KindColumnHeader:
		return "header"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Line is one line of a VCF file with its classification.
type Line struct {
	Number int    // 1-based line number
	Text   string // line content without the line terminator
	Kind   Kind
}

// Classify returns the kind of a line. headerSeen reports whether the
// column header line has already been consumed; a second "#" line is
// classified as data.
func Classify(text string, headerSeen bool) Kind {
	switch {
	case strings.HasPrefix(text, "##"):
		return KindMeta
	case strings.HasPrefix(text, "#") && !headerSeen:
		return KindColumnHeader
	default:
		return KindData
	}
}

// MetaLine is a parsed "##key=value" line.
type MetaLine struct {
	Key   string // text between "##" and the first '='
	Value string // text after the first '=', to end of line
}

// ParseMeta splits a meta-information line into key and value. The "##"
// marker is stripped. ok is false if text is not a meta line.
func ParseMeta(text string) (m MetaLine, ok bool) {
	rest, ok := strings.CutPrefix(text, "##")
	if !ok {
		return MetaLine{}, false
	}
	m.Key, m.Value, _ = strings.Cut(rest, "=")
	return m, true
}

// Column indices of the mandatory data columns.
const (
	ColChrom = iota
	ColPos
	ColID
	ColRef
	ColAlt
	ColQual
	ColFilter
	ColInfo
	ColFormat
)

// MandatoryColumns is the number of columns every data record must have.
const MandatoryColumns = 8

// HeaderColumns are the expected names of the first eight columns of the
// column header line.
var HeaderColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// Record is a data line split on tabs. Fields are not trimmed.
type Record []string

// SplitRecord splits a data line into its tab-separated fields.
func SplitRecord(text string) Record {
	return strings.Split(text, "\t")
}

// HasFormat reports whether the record carries a FORMAT column.
func (r Record) HasFormat() bool {
	return len(r) > ColFormat
}

// Format returns the FORMAT descriptors, or nil if there is no FORMAT column.
func (r Record) Format() []string {
	if !r.HasFormat() {
		return nil
	}
	return strings.Split(r[ColFormat], ":")
}

// SplitSample splits a sample column into its colon-separated values.
func SplitSample(sample string) []string {
	return strings.Split(sample, ":")
}

// Samples returns the per-sample columns following FORMAT.
func (r Record) Samples() []string {
	if !r.HasFormat() {
		return nil
	}
	return r[ColFormat+1:]
}
