// Package grammar provides the token-level predicates used to validate VCF
// fields. Every predicate matches the whole token; partial matches are
// rejected.
package grammar

import "regexp"

var (
	reBase = regexp.MustCompile(`^[ACGTNacgtn]+$`)
	// Literal bases or a symbolic allele such as <DEL>, comma separated.
	reAlt      = regexp.MustCompile(`^([ACGTN*]+|<[^>]+>)(,([ACGTN*]+|<[^>]+>))*$`)
	reGenotype = regexp.MustCompile(`^(\d+|\.)([/|](\d+|\.))?$`)
	reUint     = regexp.MustCompile(`^\d+$`)
	reUintList = regexp.MustCompile(`^\d+(,\d+)*$`)
	reFloat    = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)
	reNumber   = regexp.MustCompile(`^[+-]?([0-9]+[.]?[0-9]*|[.][0-9]+)([eE][+-]?[0-9]+)?$`)
)

// IsValidBase reports whether s is a non-empty run of A, C, G, T or N,
// in either case.
func IsValidBase(s string) bool {
	return reBase.MatchString(s)
}

// IsValidAlt reports whether s is a comma-separated list of alternate
// alleles. Each allele is either a run of A, C, G, T, N or '*', or a
// symbolic allele in angle brackets. The missing value "." is rejected.
func IsValidAlt(s string) bool {
	return reAlt.MatchString(s)
}

// IsValidGenotype reports whether s is a haploid or diploid genotype
// (e.g. "0", "0/1", "1|0", "./.").
func IsValidGenotype(s string) bool {
	return reGenotype.MatchString(s)
}

// IsNonNegativeInteger reports whether s consists only of decimal digits.
func IsNonNegativeInteger(s string) bool {
	return reUint.MatchString(s)
}

// IsListOfNonNegativeIntegers reports whether s is a comma-separated list
// of non-negative integers.
func IsListOfNonNegativeIntegers(s string) bool {
	return reUintList.MatchString(s)
}

// IsFloat reports whether s is a decimal number with an optional sign and
// an optional fractional part. At least one digit must follow the point.
func IsFloat(s string) bool {
	return reFloat.MatchString(s)
}

// IsDecimalNumber reports whether s is written as a plain decimal number,
// optionally signed and with an optional exponent ("50", "1.5", ".5", "1e3").
// Digit separators, hex floats and named values such as "Inf" are rejected.
func IsDecimalNumber(s string) bool {
	return reNumber.MatchString(s)
}

// IsBoolean reports whether s is exactly "0" or "1".
func IsBoolean(s string) bool {
	return s == "0" || s == "1"
}

// IsNonEmpty reports whether s has at least one character.
func IsNonEmpty(s string) bool {
	return s != ""
}
