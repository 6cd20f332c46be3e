package validate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/inodb/vcfcheck/internal/grammar"
	"github.com/inodb/vcfcheck/internal/vcf"
)

// CheckRecord validates one data line: the eight mandatory columns and,
// if a FORMAT column is present, every sample column. Checks run in
// column order and stop at the first failure. The returned error carries
// no line number.
func CheckRecord(text string) *ValidationError {
	fields := vcf.SplitRecord(text)
	if len(fields) < vcf.MandatoryColumns {
		return &ValidationError{
			Kind:  KindStructural,
			Rule:  RuleFieldCount,
			Value: strconv.Itoa(len(fields)),
			Message: fmt.Sprintf("expected at least %d tab-separated columns, found %d",
				vcf.MandatoryColumns, len(fields)),
		}
	}

	for _, check := range columnChecks {
		if err := check(fields); err != nil {
			return err
		}
	}

	if fields.HasFormat() {
		return CheckSamples(fields)
	}
	return nil
}

var columnChecks = []func(vcf.Record) *ValidationError{
	checkChrom,
	checkPos,
	checkID,
	checkRef,
	checkAlt,
	checkQual,
	checkFilter,
	checkInfo,
}

func checkChrom(r vcf.Record) *ValidationError {
	chrom := r[vcf.ColChrom]
	if chrom == "" {
		return grammarError(RuleChrom, chrom, "a non-empty chromosome name")
	}
	if !grammar.IsHumanChromosome(chrom) {
		return grammarError(RuleChrom, chrom, "a human chromosome (1-22, X, Y, MT, optionally chr-prefixed)")
	}
	return nil
}

func checkPos(r vcf.Record) *ValidationError {
	s := r[vcf.ColPos]
	pos, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return numericError(RulePos, s, "a positive integer", err)
	}
	if pos <= 0 {
		return grammarError(RulePos, s, "a positive integer")
	}
	return nil
}

func checkID(r vcf.Record) *ValidationError {
	if id := r[vcf.ColID]; id == "" {
		return grammarError(RuleID, id, `"." or a non-empty identifier`)
	}
	return nil
}

func checkRef(r vcf.Record) *ValidationError {
	if ref := r[vcf.ColRef]; !grammar.IsValidBase(ref) {
		return grammarError(RuleRef, ref, "one or more of A, C, G, T, N")
	}
	return nil
}

func checkAlt(r vcf.Record) *ValidationError {
	if alt := r[vcf.ColAlt]; !grammar.IsValidAlt(alt) {
		return grammarError(RuleAlt, alt, "comma-separated bases (A, C, G, T, N, *) or symbolic alleles <...>")
	}
	return nil
}

func checkQual(r vcf.Record) *ValidationError {
	s := r[vcf.ColQual]
	if s == "." {
		return nil
	}
	if !grammar.IsDecimalNumber(s) {
		return grammarError(RuleQual, s, `"." or a non-negative number`)
	}
	qual, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return numericError(RuleQual, s, `"." or a non-negative number`, err)
	}
	if qual < 0 || math.IsNaN(qual) || math.IsInf(qual, 0) {
		return grammarError(RuleQual, s, `"." or a non-negative number`)
	}
	return nil
}

func checkFilter(r vcf.Record) *ValidationError {
	if f := r[vcf.ColFilter]; f == "" {
		return grammarError(RuleFilter, f, `"PASS", "." or filter names`)
	}
	return nil
}

// checkInfo only requires a non-empty value; key=value pairs are not parsed.
func checkInfo(r vcf.Record) *ValidationError {
	if info := r[vcf.ColInfo]; info == "" {
		return grammarError(RuleInfo, info, `"." or key=value pairs`)
	}
	return nil
}
