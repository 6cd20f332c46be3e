package validate

import (
	"fmt"
	"strconv"

	"github.com/inodb/vcfcheck/internal/grammar"
	"github.com/inodb/vcfcheck/internal/vcf"
)

// descriptorGrammar is the check applied to every sample value of a
// FORMAT descriptor.
type descriptorGrammar struct {
	match    func(string) bool
	expected string
}

var (
	genotype    = descriptorGrammar{grammar.IsValidGenotype, "a genotype such as 0/1, 1|0 or ./."}
	nonNegative = descriptorGrammar{grammar.IsNonNegativeInteger, "a non-negative integer"}
	integerList = descriptorGrammar{grammar.IsListOfNonNegativeIntegers, "comma-separated non-negative integers"}
	decimal     = descriptorGrammar{grammar.IsFloat, "a number"}
	nonEmpty    = descriptorGrammar{grammar.IsNonEmpty, "a non-empty value"}
	boolean     = descriptorGrammar{grammar.IsBoolean, "0 or 1"}
)

// descriptorGrammars maps FORMAT descriptors to their value grammar.
// Descriptors not listed here are accepted without checking.
var descriptorGrammars = map[string]descriptorGrammar{
	"GT": genotype,

	"DP":   nonNegative,
	"GQ":   nonNegative,
	"MQ":   nonNegative,
	"MQ0":  nonNegative,
	"HRun": nonNegative,
	"AC":   nonNegative,
	"AN":   nonNegative,

	"AD":  integerList,
	"PL":  integerList,
	"SB":  integerList,
	"RPA": integerList,

	"AF":             decimal,
	"BaseQRankSum":   decimal,
	"ReadPosRankSum": decimal,
	"FS":             decimal,
	"SOR":            decimal,
	"MQRankSum":      decimal,
	"QD":             decimal,

	"RU":  nonEmpty,
	"STR": boolean,
}

// CheckSamples validates every sample column of a record against its
// FORMAT column. Each sample must supply exactly one colon-separated value
// per descriptor, in order.
func CheckSamples(r vcf.Record) *ValidationError {
	descriptors := r.Format()
	if descriptors == nil {
		return &ValidationError{
			Kind:    KindStructural,
			Rule:    RuleFieldCount,
			Value:   strconv.Itoa(len(r)),
			Message: "FORMAT column missing",
		}
	}

	for i, sample := range r.Samples() {
		values := vcf.SplitSample(sample)
		if len(values) != len(descriptors) {
			return &ValidationError{
				Kind:  KindArity,
				Rule:  RuleSampleArity,
				Value: sample,
				Message: fmt.Sprintf("sample %d has %d values %q, FORMAT %q declares %d",
					i+1, len(values), sample, r[vcf.ColFormat], len(descriptors)),
			}
		}

		for j, d := range descriptors {
			g, ok := descriptorGrammars[d]
			if !ok || g.match(values[j]) {
				continue
			}
			e := grammarError(SampleRule(d), values[j], g.expected)
			e.Message = fmt.Sprintf("sample %d: %s", i+1, e.Message)
			return e
		}
	}

	return nil
}
