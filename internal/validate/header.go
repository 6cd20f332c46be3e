// Package validate checks VCF files line by line against the VCF
// meta-information and record grammars. Validation stops at the first
// rejected line.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inodb/vcfcheck/internal/vcf"
)

// metaGrammar is the pattern a meta-information value must match after
// its "key=" prefix.
type metaGrammar struct {
	rule     Rule
	re       *regexp.Regexp
	expected string
}

var (
	infoFormatValue = `^<ID=[^,]+,` +
		`Number=([.\dAGRU]|-?\d+),` +
		`Type=(Integer|Float|Flag|Character|String),` +
		`Description="[^"]+"` +
		`(,[^,]+="[^"]+")*>$`
	idDescriptionValue = `^<ID=[^,]+,Description="[^"]+">$`

	metaGrammars = map[string]metaGrammar{
		"fileformat": {RuleFileFormat, regexp.MustCompile(`^VCFv\d+\.\d+$`),
			"VCFv<major>.<minor>"},
		"INFO": {RuleInfoMeta, regexp.MustCompile(infoFormatValue),
			`<ID=...,Number=...,Type=...,Description="...">`},
		"FORMAT": {RuleFormatMeta, regexp.MustCompile(infoFormatValue),
			`<ID=...,Number=...,Type=...,Description="...">`},
		"FILTER": {RuleFilterMeta, regexp.MustCompile(idDescriptionValue),
			`<ID=...,Description="...">`},
		"contig": {RuleContigMeta, regexp.MustCompile(`^<ID=[^,]+(,length=\d+)?(,.*)?>$`),
			`<ID=...[,length=<digits>][,...]>`},
		"ALT": {RuleAltMeta, regexp.MustCompile(idDescriptionValue),
			`<ID=...,Description="...">`},
	}
)

// CheckMeta validates one "##" meta-information line. Lines whose key has
// no registered grammar (SAMPLE, PEDIGREE and any extension key) are
// accepted as is. The returned error carries no line number.
func CheckMeta(text string) *ValidationError {
	m, ok := vcf.ParseMeta(text)
	if !ok {
		return &ValidationError{
			Kind:    KindStructural,
			Rule:    RuleBeforeHeader,
			Value:   text,
			Message: "not a meta-information line",
		}
	}

	// Only "key=" lines are dispatched; "##fileformat" alone is an
	// unrecognized extension line.
	g, ok := metaGrammars[m.Key]
	if !ok || !strings.Contains(text, "=") {
		return nil
	}
	if !g.re.MatchString(m.Value) {
		return &ValidationError{
			Kind:    KindGrammar,
			Rule:    g.rule,
			Value:   m.Value,
			Message: fmt.Sprintf("invalid %s line %q: expected ##%s=%s", g.rule, text, m.Key, g.expected),
		}
	}
	return nil
}
