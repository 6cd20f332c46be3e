package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBase(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"A", true},
		{"ACGTN", true},
		{"acgtn", true},
		{"AcGt", true},
		{"", false},
		{"X", false},
		{"A*", false},
		{"A C", false},
		{".", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidBase(tt.in))
		})
	}
}

func TestIsValidAlt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"single base", "T", true},
		{"multi allelic", "T,G", true},
		{"spanning deletion", "*", true},
		{"symbolic", "<DEL>", true},
		{"symbolic with colon", "<DUP:TANDEM>", true},
		{"mixed", "A,<NON_REF>", true},
		{"missing value", ".", false},
		{"lower case", "t", false},
		{"empty", "", false},
		{"empty element", "A,,T", false},
		{"trailing comma", "A,", false},
		{"empty symbolic", "<>", false},
		{"nested bracket", "<A>B>", false},
		{"breakend", "G]17:198982]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAlt(tt.in))
		})
	}
}

func TestIsValidGenotype(t *testing.T) {
	for _, gt := range []string{"0/1", "1|0", "./.", ".", "2", "10/12", ".|1"} {
		assert.True(t, IsValidGenotype(gt), gt)
	}
	for _, gt := range []string{"0/1/2", "a/b", "", "0/", "/1", "0-1", " 0/1"} {
		assert.False(t, IsValidGenotype(gt), gt)
	}
}

func TestIsNonNegativeInteger(t *testing.T) {
	assert.True(t, IsNonNegativeInteger("0"))
	assert.True(t, IsNonNegativeInteger("30"))
	assert.False(t, IsNonNegativeInteger(""))
	assert.False(t, IsNonNegativeInteger("-1"))
	assert.False(t, IsNonNegativeInteger("+1"))
	assert.False(t, IsNonNegativeInteger("1.0"))
	assert.False(t, IsNonNegativeInteger("."))
}

func TestIsListOfNonNegativeIntegers(t *testing.T) {
	assert.True(t, IsListOfNonNegativeIntegers("10"))
	assert.True(t, IsListOfNonNegativeIntegers("10,20"))
	assert.True(t, IsListOfNonNegativeIntegers("0,0,255"))
	assert.False(t, IsListOfNonNegativeIntegers(""))
	assert.False(t, IsListOfNonNegativeIntegers("10,"))
	assert.False(t, IsListOfNonNegativeIntegers(",10"))
	assert.False(t, IsListOfNonNegativeIntegers("10,-2"))
	assert.False(t, IsListOfNonNegativeIntegers("."))
}

func TestIsFloat(t *testing.T) {
	for _, f := range []string{"3.14", "-0.5", "5", "+2", ".5", "0.0"} {
		assert.True(t, IsFloat(f), f)
	}
	for _, f := range []string{"", ".", "1.2.3", "abc", "5.", "1e5", "+", "NaN"} {
		assert.False(t, IsFloat(f), f)
	}
}

func TestIsDecimalNumber(t *testing.T) {
	for _, f := range []string{"50", "50.0", "-1", "+2", ".5", "5.", "1e3", "1.5E-2", "0"} {
		assert.True(t, IsDecimalNumber(f), f)
	}
	for _, f := range []string{"", ".", "1_0", "0x1p3", "0x10", "Inf", "NaN", "1e", "e5", "5x", " 5", "1.2.3"} {
		assert.False(t, IsDecimalNumber(f), f)
	}
}

func TestIsBoolean(t *testing.T) {
	assert.True(t, IsBoolean("0"))
	assert.True(t, IsBoolean("1"))
	assert.False(t, IsBoolean(""))
	assert.False(t, IsBoolean("2"))
	assert.False(t, IsBoolean("true"))
	assert.False(t, IsBoolean("01"))
}

func TestIsNonEmpty(t *testing.T) {
	assert.True(t, IsNonEmpty("CAG"))
	assert.False(t, IsNonEmpty(""))
}

func TestIsHumanChromosome(t *testing.T) {
	names := []string{
		"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19",
		"20", "21", "22", "X", "Y", "MT",
	}
	for _, n := range names {
		assert.True(t, IsHumanChromosome(n), n)
		assert.True(t, IsHumanChromosome("chr"+n), "chr"+n)
	}
	assert.Len(t, humanChromosomes, 50)

	for _, n := range []string{"chrM", "chr23", "1 ", "Mt", "x", "CHR1", "", "23", "0", "chr", "M", "chrUn"} {
		assert.False(t, IsHumanChromosome(n), n)
	}
}
