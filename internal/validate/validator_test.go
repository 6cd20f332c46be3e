package validate

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const header = "##fileformat=VCFv4.2\n" +
	`##FILTER=<ID=q10,Description="Quality below 10">` + "\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\n"

func validateString(t *testing.T, s string) *Result {
	t.Helper()
	return New(Options{}).ValidateReader(strings.NewReader(s))
}

func TestValidate_ValidFile(t *testing.T) {
	res := validateString(t, header+validLine+"\n")
	require.NoError(t, res.Err)
	assert.True(t, res.Valid())
	assert.Nil(t, res.ValidationError())
	assert.Equal(t, 4, res.Lines)
	assert.Equal(t, 2, res.MetaLines)
	assert.Equal(t, 1, res.DataLines)
	assert.Equal(t, 1, res.Samples)
}

func TestValidate_SampleNamesWithSpaces(t *testing.T) {
	input := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tTUMOR 1\tNORMAL 1\n" +
		validLine + "\t0/0:12\n"

	res := validateString(t, input)
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Samples)

	res = validateString(t, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n")
	assert.Equal(t, 0, res.Samples)
}

func TestValidate_HeaderOnly(t *testing.T) {
	res := validateString(t, header)
	assert.True(t, res.Valid())
	assert.Equal(t, 0, res.DataLines)
}

func TestValidate_MissingHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rule  Rule
	}{
		{"empty input", "", RuleMissingHeader},
		{"meta only", "##fileformat=VCFv4.2\n", RuleMissingHeader},
		{"data before header", "##fileformat=VCFv4.2\n" + validLine + "\n", RuleBeforeHeader},
		{"data only", validLine + "\n", RuleBeforeHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validateString(t, tt.input)
			require.False(t, res.Valid())
			ve := res.ValidationError()
			require.NotNil(t, ve)
			assert.Equal(t, KindStructural, ve.Kind)
			assert.Equal(t, tt.rule, ve.Rule)
		})
	}
}

func TestValidate_MissingHeaderMessage(t *testing.T) {
	res := validateString(t, "##fileformat=VCFv4.2\n")
	assert.EqualError(t, res.Err, "missing column header line")
}

func TestValidate_FailFast(t *testing.T) {
	src := &countingSource{lines: []string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
		validLine,
		strings.Replace(validLine, "chr1", "chr99", 1),
		"this line is never read",
		"##fileformat=broken",
	}}

	res := New(Options{}).Validate(src)
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, RuleChrom, ve.Rule)
	assert.Equal(t, 4, ve.Line)
	assert.Equal(t, src.lines[3], ve.Text)
	assert.Equal(t, 4, src.reads, "no line after the first failure is consumed")
	assert.Equal(t, 4, res.Lines)
	assert.Equal(t, 2, res.DataLines)
	assert.Contains(t, ve.Error(), "line 4: ")
}

func TestValidate_MetaFailureAborts(t *testing.T) {
	res := validateString(t, "##fileformat=VCFv4.2\n##FILTER=<ID=q10>\n#CHROM\n")
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, RuleFilterMeta, ve.Rule)
	assert.Equal(t, 2, ve.Line)
}

func TestValidate_MetaAfterHeader(t *testing.T) {
	// Meta lines are checked wherever they appear.
	res := validateString(t, header+"##fileformat=v4\n")
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, RuleFileFormat, ve.Rule)
}

func TestValidate_SecondColumnHeaderIsData(t *testing.T) {
	res := validateString(t, header+"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n")
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, KindGrammar, ve.Kind)
	assert.Equal(t, RuleChrom, ve.Rule)
	assert.Equal(t, 1, res.DataLines)
}

func TestValidate_EmptyDataLine(t *testing.T) {
	res := validateString(t, header+"\n")
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, RuleFieldCount, ve.Rule)
}

func TestValidate_ArityError(t *testing.T) {
	line := dataLine("chr1", "100", "rs1", "A", "T", "50.0", "PASS", "DP=30", "GT:DP:AD", "0/1:30")
	res := validateString(t, header+line+"\n")
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, KindArity, ve.Kind)
}

func TestValidate_ReadError(t *testing.T) {
	src := &countingSource{lines: []string{"##fileformat=VCFv4.2"}, err: errors.New("disk on fire")}
	res := New(Options{}).Validate(src)
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, KindIO, ve.Kind)
	assert.Equal(t, 2, ve.Line)
}

func TestValidate_CheckColumns(t *testing.T) {
	v := New(Options{CheckColumns: true})

	res := v.ValidateReader(strings.NewReader(header + validLine + "\n"))
	assert.True(t, res.Valid())

	res = v.ValidateReader(strings.NewReader("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\n"))
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, RuleColumnNames, ve.Rule)

	res = v.ValidateReader(strings.NewReader("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTR\tINFO\n"))
	ve = res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, "FILTR", ve.Value)

	// Without the option the column names are not inspected.
	res = New(Options{}).ValidateReader(strings.NewReader("#whatever\n"))
	assert.True(t, res.Valid())
}

func TestValidate_Idempotent(t *testing.T) {
	input := header + validLine + "\n" + strings.Replace(validLine, "0/1:30", "0/1", 1) + "\n"
	v := New(Options{})

	first := v.ValidateReader(strings.NewReader(input))
	second := v.ValidateReader(strings.NewReader(input))

	require.False(t, first.Valid())
	assert.Equal(t, first.Err.Error(), second.Err.Error())
	assert.Equal(t, first.ValidationError().Rule, second.ValidationError().Rule)
	assert.Equal(t, first.Lines, second.Lines)
}

func TestValidate_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(header + validLine + "\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	res := New(Options{}).ValidateReader(&buf)
	assert.True(t, res.Valid())
	assert.Equal(t, 1, res.DataLines)
}

func TestValidateFile_Testdata(t *testing.T) {
	tests := []struct {
		file  string
		valid bool
		rule  Rule
	}{
		{"valid.vcf", true, ""},
		{"valid.vcf.gz", true, ""},
		{"sites_only.vcf", true, ""},
		{"no_header.vcf", false, RuleBeforeHeader},
		{"bad_chrom.vcf", false, RuleChrom},
	}

	v := New(Options{CheckColumns: true})
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := findTestFile(t, tt.file)
			res := v.ValidateFile(path)
			assert.Equal(t, path, res.Path)
			assert.Equal(t, tt.valid, res.Valid(), "unexpected verdict: %v", res.Err)
			if !tt.valid {
				assert.Equal(t, tt.rule, res.ValidationError().Rule)
			}
		})
	}
}

func TestValidateFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.vcf")
	res := New(Options{}).ValidateFile(path)
	ve := res.ValidationError()
	require.NotNil(t, ve)
	assert.Equal(t, KindIO, ve.Kind)
	assert.Equal(t, RuleOpen, ve.Rule)
	assert.ErrorIs(t, res.Err, os.ErrNotExist)
}

func TestValidate_LogsRejection(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	v := New(Options{})
	v.SetLogger(zap.New(core))

	v.ValidateReader(strings.NewReader(header + "chr99\t1\t.\tA\tT\t.\t.\t.\n"))

	entries := logs.FilterMessage("line rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(RuleChrom), entries[0].ContextMap()["rule"])
}

func TestErrorKind_String(t *testing.T) {
	for _, k := range []ErrorKind{KindStructural, KindGrammar, KindArity, KindIO} {
		parsed, ok := ParseErrorKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, "UnknownError", ErrorKind(0).String())
	_, ok := ParseErrorKind("bogus")
	assert.False(t, ok)
}

// countingSource is a LineSource over fixed lines that counts reads.
type countingSource struct {
	lines []string
	reads int
	err   error
}

func (s *countingSource) Next() (string, error) {
	if s.reads >= len(s.lines) {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	s.reads++
	return s.lines[s.reads-1], nil
}

// findTestFile locates a test file in the testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	paths := []string{
		filepath.Join("testdata", name),
		filepath.Join("..", "..", "testdata", name),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	t.Fatalf("Test file not found: %s", name)
	return ""
}
