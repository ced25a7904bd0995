package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want HeaderLine
	}{
		{
			name: "simple",
			in:   "##fileformat=VCFv4.1",
			want: NewSimpleLine("fileformat", "VCFv4.1"),
		},
		{
			name: "simple without prefix",
			in:   "center=broad",
			want: NewSimpleLine("center", "broad"),
		},
		{
			name: "info",
			in:   `##INFO=<ID=DP,Number=1,Type=Integer,Description="Total Depth">`,
			want: NewCompoundLine("INFO", "DP", 1, TypeInteger, "Total Depth"),
		},
		{
			name: "info unbounded",
			in:   `##INFO=<ID=AF,Number=.,Type=Float,Description="Allele Frequency">`,
			want: NewCompoundLine("INFO", "AF", CountUnbounded, TypeFloat, "Allele Frequency"),
		},
		{
			name: "info per-allele count treated as unbounded",
			in:   `##INFO=<ID=AC,Number=A,Type=Integer,Description="Allele Count">`,
			want: NewCompoundLine("INFO", "AC", CountUnbounded, TypeInteger, "Allele Count"),
		},
		{
			name: "format",
			in:   `##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`,
			want: NewCompoundLine("FORMAT", "GT", 1, TypeString, "Genotype"),
		},
		{
			name: "filter",
			in:   `##FILTER=<ID=q10,Description="Quality below 10">`,
			want: NewFilterLine("q10", "Quality below 10"),
		},
		{
			name: "generic named",
			in:   "##contig=<ID=20,length=62435964>",
			want: NewNamedLine("contig", "20", "<ID=20,length=62435964>"),
		},
		{
			name: "structured without ID stays simple",
			in:   "##pedigree=<Mother=M,Father=F>",
			want: NewSimpleLine("pedigree", "<Mother=M,Father=F>"),
		},
		{
			name: "description with commas",
			in:   `##INFO=<ID=AA,Number=1,Type=String,Description="Ancestral Allele, if known">`,
			want: NewCompoundLine("INFO", "AA", 1, TypeString, "Ancestral Allele, if known"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeaderLine(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHeaderLine_Errors(t *testing.T) {
	for _, in := range []string{
		"##nodelimiter",
		"##INFO=<ID=DP,Number=1,Type=Bogus,Description=\"x\">",
		"##INFO=<Number=1,Type=Integer,Description=\"x\">",
		"##FILTER=<Description=\"no id\">",
	} {
		_, err := ParseHeaderLine(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestHeaderLine_RenderRoundTrip(t *testing.T) {
	lines := []HeaderLine{
		NewSimpleLine("fileformat", "VCFv4.1"),
		NewCompoundLine("INFO", "DP", 1, TypeInteger, "Total Depth"),
		NewCompoundLine("FORMAT", "AF", CountUnbounded, TypeFloat, "Frequency"),
		NewFilterLine("q10", "Quality below 10"),
		NewNamedLine("contig", "20", "<ID=20,length=62435964>"),
	}

	for _, line := range lines {
		parsed, err := ParseHeaderLine(line.String())
		require.NoError(t, err)
		assert.Equal(t, line, parsed)
	}
}

func TestHeaderLine_StructuralEquality(t *testing.T) {
	a := HeaderLine(NewCompoundLine("INFO", "DP", 1, TypeInteger, "Depth"))
	b := HeaderLine(NewCompoundLine("INFO", "DP", 1, TypeInteger, "Depth"))
	c := HeaderLine(NewCompoundLine("INFO", "DP", 1, TypeInteger, "Total Depth"))

	assert.True(t, a == b)
	assert.False(t, a == c)

	// Same key and name but a different kind is never equal.
	assert.False(t, HeaderLine(NewSimpleLine("center", "broad")) == HeaderLine(NewNamedLine("center", "broad", "broad")))
}

func TestCompoundLine_EqualsExcludingDescription(t *testing.T) {
	base := NewCompoundLine("INFO", "DP", 1, TypeInteger, "Depth")

	assert.True(t, base.EqualsExcludingDescription(NewCompoundLine("INFO", "DP", 1, TypeInteger, "other words")))
	assert.False(t, base.EqualsExcludingDescription(NewCompoundLine("INFO", "DP", 2, TypeInteger, "Depth")))
	assert.False(t, base.EqualsExcludingDescription(NewCompoundLine("INFO", "DP", 1, TypeFloat, "Depth")))
}

func TestCompoundLine_WidenToUnbounded(t *testing.T) {
	line := NewCompoundLine("INFO", "DP", 2, TypeInteger, "Depth")

	line.WidenToUnbounded()
	assert.Equal(t, CountUnbounded, line.Count())

	// Idempotent
	line.WidenToUnbounded()
	assert.Equal(t, CountUnbounded, line.Count())
	assert.Contains(t, line.String(), "Number=.")
}

func TestCompoundLine_PromoteToFloat(t *testing.T) {
	line := NewCompoundLine("INFO", "AF", 1, TypeInteger, "Frequency")

	require.NoError(t, line.PromoteToFloat())
	assert.Equal(t, TypeFloat, line.Type())

	// Idempotent on Float
	require.NoError(t, line.PromoteToFloat())
	assert.Equal(t, TypeFloat, line.Type())

	// Loud on anything else
	bad := NewCompoundLine("INFO", "AA", 1, TypeString, "Ancestral")
	assert.Error(t, bad.PromoteToFloat())
	assert.Equal(t, TypeString, bad.Type())
}

func TestParseLineType(t *testing.T) {
	for _, name := range []string{"Integer", "Float", "String", "Character", "Flag"} {
		typ, err := ParseLineType(name)
		require.NoError(t, err)
		assert.Equal(t, name, typ.String())
	}

	_, err := ParseLineType("Bogus")
	assert.Error(t, err)
}
