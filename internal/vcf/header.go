package vcf

import "sort"

// Header is the ordered set of metadata declarations from one VCF file.
// Merge algorithms treat headers as read-only inputs.
type Header struct {
	lines       []HeaderLine
	sampleNames []string
}

// NewHeader creates a header from the given lines, in order.
func NewHeader(lines ...HeaderLine) *Header {
	h := &Header{}
	h.Add(lines...)
	return h
}

// Add appends lines to the header.
func (h *Header) Add(lines ...HeaderLine) {
	h.lines = append(h.lines, lines...)
}

// Lines returns the header lines in declaration order.
func (h *Header) Lines() []HeaderLine {
	return h.lines
}

// SampleNames returns sample names from the #CHROM header line, or nil if the
// header was built without one.
func (h *Header) SampleNames() []string {
	return h.sampleNames
}

// SetSampleNames records the sample columns from the #CHROM line.
func (h *Header) SetSampleNames(names []string) {
	h.sampleNames = names
}

// SortLines returns the given lines sorted by their rendered form. Merge
// results carry no ordering guarantee; sorting makes output deterministic.
func SortLines(lines []HeaderLine) []HeaderLine {
	sorted := make([]HeaderLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	return sorted
}
