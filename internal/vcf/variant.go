package vcf

// Variant represents a single genomic variant from a VCF file.
type Variant struct {
	Chrom  string  // Chromosome name (e.g., "12", "chr12")
	Pos    int64   // 1-based genomic position
	ID     string  // Variant identifier (e.g., rs ID)
	Ref    string  // Reference allele
	Alt    string  // Alternate allele
	Qual   float64 // Quality score
	Filter string  // Filter status (PASS or filter name)
}

// VariantType classifies a variant by its ref/alt allele shape.
type VariantType int

const (
	TypeSNV VariantType = iota
	TypeMNV
	TypeInsertion
	TypeDeletion
)

var variantTypeNames = [...]string{"SNV", "MNV", "insertion", "deletion"}

func (t VariantType) String() string {
	if t < 0 || int(t) >= len(variantTypeNames) {
		return "unknown"
	}
	return variantTypeNames[t]
}

// Type returns the variant's classification.
func (v *Variant) Type() VariantType {
	switch {
	case len(v.Alt) > len(v.Ref):
		return TypeInsertion
	case len(v.Ref) > len(v.Alt):
		return TypeDeletion
	case len(v.Ref) == 1:
		return TypeSNV
	default:
		return TypeMNV
	}
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}

// FirstIDOfType returns the identifier of the first variant of the given
// type. The second result is false when no variant matches; absence is a
// normal outcome, not an error.
func FirstIDOfType(vs []*Variant, t VariantType) (string, bool) {
	for _, v := range vs {
		if v.Type() == t {
			return v.ID, true
		}
	}
	return "", false
}
