package vcf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParser_TypedHeader(t *testing.T) {
	testFile := findTestFile(t, "caller1.vcf")

	parser, err := NewParser(testFile)
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	defer parser.Close()

	header := parser.Header()
	lines := header.Lines()
	if len(lines) != 10 {
		t.Fatalf("Expected 10 header lines, got %d", len(lines))
	}

	if lines[0] != HeaderLine(NewSimpleLine("fileformat", "VCFv4.1")) {
		t.Errorf("Unexpected first line: %s", lines[0])
	}

	var dp CompoundLine
	var foundDP, foundFilter, foundContig bool
	for _, line := range lines {
		switch l := line.(type) {
		case CompoundLine:
			if l.Key() == "INFO" && l.Name() == "DP" {
				dp = l
				foundDP = true
			}
		case FilterLine:
			foundFilter = true
			if l.Name() != "q10" {
				t.Errorf("Expected filter q10, got %s", l.Name())
			}
		case NamedLine:
			if l.Key() == "contig" {
				foundContig = true
				if l.Name() != "20" {
					t.Errorf("Expected contig 20, got %s", l.Name())
				}
			}
		}
	}

	if !foundDP || !foundFilter || !foundContig {
		t.Fatalf("Missing typed lines: DP=%v filter=%v contig=%v", foundDP, foundFilter, foundContig)
	}

	if dp.Count() != 1 || dp.Type() != TypeInteger || dp.Description() != "Total Depth" {
		t.Errorf("Unexpected DP definition: %s", dp)
	}
}

func TestParser_SampleNames(t *testing.T) {
	testFile := findTestFile(t, "caller1.vcf")

	parser, err := NewParser(testFile)
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	defer parser.Close()

	samples := parser.Header().SampleNames()
	if len(samples) != 1 || samples[0] != "NORMAL" {
		t.Errorf("Expected sample NORMAL, got %v", samples)
	}
}

func TestParser_Gzip(t *testing.T) {
	testFile := findTestFile(t, "caller1.vcf.gz")

	parser, err := NewParser(testFile)
	if err != nil {
		t.Fatalf("Failed to create gzip parser: %v", err)
	}
	defer parser.Close()

	if len(parser.Header().Lines()) != 10 {
		t.Errorf("Expected 10 header lines from gzipped file, got %d", len(parser.Header().Lines()))
	}
}

func TestParser_Variants(t *testing.T) {
	testFile := findTestFile(t, "caller1.vcf")

	parser, err := NewParser(testFile)
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	defer parser.Close()

	var variants []*Variant
	for {
		v, err := parser.Next()
		if err != nil {
			t.Fatalf("Error reading variant: %v", err)
		}
		if v == nil {
			break
		}
		variants = append(variants, v)
	}

	if len(variants) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(variants))
	}

	first := variants[0]
	if first.Chrom != "20" || first.Pos != 14370 || first.ID != "rs6054257" {
		t.Errorf("Unexpected first variant: %+v", first)
	}
	if !first.IsSNV() {
		t.Error("Expected first variant to be an SNV")
	}
	if !variants[1].IsIndel() {
		t.Error("Expected second variant to be an indel")
	}
}

func TestParser_FromReader(t *testing.T) {
	input := "##fileformat=VCFv4.1\n" +
		"##center=broad\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"1\t100\trs1\tA\tT\t50\tPASS\tDP=10\n"

	parser, err := NewParserFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	if len(parser.Header().Lines()) != 2 {
		t.Errorf("Expected 2 header lines, got %d", len(parser.Header().Lines()))
	}

	v, err := parser.Next()
	if err != nil {
		t.Fatalf("Error reading variant: %v", err)
	}
	if v == nil || v.ID != "rs1" {
		t.Errorf("Expected variant rs1, got %+v", v)
	}
}

func TestParser_MissingChromLine(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader("##fileformat=VCFv4.1\n"))
	if err == nil {
		t.Fatal("Expected error for header without #CHROM line")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("Expected *ParseError, got %T", err)
	}
}

// findTestFile locates a test file in the testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	// Try different relative paths
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
