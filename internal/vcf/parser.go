package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads the header and variants from a VCF file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	header     *Header
}

// NewParser creates a new VCF parser for the given file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReader(r),
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads the ## metadata lines into typed HeaderLine values and
// stops after the #CHROM column line.
func (p *Parser) parseHeader() error {
	p.header = NewHeader()

	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			hl, err := ParseHeaderLine(line)
			if err != nil {
				return &ParseError{Line: p.lineNumber, Message: err.Error()}
			}
			p.header.Add(hl)
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			// Sample names are the columns after FORMAT (index 9+)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				p.header.SetSampleNames(fields[9:])
			}
			return nil
		}

		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// ParseHeaderLine parses one ## metadata line into its typed variant.
// The leading "##" is optional.
func ParseHeaderLine(line string) (HeaderLine, error) {
	line = strings.TrimPrefix(line, "##")

	key, value, found := strings.Cut(line, "=")
	if !found || key == "" {
		return nil, fmt.Errorf("header line missing '=': %q", line)
	}

	if !strings.HasPrefix(value, "<") || !strings.HasSuffix(value, ">") {
		return SimpleLine{key: key, value: value}, nil
	}

	fields := splitStructured(value[1 : len(value)-1])

	switch key {
	case "INFO", "FORMAT":
		return parseCompound(key, fields)
	case "FILTER":
		id, ok := fields["ID"]
		if !ok {
			return nil, fmt.Errorf("FILTER line missing ID: %q", line)
		}
		return FilterLine{name: id, description: fields["Description"]}, nil
	default:
		if id, ok := fields["ID"]; ok {
			return NamedLine{key: key, name: id, value: value}, nil
		}
		// Structured but anonymous; treat the payload as opaque text.
		return SimpleLine{key: key, value: value}, nil
	}
}

// parseCompound builds an INFO or FORMAT field definition from its
// ID/Number/Type/Description fields.
func parseCompound(key string, fields map[string]string) (HeaderLine, error) {
	id, ok := fields["ID"]
	if !ok {
		return nil, fmt.Errorf("%s line missing ID", key)
	}

	typ, err := ParseLineType(fields["Type"])
	if err != nil {
		return nil, fmt.Errorf("%s field %s: %w", key, id, err)
	}

	count := CountUnbounded
	if number := fields["Number"]; number != "" && number != "." {
		// Per-allele and per-genotype counts (A, G, R) vary by record, which
		// the merge model treats as unbounded.
		if n, err := strconv.Atoi(number); err == nil {
			count = n
		}
	}

	return CompoundLine{
		key:         key,
		name:        id,
		count:       count,
		typ:         typ,
		description: fields["Description"],
	}, nil
}

// splitStructured splits the inside of a <...> payload into key=value fields,
// honoring quoted values that may contain commas.
func splitStructured(s string) map[string]string {
	fields := make(map[string]string)

	for len(s) > 0 {
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			break
		}
		name := s[:eq]
		s = s[eq+1:]

		var value string
		if strings.HasPrefix(s, `"`) {
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				value = s[1:]
				s = ""
			} else {
				value = s[1 : end+1]
				s = strings.TrimPrefix(s[end+2:], ",")
			}
		} else {
			comma := strings.IndexByte(s, ',')
			if comma < 0 {
				value = s
				s = ""
			} else {
				value = s[:comma]
				s = s[comma+1:]
			}
		}

		fields[name] = value
	}

	return fields
}

// Next reads the next variant from the VCF file.
// Returns nil, nil when there are no more variants.
func (p *Parser) Next() (*Variant, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read variant line: %w", err)
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return p.Next() // Skip empty lines
	}

	return p.parseLine(line)
}

// parseLine parses a single VCF data line into a Variant.
func (p *Parser) parseLine(line string) (*Variant, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	qual := 0.0
	if fields[5] != "." {
		qual, _ = strconv.ParseFloat(fields[5], 64)
	}

	return &Variant{
		Chrom:  fields[0],
		Pos:    pos,
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Qual:   qual,
		Filter: fields[6],
	}, nil
}

// Header returns the parsed header.
func (p *Parser) Header() *Header {
	return p.header
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
