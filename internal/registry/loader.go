package registry

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/singerma/vcfmerge/internal/vcf"
)

// DefaultLoaderSize is the default number of parsed headers kept in memory.
const DefaultLoaderSize = 64

// Loader parses VCF headers from files, caching parsed headers by path so
// repeated merges over overlapping input sets do not re-parse.
type Loader struct {
	cache *lru.Cache[string, *vcf.Header]
}

// NewLoader creates a loader caching up to size parsed headers. A size of
// zero or less uses DefaultLoaderSize.
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = DefaultLoaderSize
	}
	cache, err := lru.New[string, *vcf.Header](size)
	if err != nil {
		return nil, fmt.Errorf("create header cache: %w", err)
	}
	return &Loader{cache: cache}, nil
}

// Load parses the header of the VCF file at path, reusing a cached parse if
// one exists.
func (l *Loader) Load(path string) (*vcf.Header, error) {
	if header, ok := l.cache.Get(path); ok {
		return header, nil
	}

	parser, err := vcf.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	header := parser.Header()
	l.cache.Add(path, header)
	return header, nil
}

// Len returns the number of cached headers.
func (l *Loader) Len() int {
	return l.cache.Len()
}
