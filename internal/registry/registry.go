// Package registry tracks named header sources for a merge run.
package registry

import (
	"strings"

	"github.com/singerma/vcfmerge/internal/vcf"
)

// Source is one header-bearing input, identified by the name used for
// qualification in the partitioned merge.
type Source struct {
	Name   string
	Header *vcf.Header
}

// Registry holds an ordered collection of header sources. Order is
// registration order and is significant: merge algorithms are first-seen-wins.
type Registry struct {
	sources []Source
	index   map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers a header under the given source name. Re-registering a name
// replaces its header in place, keeping the original position.
func (r *Registry) Add(name string, header *vcf.Header) {
	if i, ok := r.index[name]; ok {
		r.sources[i].Header = header
		return
	}
	r.index[name] = len(r.sources)
	r.sources = append(r.sources, Source{Name: name, Header: header})
}

// All returns every registered source in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Named returns the sources whose name exactly matches one of the given
// names, in registration order.
func (r *Registry) Named(names ...string) []Source {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []Source
	for _, s := range r.sources {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out
}

// WithPrefix returns the sources whose name starts with the given prefix, in
// registration order.
func (r *Registry) WithPrefix(prefix string) []Source {
	var out []Source
	for _, s := range r.sources {
		if strings.HasPrefix(s.Name, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// Headers returns the headers of the given sources, in order.
func Headers(sources []Source) []*vcf.Header {
	out := make([]*vcf.Header, len(sources))
	for i, s := range sources {
		out[i] = s.Header
	}
	return out
}
