// Package merge combines VCF headers from independent sources into one
// consistent header.
package merge

import (
	"fmt"

	"github.com/singerma/vcfmerge/internal/vcf"
)

// IncompatibleHeadersError reports header declarations that cannot be
// unified. It is the only fatal merge error; a merge that returns it produced
// no partial result.
type IncompatibleHeadersError struct {
	Line   vcf.HeaderLine // the incoming line
	Other  vcf.HeaderLine // the line already merged, nil when the conflict is with the line itself
	Reason string
}

func (e *IncompatibleHeadersError) Error() string {
	if e.Other != nil {
		return fmt.Sprintf("incompatible header lines: %s: %s / %s", e.Reason, e.Line, e.Other)
	}
	return fmt.Sprintf("incompatible header line: %s: %s", e.Reason, e.Line)
}

func incompatible(line, other vcf.HeaderLine, reason string) error {
	return &IncompatibleHeadersError{Line: line, Other: other, Reason: reason}
}
