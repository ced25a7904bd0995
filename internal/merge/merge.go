package merge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/singerma/vcfmerge/internal/vcf"
)

// Smart combines the headers into one set of header lines, keyed by
// declaration identity (key, or key+name for named lines).
//
// The merge is order-sensitive: the first-seen line for a given identity wins
// ties, and later conflicting-but-resolvable lines are dropped after a
// deduplicated warning. Source headers are never mutated. A nil logger
// disables warnings but never error failures.
func Smart(headers []*vcf.Header, logger *zap.Logger) ([]vcf.HeaderLine, error) {
	warner := NewConflictWarner(logger)
	merged := make(map[string]vcf.HeaderLine)
	var order []string

	for _, source := range headers {
		for _, line := range source.Lines() {
			key := mergeKey(line)

			existing, ok := merged[key]
			if !ok {
				merged[key] = line
				order = append(order, key)
				continue
			}

			unified, err := unify(key, line, existing, warner)
			if err != nil {
				return nil, err
			}
			merged[key] = unified
		}
	}

	lines := make([]vcf.HeaderLine, 0, len(merged))
	for _, key := range order {
		lines = append(lines, merged[key])
	}
	return lines, nil
}

// mergeKey derives the identity used to detect "the same declaration" across
// sources. Named lines include their name so that, e.g., two INFO fields with
// different names never collide.
func mergeKey(line vcf.HeaderLine) string {
	if named, ok := line.(vcf.Named); ok {
		return line.Key() + "." + named.Name()
	}
	return line.Key()
}

// unify resolves a merge-key collision between an incoming line and the line
// already merged, returning the line to keep.
func unify(cause string, line, existing vcf.HeaderLine, warner *ConflictWarner) (vcf.HeaderLine, error) {
	if line == existing {
		// true duplicate
		return existing, nil
	}

	switch incoming := line.(type) {
	case vcf.CompoundLine:
		other, ok := existing.(vcf.CompoundLine)
		if !ok {
			return nil, incompatible(line, existing, "mismatched line kinds")
		}
		return reconcileCompound(cause, incoming, other, warner)

	case vcf.FilterLine:
		other, ok := existing.(vcf.FilterLine)
		if !ok {
			return nil, incompatible(line, existing, "mismatched line kinds")
		}
		// The merge key includes the name, so differing names here mean the
		// inputs violated the line model.
		if incoming.Name() != other.Name() {
			return nil, incompatible(line, existing, "filter name collision")
		}
		return other, nil

	case vcf.SimpleLine:
		if _, ok := existing.(vcf.SimpleLine); !ok {
			return nil, incompatible(line, existing, "mismatched line kinds")
		}
		warner.Warn(cause, fmt.Sprintf("ignoring header line already merged: incoming %s, keeping %s", line, existing))
		return existing, nil

	case vcf.NamedLine:
		if _, ok := existing.(vcf.NamedLine); !ok {
			return nil, incompatible(line, existing, "mismatched line kinds")
		}
		warner.Warn(cause, fmt.Sprintf("ignoring header line already merged: incoming %s, keeping %s", line, existing))
		return existing, nil

	default:
		return nil, incompatible(line, existing, "unknown header line kind")
	}
}

// reconcileCompound unifies two field definitions sharing an identity:
// cardinality differences widen to unbounded, Integer/Float differences
// promote to Float, and description differences never block the merge (the
// first-seen description is kept). Any other value-type pairing is fatal.
//
// The merged line is a reconciled copy of the existing entry; neither input
// is mutated.
func reconcileCompound(cause string, incoming, existing vcf.CompoundLine, warner *ConflictWarner) (vcf.CompoundLine, error) {
	merged := existing

	if incoming.Type() != merged.Type() && !numericPair(incoming.Type(), merged.Type()) {
		return vcf.CompoundLine{}, incompatible(incoming, existing, "collision between incompatible value types")
	}

	if incoming.Count() != merged.Count() {
		warner.Warn(cause, fmt.Sprintf("promoting header field Number to '.' due to number differences: %s / %s", incoming, existing))
		merged.WidenToUnbounded()
	}

	if incoming.Type() != merged.Type() {
		warner.Warn(cause, fmt.Sprintf("promoting Integer to Float in header field %s", merged.Name()))
		if err := merged.PromoteToFloat(); err != nil {
			return vcf.CompoundLine{}, incompatible(incoming, existing, err.Error())
		}
	}

	if incoming.Description() != merged.Description() {
		warner.Warn(cause, fmt.Sprintf("allowing unequal description fields through: keeping %s, excluding %s", merged, incoming))
	}

	return merged, nil
}

// numericPair reports whether the two types are Integer and Float in either
// order, the only promotable pairing.
func numericPair(a, b vcf.LineType) bool {
	return (a == vcf.TypeInteger && b == vcf.TypeFloat) ||
		(a == vcf.TypeFloat && b == vcf.TypeInteger)
}
