package merge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/singerma/vcfmerge/internal/registry"
	"github.com/singerma/vcfmerge/internal/vcf"
)

// TCGA merges headers the stricter TCGA way: lines are partitioned into five
// buckets (provenance/misc, field definitions, filters, format fields, sample
// annotations), filters and samples are renamed per originating source, the
// vcfProcessLog provenance value is positionally re-assembled, and the
// buckets are recombined.
//
// Sources are an ordered slice rather than a map: center accumulation and
// first-seen-wins ties depend on source order.
func TCGA(sources []registry.Source, logger *zap.Logger) ([]vcf.HeaderLine, error) {
	warner := NewConflictWarner(logger)

	misc := make(map[string]vcf.HeaderLine)
	info := make(map[string]vcf.CompoundLine)
	filter := make(map[string]vcf.FilterLine)
	format := make(map[string]vcf.CompoundLine)
	sample := make(map[string]vcf.HeaderLine)

	for _, src := range sources {
		for _, line := range src.Header.Lines() {
			var err error

			switch line.Key() {
			case "center":
				if existing, ok := misc["center"]; ok {
					misc["center"] = vcf.NewSimpleLine("center", existing.Value()+","+line.Value())
				} else {
					misc["center"] = line
				}

			case "INFO":
				err = mergeFieldDefinition(info, line, warner)

			case "FORMAT":
				err = mergeFieldDefinition(format, line, warner)

			case "FILTER":
				err = mergeQualifiedFilter(filter, line, src.Name)

			case "SAMPLE":
				err = mergeQualifiedSample(sample, line, src.Name)

			case "vcfProcessLog":
				err = mergeProvenance(misc, line)

			default:
				if existing, ok := misc[line.Key()]; ok {
					if line != existing {
						warner.Warn(line.Key(), fmt.Sprintf("ignoring header line already merged: incoming %s, keeping %s", line, existing))
					}
				} else {
					misc[line.Key()] = line
				}
			}

			if err != nil {
				return nil, err
			}
		}
	}

	lines := make([]vcf.HeaderLine, 0, len(misc)+len(info)+len(filter)+len(format)+len(sample))
	for _, l := range misc {
		lines = append(lines, l)
	}
	for _, l := range info {
		lines = append(lines, l)
	}
	for _, l := range filter {
		lines = append(lines, l)
	}
	for _, l := range format {
		lines = append(lines, l)
	}
	for _, l := range sample {
		lines = append(lines, l)
	}
	return lines, nil
}

// mergeFieldDefinition folds an INFO or FORMAT line into the bucket keyed by
// field name, reconciling collisions the same way the generic merge does.
func mergeFieldDefinition(bucket map[string]vcf.CompoundLine, line vcf.HeaderLine, warner *ConflictWarner) error {
	compound, ok := line.(vcf.CompoundLine)
	if !ok {
		return incompatible(line, nil, fmt.Sprintf("%s line is not a field definition", line.Key()))
	}

	existing, ok := bucket[compound.Name()]
	if !ok {
		bucket[compound.Name()] = compound
		return nil
	}

	merged, err := reconcileCompound(mergeKey(compound), compound, existing, warner)
	if err != nil {
		return err
	}
	bucket[compound.Name()] = merged
	return nil
}

// mergeQualifiedFilter rewrites a FILTER line to a source-qualified name
// (name.source) and stores it. Qualification makes cross-source merging
// impossible by construction, so a collision on the qualified key can only
// mean two lines claim the same qualified name with different underlying
// names, which is a modeling violation.
func mergeQualifiedFilter(bucket map[string]vcf.FilterLine, line vcf.HeaderLine, source string) error {
	f, ok := line.(vcf.FilterLine)
	if !ok {
		return incompatible(line, nil, "FILTER line is not a filter declaration")
	}

	qualified := vcf.NewFilterLine(f.Name()+"."+source, f.Description())
	if existing, ok := bucket[qualified.Name()]; ok {
		if existing.Name() != qualified.Name() {
			return incompatible(qualified, existing, "filter name collision")
		}
		return nil
	}
	bucket[qualified.Name()] = qualified
	return nil
}

// mergeQualifiedSample rewrites a SAMPLE annotation value of the form
// ID=<id>,<rest> so that ".source" is inserted immediately after the ID
// token, and stores it keyed by id.source. The remainder of the value is
// untouched.
func mergeQualifiedSample(bucket map[string]vcf.HeaderLine, line vcf.HeaderLine, source string) error {
	value := line.Value()

	eq := strings.IndexByte(value, '=')
	comma := strings.IndexByte(value, ',')
	if eq < 0 || comma < eq {
		return incompatible(line, nil, fmt.Sprintf("SAMPLE value is not of the form ID=<id>,<rest>: %q", value))
	}
	id := value[eq+1 : comma]

	qualified := strings.Replace(value, ",", "."+source+",", 1)
	bucket[id+"."+source] = vcf.NewSimpleLine("SAMPLE", qualified)
	return nil
}

// mergeProvenance folds a vcfProcessLog line into the misc bucket. The first
// occurrence is validated and stored verbatim; later occurrences are re-zipped
// field by field so each of the five sub-fields grows as a comma list.
func mergeProvenance(misc map[string]vcf.HeaderLine, line vcf.HeaderLine) error {
	existing, ok := misc["vcfProcessLog"]
	if !ok {
		if _, err := parseProcessLog(line.Value()); err != nil {
			return incompatible(line, nil, err.Error())
		}
		misc["vcfProcessLog"] = line
		return nil
	}

	merged, err := mergeProcessLog(existing.Value(), line.Value())
	if err != nil {
		return incompatible(line, existing, err.Error())
	}
	misc["vcfProcessLog"] = vcf.NewSimpleLine("vcfProcessLog", merged)
	return nil
}
