package merge

import (
	"fmt"
	"strings"
)

// processLogFields are the five required vcfProcessLog sub-fields, in their
// fixed order. Each appears as Name=<value> inside the outer brackets.
var processLogFields = [5]string{
	"InputVCF",
	"InputVCFSource",
	"InputVCFVer",
	"InputVCFParam",
	"InputVCFgeneAnno",
}

// parseProcessLog splits a provenance value of the form
//
//	<InputVCF=<a.vcf>,InputVCFSource=<x>,InputVCFVer=<1>,InputVCFParam=<p>,InputVCFgeneAnno=<g>>
//
// into its five field values. Field values may contain commas (they grow as
// comma lists across merges) but never angle brackets.
func parseProcessLog(value string) ([5]string, error) {
	var out [5]string

	if !strings.HasPrefix(value, "<") || !strings.HasSuffix(value, ">") {
		return out, fmt.Errorf("vcfProcessLog value is not bracketed: %q", value)
	}

	rest := value[1 : len(value)-1]
	for i, name := range processLogFields {
		prefix := name + "=<"
		if i > 0 {
			prefix = "," + prefix
		}
		if !strings.HasPrefix(rest, prefix) {
			return out, fmt.Errorf("vcfProcessLog value missing %s field: %q", name, value)
		}
		rest = rest[len(prefix):]

		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return out, fmt.Errorf("vcfProcessLog field %s is not closed: %q", name, value)
		}
		out[i] = rest[:end]
		rest = rest[end+1:]
	}

	if rest != "" {
		return out, fmt.Errorf("vcfProcessLog value has trailing content %q: %q", rest, value)
	}

	return out, nil
}

// formatProcessLog renders the five field values back into the provenance
// micro-format, preserving field order and bracket nesting.
func formatProcessLog(fields [5]string) string {
	var b strings.Builder
	b.WriteByte('<')
	for i, name := range processLogFields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteString("=<")
		b.WriteString(fields[i])
		b.WriteByte('>')
	}
	b.WriteByte('>')
	return b.String()
}

// mergeProcessLog re-zips an incoming provenance value into an accumulated
// one: for each of the five fields in fixed order, the incoming value is
// appended, comma-separated, to the accumulated value.
func mergeProcessLog(accumulated, incoming string) (string, error) {
	acc, err := parseProcessLog(accumulated)
	if err != nil {
		return "", err
	}
	inc, err := parseProcessLog(incoming)
	if err != nil {
		return "", err
	}

	for i := range acc {
		acc[i] = acc[i] + "," + inc[i]
	}
	return formatProcessLog(acc), nil
}
