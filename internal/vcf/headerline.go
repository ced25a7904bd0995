// Package vcf provides VCF header and variant parsing functionality.
package vcf

import (
	"fmt"
	"strconv"
)

// LineType is the declared value type of an INFO or FORMAT field.
type LineType int

// Value types allowed by the VCF specification for INFO and FORMAT fields.
const (
	TypeInteger LineType = iota
	TypeFloat
	TypeString
	TypeCharacter
	TypeFlag
)

var lineTypeNames = [...]string{"Integer", "Float", "String", "Character", "Flag"}

// String returns the VCF spelling of the type (e.g. "Integer").
func (t LineType) String() string {
	if t < 0 || int(t) >= len(lineTypeNames) {
		return fmt.Sprintf("LineType(%d)", int(t))
	}
	return lineTypeNames[t]
}

// ParseLineType converts a VCF type spelling to a LineType.
func ParseLineType(s string) (LineType, error) {
	for i, name := range lineTypeNames {
		if s == name {
			return LineType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown header line type %q", s)
}

// CountUnbounded is the sentinel for a field whose number of values varies,
// written as "." in a VCF header.
const CountUnbounded = -1

// HeaderLine is one metadata declaration from a VCF header.
//
// The concrete variants are SimpleLine, NamedLine, FilterLine and
// CompoundLine; all are comparable value types, so two lines are structural
// duplicates exactly when they compare equal with ==.
type HeaderLine interface {
	// Key returns the declaration category (e.g. "INFO", "FILTER", "center").
	Key() string
	// Value returns the textual payload after "##key=".
	Value() string
	// String renders the full header line including the "##" prefix.
	String() string

	headerLine()
}

// Named is a HeaderLine that carries an identifying name in addition to its
// key. NamedLine, FilterLine and CompoundLine satisfy it.
type Named interface {
	HeaderLine
	Name() string
}

// SimpleLine is a bare key=value header line, e.g. ##fileformat=VCFv4.1.
type SimpleLine struct {
	key   string
	value string
}

// NewSimpleLine creates a key=value header line.
func NewSimpleLine(key, value string) SimpleLine {
	return SimpleLine{key: key, value: value}
}

func (l SimpleLine) Key() string    { return l.key }
func (l SimpleLine) Value() string  { return l.value }
func (l SimpleLine) String() string { return "##" + l.key + "=" + l.value }
func (l SimpleLine) headerLine()    {}

// NamedLine is a structured header line identified by an ID field whose key
// is not one of the specially modeled categories, e.g.
// ##contig=<ID=20,length=62435964>. The value is kept verbatim.
type NamedLine struct {
	key   string
	name  string
	value string
}

// NewNamedLine creates a generic named header line. The value should be the
// raw bracketed payload including the ID field.
func NewNamedLine(key, name, value string) NamedLine {
	return NamedLine{key: key, name: name, value: value}
}

func (l NamedLine) Key() string    { return l.key }
func (l NamedLine) Name() string   { return l.name }
func (l NamedLine) Value() string  { return l.value }
func (l NamedLine) String() string { return "##" + l.key + "=" + l.value }
func (l NamedLine) headerLine()    {}

// FilterLine is a ##FILTER declaration. Its key is always "FILTER".
type FilterLine struct {
	name        string
	description string
}

// NewFilterLine creates a FILTER header line.
func NewFilterLine(name, description string) FilterLine {
	return FilterLine{name: name, description: description}
}

func (l FilterLine) Key() string         { return "FILTER" }
func (l FilterLine) Name() string        { return l.name }
func (l FilterLine) Description() string { return l.description }

func (l FilterLine) Value() string {
	return fmt.Sprintf("<ID=%s,Description=%q>", l.name, l.description)
}

func (l FilterLine) String() string { return "##FILTER=" + l.Value() }
func (l FilterLine) headerLine()    {}

// CompoundLine is a field definition (##INFO or ##FORMAT) carrying a
// cardinality, a value type and a description.
type CompoundLine struct {
	key         string
	name        string
	count       int
	typ         LineType
	description string
}

// NewCompoundLine creates an INFO or FORMAT field definition. Use
// CountUnbounded for fields whose value count varies.
func NewCompoundLine(key, name string, count int, typ LineType, description string) CompoundLine {
	return CompoundLine{key: key, name: name, count: count, typ: typ, description: description}
}

func (l CompoundLine) Key() string         { return l.key }
func (l CompoundLine) Name() string        { return l.name }
func (l CompoundLine) Count() int          { return l.count }
func (l CompoundLine) Type() LineType      { return l.typ }
func (l CompoundLine) Description() string { return l.description }

func (l CompoundLine) Value() string {
	number := "."
	if l.count != CountUnbounded {
		number = strconv.Itoa(l.count)
	}
	return fmt.Sprintf("<ID=%s,Number=%s,Type=%s,Description=%q>", l.name, number, l.typ, l.description)
}

func (l CompoundLine) String() string { return "##" + l.key + "=" + l.Value() }
func (l CompoundLine) headerLine()    {}

// EqualsExcludingDescription reports whether two field definitions agree on
// everything but their description. Descriptions alone never block a merge.
func (l CompoundLine) EqualsExcludingDescription(o CompoundLine) bool {
	return l.key == o.key && l.name == o.name && l.count == o.count && l.typ == o.typ
}

// WidenToUnbounded relaxes the cardinality to "." (variable). One-way and
// idempotent: a widened line is never narrowed again.
func (l *CompoundLine) WidenToUnbounded() {
	l.count = CountUnbounded
}

// PromoteToFloat promotes an Integer-typed field to Float. Idempotent on an
// already-Float field; any other type is an error.
func (l *CompoundLine) PromoteToFloat() error {
	switch l.typ {
	case TypeFloat:
		return nil
	case TypeInteger:
		l.typ = TypeFloat
		return nil
	default:
		return fmt.Errorf("cannot promote %s field %s to Float", l.typ, l.name)
	}
}
