// Package descriptor implements the field- and method-descriptor grammar
// used throughout a class file's constant pool and member records —
// compact strings like "I", "[B", or "(IDLjava/lang/Thread;)Ljava/lang/Object;".
// It is a small, self-contained recursive-descent parser, separate from
// classfile because descriptors are plain strings with no pool references
// of their own to resolve.
package descriptor

import "strings"

// FieldTypeKind discriminates the variants of FieldType.
type FieldTypeKind int

const (
	Byte FieldTypeKind = iota
	Char
	Double
	Float
	Int
	Long
	Short
	Boolean
	Object
	Array
)

var primitiveCodes = map[byte]FieldTypeKind{
	'B': Byte,
	'C': Char,
	'D': Double,
	'F': Float,
	'I': Int,
	'J': Long,
	'S': Short,
	'Z': Boolean,
}

var primitiveChars = map[FieldTypeKind]byte{
	Byte: 'B', Char: 'C', Double: 'D', Float: 'F',
	Int: 'I', Long: 'J', Short: 'S', Boolean: 'Z',
}

// FieldType is a single field descriptor: one of the eight primitives, an
// object type named by its internal (slash-separated) class name, or an
// array whose element is itself a FieldType.
type FieldType struct {
	Kind FieldTypeKind

	// ClassName is valid when Kind == Object: the internal name between
	// the leading 'L' and trailing ';', unmodified (may be empty).
	ClassName string

	// Element is valid when Kind == Array: the descriptor for one level
	// down. A "[[I" descriptor is Array{Element: Array{Element: Int}}.
	Element *FieldType
}

// String prints ft back to its compact descriptor form. For any FieldType
// produced by ParseField, String round-trips byte-for-byte (spec
// invariant P8).
func (ft FieldType) String() string {
	var b strings.Builder
	ft.write(&b)
	return b.String()
}

func (ft FieldType) write(b *strings.Builder) {
	switch ft.Kind {
	case Object:
		b.WriteByte('L')
		b.WriteString(ft.ClassName)
		b.WriteByte(';')
	case Array:
		b.WriteByte('[')
		ft.Element.write(b)
	default:
		b.WriteByte(primitiveChars[ft.Kind])
	}
}

// MethodDescriptor is a method's parameter list plus return type.
type MethodDescriptor struct {
	Parameters []FieldType

	// Void is true for a void return; Return is meaningful only when
	// Void is false.
	Void   bool
	Return FieldType
}

// String prints md back to its compact descriptor form, e.g.
// "(IDLjava/lang/Thread;)Ljava/lang/Object;". Round-trips for any
// MethodDescriptor produced by ParseMethod.
func (md MethodDescriptor) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range md.Parameters {
		p.write(&b)
	}
	b.WriteByte(')')
	if md.Void {
		b.WriteByte('V')
	} else {
		md.Return.write(&b)
	}
	return b.String()
}

// defaultMaxDepth bounds array nesting depth, guarding the recursive
// descent against adversarial inputs like a descriptor consisting of
// thousands of '[' characters (spec §5's recursion bound requirement).
const defaultMaxDepth = 255

// ParseField parses s as a single field descriptor. maxDepth, if positive,
// overrides defaultMaxDepth as the maximum array nesting allowed; pass 0
// to use the default.
func ParseField(s string, maxDepth int) (FieldType, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	p := &parser{s: s}
	ft, err := p.parseFieldType(0, maxDepth)
	if err != nil {
		return FieldType{}, err
	}
	if p.pos != len(p.s) {
		return FieldType{}, errBadDescriptor(s, "trailing characters after field descriptor")
	}
	return ft, nil
}

// ParseMethod parses s as a method descriptor: "(" params ")" return.
func ParseMethod(s string, maxDepth int) (MethodDescriptor, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	p := &parser{s: s}
	if !p.consume('(') {
		return MethodDescriptor{}, errBadDescriptor(s, "method descriptor must start with '('")
	}
	var params []FieldType
	for !p.atEnd() && p.peek() != ')' {
		ft, err := p.parseFieldType(0, maxDepth)
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, ft)
	}
	if !p.consume(')') {
		return MethodDescriptor{}, errBadDescriptor(s, "unterminated parameter list, expected ')'")
	}
	if p.atEnd() {
		return MethodDescriptor{}, errBadDescriptor(s, "missing return type after ')'")
	}
	if p.peek() == 'V' {
		p.pos++
		if p.pos != len(p.s) {
			return MethodDescriptor{}, errBadDescriptor(s, "trailing characters after void return")
		}
		return MethodDescriptor{Parameters: params, Void: true}, nil
	}
	ret, err := p.parseFieldType(0, maxDepth)
	if err != nil {
		return MethodDescriptor{}, err
	}
	if p.pos != len(p.s) {
		return MethodDescriptor{}, errBadDescriptor(s, "trailing characters after return type")
	}
	return MethodDescriptor{Parameters: params, Return: ret}, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) atEnd() bool    { return p.pos >= len(p.s) }
func (p *parser) peek() byte     { return p.s[p.pos] }
func (p *parser) consume(b byte) bool {
	if !p.atEnd() && p.peek() == b {
		p.pos++
		return true
	}
	return false
}

// parseFieldType implements the FieldDescriptor production of spec §4.5:
// a primitive code, an 'L' ... ';' object name, or a '[' followed
// recursively by another FieldDescriptor. depth tracks array nesting so
// far; it is bumped only by the '[' case.
func (p *parser) parseFieldType(depth, maxDepth int) (FieldType, error) {
	if p.atEnd() {
		return FieldType{}, errBadDescriptor(p.s, "unexpected end of descriptor")
	}
	if depth > maxDepth {
		return FieldType{}, errBadDescriptor(p.s, "array nesting exceeds maximum recursion depth")
	}

	c := p.peek()
	if kind, ok := primitiveCodes[c]; ok {
		p.pos++
		return FieldType{Kind: kind}, nil
	}

	switch c {
	case 'L':
		p.pos++
		start := p.pos
		for !p.atEnd() && p.peek() != ';' {
			p.pos++
		}
		if p.atEnd() {
			return FieldType{}, errBadDescriptor(p.s, "unterminated object type, missing ';'")
		}
		name := p.s[start:p.pos]
		p.pos++ // consume ';'
		return FieldType{Kind: Object, ClassName: name}, nil

	case '[':
		p.pos++
		elem, err := p.parseFieldType(depth+1, maxDepth)
		if err != nil {
			return FieldType{}, err
		}
		return FieldType{Kind: Array, Element: &elem}, nil

	default:
		return FieldType{}, errBadDescriptor(p.s, "unexpected character "+quoteByte(c))
	}
}

func quoteByte(b byte) string {
	return "'" + string(rune(b)) + "'"
}
