package classfile

import "github.com/go-jclass/jclass/internal/cursor"

// Annotation is a single runtime-visible-or-not annotation occurrence: a
// type plus a set of element=value pairs, per spec §4.4's
// Runtime{Visible,Invisible}Annotations description.
type Annotation struct {
	Type     PoolRef[Utf8Info]
	Elements []ElementValuePair
}

// ElementValuePair is one element=value binding inside an annotation.
type ElementValuePair struct {
	Name  PoolRef[Utf8Info]
	Value ElementValue
}

// ElementValueTag is the single ASCII character that discriminates an
// element value's kind (spec §4.4).
type ElementValueTag byte

const (
	EVByte           ElementValueTag = 'B'
	EVChar           ElementValueTag = 'C'
	EVDouble         ElementValueTag = 'D'
	EVFloat          ElementValueTag = 'F'
	EVInt            ElementValueTag = 'I'
	EVLong           ElementValueTag = 'J'
	EVShort          ElementValueTag = 'S'
	EVBoolean        ElementValueTag = 'Z'
	EVString         ElementValueTag = 's'
	EVEnum           ElementValueTag = 'e'
	EVClass          ElementValueTag = 'c'
	EVAnnotation     ElementValueTag = '@'
	EVArray          ElementValueTag = '['
)

func (t ElementValueTag) isConstTag() bool {
	switch t {
	case EVByte, EVChar, EVDouble, EVFloat, EVInt, EVLong, EVShort, EVBoolean, EVString:
		return true
	}
	return false
}

// EnumConstValue identifies an enum constant by its type and name, both
// Utf8 references (the 'e' element value tag).
type EnumConstValue struct {
	TypeName  PoolRef[Utf8Info]
	ConstName PoolRef[Utf8Info]
}

// ElementValue is a tagged leaf (or subtree) of an annotation: a constant
// pool reference, an enum constant, a class literal, a nested annotation,
// or an array of further element values. Exactly one of the fields beside
// Tag is meaningful, selected by Tag.
type ElementValue struct {
	Tag ElementValueTag

	ConstValue PoolRef[PoolEntry] // valid when Tag.isConstTag()
	EnumValue  EnumConstValue     // valid when Tag == EVEnum
	ClassInfo  PoolRef[Utf8Info]  // valid when Tag == EVClass
	Annotation *Annotation        // valid when Tag == EVAnnotation
	Array      []ElementValue     // valid when Tag == EVArray
}

// parseAnnotation parses one annotation occurrence, recursing through
// parseElementValue for each of its elements. depth bounds recursion per
// spec §5; it is incremented by parseElementValue, not here.
func parseAnnotation(c *cursor.Cursor, opts *Options, depth int) (Annotation, error) {
	typeIdx, err := c.U2()
	if err != nil {
		return Annotation{}, err
	}
	count, err := c.U2()
	if err != nil {
		return Annotation{}, err
	}
	elems := make([]ElementValuePair, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIdx, err := c.U2()
		if err != nil {
			return Annotation{}, err
		}
		val, err := parseElementValue(c, opts, depth)
		if err != nil {
			return Annotation{}, err
		}
		elems = append(elems, ElementValuePair{
			Name:  PoolRef[Utf8Info]{Index: nameIdx},
			Value: val,
		})
	}
	return Annotation{Type: PoolRef[Utf8Info]{Index: typeIdx}, Elements: elems}, nil
}

func parseElementValue(c *cursor.Cursor, opts *Options, depth int) (ElementValue, error) {
	if depth > opts.maxRecursionDepth() {
		return ElementValue{}, ErrRecursionLimit
	}
	tagByte, err := c.U1()
	if err != nil {
		return ElementValue{}, err
	}
	tag := ElementValueTag(tagByte)

	switch {
	case tag.isConstTag():
		idx, err := c.U2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ConstValue: PoolRef[PoolEntry]{Index: idx}}, nil

	case tag == EVEnum:
		typeIdx, err := c.U2()
		if err != nil {
			return ElementValue{}, err
		}
		nameIdx, err := c.U2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{
			Tag: tag,
			EnumValue: EnumConstValue{
				TypeName:  PoolRef[Utf8Info]{Index: typeIdx},
				ConstName: PoolRef[Utf8Info]{Index: nameIdx},
			},
		}, nil

	case tag == EVClass:
		idx, err := c.U2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ClassInfo: PoolRef[Utf8Info]{Index: idx}}, nil

	case tag == EVAnnotation:
		inner, err := parseAnnotation(c, opts, depth+1)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, Annotation: &inner}, nil

	case tag == EVArray:
		count, err := c.U2()
		if err != nil {
			return ElementValue{}, err
		}
		arr := make([]ElementValue, 0, count)
		for i := uint16(0); i < count; i++ {
			v, err := parseElementValue(c, opts, depth+1)
			if err != nil {
				return ElementValue{}, err
			}
			arr = append(arr, v)
		}
		return ElementValue{Tag: tag, Array: arr}, nil

	default:
		return ElementValue{}, errUnknownAnnotationValue(tagByte)
	}
}

// parseAnnotations parses a u2-count-prefixed list of annotations, as used
// by both Runtime{Visible,Invisible}Annotations.
func parseAnnotations(c *cursor.Cursor, opts *Options) ([]Annotation, error) {
	count, err := c.U2()
	if err != nil {
		return nil, err
	}
	out := make([]Annotation, 0, count)
	for i := uint16(0); i < count; i++ {
		a, err := parseAnnotation(c, opts, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// parseParameterAnnotations parses the u1-count-prefixed list of
// per-parameter annotation lists used by
// Runtime{Visible,Invisible}ParameterAnnotations.
func parseParameterAnnotations(c *cursor.Cursor, opts *Options) ([][]Annotation, error) {
	count, err := c.U1()
	if err != nil {
		return nil, err
	}
	out := make([][]Annotation, 0, count)
	for i := byte(0); i < count; i++ {
		anns, err := parseAnnotations(c, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, anns)
	}
	return out, nil
}
