package classfile

// Magic is the fixed 4-byte prefix every class file begins with.
const Magic uint32 = 0xCAFEBABE

// ClassFile is the fully-parsed, immutable root of the decoder's output.
// Every field mirrors spec §3 exactly; nothing here is derived or cached.
type ClassFile struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16

	ConstantPool *ConstantPool

	AccessFlags ClassAccessFlags
	ThisClass   PoolRef[ClassInfo]
	SuperClass  OptionalPoolRef[ClassInfo]
	Interfaces  []PoolRef[ClassInfo]

	Fields     []FieldInfo
	Methods    []MethodInfo
	Attributes []AttributeInfo
}

// FieldInfo describes one field declared by a class or interface.
type FieldInfo struct {
	AccessFlags FieldAccessFlags
	Name        PoolRef[Utf8Info]
	Descriptor  PoolRef[Utf8Info]
	Attributes  []AttributeInfo
}

// MethodInfo describes one method declared by a class or interface.
type MethodInfo struct {
	AccessFlags MethodAccessFlags
	Name        PoolRef[Utf8Info]
	Descriptor  PoolRef[Utf8Info]
	Attributes  []AttributeInfo
}

// AttributeInfo is one entry of an attributes table. Body starts out as an
// UnknownAttribute holding the raw payload captured during the structural
// pass, and is rewritten exactly once, during attribute resolution, to one
// of the named variants in attributes.go (spec §3's "mutate exactly once");
// in permissive mode an unrecognized name keeps its UnknownAttribute body.
type AttributeInfo struct {
	Name   PoolRef[Utf8Info]
	Length uint32
	Body   AttributeBody
}

// AttributeBody is implemented by UnknownAttribute and every resolved
// attribute variant.
type AttributeBody interface {
	attributeBody()
}

// UnknownAttribute holds an attribute's payload before resolution, or an
// attribute whose name the resolver does not recognize when the decoder is
// run in permissive mode (see Options.PermissiveAttributes).
type UnknownAttribute struct {
	Raw []byte
}

func (UnknownAttribute) attributeBody() {}

// isResolved reports whether body is anything other than UnknownAttribute,
// used to check invariant P6 after a successful parse.
func isResolved(body AttributeBody) bool {
	_, unresolved := body.(UnknownAttribute)
	return !unresolved
}
