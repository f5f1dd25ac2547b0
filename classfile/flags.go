package classfile

// ClassAccessFlags is the access_flags bitmask of a ClassFile. Named and
// listed the way saferwall/pe enumerates ImageFileCharacteristics flags in
// pe.go, including a String() that reports the set bits.
type ClassAccessFlags uint16

const (
	ClassAccPublic     ClassAccessFlags = 0x0001
	ClassAccFinal      ClassAccessFlags = 0x0010
	ClassAccSuper      ClassAccessFlags = 0x0020
	ClassAccInterface  ClassAccessFlags = 0x0200
	ClassAccAbstract   ClassAccessFlags = 0x0400
	ClassAccSynthetic  ClassAccessFlags = 0x1000
	ClassAccAnnotation ClassAccessFlags = 0x2000
	ClassAccEnum       ClassAccessFlags = 0x4000
	ClassAccModule     ClassAccessFlags = 0x8000
)

// Has reports whether every bit in flag is set.
func (f ClassAccessFlags) Has(flag ClassAccessFlags) bool { return f&flag == flag }

var classFlagNames = []struct {
	flag ClassAccessFlags
	name string
}{
	{ClassAccPublic, "PUBLIC"},
	{ClassAccFinal, "FINAL"},
	{ClassAccSuper, "SUPER"},
	{ClassAccInterface, "INTERFACE"},
	{ClassAccAbstract, "ABSTRACT"},
	{ClassAccSynthetic, "SYNTHETIC"},
	{ClassAccAnnotation, "ANNOTATION"},
	{ClassAccEnum, "ENUM"},
	{ClassAccModule, "MODULE"},
}

func (f ClassAccessFlags) String() string { return joinFlagNames(uint16(f), classFlagsTable()) }

func classFlagsTable() []flagName {
	out := make([]flagName, len(classFlagNames))
	for i, e := range classFlagNames {
		out[i] = flagName{uint16(e.flag), e.name}
	}
	return out
}

// FieldAccessFlags is the access_flags bitmask of a FieldInfo.
type FieldAccessFlags uint16

const (
	FieldAccPublic    FieldAccessFlags = 0x0001
	FieldAccPrivate   FieldAccessFlags = 0x0002
	FieldAccProtected FieldAccessFlags = 0x0004
	FieldAccStatic    FieldAccessFlags = 0x0008
	FieldAccFinal     FieldAccessFlags = 0x0010
	FieldAccVolatile  FieldAccessFlags = 0x0040
	FieldAccTransient FieldAccessFlags = 0x0080
	FieldAccSynthetic FieldAccessFlags = 0x1000
	FieldAccEnum      FieldAccessFlags = 0x4000
)

func (f FieldAccessFlags) Has(flag FieldAccessFlags) bool { return f&flag == flag }

// MethodAccessFlags is the access_flags bitmask of a MethodInfo.
type MethodAccessFlags uint16

const (
	MethodAccPublic       MethodAccessFlags = 0x0001
	MethodAccPrivate      MethodAccessFlags = 0x0002
	MethodAccProtected    MethodAccessFlags = 0x0004
	MethodAccStatic       MethodAccessFlags = 0x0008
	MethodAccFinal        MethodAccessFlags = 0x0010
	MethodAccSynchronized MethodAccessFlags = 0x0020
	MethodAccBridge       MethodAccessFlags = 0x0040
	MethodAccVarargs      MethodAccessFlags = 0x0080
	MethodAccNative       MethodAccessFlags = 0x0100
	MethodAccAbstract     MethodAccessFlags = 0x0400
	MethodAccStrict       MethodAccessFlags = 0x0800
	MethodAccSynthetic    MethodAccessFlags = 0x1000
)

func (f MethodAccessFlags) Has(flag MethodAccessFlags) bool { return f&flag == flag }

// NestedClassAccessFlags is the access_flags field of an InnerClasses entry.
type NestedClassAccessFlags uint16

const (
	NestedAccPublic     NestedClassAccessFlags = 0x0001
	NestedAccPrivate    NestedClassAccessFlags = 0x0002
	NestedAccProtected  NestedClassAccessFlags = 0x0004
	NestedAccStatic     NestedClassAccessFlags = 0x0008
	NestedAccFinal      NestedClassAccessFlags = 0x0010
	NestedAccInterface  NestedClassAccessFlags = 0x0200
	NestedAccAbstract   NestedClassAccessFlags = 0x0400
	NestedAccSynthetic  NestedClassAccessFlags = 0x1000
	NestedAccAnnotation NestedClassAccessFlags = 0x2000
	NestedAccEnum       NestedClassAccessFlags = 0x4000
)

func (f NestedClassAccessFlags) Has(flag NestedClassAccessFlags) bool { return f&flag == flag }

type flagName struct {
	bit  uint16
	name string
}

func joinFlagNames(flags uint16, table []flagName) string {
	if flags == 0 {
		return "(none)"
	}
	var out string
	for _, fn := range table {
		if flags&fn.bit == fn.bit {
			if out != "" {
				out += "|"
			}
			out += fn.name
		}
	}
	if out == "" {
		return "(none)"
	}
	return out
}
