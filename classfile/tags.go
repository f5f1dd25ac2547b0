package classfile

// PoolTag identifies the on-wire variant of a constant pool entry. Named
// and enumerated the way saferwall/pe names its ImageFileMachine* /
// ImageSym* constant families, down to the lookup-map-backed String().
type PoolTag byte

const (
	TagUtf8               PoolTag = 1
	TagInteger            PoolTag = 3
	TagFloat              PoolTag = 4
	TagLong               PoolTag = 5
	TagDouble             PoolTag = 6
	TagClass              PoolTag = 7
	TagString             PoolTag = 8
	TagFieldref           PoolTag = 9
	TagMethodref          PoolTag = 10
	TagInterfaceMethodref PoolTag = 11
	TagNameAndType        PoolTag = 12
	TagMethodHandle       PoolTag = 15
	TagMethodType         PoolTag = 16
	TagDynamic            PoolTag = 17
	TagInvokeDynamic      PoolTag = 18
	TagModule             PoolTag = 19
	TagPackage            PoolTag = 20

	// tagReserved marks the logical hole after a Long or Double entry. It
	// never appears on the wire and is never a valid resolve target.
	tagReserved PoolTag = 0
)

var tagNames = map[PoolTag]string{
	TagUtf8:               "Utf8",
	TagInteger:            "Integer",
	TagFloat:              "Float",
	TagLong:               "Long",
	TagDouble:             "Double",
	TagClass:              "Class",
	TagString:             "String",
	TagFieldref:           "Fieldref",
	TagMethodref:          "Methodref",
	TagInterfaceMethodref: "InterfaceMethodref",
	TagNameAndType:        "NameAndType",
	TagMethodHandle:       "MethodHandle",
	TagMethodType:         "MethodType",
	TagDynamic:            "Dynamic",
	TagInvokeDynamic:      "InvokeDynamic",
	TagModule:             "Module",
	TagPackage:            "Package",
	tagReserved:           "<reserved slot>",
}

// String implements fmt.Stringer for use in log lines and error messages.
func (t PoolTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "<unknown tag>"
}

// MethodHandleKind is the reference_kind byte of a CONSTANT_MethodHandle_info.
type MethodHandleKind byte

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

func (k MethodHandleKind) valid() bool {
	return k >= RefGetField && k <= RefInvokeInterface
}

// expectedTag reports which constant pool variant a reference_kind must
// point at, per spec §3's MethodHandle row.
func (k MethodHandleKind) expectedTag() PoolTag {
	switch {
	case k >= RefGetField && k <= RefPutStatic:
		return TagFieldref
	case k >= RefInvokeVirtual && k <= RefNewInvokeSpecial:
		return TagMethodref
	case k == RefInvokeInterface:
		return TagInterfaceMethodref
	default:
		return tagReserved
	}
}
