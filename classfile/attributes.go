package classfile

// This file holds the resolved attribute variants named in spec §4.4.
// Each type implements AttributeBody; the decoding logic that produces
// them lives in resolve.go, stackmap.go, and annotations.go.

// ConstantValueAttribute gives a static final field's compile-time value.
// Value's variant depends on the field's descriptor (Long/Float/Double/
// Integer/String) and is therefore an open reference, validated by the
// caller against the field's descriptor if it cares to.
type ConstantValueAttribute struct {
	Value PoolRef[PoolEntry]
}

func (ConstantValueAttribute) attributeBody() {}

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType OptionalPoolRef[ClassInfo]
}

// CodeAttribute holds a method's bytecode and its own nested attribute
// table (StackMapTable, LineNumberTable, LocalVariableTable, ...), each
// independently resolved in the same pass that resolves this attribute.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

func (CodeAttribute) attributeBody() {}

// StackMapTableAttribute is the verifier's per-offset type snapshot table.
type StackMapTableAttribute struct {
	Frames []StackMapFrame
}

func (StackMapTableAttribute) attributeBody() {}

// ExceptionsAttribute lists the checked exception types a method may throw.
type ExceptionsAttribute struct {
	Exceptions []PoolRef[ClassInfo]
}

func (ExceptionsAttribute) attributeBody() {}

// InnerClassEntry describes one class's relationship to an enclosing class.
type InnerClassEntry struct {
	InnerClass PoolRef[ClassInfo]
	OuterClass OptionalPoolRef[ClassInfo]
	InnerName  OptionalPoolRef[Utf8Info]
	AccessFlags NestedClassAccessFlags
}

// InnerClassesAttribute lists nested-class relationships for this class.
type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

func (InnerClassesAttribute) attributeBody() {}

// EnclosingMethodAttribute identifies the enclosing method of a local or
// anonymous class. Method is absent when the class is enclosed by a class
// body rather than a method body.
type EnclosingMethodAttribute struct {
	Class  PoolRef[ClassInfo]
	Method OptionalPoolRef[NameAndTypeInfo]
}

func (EnclosingMethodAttribute) attributeBody() {}

// SyntheticAttribute marks a compiler-generated member. It carries no data.
type SyntheticAttribute struct{}

func (SyntheticAttribute) attributeBody() {}

// DeprecatedAttribute marks a deprecated member. It carries no data.
type DeprecatedAttribute struct{}

func (DeprecatedAttribute) attributeBody() {}

// SignatureAttribute carries a generic-signature string for a class,
// field, or method whose descriptor alone cannot express its generics.
type SignatureAttribute struct {
	Signature PoolRef[Utf8Info]
}

func (SignatureAttribute) attributeBody() {}

// SourceFileAttribute names the source file a class was compiled from.
type SourceFileAttribute struct {
	SourceFile PoolRef[Utf8Info]
}

func (SourceFileAttribute) attributeBody() {}

// SourceDebugExtensionAttribute carries an implementation-defined debug
// payload (e.g. SMAP data); its length is the attribute's own declared
// length, so it is not itself length-prefixed.
type SourceDebugExtensionAttribute struct {
	DebugExtension []byte
}

func (SourceDebugExtensionAttribute) attributeBody() {}

// LineNumberEntry maps a bytecode offset to a source line.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LineNumberTableAttribute maps bytecode offsets to source lines.
type LineNumberTableAttribute struct {
	Entries []LineNumberEntry
}

func (LineNumberTableAttribute) attributeBody() {}

// LocalVariableEntry describes one local variable's live range and type.
type LocalVariableEntry struct {
	StartPC    uint16
	Length     uint16
	Name       PoolRef[Utf8Info]
	Descriptor PoolRef[Utf8Info]
	Index      uint16
}

// LocalVariableTableAttribute describes local variables for debugging.
type LocalVariableTableAttribute struct {
	Entries []LocalVariableEntry
}

func (LocalVariableTableAttribute) attributeBody() {}

// LocalVariableTypeEntry is LocalVariableEntry's generic-signature sibling.
type LocalVariableTypeEntry struct {
	StartPC   uint16
	Length    uint16
	Name      PoolRef[Utf8Info]
	Signature PoolRef[Utf8Info]
	Index     uint16
}

// LocalVariableTypeTableAttribute carries generic-signature info for
// local variables whose type a plain descriptor cannot express.
type LocalVariableTypeTableAttribute struct {
	Entries []LocalVariableTypeEntry
}

func (LocalVariableTypeTableAttribute) attributeBody() {}

// RuntimeVisibleAnnotationsAttribute lists annotations retained at
// runtime and visible to reflection.
type RuntimeVisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

func (RuntimeVisibleAnnotationsAttribute) attributeBody() {}

// RuntimeInvisibleAnnotationsAttribute lists annotations retained at
// runtime but not visible to reflection by default.
type RuntimeInvisibleAnnotationsAttribute struct {
	Annotations []Annotation
}

func (RuntimeInvisibleAnnotationsAttribute) attributeBody() {}

// RuntimeVisibleParameterAnnotationsAttribute lists, per formal parameter,
// the runtime-visible annotations on that parameter.
type RuntimeVisibleParameterAnnotationsAttribute struct {
	Parameters [][]Annotation
}

func (RuntimeVisibleParameterAnnotationsAttribute) attributeBody() {}

// RuntimeInvisibleParameterAnnotationsAttribute is the invisible sibling
// of RuntimeVisibleParameterAnnotationsAttribute.
type RuntimeInvisibleParameterAnnotationsAttribute struct {
	Parameters [][]Annotation
}

func (RuntimeInvisibleParameterAnnotationsAttribute) attributeBody() {}

// AnnotationDefaultAttribute carries an annotation interface element's
// default value.
type AnnotationDefaultAttribute struct {
	Value ElementValue
}

func (AnnotationDefaultAttribute) attributeBody() {}

// BootstrapMethod is one entry of a BootstrapMethods attribute: the handle
// to invoke plus its static arguments (open pool references, per spec §4.4).
type BootstrapMethod struct {
	Method    PoolRef[MethodHandleInfo]
	Arguments []PoolRef[PoolEntry]
}

// BootstrapMethodsAttribute backs every Dynamic and InvokeDynamic constant
// pool entry's BootstrapMethodAttrIndex.
type BootstrapMethodsAttribute struct {
	Methods []BootstrapMethod
}

func (BootstrapMethodsAttribute) attributeBody() {}

// MethodParameter names one formal parameter; Name is absent for
// parameters the compiler did not record a name for.
type MethodParameter struct {
	Name        OptionalPoolRef[Utf8Info]
	AccessFlags uint16
}

// MethodParametersAttribute names a method's formal parameters.
type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

func (MethodParametersAttribute) attributeBody() {}

// ModuleRequires is one requires directive of a module declaration.
type ModuleRequires struct {
	Module  PoolRef[ModuleInfo]
	Flags   uint16
	Version OptionalPoolRef[Utf8Info]
}

// ModuleExports is one exports directive of a module declaration.
type ModuleExports struct {
	Package PoolRef[PackageInfo]
	Flags   uint16
	To      []PoolRef[ModuleInfo]
}

// ModuleOpens is one opens directive of a module declaration.
type ModuleOpens struct {
	Package PoolRef[PackageInfo]
	Flags   uint16
	To      []PoolRef[ModuleInfo]
}

// ModuleProvides is one provides directive of a module declaration.
type ModuleProvides struct {
	Service     PoolRef[ClassInfo]
	Implementations []PoolRef[ClassInfo]
}

// ModuleAttribute describes a module declaration (Java 9+, JVMS 4.7.25).
type ModuleAttribute struct {
	Name    PoolRef[ModuleInfo]
	Flags   uint16
	Version OptionalPoolRef[Utf8Info]

	Requires []ModuleRequires
	Exports  []ModuleExports
	Opens    []ModuleOpens
	Uses     []PoolRef[ClassInfo]
	Provides []ModuleProvides
}

func (ModuleAttribute) attributeBody() {}

// ModulePackagesAttribute lists every package a module declaration opens,
// exports, or otherwise requires reachable.
type ModulePackagesAttribute struct {
	Packages []PoolRef[PackageInfo]
}

func (ModulePackagesAttribute) attributeBody() {}

// ModuleMainClassAttribute names a module's entry point class.
type ModuleMainClassAttribute struct {
	MainClass PoolRef[ClassInfo]
}

func (ModuleMainClassAttribute) attributeBody() {}

// NestHostAttribute names the nest host of a nest member class (Java 11+).
type NestHostAttribute struct {
	HostClass PoolRef[ClassInfo]
}

func (NestHostAttribute) attributeBody() {}

// NestMembersAttribute lists the members of a nest whose host is this class.
type NestMembersAttribute struct {
	Classes []PoolRef[ClassInfo]
}

func (NestMembersAttribute) attributeBody() {}

// RecordComponent describes one component of a record class (Java 14+).
type RecordComponent struct {
	Name       PoolRef[Utf8Info]
	Descriptor PoolRef[Utf8Info]
	Attributes []AttributeInfo
}

// RecordAttribute lists a record class's components.
type RecordAttribute struct {
	Components []RecordComponent
}

func (RecordAttribute) attributeBody() {}
