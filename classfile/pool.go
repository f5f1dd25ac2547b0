package classfile

import "encoding/json"

// PoolEntry is implemented by every constant pool variant. It is the
// interface behind the "open" (untyped) pool reference of spec §3(iii):
// a PoolRef[PoolEntry] resolves to whatever variant is stored, with no
// compile-time contract on which one.
type PoolEntry interface {
	poolTag() PoolTag
}

// Utf8Info holds a decoded UTF-8 string constant.
type Utf8Info struct{ Value string }

func (Utf8Info) poolTag() PoolTag { return TagUtf8 }

// IntegerInfo holds a 4-byte two's-complement integer constant.
type IntegerInfo struct{ Value int32 }

func (IntegerInfo) poolTag() PoolTag { return TagInteger }

// FloatInfo holds an IEEE-754 single-precision float constant.
type FloatInfo struct{ Value float32 }

func (FloatInfo) poolTag() PoolTag { return TagFloat }

// LongInfo holds an 8-byte two's-complement integer constant. It occupies
// two logical pool slots; the slot after it is a reservedEntry.
type LongInfo struct{ Value int64 }

func (LongInfo) poolTag() PoolTag { return TagLong }

// DoubleInfo holds an IEEE-754 double-precision float constant. It
// occupies two logical pool slots; the slot after it is a reservedEntry.
type DoubleInfo struct{ Value float64 }

func (DoubleInfo) poolTag() PoolTag { return TagDouble }

// ClassInfo names a class or interface via its binary name.
type ClassInfo struct {
	Name PoolRef[Utf8Info]
}

func (ClassInfo) poolTag() PoolTag { return TagClass }

// StringInfo is a string literal constant, stored as a Utf8 reference.
type StringInfo struct {
	Value PoolRef[Utf8Info]
}

func (StringInfo) poolTag() PoolTag { return TagString }

// FieldrefInfo is a symbolic reference to a field.
type FieldrefInfo struct {
	Class       PoolRef[ClassInfo]
	NameAndType PoolRef[NameAndTypeInfo]
}

func (FieldrefInfo) poolTag() PoolTag { return TagFieldref }

// MethodrefInfo is a symbolic reference to a class method.
type MethodrefInfo struct {
	Class       PoolRef[ClassInfo]
	NameAndType PoolRef[NameAndTypeInfo]
}

func (MethodrefInfo) poolTag() PoolTag { return TagMethodref }

// InterfaceMethodrefInfo is a symbolic reference to an interface method.
type InterfaceMethodrefInfo struct {
	Class       PoolRef[ClassInfo]
	NameAndType PoolRef[NameAndTypeInfo]
}

func (InterfaceMethodrefInfo) poolTag() PoolTag { return TagInterfaceMethodref }

// NameAndTypeInfo pairs a name with a descriptor, both Utf8 references.
type NameAndTypeInfo struct {
	Name       PoolRef[Utf8Info]
	Descriptor PoolRef[Utf8Info]
}

func (NameAndTypeInfo) poolTag() PoolTag { return TagNameAndType }

// MethodHandleInfo is a symbolic reference to a field, method, or
// constructor depending on Kind; Reference's variant is dictated by Kind
// per spec §3's table and is validated by Resolve, not by the type system.
type MethodHandleInfo struct {
	Kind      MethodHandleKind
	Reference PoolRef[PoolEntry]
}

func (MethodHandleInfo) poolTag() PoolTag { return TagMethodHandle }

// Resolve looks up the referenced entry and checks it against the variant
// implied by Kind, returning ErrPoolTypeMismatch if they disagree.
func (m MethodHandleInfo) Resolve(pool *ConstantPool) (PoolEntry, error) {
	entry, err := m.Reference.Resolve(pool)
	if err != nil {
		return nil, err
	}
	expected := m.Kind.expectedTag()
	if entry.poolTag() != expected {
		return nil, errPoolTypeMismatch(expected.String(), entry.poolTag().String())
	}
	return entry, nil
}

// MethodTypeInfo is a symbolic reference to a method descriptor.
type MethodTypeInfo struct {
	Descriptor PoolRef[Utf8Info]
}

func (MethodTypeInfo) poolTag() PoolTag { return TagMethodType }

// DynamicInfo describes a dynamically-computed constant. BootstrapMethodAttrIndex
// indexes into the class's BootstrapMethods attribute, not the constant pool.
type DynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndType              PoolRef[NameAndTypeInfo]
}

func (DynamicInfo) poolTag() PoolTag { return TagDynamic }

// InvokeDynamicInfo describes an invokedynamic call site. BootstrapMethodAttrIndex
// indexes into the class's BootstrapMethods attribute, not the constant pool.
type InvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndType              PoolRef[NameAndTypeInfo]
}

func (InvokeDynamicInfo) poolTag() PoolTag { return TagInvokeDynamic }

// ModuleInfo names a module (Java 9+).
type ModuleInfo struct {
	Name PoolRef[Utf8Info]
}

func (ModuleInfo) poolTag() PoolTag { return TagModule }

// PackageInfo names a package (Java 9+).
type PackageInfo struct {
	Name PoolRef[Utf8Info]
}

func (PackageInfo) poolTag() PoolTag { return TagPackage }

// reservedEntry occupies the logical slot after a Long or Double constant.
// It is never a valid resolve target, typed or untyped (P10).
type reservedEntry struct{}

func (reservedEntry) poolTag() PoolTag { return tagReserved }

// ConstantPool is the 1-indexed, sparse table of constants for one class
// file. Index 0 and out-of-range indices are invalid; slots occupied by a
// reservedEntry (the hole after a Long/Double) are invalid too.
type ConstantPool struct {
	entries []PoolEntry // entries[0] is unused; logical indices start at 1
}

// Len returns the number of logical slots, including reserved holes, i.e.
// the on-wire constant_pool_count minus one.
func (p *ConstantPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries) - 1
}

// MarshalJSON renders the pool as a 1-indexed array matching the on-wire
// layout, with reserved slots (the hole after a Long/Double) as null.
// ConstantPool's entries field is unexported so that callers can only
// ever obtain entries through Resolve/MaybeResolve; this is the one
// sanctioned way to observe the whole table at once.
func (p *ConstantPool) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	out := make([]interface{}, len(p.entries))
	for i, e := range p.entries {
		if e == nil || e.poolTag() == tagReserved {
			continue
		}
		out[i] = e
	}
	return json.Marshal(out)
}

// lookup fetches the entry at index, applying the shared OutOfBoundsIndex /
// reserved-slot checks used by both mandatory and optional resolution. The
// zero-index (BadPoolIndex) check is made by the callers before lookup.
func (p *ConstantPool) lookup(index uint16) (PoolEntry, error) {
	if p == nil || int(index) >= len(p.entries) {
		return nil, ErrOutOfBoundsIndex
	}
	entry := p.entries[index]
	if entry == nil || entry.poolTag() == tagReserved {
		return nil, errPoolTypeMismatch("non-reserved constant", tagReserved.String())
	}
	return entry, nil
}

// PoolRef is a 16-bit index into a ConstantPool, phantom-tagged with the
// variant it is expected to point at. At run time it is nothing more than
// a uint16: T exists only for the type checker, per spec §9's "phantom
// marker" design note. T = PoolEntry itself gives the untyped/open
// reference: resolution always succeeds in variant terms, returning
// whatever is stored.
type PoolRef[T PoolEntry] struct {
	Index uint16
}

// Resolve returns the pool entry at Index, failing with ErrBadPoolIndex if
// Index is zero, ErrOutOfBoundsIndex if it exceeds the pool, or a
// PoolTypeMismatch ParseError if the slot holds a different variant than T.
func (r PoolRef[T]) Resolve(pool *ConstantPool) (T, error) {
	var zero T
	if r.Index == 0 {
		return zero, ErrBadPoolIndex
	}
	entry, err := pool.lookup(r.Index)
	if err != nil {
		return zero, err
	}
	t, ok := entry.(T)
	if !ok {
		return zero, errPoolTypeMismatch(zero.poolTag().String(), entry.poolTag().String())
	}
	return t, nil
}

// OptionalPoolRef is a PoolRef whose zero index means "absent" rather than
// an error, per spec §3's description of super_class and similar fields.
type OptionalPoolRef[T PoolEntry] struct {
	Index uint16
}

// MaybeResolve returns (zero, false, nil) when Index is zero, and otherwise
// behaves like PoolRef.Resolve.
func (r OptionalPoolRef[T]) MaybeResolve(pool *ConstantPool) (T, bool, error) {
	var zero T
	if r.Index == 0 {
		return zero, false, nil
	}
	v, err := (PoolRef[T]{Index: r.Index}).Resolve(pool)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}
