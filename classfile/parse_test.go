package classfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// builder assembles a class file byte-by-byte for tests; it is the
// table-driven-fixture analogue of saferwall/pe's dosheader_test.go, which
// hand-assembles raw header bytes rather than shipping binary fixtures.
type builder struct {
	buf bytes.Buffer
}

func (b *builder) u1(v byte) *builder { b.buf.WriteByte(v); return b }
func (b *builder) u2(v uint16) *builder {
	binary.Write(&b.buf, binary.BigEndian, v)
	return b
}
func (b *builder) u4(v uint32) *builder {
	binary.Write(&b.buf, binary.BigEndian, v)
	return b
}
func (b *builder) raw(p []byte) *builder { b.buf.Write(p); return b }
func (b *builder) bytes() []byte         { return b.buf.Bytes() }

func (b *builder) utf8Entry(s string) *builder {
	return b.u1(byte(TagUtf8)).u2(uint16(len(s))).raw([]byte(s))
}

func (b *builder) classEntry(nameIdx uint16) *builder {
	return b.u1(byte(TagClass)).u2(nameIdx)
}

// minimalClass builds a small legal class file: a four-entry constant
// pool naming Test and java/lang/Object, a public class Test extending
// java/lang/Object, no fields, no methods, no attributes.
func minimalClass() []byte {
	var b builder
	b.u4(Magic).u2(0).u2(61) // magic, minor, major

	// pool: #1 Utf8 "Test", #2 Class ->#1, #3 Utf8 "java/lang/Object", #4 Class ->#3
	b.u2(5) // count = 5 (4 real entries, 1-indexed)
	b.utf8Entry("Test")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)

	b.u2(uint16(ClassAccPublic)) // access_flags
	b.u2(2)                      // this_class
	b.u2(4)                      // super_class
	b.u2(0)                      // interfaces count
	b.u2(0)                      // fields count
	b.u2(0)                      // methods count
	b.u2(0)                      // attributes count
	return b.bytes()
}

func TestParseMinimalClass(t *testing.T) {
	cf, err := Parse(minimalClass(), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cf.Magic != Magic {
		t.Errorf("Magic = %#x, want %#x", cf.Magic, Magic)
	}
	if cf.MajorVersion != 61 {
		t.Errorf("MajorVersion = %d, want 61", cf.MajorVersion)
	}
	if cf.ConstantPool.Len() != 4 {
		t.Errorf("pool len = %d, want 4", cf.ConstantPool.Len())
	}
	this, err := cf.ThisClass.Resolve(cf.ConstantPool)
	if err != nil {
		t.Fatalf("ThisClass.Resolve: %v", err)
	}
	name, err := this.Name.Resolve(cf.ConstantPool)
	if err != nil {
		t.Fatalf("Name.Resolve: %v", err)
	}
	if name.Value != "Test" {
		t.Errorf("this_class name = %q, want Test", name.Value)
	}
	super, ok, err := cf.SuperClass.MaybeResolve(cf.ConstantPool)
	if err != nil || !ok {
		t.Fatalf("SuperClass.MaybeResolve: ok=%v err=%v", ok, err)
	}
	superName, _ := super.Name.Resolve(cf.ConstantPool)
	if superName.Value != "java/lang/Object" {
		t.Errorf("super_class name = %q, want java/lang/Object", superName.Value)
	}
}

func TestParseBadMagic(t *testing.T) {
	data := minimalClass()
	data[0] = 0x00
	_, err := Parse(data, nil)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}

func TestParseTruncated(t *testing.T) {
	data := minimalClass()
	_, err := Parse(data[:10], nil)
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("err = %v, want ErrTruncatedInput", err)
	}
}

// TestLongDoubleGhostSlot checks invariant P10: a Long or Double occupies
// two logical pool slots, and the second slot resolves to neither a valid
// typed nor untyped reference.
func TestLongDoubleGhostSlot(t *testing.T) {
	var b builder
	b.u4(Magic).u2(0).u2(61)

	b.u2(4) // count=4: slot1=Long (wide, occupies 1 and 2), slot3=Utf8
	b.u1(byte(TagLong)).u4(0).u4(42)
	b.utf8Entry("x")

	b.u2(uint16(ClassAccPublic))
	b.u2(3) // this_class -> points at the Utf8 (wrong variant, but we only test pool shape here)
	b.u2(0) // super_class absent
	b.u2(0).u2(0).u2(0).u2(0)

	cf, err := Parse(b.bytes(), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cf.ConstantPool.Len() != 3 {
		t.Fatalf("pool len = %d, want 3", cf.ConstantPool.Len())
	}
	longRef := PoolRef[LongInfo]{Index: 1}
	v, err := longRef.Resolve(cf.ConstantPool)
	if err != nil || v.Value != 42 {
		t.Fatalf("resolve long: v=%v err=%v", v, err)
	}
	ghostRef := PoolRef[PoolEntry]{Index: 2}
	if _, err := ghostRef.Resolve(cf.ConstantPool); err == nil {
		t.Error("resolving the ghost slot succeeded, want error")
	}
}

func TestParseUnknownPoolTag(t *testing.T) {
	var b builder
	b.u4(Magic).u2(0).u2(61)
	b.u2(2)
	b.u1(0xFF) // not a valid tag
	_, err := Parse(b.bytes(), nil)
	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, ErrUnknownPoolTag) {
		t.Errorf("err = %v, want ParseError wrapping ErrUnknownPoolTag", err)
	}
}

func TestParseBadMethodHandleKind(t *testing.T) {
	var b builder
	b.u4(Magic).u2(0).u2(61)
	b.u2(2)
	b.u1(byte(TagMethodHandle)).u1(10).u2(1) // kind 10 is out of range
	_, err := Parse(b.bytes(), nil)
	if !errors.Is(err, ErrBadMethodHandleKind) {
		t.Errorf("err = %v, want ErrBadMethodHandleKind", err)
	}
}

func TestParseOutOfBoundsPoolIndex(t *testing.T) {
	var b builder
	b.u4(Magic).u2(0).u2(61)
	b.u2(2)
	b.utf8Entry("x")
	b.u2(0)   // access_flags
	b.u2(99)  // this_class: out of bounds
	b.u2(0).u2(0).u2(0).u2(0).u2(0) // super_class, interfaces, fields, methods, attributes counts

	cf, err := Parse(b.bytes(), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := cf.ThisClass.Resolve(cf.ConstantPool); !errors.Is(err, ErrOutOfBoundsIndex) {
		t.Errorf("ThisClass.Resolve err = %v, want ErrOutOfBoundsIndex", err)
	}
}

func TestUnknownAttributeNameStrictByDefault(t *testing.T) {
	var b builder
	b.u4(Magic).u2(0).u2(61)
	b.u2(2)
	b.utf8Entry("NotARealAttribute")
	b.u2(0).u2(0).u2(0).u2(0).u2(0).u2(0)
	b.u2(1)      // 1 class attribute
	b.u2(1)      // name ref -> the Utf8 above
	b.u4(0)      // zero-length payload

	_, err := Parse(b.bytes(), nil)
	if !errors.Is(err, ErrUnknownAttributeName) {
		t.Errorf("err = %v, want ErrUnknownAttributeName", err)
	}
}

func TestUnknownAttributeNamePermissive(t *testing.T) {
	var b builder
	b.u4(Magic).u2(0).u2(61)
	b.u2(2)
	b.utf8Entry("NotARealAttribute")
	b.u2(0).u2(0).u2(0).u2(0).u2(0).u2(0)
	b.u2(1)
	b.u2(1)
	b.u4(0)

	cf, err := Parse(b.bytes(), &Options{PermissiveAttributes: true})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if isResolved(cf.Attributes[0].Body) {
		t.Error("expected attribute to remain UnknownAttribute in permissive mode")
	}
}

func TestSyntheticAndDeprecatedResolve(t *testing.T) {
	var b builder
	b.u4(Magic).u2(0).u2(61)
	b.u2(3)
	b.utf8Entry("Synthetic")
	b.utf8Entry("Deprecated")
	b.u2(0).u2(0).u2(0).u2(0).u2(0).u2(0)
	b.u2(2)
	b.u2(1).u4(0) // Synthetic
	b.u2(2).u4(0) // Deprecated

	cf, err := Parse(b.bytes(), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := cf.Attributes[0].Body.(SyntheticAttribute); !ok {
		t.Errorf("attrs[0] = %T, want SyntheticAttribute", cf.Attributes[0].Body)
	}
	if _, ok := cf.Attributes[1].Body.(DeprecatedAttribute); !ok {
		t.Errorf("attrs[1] = %T, want DeprecatedAttribute", cf.Attributes[1].Body)
	}
}
