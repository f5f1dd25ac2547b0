package classfile

import (
	"errors"
	"testing"
)

func samplePool() *ConstantPool {
	return &ConstantPool{entries: []PoolEntry{
		nil,                             // 0: unused
		Utf8Info{Value: "hello"},        // 1
		IntegerInfo{Value: 7},           // 2
		ClassInfo{Name: PoolRef[Utf8Info]{Index: 1}}, // 3
	}}
}

func TestPoolRefResolve(t *testing.T) {
	pool := samplePool()
	ref := PoolRef[Utf8Info]{Index: 1}
	v, err := ref.Resolve(pool)
	if err != nil || v.Value != "hello" {
		t.Fatalf("Resolve() = %+v, %v", v, err)
	}
}

func TestPoolRefZeroIndex(t *testing.T) {
	pool := samplePool()
	ref := PoolRef[Utf8Info]{Index: 0}
	if _, err := ref.Resolve(pool); !errors.Is(err, ErrBadPoolIndex) {
		t.Errorf("err = %v, want ErrBadPoolIndex", err)
	}
}

func TestPoolRefOutOfBounds(t *testing.T) {
	pool := samplePool()
	ref := PoolRef[Utf8Info]{Index: 50}
	if _, err := ref.Resolve(pool); !errors.Is(err, ErrOutOfBoundsIndex) {
		t.Errorf("err = %v, want ErrOutOfBoundsIndex", err)
	}
}

func TestPoolRefTypeMismatch(t *testing.T) {
	pool := samplePool()
	ref := PoolRef[ClassInfo]{Index: 1} // slot 1 is Utf8, not Class
	_, err := ref.Resolve(pool)
	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, ErrPoolTypeMismatch) {
		t.Errorf("err = %v, want ParseError wrapping ErrPoolTypeMismatch", err)
	}
}

func TestPoolRefUntyped(t *testing.T) {
	pool := samplePool()
	ref := PoolRef[PoolEntry]{Index: 2}
	v, err := ref.Resolve(pool)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := v.(IntegerInfo); !ok {
		t.Errorf("got %T, want IntegerInfo", v)
	}
}

func TestOptionalPoolRefAbsent(t *testing.T) {
	pool := samplePool()
	ref := OptionalPoolRef[ClassInfo]{Index: 0}
	_, ok, err := ref.MaybeResolve(pool)
	if err != nil || ok {
		t.Errorf("MaybeResolve() = ok=%v err=%v, want ok=false err=nil", ok, err)
	}
}

func TestOptionalPoolRefPresent(t *testing.T) {
	pool := samplePool()
	ref := OptionalPoolRef[ClassInfo]{Index: 3}
	v, ok, err := ref.MaybeResolve(pool)
	if err != nil || !ok {
		t.Fatalf("MaybeResolve() = ok=%v err=%v", ok, err)
	}
	name, _ := v.Name.Resolve(pool)
	if name.Value != "hello" {
		t.Errorf("name = %q, want hello", name.Value)
	}
}

func TestMethodHandleResolveKindMismatch(t *testing.T) {
	pool := &ConstantPool{entries: []PoolEntry{
		nil,
		Utf8Info{Value: "x"}, // 1: wrong variant for a GetField reference
	}}
	mh := MethodHandleInfo{Kind: RefGetField, Reference: PoolRef[PoolEntry]{Index: 1}}
	_, err := mh.Resolve(pool)
	if !errors.Is(err, ErrPoolTypeMismatch) {
		t.Errorf("err = %v, want ErrPoolTypeMismatch", err)
	}
}

func TestMethodHandleResolveOK(t *testing.T) {
	pool := &ConstantPool{entries: []PoolEntry{
		nil,
		FieldrefInfo{Class: PoolRef[ClassInfo]{Index: 0}, NameAndType: PoolRef[NameAndTypeInfo]{Index: 0}},
	}}
	mh := MethodHandleInfo{Kind: RefGetField, Reference: PoolRef[PoolEntry]{Index: 1}}
	entry, err := mh.Resolve(pool)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := entry.(FieldrefInfo); !ok {
		t.Errorf("got %T, want FieldrefInfo", entry)
	}
}

func TestReservedSlotNeverResolves(t *testing.T) {
	pool := &ConstantPool{entries: []PoolEntry{nil, LongInfo{Value: 1}, reservedEntry{}}}
	ref := PoolRef[PoolEntry]{Index: 2}
	if _, err := ref.Resolve(pool); err == nil {
		t.Error("resolving reserved slot succeeded, want error")
	}
}
