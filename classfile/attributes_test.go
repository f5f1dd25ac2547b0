package classfile

import (
	"errors"
	"testing"
)

// attrPool is a tiny pool with just enough entries to name attributes by
// index when feeding resolveAttribute directly in these tests.
func attrPool(names ...string) *ConstantPool {
	entries := make([]PoolEntry, len(names)+1)
	for i, n := range names {
		entries[i+1] = Utf8Info{Value: n}
	}
	return &ConstantPool{entries: entries}
}

func resolveNamed(t *testing.T, name string, raw []byte, opts *Options) AttributeBody {
	t.Helper()
	pool := attrPool(name)
	attr := AttributeInfo{Name: PoolRef[Utf8Info]{Index: 1}, Body: UnknownAttribute{Raw: raw}}
	body, err := resolveAttribute(attr, pool, opts)
	if err != nil {
		t.Fatalf("resolveAttribute(%s): %v", name, err)
	}
	return body
}

func TestResolveConstantValue(t *testing.T) {
	body := resolveNamed(t, "ConstantValue", []byte{0x00, 0x05}, nil)
	cv, ok := body.(ConstantValueAttribute)
	if !ok || cv.Value.Index != 5 {
		t.Fatalf("got %+v", body)
	}
}

func TestResolveExceptions(t *testing.T) {
	raw := []byte{0x00, 0x02, 0x00, 0x03, 0x00, 0x07}
	body := resolveNamed(t, "Exceptions", raw, nil)
	exc, ok := body.(ExceptionsAttribute)
	if !ok || len(exc.Exceptions) != 2 || exc.Exceptions[0].Index != 3 || exc.Exceptions[1].Index != 7 {
		t.Fatalf("got %+v", body)
	}
}

// TestResolveCodeWithNestedLineNumberTable checks that a Code attribute's
// own nested attribute table is captured by resolveAttribute and that
// resolveAttributeList then decodes it (the step behind P7).
func TestResolveCodeWithNestedLineNumberTable(t *testing.T) {
	// max_stack=1, max_locals=1, code_length=1, code=[0xB1] (return),
	// exception_table_length=0, attributes_count=1:
	//   LineNumberTable (name idx 2), length=6, count=1, {start_pc=0, line=42}
	raw := []byte{
		0x00, 0x01, // max_stack
		0x00, 0x01, // max_locals
		0x00, 0x00, 0x00, 0x01, // code_length
		0xB1,       // code
		0x00, 0x00, // exception_table_length
		0x00, 0x01, // attributes_count
		0x00, 0x02, // name index (resolved against a 2-entry pool below)
		0x00, 0x00, 0x00, 0x06, // attribute_length
		0x00, 0x01, // line_number_table_length
		0x00, 0x00, // start_pc
		0x00, 0x2A, // line_number = 42
	}

	pool := attrPool("Code", "LineNumberTable")
	attr := AttributeInfo{Name: PoolRef[Utf8Info]{Index: 1}, Body: UnknownAttribute{Raw: raw}}
	body, err := resolveAttribute(attr, pool, nil)
	if err != nil {
		t.Fatalf("resolveAttribute(Code): %v", err)
	}
	code, ok := body.(CodeAttribute)
	if !ok {
		t.Fatalf("got %T, want CodeAttribute", body)
	}
	if len(code.Code) != 1 || code.Code[0] != 0xB1 {
		t.Errorf("code = %v", code.Code)
	}
	if len(code.Attributes) != 1 {
		t.Fatalf("nested attributes = %d, want 1", len(code.Attributes))
	}
	if err := resolveAttributeList(code.Attributes, pool, nil); err != nil {
		t.Fatalf("resolveAttributeList: %v", err)
	}
	lnt, ok := code.Attributes[0].Body.(LineNumberTableAttribute)
	if !ok {
		t.Fatalf("nested body = %T, want LineNumberTableAttribute", code.Attributes[0].Body)
	}
	if len(lnt.Entries) != 1 || lnt.Entries[0].LineNumber != 42 {
		t.Errorf("entries = %+v", lnt.Entries)
	}
}

func TestResolveStackMapTableSameFrame(t *testing.T) {
	// one frame: frame_type=10 (FrameSame, offset_delta=10)
	raw := []byte{0x00, 0x01, 10}
	body := resolveNamed(t, "StackMapTable", raw, nil)
	smt, ok := body.(StackMapTableAttribute)
	if !ok || len(smt.Frames) != 1 || smt.Frames[0].Kind != FrameSame || smt.Frames[0].OffsetDelta != 10 {
		t.Fatalf("got %+v", body)
	}
}

func TestResolveStackMapTableFullFrame(t *testing.T) {
	raw := []byte{
		0x00, 0x01, // number_of_entries
		255,        // frame_type = full_frame
		0x00, 0x05, // offset_delta
		0x00, 0x01, // number_of_locals
		1,          // Integer
		0x00, 0x01, // number_of_stack_items
		5, // Null
	}
	body := resolveNamed(t, "StackMapTable", raw, nil)
	smt := body.(StackMapTableAttribute)
	f := smt.Frames[0]
	if f.Kind != FrameFull || len(f.Locals) != 1 || f.Locals[0].Tag != VerifInteger {
		t.Fatalf("got %+v", f)
	}
	if len(f.Stack) != 1 || f.Stack[0].Tag != VerifNull {
		t.Fatalf("got %+v", f)
	}
}

func TestResolveMethodParametersU1Count(t *testing.T) {
	// count is a single byte, unlike nearly every other attribute.
	raw := []byte{0x01, 0x00, 0x03, 0x00, 0x00}
	body := resolveNamed(t, "MethodParameters", raw, nil)
	mp, ok := body.(MethodParametersAttribute)
	if !ok || len(mp.Parameters) != 1 || mp.Parameters[0].Name.Index != 3 {
		t.Fatalf("got %+v", body)
	}
}

func TestResolveBootstrapMethods(t *testing.T) {
	raw := []byte{
		0x00, 0x01, // num_bootstrap_methods
		0x00, 0x02, // bootstrap_method_ref
		0x00, 0x01, // num_bootstrap_arguments
		0x00, 0x09, // argument[0]
	}
	body := resolveNamed(t, "BootstrapMethods", raw, nil)
	bsm, ok := body.(BootstrapMethodsAttribute)
	if !ok || len(bsm.Methods) != 1 || len(bsm.Methods[0].Arguments) != 1 || bsm.Methods[0].Arguments[0].Index != 9 {
		t.Fatalf("got %+v", body)
	}
}

func TestResolveAnnotationsWithNesting(t *testing.T) {
	// one annotation, one element pair whose value is itself an annotation
	// with zero elements: tests the recursive '@' element-value case.
	raw := []byte{
		0x00, 0x01, // num_annotations
		0x00, 0x01, // type_index
		0x00, 0x01, // num_element_value_pairs
		0x00, 0x02, // element_name_index
		'@',        // tag: nested annotation
		0x00, 0x01, // nested type_index
		0x00, 0x00, // nested num_element_value_pairs
	}
	body := resolveNamed(t, "RuntimeVisibleAnnotations", raw, nil)
	rva, ok := body.(RuntimeVisibleAnnotationsAttribute)
	if !ok || len(rva.Annotations) != 1 {
		t.Fatalf("got %+v", body)
	}
	elem := rva.Annotations[0].Elements[0].Value
	if elem.Tag != EVAnnotation || elem.Annotation == nil {
		t.Fatalf("got %+v", elem)
	}
}

func TestAnnotationRecursionLimit(t *testing.T) {
	// a chain of nested '@' annotations deeper than MaxRecursionDepth.
	var raw []byte
	raw = append(raw, 0x00, 0x01) // num_annotations
	depth := 5
	for i := 0; i < depth; i++ {
		raw = append(raw, 0x00, 0x01) // type_index
		raw = append(raw, 0x00, 0x01) // num_element_value_pairs
		raw = append(raw, 0x00, 0x01) // element_name_index
		raw = append(raw, '@')
	}
	raw = append(raw, 0x00, 0x01, 0x00, 0x00) // innermost empty annotation

	opts := &Options{MaxRecursionDepth: 2}
	pool := attrPool("RuntimeVisibleAnnotations")
	attr := AttributeInfo{Name: PoolRef[Utf8Info]{Index: 1}, Body: UnknownAttribute{Raw: raw}}
	_, err := resolveAttribute(attr, pool, opts)
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("err = %v, want ErrRecursionLimit", err)
	}
}

func TestResolveRecordWithComponents(t *testing.T) {
	raw := []byte{
		0x00, 0x01, // components_count
		0x00, 0x02, // name_index
		0x00, 0x03, // descriptor_index
		0x00, 0x00, // attributes_count
	}
	body := resolveNamed(t, "Record", raw, nil)
	rec, ok := body.(RecordAttribute)
	if !ok || len(rec.Components) != 1 || rec.Components[0].Name.Index != 2 {
		t.Fatalf("got %+v", body)
	}
}
