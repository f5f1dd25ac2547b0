package descriptor

import "testing"

func TestParseFieldPrimitives(t *testing.T) {
	cases := map[string]FieldTypeKind{
		"B": Byte, "C": Char, "D": Double, "F": Float,
		"I": Int, "J": Long, "S": Short, "Z": Boolean,
	}
	for s, want := range cases {
		ft, err := ParseField(s, 0)
		if err != nil {
			t.Fatalf("ParseField(%q): %v", s, err)
		}
		if ft.Kind != want {
			t.Errorf("ParseField(%q).Kind = %v, want %v", s, ft.Kind, want)
		}
	}
}

func TestParseFieldObject(t *testing.T) {
	ft, err := ParseField("Ljava/lang/String;", 0)
	if err != nil {
		t.Fatalf("ParseField: %v", err)
	}
	if ft.Kind != Object || ft.ClassName != "java/lang/String" {
		t.Errorf("got %+v", ft)
	}
}

func TestParseFieldRoundTrip(t *testing.T) {
	for _, s := range []string{"B", "[B", "[[[Ljava/lang/String;", "Ljava/lang/Thread;", "I"} {
		ft, err := ParseField(s, 0)
		if err != nil {
			t.Fatalf("ParseField(%q): %v", s, err)
		}
		if got := ft.String(); got != s {
			t.Errorf("round-trip mismatch: parsed %q, printed %q", s, got)
		}
	}
}

func TestParseFieldErrors(t *testing.T) {
	for _, s := range []string{"Q", "[]", "L", "Ljava/lang/String", ""} {
		if _, err := ParseField(s, 0); err == nil {
			t.Errorf("ParseField(%q) = nil error, want error", s)
		}
	}
}

func TestParseFieldEmptyObjectName(t *testing.T) {
	ft, err := ParseField("L;", 0)
	if err != nil {
		t.Fatalf("ParseField(%q): %v", "L;", err)
	}
	if ft.Kind != Object || ft.ClassName != "" {
		t.Errorf("got %+v, want empty object name", ft)
	}
}

func TestParseMethod(t *testing.T) {
	md, err := ParseMethod("(IDLjava/lang/Thread;)Ljava/lang/Object;", 0)
	if err != nil {
		t.Fatalf("ParseMethod: %v", err)
	}
	if len(md.Parameters) != 3 {
		t.Fatalf("got %d parameters, want 3", len(md.Parameters))
	}
	if md.Parameters[0].Kind != Int || md.Parameters[1].Kind != Double {
		t.Errorf("unexpected parameter kinds: %+v", md.Parameters)
	}
	if md.Parameters[2].Kind != Object || md.Parameters[2].ClassName != "java/lang/Thread" {
		t.Errorf("unexpected third parameter: %+v", md.Parameters[2])
	}
	if md.Void {
		t.Error("Void = true, want false")
	}
	if md.Return.Kind != Object || md.Return.ClassName != "java/lang/Object" {
		t.Errorf("unexpected return: %+v", md.Return)
	}
}

func TestParseMethodVoid(t *testing.T) {
	md, err := ParseMethod("()V", 0)
	if err != nil {
		t.Fatalf("ParseMethod: %v", err)
	}
	if !md.Void || len(md.Parameters) != 0 {
		t.Errorf("got %+v, want void with no parameters", md)
	}
}

func TestParseMethodRoundTrip(t *testing.T) {
	for _, s := range []string{"()V", "(IDLjava/lang/Thread;)Ljava/lang/Object;", "([I[[Ljava/lang/String;)I"} {
		md, err := ParseMethod(s, 0)
		if err != nil {
			t.Fatalf("ParseMethod(%q): %v", s, err)
		}
		if got := md.String(); got != s {
			t.Errorf("round-trip mismatch: parsed %q, printed %q", s, got)
		}
	}
}

func TestParseMethodErrors(t *testing.T) {
	for _, s := range []string{"()", "V", "(I", "(I)", "(I)Q"} {
		if _, err := ParseMethod(s, 0); err == nil {
			t.Errorf("ParseMethod(%q) = nil error, want error", s)
		}
	}
}

func TestParseFieldRecursionLimit(t *testing.T) {
	s := ""
	for i := 0; i < 300; i++ {
		s += "["
	}
	s += "I"
	if _, err := ParseField(s, 10); err == nil {
		t.Error("expected recursion-limit error, got nil")
	}
}
