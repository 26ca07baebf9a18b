package classfile

import "testing"

func TestParseElementValuePrimitive(t *testing.T) {
	r := newReader([]byte{'I', 0, 5}) // tag 'I', const_value_index=5
	v, err := parseElementValue(r)
	if err != nil {
		t.Fatalf("parseElementValue: %v", err)
	}
	if v.Tag != EVInt || v.ConstValueIndex != 5 {
		t.Errorf("got %+v, want EVInt index=5", v)
	}
}

func TestParseElementValueArray(t *testing.T) {
	// '[' with 2 elements, each a primitive 'I' with index 1 and 2
	r := newReader([]byte{'[', 0, 2, 'I', 0, 1, 'I', 0, 2})
	v, err := parseElementValue(r)
	if err != nil {
		t.Fatalf("parseElementValue: %v", err)
	}
	if v.Tag != EVArray || len(v.ArrayValues) != 2 {
		t.Fatalf("got %+v, want an array of 2", v)
	}
	if v.ArrayValues[0].ConstValueIndex != 1 || v.ArrayValues[1].ConstValueIndex != 2 {
		t.Errorf("array elements = %+v", v.ArrayValues)
	}
}

func TestParseParameterAnnotationsUsesByteCount(t *testing.T) {
	// num_parameters is a single byte (2), each with num_annotations=0.
	r := newReader([]byte{2, 0, 0, 0, 0})
	out, err := parseParameterAnnotations(r)
	if err != nil {
		t.Fatalf("parseParameterAnnotations: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 (8-bit outer count)", len(out))
	}
}

func TestParseTargetInfoLocalvar(t *testing.T) {
	// target_type 0x40 (Localvar), table_length=1, entry (start=1,len=2,idx=3)
	r := newReader([]byte{0, 1, 0, 1, 0, 2, 0, 3})
	target, err := parseTargetInfo(r, 0x40)
	if err != nil {
		t.Fatalf("parseTargetInfo: %v", err)
	}
	if target.Kind != TargetLocalvar || len(target.Table) != 1 {
		t.Fatalf("got %+v, want one Localvar entry", target)
	}
	e := target.Table[0]
	if e.StartPC != 1 || e.Length != 2 || e.Index != 3 {
		t.Errorf("entry = %+v, want {1,2,3}", e)
	}
}

func TestParseTargetInfoUnknownTargetType(t *testing.T) {
	_, err := parseTargetInfo(newReader(nil), 0xFF)
	if err == nil {
		t.Fatal("expected UnknownTypeAnnotationTarget for 0xFF")
	}
	if pe := err.(*ParseError); pe.Kind != KindUnknownTypeAnnotationTarget {
		t.Fatalf("got %v, want KindUnknownTypeAnnotationTarget", pe.Kind)
	}
}
