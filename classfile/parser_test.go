package classfile

import "testing"

func TestParseMinimalClassFile(t *testing.T) {
	cf, err := Parse(minimalClassFile())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cf.Magic != Magic {
		t.Errorf("Magic = %#x, want %#x", cf.Magic, Magic)
	}
	if cf.MajorVersion != 61 {
		t.Errorf("MajorVersion = %d, want 61", cf.MajorVersion)
	}
	if cf.ConstantPoolCount() != 5 {
		t.Errorf("ConstantPoolCount() = %d, want 5", cf.ConstantPoolCount())
	}
	if cf.ConstantPool[0] != nil {
		t.Error("pool index 0 must be the null sentinel")
	}

	scope := NewScope(cf)
	name, err := scope.ThisClassName()
	if err != nil || name != "Example" {
		t.Fatalf("ThisClassName() = %q, %v; want Example, nil", name, err)
	}
	super, err := scope.SuperClassName()
	if err != nil || super != "java/lang/Object" {
		t.Fatalf("SuperClassName() = %q, %v; want java/lang/Object, nil", super, err)
	}
}

func TestParseBadMagic(t *testing.T) {
	data := minimalClassFile()
	data[0] = 0x00
	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected BadMagic error")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != KindBadMagic {
		t.Fatalf("got %v, want KindBadMagic", err)
	}
}

func TestParseTruncated(t *testing.T) {
	data := minimalClassFile()
	_, err := Parse(data[:len(data)-1])
	if err == nil {
		t.Fatal("expected Truncated error on a truncated stream")
	}
	if pe := err.(*ParseError); pe.Kind != KindTruncated {
		t.Fatalf("got %v, want KindTruncated", pe.Kind)
	}
}

func TestParseLongDoublePhantomSlot(t *testing.T) {
	b := newClassBuilder()
	b.u4(Magic).u2(0).u2(61)

	// Pool: 1=Utf8"C" 2=Class->1 3=Utf8"java/lang/Object" 4=Class->3
	// 5=Long(0x1122334455667788) [6 phantom] 7=Utf8"tail"
	b.u2(8)
	b.utf8(TagUtf8, "C")
	b.classRef(1)
	b.utf8(TagUtf8, "java/lang/Object")
	b.classRef(3)
	b.u1(uint8(TagLong)).u4(0x11223344).u4(0x55667788)
	b.utf8(TagUtf8, "tail")

	b.u2(0x0021).u2(2).u2(4).u2(0).u2(0).u2(0).u2(0)

	cf, err := Parse(b.bytesOut())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cf.ConstantPool[5] == nil {
		t.Fatal("index 5 (Long) must be non-null")
	}
	if cf.ConstantPool[6] != nil {
		t.Fatal("index 6 (phantom slot) must be null")
	}
	tail, ok := cf.ConstantPool[7].(ConstantUtf8)
	if !ok || tail.Value != "tail" {
		t.Fatalf("index 7 = %#v, want Utf8 \"tail\"", cf.ConstantPool[7])
	}
	long, ok := cf.ConstantPool[5].(ConstantLong)
	if !ok || long.Value != 0x1122334455667788 {
		t.Fatalf("index 5 = %#v, want Long 0x1122334455667788", cf.ConstantPool[5])
	}
}

func TestParseUnknownAttribute(t *testing.T) {
	b := newClassBuilder()
	b.u4(Magic).u2(0).u2(61)

	b.u2(3)
	b.utf8(TagUtf8, "FooBar") // 1: attribute name
	b.classRef(1)             // 2: Class->1, only there to give this_class a valid target

	b.u2(0x0021).u2(2).u2(0).u2(0).u2(0).u2(0)
	b.u2(1) // attributes_count = 1
	b.u2(1) // attribute_name_index -> "FooBar"
	b.u4(4) // attribute_length = 4
	b.bytes(0xDE, 0xAD, 0xBE, 0xEF)

	cf, err := Parse(b.bytesOut())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cf.Attributes) != 1 {
		t.Fatalf("len(Attributes) = %d, want 1", len(cf.Attributes))
	}
	a := cf.Attributes[0]
	if a.Tag != AttrUnknown {
		t.Fatalf("Tag = %v, want AttrUnknown", a.Tag)
	}
	if len(a.Unknown.RawBytes) != 4 {
		t.Fatalf("len(RawBytes) = %d, want 4", len(a.Unknown.RawBytes))
	}
}

func TestParseConstructorName(t *testing.T) {
	b := newClassBuilder()
	b.u4(Magic).u2(0).u2(61)

	// 1=Utf8"<init>" 2=Utf8"()V" 3=Utf8"C" 4=Class->3 5=Utf8"java/lang/Object" 6=Class->5
	b.u2(7)
	b.utf8(TagUtf8, "<init>")
	b.utf8(TagUtf8, "()V")
	b.utf8(TagUtf8, "C")
	b.classRef(3)
	b.utf8(TagUtf8, "java/lang/Object")
	b.classRef(5)

	b.u2(0x0021).u2(4).u2(6).u2(0).u2(0)
	b.u2(1)            // methods_count
	b.u2(0x0001)       // ACC_PUBLIC
	b.u2(1)            // name_index -> <init>
	b.u2(2)            // descriptor_index -> ()V
	b.u2(0)            // attributes_count
	b.u2(0)            // (class) attributes_count

	cf, err := Parse(b.bytesOut())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	scope := NewScope(cf)
	isCtor, err := scope.IsConstructor(cf.Methods[0])
	if err != nil || !isCtor {
		t.Fatalf("IsConstructor() = %v, %v; want true, nil", isCtor, err)
	}
}
