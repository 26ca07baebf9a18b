package classjson

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tha2015/class-file-visualizer/classfile"
)

// decode round-trips Serialize's output through encoding/json into a plain
// map, which is all these tests need to assert on: they check field
// presence and value shape, not exact key ordering (MarshalJSON's own
// ordering is exercised directly in object_test.go).
func decode(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, raw)
	}
	return m
}

func buildHelloWorld(t *testing.T) *classfile.ClassFile {
	t.Helper()
	cf, err := classfile.Parse(helloWorldClassBytes())
	if err != nil {
		t.Fatalf("classfile.Parse: %v", err)
	}
	return cf
}

func TestSerializeTopLevelShape(t *testing.T) {
	cf := buildHelloWorld(t)
	m := decode(t, Serialize(cf))

	for _, key := range []string{
		"magic", "minorVersion", "majorVersion", "constantPoolCount",
		"constantPool", "accessFlags", "thisClass", "thisClass_deref",
		"superClass", "superClass_deref", "interfacesCount", "interfaces",
		"fieldsCount", "fields", "methodsCount", "methods",
		"attributesCount", "attributes",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing top-level field %q", key)
		}
	}

	if m["magic"] != "0xCAFEBABE" {
		t.Errorf("magic = %v, want 0xCAFEBABE", m["magic"])
	}
}

func TestSerializeThisClassDeref(t *testing.T) {
	cf := buildHelloWorld(t)
	m := decode(t, Serialize(cf))

	deref, ok := m["thisClass_deref"].(map[string]interface{})
	if !ok {
		t.Fatalf("thisClass_deref = %#v, want an object", m["thisClass_deref"])
	}
	nameDeref, ok := deref["nameIndex_deref"].(map[string]interface{})
	if !ok {
		t.Fatalf("thisClass_deref.nameIndex_deref = %#v, want an object", deref["nameIndex_deref"])
	}
	if nameDeref["value"] != "HelloWorld" {
		t.Errorf("thisClass_deref.nameIndex_deref.value = %v, want HelloWorld", nameDeref["value"])
	}
}

func TestSerializeMainMethod(t *testing.T) {
	cf := buildHelloWorld(t)
	m := decode(t, Serialize(cf))

	methods, ok := m["methods"].([]interface{})
	if !ok {
		t.Fatalf("methods = %#v, want an array", m["methods"])
	}

	var main map[string]interface{}
	for _, mi := range methods {
		mm := mi.(map[string]interface{})
		nd := mm["nameIndex_deref"].(map[string]interface{})
		if nd["value"] == "main" {
			main = mm
		}
	}
	if main == nil {
		t.Fatal("expected a method named main")
	}
	dd := main["descriptorIndex_deref"].(map[string]interface{})
	if dd["value"] != "([Ljava/lang/String;)V" {
		t.Errorf("main descriptor = %v, want ([Ljava/lang/String;)V", dd["value"])
	}
	flags := main["accessFlags"].(string)
	if !strings.Contains(flags, "PUBLIC") || !strings.Contains(flags, "STATIC") {
		t.Errorf("main access flags = %q, want PUBLIC and STATIC", flags)
	}
}

func TestSerializeHTMLEscapesAngleBrackets(t *testing.T) {
	cf := buildHelloWorld(t)
	raw, err := json.Marshal(Serialize(cf))
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	// encoding/json writes '&' as the escape sequence backslash-u0026 in
	// its output text, so the escaped
	// entity is checked on the decoded Utf8 value of pool entry 5 (<init>).
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, raw)
	}
	initEntry := m["constantPool"].([]interface{})[5].(map[string]interface{})
	if initEntry["value"] != "&lt;init&gt;" {
		t.Errorf("expected HTML-escaped <init> as the Utf8 value, got %v in:\n%s", initEntry["value"], raw)
	}
}

func TestSerializeUnknownAttribute(t *testing.T) {
	cf, err := classfile.Parse(classWithUnknownAttributeBytes())
	if err != nil {
		t.Fatalf("classfile.Parse: %v", err)
	}
	m := decode(t, Serialize(cf))
	attrs := m["attributes"].([]interface{})
	if len(attrs) != 1 {
		t.Fatalf("len(attributes) = %d, want 1", len(attrs))
	}
	a := attrs[0].(map[string]interface{})
	if a["info"] != "Binary data (4 bytes)" {
		t.Errorf("info = %v, want \"Binary data (4 bytes)\"", a["info"])
	}
}

func TestAccessFlagsAllZero(t *testing.T) {
	if got := classAccessFlags(0); got != "0 ()" {
		t.Errorf("classAccessFlags(0) = %q, want \"0 ()\"", got)
	}
}

func TestAccessFlagsPublicSuper(t *testing.T) {
	if got := classAccessFlags(0x0021); got != "33 (PUBLIC | SUPER)" {
		t.Errorf("classAccessFlags(0x0021) = %q, want \"33 (PUBLIC | SUPER)\"", got)
	}
}
