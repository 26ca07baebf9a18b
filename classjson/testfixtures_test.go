package classjson

import "encoding/binary"

// fixtureBuilder is a minimal hand-rolled class-file byte assembler for
// this package's tests, independent of classfile's own test-only builder
// (which lives in a different package and is not exported across it).
type fixtureBuilder struct {
	buf []byte
}

func (b *fixtureBuilder) u1(v uint8) *fixtureBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *fixtureBuilder) u2(v uint16) *fixtureBuilder {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *fixtureBuilder) u4(v uint32) *fixtureBuilder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *fixtureBuilder) raw(v ...byte) *fixtureBuilder {
	b.buf = append(b.buf, v...)
	return b
}

func (b *fixtureBuilder) utf8(s string) *fixtureBuilder {
	b.u1(1) // CONSTANT_Utf8
	b.u2(uint16(len(s)))
	b.buf = append(b.buf, []byte(s)...)
	return b
}

func (b *fixtureBuilder) classRef(nameIdx uint16) *fixtureBuilder {
	return b.u1(7).u2(nameIdx) // CONSTANT_Class
}

// helloWorldClassBytes builds a HelloWorld-shaped class file: a public
// class extending java/lang/Object with a no-op <init> and a public static
// void main(String[]) carrying a trivial Code attribute, plus a SourceFile
// class attribute. Shaped after the scenario in the package's test plan,
// not a real javac-compiled artifact -- this package never needs one.
func helloWorldClassBytes() []byte {
	b := &fixtureBuilder{}
	b.u4(0xCAFEBABE).u2(0).u2(61)

	// 1 Utf8 "HelloWorld"            2 Class->1
	// 3 Utf8 "java/lang/Object"      4 Class->3
	// 5 Utf8 "<init>"                6 Utf8 "()V"
	// 7 Utf8 "main"                  8 Utf8 "([Ljava/lang/String;)V"
	// 9 Utf8 "Code"                  10 Utf8 "SourceFile"
	// 11 Utf8 "HelloWorld.java"
	b.u2(12)
	b.utf8("HelloWorld")
	b.classRef(1)
	b.utf8("java/lang/Object")
	b.classRef(3)
	b.utf8("<init>")
	b.utf8("()V")
	b.utf8("main")
	b.utf8("([Ljava/lang/String;)V")
	b.utf8("Code")
	b.utf8("SourceFile")
	b.utf8("HelloWorld.java")

	b.u2(0x0021) // access_flags: PUBLIC | SUPER
	b.u2(2)      // this_class
	b.u2(4)      // super_class
	b.u2(0)      // interfaces_count

	b.u2(0) // fields_count

	b.u2(2) // methods_count

	// <init>()V with a minimal Code attribute: aload_0, invokespecial
	// Object.<init>, return -- but since we never resolve a methodref here,
	// just emit a trivial one-byte body (return-only) to keep the fixture
	// self-contained.
	b.u2(0x0001) // ACC_PUBLIC
	b.u2(5)      // name -> <init>
	b.u2(6)      // descriptor -> ()V
	b.u2(1)      // attributes_count
	b.u2(9)      // attribute_name_index -> Code
	codeBody := buildCodeBody([]byte{0xB1}, nil) // return
	b.u4(uint32(len(codeBody)))
	b.raw(codeBody...)

	// main([Ljava/lang/String;)V, PUBLIC|STATIC, also a trivial Code body.
	b.u2(0x0009) // ACC_PUBLIC | ACC_STATIC
	b.u2(7)      // name -> main
	b.u2(8)      // descriptor -> ([Ljava/lang/String;)V
	b.u2(1)      // attributes_count
	b.u2(9)      // attribute_name_index -> Code
	codeBody2 := buildCodeBody([]byte{0xB1}, nil) // return
	b.u4(uint32(len(codeBody2)))
	b.raw(codeBody2...)

	// Class attributes: SourceFile
	b.u2(1)
	b.u2(10) // attribute_name_index -> SourceFile
	b.u4(2)
	b.u2(11) // sourcefile_index -> HelloWorld.java

	return b.buf
}

// buildCodeBody assembles the payload of a Code attribute (everything
// after attribute_name_index/attribute_length): max_stack, max_locals,
// code, an empty exception table, and no nested attributes.
func buildCodeBody(code []byte, _ []byte) []byte {
	b := &fixtureBuilder{}
	b.u2(1)                        // max_stack
	b.u2(1)                        // max_locals
	b.u4(uint32(len(code)))        // code_length
	b.raw(code...)
	b.u2(0) // exception_table_length
	b.u2(0) // attributes_count
	return b.buf
}

// classWithUnknownAttributeBytes builds a class carrying a single
// FooBar class attribute with 4 bytes of opaque payload.
func classWithUnknownAttributeBytes() []byte {
	b := &fixtureBuilder{}
	b.u4(0xCAFEBABE).u2(0).u2(61)

	b.u2(4)
	b.utf8("C")
	b.classRef(1)
	b.utf8("FooBar")

	b.u2(0x0021).u2(2).u2(0).u2(0).u2(0).u2(0)
	b.u2(1)  // attributes_count
	b.u2(3)  // attribute_name_index -> FooBar
	b.u4(4)  // attribute_length
	b.raw(0xDE, 0xAD, 0xBE, 0xEF)

	return b.buf
}
