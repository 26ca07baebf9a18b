package classfile

import "encoding/binary"

// classBuilder assembles a class file byte stream by hand, the way a
// fixture for this format has to be built: there is no assembler in this
// package, only a decoder. Every write method appends in wire order.
type classBuilder struct {
	buf []byte
}

func newClassBuilder() *classBuilder {
	return &classBuilder{}
}

func (b *classBuilder) u1(v uint8) *classBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *classBuilder) u2(v uint16) *classBuilder {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *classBuilder) u4(v uint32) *classBuilder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *classBuilder) bytes(v ...byte) *classBuilder {
	b.buf = append(b.buf, v...)
	return b
}

// utf8 appends a CONSTANT_Utf8_info entry (tag 1, length-prefixed payload).
func (b *classBuilder) utf8(tag ConstantTag, s string) *classBuilder {
	b.u1(uint8(tag))
	b.u2(uint16(len(s)))
	b.buf = append(b.buf, []byte(s)...)
	return b
}

func (b *classBuilder) classRef(nameIdx uint16) *classBuilder {
	return b.u1(uint8(TagClass)).u2(nameIdx)
}

func (b *classBuilder) nameAndType(nameIdx, descIdx uint16) *classBuilder {
	return b.u1(uint8(TagNameAndType)).u2(nameIdx).u2(descIdx)
}

func (b *classBuilder) methodref(classIdx, natIdx uint16) *classBuilder {
	return b.u1(uint8(TagMethodref)).u2(classIdx).u2(natIdx)
}

func (b *classBuilder) bytesOut() []byte {
	return b.buf
}

// minimalClassFile builds the smallest well-formed class file this package
// recognises: magic/version, a pool with just a Class entry for the class
// itself and for java/lang/Object, zero interfaces/fields/methods/attributes.
func minimalClassFile() []byte {
	b := newClassBuilder()
	b.u4(Magic).u2(0).u2(61) // version 61.0 (Java 17)

	// Pool: 1=Utf8"Example" 2=Class->1 3=Utf8"java/lang/Object" 4=Class->3
	b.u2(5) // constant_pool_count (4 real entries + sentinel)
	b.utf8(TagUtf8, "Example")
	b.classRef(1)
	b.utf8(TagUtf8, "java/lang/Object")
	b.classRef(3)

	b.u2(0x0021) // access_flags: PUBLIC | SUPER
	b.u2(2)      // this_class
	b.u2(4)      // super_class
	b.u2(0)      // interfaces_count
	b.u2(0)      // fields_count
	b.u2(0)      // methods_count
	b.u2(0)      // attributes_count

	return b.bytesOut()
}
