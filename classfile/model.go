// Package classfile decodes a JVM class file (JVMS chapter 4, Java SE 21 or
// earlier) into an immutable, fully structured object model. Parsing is a
// single pass, recursive-descent walk over the binary grammar; the result
// is a tree of plain values that is never mutated again, and is therefore
// safe to hand off to another goroutine for rendering.
package classfile

// Magic is the mandatory first four bytes of every class file.
const Magic uint32 = 0xCAFEBABE

// ConstPoolIndex is a 1-based position in the constant pool, or 0 to mean
// "no reference" at the handful of sites the spec allows it (SuperClass of
// java/lang/Object, a 0 catch_type meaning "any", and so on).
type ConstPoolIndex uint16

// ClassFile is the root of the parsed model.
type ClassFile struct {
	Magic             uint32
	MinorVersion      uint16
	MajorVersion      uint16
	ConstantPool      []ConstantPoolEntry // index 0 is always nil (the sentinel)
	AccessFlags       uint16
	ThisClass         ConstPoolIndex
	SuperClass        ConstPoolIndex
	Interfaces        []ConstPoolIndex
	Fields            []FieldInfo
	Methods           []MethodInfo
	Attributes        []AttributeInfo
}

// ConstantPoolCount is the value originally read from the stream: the
// number of real entries plus one for the reserved null slot at index 0.
// The parser allocates the pool with exactly that many slots, sentinel and
// phantom slots included, so the count is len(ConstantPool).
func (c *ClassFile) ConstantPoolCount() int {
	return len(c.ConstantPool)
}

// FieldInfo describes one field_info structure.
type FieldInfo struct {
	AccessFlags     uint16
	NameIndex       ConstPoolIndex
	DescriptorIndex ConstPoolIndex
	Attributes      []AttributeInfo
}

// MethodInfo describes one method_info structure.
type MethodInfo struct {
	AccessFlags     uint16
	NameIndex       ConstPoolIndex
	DescriptorIndex ConstPoolIndex
	Attributes      []AttributeInfo
}

// ConstantTag identifies the variant of a ConstantPoolEntry.
type ConstantTag uint8

const (
	TagUtf8               ConstantTag = 1
	TagInteger            ConstantTag = 3
	TagFloat              ConstantTag = 4
	TagLong               ConstantTag = 5
	TagDouble             ConstantTag = 6
	TagClass              ConstantTag = 7
	TagString             ConstantTag = 8
	TagFieldref           ConstantTag = 9
	TagMethodref          ConstantTag = 10
	TagInterfaceMethodref ConstantTag = 11
	TagNameAndType        ConstantTag = 12
	TagMethodHandle       ConstantTag = 15
	TagMethodType         ConstantTag = 16
	TagDynamic            ConstantTag = 17
	TagInvokeDynamic      ConstantTag = 18
	TagModule             ConstantTag = 19
	TagPackage            ConstantTag = 20
)

// ConstantPoolEntry is the closed, tagged union of the 17 constant kinds.
// Every implementation stores only leaf data and/or indices into the pool;
// there are no owning pointers between entries.
type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8 struct{ Value string }
type ConstantInteger struct{ Value int32 }
type ConstantFloat struct{ Value float32 }
type ConstantLong struct{ Value int64 }
type ConstantDouble struct{ Value float64 }
type ConstantClass struct{ NameIndex ConstPoolIndex }
type ConstantString struct{ StringIndex ConstPoolIndex }
type ConstantFieldref struct {
	ClassIndex       ConstPoolIndex
	NameAndTypeIndex ConstPoolIndex
}
type ConstantMethodref struct {
	ClassIndex       ConstPoolIndex
	NameAndTypeIndex ConstPoolIndex
}
type ConstantInterfaceMethodref struct {
	ClassIndex       ConstPoolIndex
	NameAndTypeIndex ConstPoolIndex
}
type ConstantNameAndType struct {
	NameIndex       ConstPoolIndex
	DescriptorIndex ConstPoolIndex
}
type ConstantMethodHandle struct {
	ReferenceKind  uint8
	ReferenceIndex ConstPoolIndex
}
type ConstantMethodType struct{ DescriptorIndex ConstPoolIndex }
type ConstantDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         ConstPoolIndex
}
type ConstantInvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         ConstPoolIndex
}
type ConstantModule struct{ NameIndex ConstPoolIndex }
type ConstantPackage struct{ NameIndex ConstPoolIndex }

func (ConstantUtf8) Tag() ConstantTag               { return TagUtf8 }
func (ConstantInteger) Tag() ConstantTag             { return TagInteger }
func (ConstantFloat) Tag() ConstantTag               { return TagFloat }
func (ConstantLong) Tag() ConstantTag                { return TagLong }
func (ConstantDouble) Tag() ConstantTag              { return TagDouble }
func (ConstantClass) Tag() ConstantTag               { return TagClass }
func (ConstantString) Tag() ConstantTag              { return TagString }
func (ConstantFieldref) Tag() ConstantTag            { return TagFieldref }
func (ConstantMethodref) Tag() ConstantTag           { return TagMethodref }
func (ConstantInterfaceMethodref) Tag() ConstantTag  { return TagInterfaceMethodref }
func (ConstantNameAndType) Tag() ConstantTag         { return TagNameAndType }
func (ConstantMethodHandle) Tag() ConstantTag        { return TagMethodHandle }
func (ConstantMethodType) Tag() ConstantTag          { return TagMethodType }
func (ConstantDynamic) Tag() ConstantTag             { return TagDynamic }
func (ConstantInvokeDynamic) Tag() ConstantTag        { return TagInvokeDynamic }
func (ConstantModule) Tag() ConstantTag              { return TagModule }
func (ConstantPackage) Tag() ConstantTag             { return TagPackage }
