package classjson

import (
	"fmt"

	"github.com/tha2015/class-file-visualizer/classfile"
)

// constantPoolEntryJSON renders the pool entry at idx as {"index", "tag",
// ...}, or JSON null when idx is the null sentinel (0) or an out-of-range
// or phantom-slot index -- the serializer never fails on a bad index, per
// the package design's failure semantics.
func constantPoolEntryJSON(pool []classfile.ConstantPoolEntry, idx classfile.ConstPoolIndex) interface{} {
	if int(idx) <= 0 || int(idx) >= len(pool) || pool[idx] == nil {
		return nil
	}
	return renderConstantPoolEntry(pool, idx)
}

// indexAndDeref sets both "<key>" and "<key>_deref" on o for a constant
// pool index field.
func indexAndDeref(o object, key string, pool []classfile.ConstantPoolEntry, idx classfile.ConstPoolIndex) object {
	return o.set(key, int(idx)).set(key+"_deref", constantPoolEntryJSON(pool, idx))
}

func renderConstantPoolEntry(pool []classfile.ConstantPoolEntry, idx classfile.ConstPoolIndex) object {
	entry := pool[idx]
	o := object{}.set("index", int(idx))

	switch e := entry.(type) {
	case classfile.ConstantUtf8:
		o = o.set("tag", "CONSTANT_Utf8").set("value", htmlEscape(e.Value))

	case classfile.ConstantInteger:
		o = o.set("tag", "CONSTANT_Integer").set("value", e.Value)

	case classfile.ConstantFloat:
		o = o.set("tag", "CONSTANT_Float").set("value", e.Value)

	case classfile.ConstantLong:
		o = o.set("tag", "CONSTANT_Long").set("value", e.Value)

	case classfile.ConstantDouble:
		o = o.set("tag", "CONSTANT_Double").set("value", e.Value)

	case classfile.ConstantClass:
		o = o.set("tag", "CONSTANT_Class")
		o = indexAndDeref(o, "nameIndex", pool, e.NameIndex)

	case classfile.ConstantString:
		o = o.set("tag", "CONSTANT_String")
		o = indexAndDeref(o, "stringIndex", pool, e.StringIndex)

	case classfile.ConstantFieldref:
		o = o.set("tag", "CONSTANT_Fieldref")
		o = indexAndDeref(o, "classIndex", pool, e.ClassIndex)
		o = indexAndDeref(o, "nameAndTypeIndex", pool, e.NameAndTypeIndex)

	case classfile.ConstantMethodref:
		o = o.set("tag", "CONSTANT_Methodref")
		o = indexAndDeref(o, "classIndex", pool, e.ClassIndex)
		o = indexAndDeref(o, "nameAndTypeIndex", pool, e.NameAndTypeIndex)

	case classfile.ConstantInterfaceMethodref:
		o = o.set("tag", "CONSTANT_InterfaceMethodref")
		o = indexAndDeref(o, "classIndex", pool, e.ClassIndex)
		o = indexAndDeref(o, "nameAndTypeIndex", pool, e.NameAndTypeIndex)

	case classfile.ConstantNameAndType:
		o = o.set("tag", "CONSTANT_NameAndType")
		o = indexAndDeref(o, "nameIndex", pool, e.NameIndex)
		o = indexAndDeref(o, "descriptorIndex", pool, e.DescriptorIndex)

	case classfile.ConstantMethodHandle:
		o = o.set("tag", "CONSTANT_MethodHandle").set("referenceKind", int(e.ReferenceKind))
		o = indexAndDeref(o, "referenceIndex", pool, e.ReferenceIndex)

	case classfile.ConstantMethodType:
		o = o.set("tag", "CONSTANT_MethodType")
		o = indexAndDeref(o, "descriptorIndex", pool, e.DescriptorIndex)

	case classfile.ConstantDynamic:
		o = o.set("tag", "CONSTANT_Dynamic").set("bootstrapMethodAttrIndex", int(e.BootstrapMethodAttrIndex))
		o = indexAndDeref(o, "nameAndTypeIndex", pool, e.NameAndTypeIndex)

	case classfile.ConstantInvokeDynamic:
		o = o.set("tag", "CONSTANT_InvokeDynamic").set("bootstrapMethodAttrIndex", int(e.BootstrapMethodAttrIndex))
		o = indexAndDeref(o, "nameAndTypeIndex", pool, e.NameAndTypeIndex)

	case classfile.ConstantModule:
		o = o.set("tag", "CONSTANT_Module")
		o = indexAndDeref(o, "nameIndex", pool, e.NameIndex)

	case classfile.ConstantPackage:
		o = o.set("tag", "CONSTANT_Package")
		o = indexAndDeref(o, "nameIndex", pool, e.NameIndex)

	default:
		o = o.set("tag", fmt.Sprintf("CONSTANT_Unknown(%T)", e))
	}

	return o
}
