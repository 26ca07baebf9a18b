package classjson

import (
	"fmt"

	"github.com/tha2015/class-file-visualizer/classfile"
)

// Serialize walks a parsed ClassFile and renders it as the JSON document
// described by the package design: a fixed top-level field order, with a
// "<field>_deref" sibling inlined next to every constant-pool index.
func Serialize(cf *classfile.ClassFile) interface{} {
	pool := cf.ConstantPool

	o := object{}.
		set("magic", fmt.Sprintf("0x%08X", cf.Magic)).
		set("minorVersion", int(cf.MinorVersion)).
		set("majorVersion", int(cf.MajorVersion)).
		set("constantPoolCount", cf.ConstantPoolCount()).
		set("constantPool", renderConstantPool(pool)).
		set("accessFlags", classAccessFlags(cf.AccessFlags))

	o = indexAndDeref(o, "thisClass", pool, cf.ThisClass)
	o = indexAndDeref(o, "superClass", pool, cf.SuperClass)

	o = o.set("interfacesCount", len(cf.Interfaces)).
		set("interfaces", renderIndexList(pool, cf.Interfaces)).
		set("fieldsCount", len(cf.Fields)).
		set("fields", renderFields(pool, cf.Fields)).
		set("methodsCount", len(cf.Methods)).
		set("methods", renderMethods(pool, cf.Methods)).
		set("attributesCount", len(cf.Attributes)).
		set("attributes", renderAttributeList(pool, cf.Attributes))

	return o
}

// renderConstantPool renders every slot of the pool, preserving the null
// sentinel at index 0 and at the phantom second slot of every Long/Double.
func renderConstantPool(pool []classfile.ConstantPoolEntry) []interface{} {
	out := make([]interface{}, len(pool))
	for i := range pool {
		idx := classfile.ConstPoolIndex(i)
		if i == 0 || pool[i] == nil {
			out[i] = nil
			continue
		}
		out[i] = renderConstantPoolEntry(pool, idx)
	}
	return out
}

func renderFields(pool []classfile.ConstantPoolEntry, fields []classfile.FieldInfo) []object {
	out := make([]object, len(fields))
	for i, f := range fields {
		o := object{}.set("accessFlags", fieldAccessFlags(f.AccessFlags))
		o = indexAndDeref(o, "nameIndex", pool, f.NameIndex)
		o = indexAndDeref(o, "descriptorIndex", pool, f.DescriptorIndex)
		o = o.set("attributesCount", len(f.Attributes)).
			set("attributes", renderAttributeList(pool, f.Attributes))
		out[i] = o
	}
	return out
}

func renderMethods(pool []classfile.ConstantPoolEntry, methods []classfile.MethodInfo) []object {
	out := make([]object, len(methods))
	for i, m := range methods {
		o := object{}.set("accessFlags", methodAccessFlags(m.AccessFlags))
		o = indexAndDeref(o, "nameIndex", pool, m.NameIndex)
		o = indexAndDeref(o, "descriptorIndex", pool, m.DescriptorIndex)
		o = o.set("attributesCount", len(m.Attributes)).
			set("attributes", renderAttributeList(pool, m.Attributes))
		out[i] = o
	}
	return out
}
