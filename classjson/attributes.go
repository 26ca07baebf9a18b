package classjson

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/tha2015/class-file-visualizer/classfile"
)

// hexBytes renders raw bytes as an uppercase hex string with no separators,
// the format the package design mandates for Code.code.
func hexBytes(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

var attrTagNames = map[classfile.AttributeTag]string{
	classfile.AttrConstantValue:                          "ConstantValue",
	classfile.AttrCode:                                    "Code",
	classfile.AttrStackMapTable:                           "StackMapTable",
	classfile.AttrStackMap:                                "StackMap",
	classfile.AttrExceptions:                              "Exceptions",
	classfile.AttrInnerClasses:                            "InnerClasses",
	classfile.AttrEnclosingMethod:                         "EnclosingMethod",
	classfile.AttrSynthetic:                               "Synthetic",
	classfile.AttrSignature:                               "Signature",
	classfile.AttrSourceFile:                              "SourceFile",
	classfile.AttrSourceDebugExtension:                    "SourceDebugExtension",
	classfile.AttrLineNumberTable:                         "LineNumberTable",
	classfile.AttrLocalVariableTable:                      "LocalVariableTable",
	classfile.AttrLocalVariableTypeTable:                  "LocalVariableTypeTable",
	classfile.AttrDeprecated:                              "Deprecated",
	classfile.AttrRuntimeVisibleAnnotations:               "RuntimeVisibleAnnotations",
	classfile.AttrRuntimeInvisibleAnnotations:             "RuntimeInvisibleAnnotations",
	classfile.AttrRuntimeVisibleParameterAnnotations:      "RuntimeVisibleParameterAnnotations",
	classfile.AttrRuntimeInvisibleParameterAnnotations:    "RuntimeInvisibleParameterAnnotations",
	classfile.AttrRuntimeVisibleTypeAnnotations:           "RuntimeVisibleTypeAnnotations",
	classfile.AttrRuntimeInvisibleTypeAnnotations:         "RuntimeInvisibleTypeAnnotations",
	classfile.AttrAnnotationDefault:                       "AnnotationDefault",
	classfile.AttrBootstrapMethods:                        "BootstrapMethods",
	classfile.AttrMethodParameters:                        "MethodParameters",
	classfile.AttrModule:                                  "Module",
	classfile.AttrModulePackages:                          "ModulePackages",
	classfile.AttrModuleMainClass:                         "ModuleMainClass",
	classfile.AttrNestHost:                                "NestHost",
	classfile.AttrNestMembers:                             "NestMembers",
	classfile.AttrRecord:                                  "Record",
	classfile.AttrPermittedSubclasses:                     "PermittedSubclasses",
	classfile.AttrUnknown:                                 "Unknown",
}

// renderAttribute serializes one AttributeInfo. Complex sub-structures that
// the package design elides -- stack map frames, annotations, parameter
// annotations, type annotations, annotation defaults, record components,
// module bodies, and unknown payloads -- are summarised (a count plus
// placeholder tokens, header counts for a module, a byte count in "info"
// for an unknown payload) with a "note" explaining why, rather than expanded.
func renderAttribute(pool []classfile.ConstantPoolEntry, a classfile.AttributeInfo) object {
	o := object{}.set("tag", attrTagNames[a.Tag])
	o = indexAndDeref(o, "attributeNameIndex", pool, a.AttributeNameIndex)

	switch a.Tag {
	case classfile.AttrConstantValue:
		o = indexAndDeref(o, "constantValueIndex", pool, a.ConstantValue.ConstantValueIndex)
		o = o.set("attributeLength", 2)

	case classfile.AttrCode:
		c := a.Code
		o = o.set("maxStack", int(c.MaxStack)).
			set("maxLocals", int(c.MaxLocals)).
			set("codeLength", len(c.Code)).
			set("code", hexBytes(c.Code)).
			set("exceptionTableLength", len(c.ExceptionTable)).
			set("exceptionTable", renderExceptionTable(pool, c.ExceptionTable)).
			set("attributes", renderAttributeList(pool, c.Attributes)).
			set("attributesCount", len(c.Attributes))
		// Matches the documented reference quirk: this omits the exception
		// table and nested attribute sizes. See DESIGN.md.
		o = o.set("attributeLength", len(c.Code)+12)

	case classfile.AttrStackMapTable, classfile.AttrStackMap:
		o = o.set("entriesCount", len(a.StackMapTable)).
			set("entries", placeholderTokens("StackMapFrame", len(a.StackMapTable))).
			set("note", "stack map frames are parsed but not expanded in this view")

	case classfile.AttrExceptions:
		o = o.set("numberOfExceptions", len(a.Exceptions.ExceptionIndexTable)).
			set("exceptionIndexTable", renderIndexList(pool, a.Exceptions.ExceptionIndexTable))

	case classfile.AttrInnerClasses:
		entries := make([]object, len(a.InnerClasses.Classes))
		for i, c := range a.InnerClasses.Classes {
			e := object{}
			e = indexAndDeref(e, "innerClassInfoIndex", pool, c.InnerClassInfoIndex)
			e = indexAndDeref(e, "outerClassInfoIndex", pool, c.OuterClassInfoIndex)
			e = indexAndDeref(e, "innerNameIndex", pool, c.InnerNameIndex)
			e = e.set("innerClassAccessFlags", classAccessFlags(c.InnerClassAccessFlags))
			entries[i] = e
		}
		o = o.set("numberOfClasses", len(entries)).set("classes", entries)

	case classfile.AttrEnclosingMethod:
		o = indexAndDeref(o, "classIndex", pool, a.EnclosingMethod.ClassIndex)
		o = indexAndDeref(o, "methodIndex", pool, a.EnclosingMethod.MethodIndex)
		o = o.set("attributeLength", 4)

	case classfile.AttrSynthetic:
		o = o.set("attributeLength", 0)

	case classfile.AttrSignature:
		o = indexAndDeref(o, "signatureIndex", pool, a.Signature.SignatureIndex)
		o = o.set("attributeLength", 2)

	case classfile.AttrSourceFile:
		o = indexAndDeref(o, "sourceFileIndex", pool, a.SourceFile.SourceFileIndex)
		o = o.set("attributeLength", 2)

	case classfile.AttrSourceDebugExtension:
		o = o.set("debugExtension", hexBytes(a.SourceDebugExtension.DebugExtension)).
			set("attributeLength", len(a.SourceDebugExtension.DebugExtension))

	case classfile.AttrLineNumberTable:
		entries := make([]object, len(a.LineNumberTable.LineNumberTable))
		for i, e := range a.LineNumberTable.LineNumberTable {
			entries[i] = object{}.set("startPc", int(e.StartPC)).set("lineNumber", int(e.LineNumber))
		}
		o = o.set("lineNumberTableLength", len(entries)).
			set("lineNumberTable", entries).
			set("attributeLength", 2+len(entries)*4)

	case classfile.AttrLocalVariableTable:
		entries := make([]object, len(a.LocalVariableTable.LocalVariableTable))
		for i, e := range a.LocalVariableTable.LocalVariableTable {
			le := object{}.set("startPc", int(e.StartPC)).set("length", int(e.Length))
			le = indexAndDeref(le, "nameIndex", pool, e.NameIndex)
			le = indexAndDeref(le, "descriptorIndex", pool, e.DescriptorIndex)
			le = le.set("index", int(e.Index))
			entries[i] = le
		}
		o = o.set("localVariableTableLength", len(entries)).
			set("localVariableTable", entries).
			set("attributeLength", 2+len(entries)*10)

	case classfile.AttrLocalVariableTypeTable:
		entries := make([]object, len(a.LocalVariableTypeTable.LocalVariableTypeTable))
		for i, e := range a.LocalVariableTypeTable.LocalVariableTypeTable {
			le := object{}.set("startPc", int(e.StartPC)).set("length", int(e.Length))
			le = indexAndDeref(le, "nameIndex", pool, e.NameIndex)
			le = indexAndDeref(le, "signatureIndex", pool, e.SignatureIndex)
			le = le.set("index", int(e.Index))
			entries[i] = le
		}
		o = o.set("localVariableTypeTableLength", len(entries)).
			set("localVariableTypeTable", entries).
			set("attributeLength", 2+len(entries)*10)

	case classfile.AttrDeprecated:
		o = o.set("attributeLength", 0)

	case classfile.AttrRuntimeVisibleAnnotations, classfile.AttrRuntimeInvisibleAnnotations:
		o = o.set("numAnnotations", len(a.Annotations)).
			set("annotations", placeholderTokens("Annotation", len(a.Annotations))).
			set("note", "annotations are parsed but not expanded in this view")

	case classfile.AttrRuntimeVisibleParameterAnnotations, classfile.AttrRuntimeInvisibleParameterAnnotations:
		counts := make([]string, len(a.ParameterAnnotations))
		for i, anns := range a.ParameterAnnotations {
			counts[i] = strconv.Itoa(len(anns)) + " annotations"
		}
		o = o.set("numParameters", len(a.ParameterAnnotations)).
			set("parameterAnnotations", counts).
			set("note", "parameter annotations are parsed but not expanded in this view")

	case classfile.AttrRuntimeVisibleTypeAnnotations, classfile.AttrRuntimeInvisibleTypeAnnotations:
		o = o.set("numAnnotations", len(a.TypeAnnotations)).
			set("annotations", placeholderTokens("TypeAnnotation", len(a.TypeAnnotations))).
			set("note", "type annotations are parsed but not expanded in this view")

	case classfile.AttrAnnotationDefault:
		o = o.set("defaultValue", "ElementValue").
			set("note", "annotation default value is parsed but not expanded in this view")

	case classfile.AttrBootstrapMethods:
		entries := make([]object, len(a.BootstrapMethods))
		for i, m := range a.BootstrapMethods {
			e := object{}
			e = indexAndDeref(e, "bootstrapMethodRef", pool, m.BootstrapMethodRef)
			e = e.set("numBootstrapArguments", len(m.BootstrapArguments)).
				set("bootstrapArguments", renderIndexList(pool, m.BootstrapArguments))
			entries[i] = e
		}
		o = o.set("numBootstrapMethods", len(entries)).set("bootstrapMethods", entries)

	case classfile.AttrMethodParameters:
		entries := make([]object, len(a.MethodParameters))
		for i, p := range a.MethodParameters {
			e := object{}
			e = indexAndDeref(e, "nameIndex", pool, p.NameIndex)
			e = e.set("accessFlags", methodAccessFlags(p.AccessFlags))
			entries[i] = e
		}
		o = o.set("parametersCount", len(entries)).set("parameters", entries)

	case classfile.AttrModule:
		o = o.set("module", renderModule(pool, a.Module)).
			set("note", "module body is parsed but not expanded in this view")

	case classfile.AttrModulePackages:
		o = o.set("packageCount", len(a.ModulePackages)).
			set("packages", renderIndexList(pool, a.ModulePackages))

	case classfile.AttrModuleMainClass:
		o = indexAndDeref(o, "mainClassIndex", pool, a.ModuleMainClass)
		o = o.set("attributeLength", 2)

	case classfile.AttrNestHost:
		o = indexAndDeref(o, "hostClassIndex", pool, a.NestHost)
		o = o.set("attributeLength", 2)

	case classfile.AttrNestMembers:
		o = o.set("numberOfClasses", len(a.NestMembers)).
			set("classes", renderIndexList(pool, a.NestMembers))

	case classfile.AttrRecord:
		o = o.set("componentsCount", len(a.Record)).
			set("components", placeholderTokens("RecordComponent", len(a.Record))).
			set("note", "record components are parsed but not expanded in this view")

	case classfile.AttrPermittedSubclasses:
		o = o.set("numberOfClasses", len(a.PermittedSubclasses)).
			set("classes", renderIndexList(pool, a.PermittedSubclasses))

	case classfile.AttrUnknown:
		n := len(a.Unknown.RawBytes)
		o = o.set("info", "Binary data ("+strconv.Itoa(n)+" bytes)").
			set("attributeLength", n).
			set("note", "unknown attribute payload is kept as raw bytes and not expanded in this view")

	default:
		o = o.set("note", "unrecognised attribute tag")
	}

	return o
}

func renderAttributeList(pool []classfile.ConstantPoolEntry, attrs []classfile.AttributeInfo) []object {
	out := make([]object, len(attrs))
	for i, a := range attrs {
		out[i] = renderAttribute(pool, a)
	}
	return out
}

func renderExceptionTable(pool []classfile.ConstantPoolEntry, table []classfile.ExceptionTableEntry) []object {
	out := make([]object, len(table))
	for i, e := range table {
		o := object{}.set("startPc", int(e.StartPC)).set("endPc", int(e.EndPC)).set("handlerPc", int(e.HandlerPC))
		o = indexAndDeref(o, "catchType", pool, e.CatchType)
		out[i] = o
	}
	return out
}

// renderIndexList renders a bare sequence of constant pool indices as
// {"index", "index_deref"} elements, per the package design's rule that
// even a list-element index gets its dereference sibling.
func renderIndexList(pool []classfile.ConstantPoolEntry, idxs []classfile.ConstPoolIndex) []object {
	out := make([]object, len(idxs))
	for i, idx := range idxs {
		out[i] = indexAndDeref(object{}, "index", pool, idx)
	}
	return out
}

func placeholderTokens(token string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = token
	}
	return out
}

func renderModule(pool []classfile.ConstantPoolEntry, m *classfile.ModuleAttribute) object {
	o := object{}
	o = indexAndDeref(o, "moduleNameIndex", pool, m.ModuleNameIndex)
	o = o.set("moduleFlags", m.ModuleFlags)
	o = indexAndDeref(o, "moduleVersionIndex", pool, m.ModuleVersionIndex)
	o = o.set("requiresCount", len(m.Requires)).
		set("exportsCount", len(m.Exports)).
		set("opensCount", len(m.Opens)).
		set("usesCount", len(m.Uses)).
		set("providesCount", len(m.Provides))
	return o
}
