package classfile

import "fmt"

// WrongKindError reports that a typed pool lookup found an entry but not
// of the variant the caller expected.
type WrongKindError struct {
	Index ConstPoolIndex
	Want  string
	Got   string
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("classfile: constant pool entry %d is %s, want %s", e.Index, e.Got, e.Want)
}

// Scope is a small read-only view over a parsed ClassFile offering typed
// pool lookups and the convenience accessors the source tool builds on
// top of raw indices. It never mutates the ClassFile it wraps.
type Scope struct {
	cf *ClassFile
}

// NewScope wraps a parsed ClassFile for typed, convenience access.
func NewScope(cf *ClassFile) *Scope {
	return &Scope{cf: cf}
}

func (s *Scope) entry(idx ConstPoolIndex) (ConstantPoolEntry, error) {
	if int(idx) <= 0 || int(idx) >= len(s.cf.ConstantPool) {
		return nil, fmt.Errorf("classfile: constant pool index %d out of range", idx)
	}
	e := s.cf.ConstantPool[idx]
	if e == nil {
		return nil, fmt.Errorf("classfile: constant pool index %d is null", idx)
	}
	return e, nil
}

// Utf8 returns the Go string held at idx, or WrongKindError if idx does
// not resolve to a CONSTANT_Utf8_info.
func (s *Scope) Utf8(idx ConstPoolIndex) (string, error) {
	e, err := s.entry(idx)
	if err != nil {
		return "", err
	}
	u, ok := e.(ConstantUtf8)
	if !ok {
		return "", &WrongKindError{Index: idx, Want: "Utf8", Got: fmt.Sprintf("%T", e)}
	}
	return u.Value, nil
}

// ClassInfo returns the ConstantClass at idx.
func (s *Scope) ClassInfo(idx ConstPoolIndex) (ConstantClass, error) {
	e, err := s.entry(idx)
	if err != nil {
		return ConstantClass{}, err
	}
	c, ok := e.(ConstantClass)
	if !ok {
		return ConstantClass{}, &WrongKindError{Index: idx, Want: "Class", Got: fmt.Sprintf("%T", e)}
	}
	return c, nil
}

// NameAndType returns the ConstantNameAndType at idx.
func (s *Scope) NameAndType(idx ConstPoolIndex) (ConstantNameAndType, error) {
	e, err := s.entry(idx)
	if err != nil {
		return ConstantNameAndType{}, err
	}
	nt, ok := e.(ConstantNameAndType)
	if !ok {
		return ConstantNameAndType{}, &WrongKindError{Index: idx, Want: "NameAndType", Got: fmt.Sprintf("%T", e)}
	}
	return nt, nil
}

// ClassName resolves a CONSTANT_Class_info index all the way to its name
// string.
func (s *Scope) ClassName(idx ConstPoolIndex) (string, error) {
	c, err := s.ClassInfo(idx)
	if err != nil {
		return "", err
	}
	return s.Utf8(c.NameIndex)
}

// ThisClassName returns the name of the class described by the wrapped
// ClassFile.
func (s *Scope) ThisClassName() (string, error) {
	return s.ClassName(s.cf.ThisClass)
}

// SuperClassName returns the name of the superclass, or "" with no error
// when SuperClass is 0 (only legal for java/lang/Object).
func (s *Scope) SuperClassName() (string, error) {
	if s.cf.SuperClass == 0 {
		return "", nil
	}
	return s.ClassName(s.cf.SuperClass)
}

// Interfaces returns the resolved names of every directly implemented
// interface.
func (s *Scope) Interfaces() ([]string, error) {
	names := make([]string, len(s.cf.Interfaces))
	for i, idx := range s.cf.Interfaces {
		n, err := s.ClassName(idx)
		if err != nil {
			return nil, err
		}
		names[i] = n
	}
	return names, nil
}

// SourceFile returns the SourceFile attribute's string value, or "" if
// the class carries none.
func (s *Scope) SourceFile() (string, error) {
	for _, a := range s.cf.Attributes {
		if a.Tag == AttrSourceFile {
			return s.Utf8(a.SourceFile.SourceFileIndex)
		}
	}
	return "", nil
}

// FieldName returns a field's name.
func (s *Scope) FieldName(f FieldInfo) (string, error) {
	return s.Utf8(f.NameIndex)
}

// FieldDescriptor returns a field's descriptor string.
func (s *Scope) FieldDescriptor(f FieldInfo) (string, error) {
	return s.Utf8(f.DescriptorIndex)
}

// FieldConstantValue returns the underlying primitive (or decoded Utf8,
// for a String constant) of a field's ConstantValue attribute, if any.
// ok is false when the field has no such attribute.
func (s *Scope) FieldConstantValue(f FieldInfo) (value interface{}, ok bool, err error) {
	for _, a := range f.Attributes {
		if a.Tag != AttrConstantValue {
			continue
		}
		e, err := s.entry(a.ConstantValue.ConstantValueIndex)
		if err != nil {
			return nil, false, err
		}
		switch v := e.(type) {
		case ConstantInteger:
			return v.Value, true, nil
		case ConstantFloat:
			return v.Value, true, nil
		case ConstantLong:
			return v.Value, true, nil
		case ConstantDouble:
			return v.Value, true, nil
		case ConstantString:
			str, err := s.Utf8(v.StringIndex)
			if err != nil {
				return nil, false, err
			}
			return str, true, nil
		default:
			return nil, false, &WrongKindError{Index: a.ConstantValue.ConstantValueIndex, Want: "primitive or String", Got: fmt.Sprintf("%T", e)}
		}
	}
	return nil, false, nil
}

// MethodName returns a method's name.
func (s *Scope) MethodName(m MethodInfo) (string, error) {
	return s.Utf8(m.NameIndex)
}

// MethodDescriptor returns a method's descriptor string.
func (s *Scope) MethodDescriptor(m MethodInfo) (string, error) {
	return s.Utf8(m.DescriptorIndex)
}

// IsConstructor reports whether m is an instance initializer (<init>).
func (s *Scope) IsConstructor(m MethodInfo) (bool, error) {
	n, err := s.MethodName(m)
	if err != nil {
		return false, err
	}
	return n == "<init>", nil
}

// IsStaticInitializer reports whether m is a class initializer (<clinit>).
func (s *Scope) IsStaticInitializer(m MethodInfo) (bool, error) {
	n, err := s.MethodName(m)
	if err != nil {
		return false, err
	}
	return n == "<clinit>", nil
}

// Code returns the first Code attribute attached to m, or nil if m is
// native or abstract and carries none.
func (s *Scope) Code(m MethodInfo) *CodeAttribute {
	for _, a := range m.Attributes {
		if a.Tag == AttrCode {
			return a.Code
		}
	}
	return nil
}

// RefClassAndNameAndType resolves the (class, name, type) projection
// shared by Fieldref, Methodref, and InterfaceMethodref entries.
func (s *Scope) RefClassAndNameAndType(classIndex, nameAndTypeIndex ConstPoolIndex) (className, name, descriptor string, err error) {
	className, err = s.ClassName(classIndex)
	if err != nil {
		return
	}
	nt, err := s.NameAndType(nameAndTypeIndex)
	if err != nil {
		return
	}
	name, err = s.Utf8(nt.NameIndex)
	if err != nil {
		return
	}
	descriptor, err = s.Utf8(nt.DescriptorIndex)
	return
}
