package classfile

// Parse decodes a class file from raw bytes into a ClassFile, or fails
// with a *ParseError describing the first malformed thing it encountered.
// The walk mirrors JVMS 4.1 top to bottom: magic, version, constant pool,
// access flags, this/super class, interfaces, fields, methods, attributes.
// There is no recovery -- the first error aborts the parse and returns no
// partial result, per the failure semantics in the package design notes.
func Parse(data []byte) (*ClassFile, error) {
	r := newReader(data)

	magic, err := r.u4()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, &ParseError{Kind: KindBadMagic, Offset: 0, Value: uint64(magic)}
	}

	minor, err := r.u2()
	if err != nil {
		return nil, err
	}
	major, err := r.u2()
	if err != nil {
		return nil, err
	}

	cpCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	pool, err := parseConstantPool(r, cpCount)
	if err != nil {
		return nil, err
	}

	accessFlags, err := r.u2()
	if err != nil {
		return nil, err
	}
	thisClass, err := r.u2()
	if err != nil {
		return nil, err
	}
	superClass, err := r.u2()
	if err != nil {
		return nil, err
	}

	ifaceCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	interfaces := make([]ConstPoolIndex, ifaceCount)
	for i := range interfaces {
		v, err := r.u2()
		if err != nil {
			return nil, err
		}
		interfaces[i] = ConstPoolIndex(v)
	}

	fields, err := parseFields(r, pool)
	if err != nil {
		return nil, err
	}
	methods, err := parseMethods(r, pool)
	if err != nil {
		return nil, err
	}
	attrs, err := parseAttributes(r, pool)
	if err != nil {
		return nil, err
	}

	return &ClassFile{
		Magic:        magic,
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: pool,
		AccessFlags:  accessFlags,
		ThisClass:    ConstPoolIndex(thisClass),
		SuperClass:   ConstPoolIndex(superClass),
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
	}, nil
}

// parseFields and parseMethods read a 16-bit-counted sequence of
// field_info / method_info structures. The two share an identical wire
// shape, differing only in the attribute names meaningful for them, but
// are kept as distinct named types to match the data model.
func parseFields(r *reader, pool []ConstantPoolEntry) ([]FieldInfo, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]FieldInfo, count)
	for i := range out {
		flags, nameIdx, descIdx, attrs, err := parseMemberShape(r, pool)
		if err != nil {
			return nil, err
		}
		out[i] = FieldInfo{
			AccessFlags:     flags,
			NameIndex:       nameIdx,
			DescriptorIndex: descIdx,
			Attributes:      attrs,
		}
	}
	return out, nil
}

func parseMethods(r *reader, pool []ConstantPoolEntry) ([]MethodInfo, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]MethodInfo, count)
	for i := range out {
		flags, nameIdx, descIdx, attrs, err := parseMemberShape(r, pool)
		if err != nil {
			return nil, err
		}
		out[i] = MethodInfo{
			AccessFlags:     flags,
			NameIndex:       nameIdx,
			DescriptorIndex: descIdx,
			Attributes:      attrs,
		}
	}
	return out, nil
}

func parseMemberShape(r *reader, pool []ConstantPoolEntry) (flags uint16, nameIdx, descIdx ConstPoolIndex, attrs []AttributeInfo, err error) {
	flags, err = r.u2()
	if err != nil {
		return
	}
	nameIdxRaw, err := r.u2()
	if err != nil {
		return
	}
	descIdxRaw, err := r.u2()
	if err != nil {
		return
	}
	attrs, err = parseAttributes(r, pool)
	if err != nil {
		return
	}
	return flags, ConstPoolIndex(nameIdxRaw), ConstPoolIndex(descIdxRaw), attrs, nil
}
