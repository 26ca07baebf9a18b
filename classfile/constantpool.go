package classfile

// parseConstantPool reads the constant_pool table per JVMS 4.4 and the
// algorithm in the package's design notes: index 0 is a reserved null
// sentinel, Long/Double entries occupy two slots (the second is left
// null), and the loop runs until the running index reaches count.
func parseConstantPool(r *reader, count uint16) ([]ConstantPoolEntry, error) {
	pool := make([]ConstantPoolEntry, count)
	i := uint16(1)
	for i < count {
		entry, wide, err := parseConstantPoolEntry(r)
		if err != nil {
			return nil, err
		}
		pool[i] = entry
		if wide {
			i += 2
		} else {
			i++
		}
	}
	return pool, nil
}

// parseConstantPoolEntry reads one constant_pool entry. wide reports
// whether the entry is a Long or Double, which occupies the following
// index with a phantom null slot.
func parseConstantPoolEntry(r *reader) (entry ConstantPoolEntry, wide bool, err error) {
	tagOffset := r.offset()
	tagByte, err := r.u1()
	if err != nil {
		return nil, false, err
	}
	tag := ConstantTag(tagByte)
	switch tag {
	case TagUtf8:
		s, err := r.modifiedUTF8()
		if err != nil {
			return nil, false, err
		}
		return ConstantUtf8{Value: s}, false, nil

	case TagInteger:
		v, err := r.i4()
		if err != nil {
			return nil, false, err
		}
		return ConstantInteger{Value: v}, false, nil

	case TagFloat:
		v, err := r.f4()
		if err != nil {
			return nil, false, err
		}
		return ConstantFloat{Value: v}, false, nil

	case TagLong:
		v, err := r.i8()
		if err != nil {
			return nil, false, err
		}
		return ConstantLong{Value: v}, true, nil

	case TagDouble:
		v, err := r.f8()
		if err != nil {
			return nil, false, err
		}
		return ConstantDouble{Value: v}, true, nil

	case TagClass:
		idx, err := r.u2()
		if err != nil {
			return nil, false, err
		}
		return ConstantClass{NameIndex: ConstPoolIndex(idx)}, false, nil

	case TagString:
		idx, err := r.u2()
		if err != nil {
			return nil, false, err
		}
		return ConstantString{StringIndex: ConstPoolIndex(idx)}, false, nil

	case TagFieldref:
		classIdx, natIdx, err := parseRefPair(r)
		if err != nil {
			return nil, false, err
		}
		return ConstantFieldref{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, false, nil

	case TagMethodref:
		classIdx, natIdx, err := parseRefPair(r)
		if err != nil {
			return nil, false, err
		}
		return ConstantMethodref{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, false, nil

	case TagInterfaceMethodref:
		classIdx, natIdx, err := parseRefPair(r)
		if err != nil {
			return nil, false, err
		}
		return ConstantInterfaceMethodref{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, false, nil

	case TagNameAndType:
		nameIdx, descIdx, err := parseRefPair(r)
		if err != nil {
			return nil, false, err
		}
		return ConstantNameAndType{NameIndex: nameIdx, DescriptorIndex: descIdx}, false, nil

	case TagMethodHandle:
		kind, err := r.u1()
		if err != nil {
			return nil, false, err
		}
		idx, err := r.u2()
		if err != nil {
			return nil, false, err
		}
		return ConstantMethodHandle{ReferenceKind: kind, ReferenceIndex: ConstPoolIndex(idx)}, false, nil

	case TagMethodType:
		idx, err := r.u2()
		if err != nil {
			return nil, false, err
		}
		return ConstantMethodType{DescriptorIndex: ConstPoolIndex(idx)}, false, nil

	case TagDynamic:
		bsmIdx, natIdx, err := parseBootstrapPair(r)
		if err != nil {
			return nil, false, err
		}
		return ConstantDynamic{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: natIdx}, false, nil

	case TagInvokeDynamic:
		bsmIdx, natIdx, err := parseBootstrapPair(r)
		if err != nil {
			return nil, false, err
		}
		return ConstantInvokeDynamic{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: natIdx}, false, nil

	case TagModule:
		idx, err := r.u2()
		if err != nil {
			return nil, false, err
		}
		return ConstantModule{NameIndex: ConstPoolIndex(idx)}, false, nil

	case TagPackage:
		idx, err := r.u2()
		if err != nil {
			return nil, false, err
		}
		return ConstantPackage{NameIndex: ConstPoolIndex(idx)}, false, nil

	default:
		return nil, false, newTaggedError(KindUnknownConstantTag, tagOffset, uint64(tagByte))
	}
}

func parseRefPair(r *reader) (ConstPoolIndex, ConstPoolIndex, error) {
	a, err := r.u2()
	if err != nil {
		return 0, 0, err
	}
	b, err := r.u2()
	if err != nil {
		return 0, 0, err
	}
	return ConstPoolIndex(a), ConstPoolIndex(b), nil
}

func parseBootstrapPair(r *reader) (uint16, ConstPoolIndex, error) {
	a, err := r.u2()
	if err != nil {
		return 0, 0, err
	}
	b, err := r.u2()
	if err != nil {
		return 0, 0, err
	}
	return a, ConstPoolIndex(b), nil
}
