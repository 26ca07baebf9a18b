package classfile

// utf8At returns the string value of the Utf8 entry at idx, or an error if
// idx does not resolve to one. Used only to resolve attribute names during
// parsing; general-purpose typed lookups live in resolve.go.
func utf8At(pool []ConstantPoolEntry, idx ConstPoolIndex, offset int) (string, error) {
	if int(idx) <= 0 || int(idx) >= len(pool) {
		return "", newError(KindInvalidAttributeNameIndex, offset, "index %d out of range", idx)
	}
	u, ok := pool[idx].(ConstantUtf8)
	if !ok {
		return "", newError(KindInvalidAttributeNameIndex, offset, "index %d is not Utf8", idx)
	}
	return u.Value, nil
}

// parseAttributes reads a 16-bit-counted sequence of attribute_info
// structures.
func parseAttributes(r *reader, pool []ConstantPoolEntry) ([]AttributeInfo, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]AttributeInfo, count)
	for i := range out {
		a, err := parseAttribute(r, pool)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// parseAttribute reads one attribute_info. The name is resolved through
// the constant pool built earlier in the same parse; unrecognised names
// become Unknown and consume exactly `length` bytes, per the spec's
// "trust known attributes, don't resynchronize" rule.
func parseAttribute(r *reader, pool []ConstantPoolEntry) (AttributeInfo, error) {
	nameOffset := r.offset()
	nameIdx, err := r.u2()
	if err != nil {
		return AttributeInfo{}, err
	}
	length, err := r.u4()
	if err != nil {
		return AttributeInfo{}, err
	}

	name, err := utf8At(pool, ConstPoolIndex(nameIdx), nameOffset)
	if err != nil {
		// An attribute-name-index that fails to resolve is fatal: the
		// parser cannot even know how many bytes to skip without first
		// falling back to the declared length, which it does here since
		// skipping is always safe regardless of content.
		if skipErr := r.skip(int(length)); skipErr != nil {
			return AttributeInfo{}, skipErr
		}
		return AttributeInfo{}, err
	}

	base := AttributeInfo{AttributeNameIndex: ConstPoolIndex(nameIdx)}

	switch name {
	case "ConstantValue":
		idx, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrConstantValue
		base.ConstantValue = &ConstantValueAttribute{ConstantValueIndex: ConstPoolIndex(idx)}

	case "Code":
		code, err := parseCodeAttribute(r, pool)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrCode
		base.Code = code

	case "StackMapTable":
		frames, err := parseStackMapTable(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrStackMapTable
		base.StackMapTable = frames

	case "StackMap":
		frames, err := parseLegacyStackMap(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrStackMap
		base.StackMapTable = frames

	case "Exceptions":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		idxs := make([]ConstPoolIndex, count)
		for i := range idxs {
			v, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			idxs[i] = ConstPoolIndex(v)
		}
		base.Tag = AttrExceptions
		base.Exceptions = &ExceptionsAttribute{ExceptionIndexTable: idxs}

	case "InnerClasses":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		classes := make([]InnerClassEntry, count)
		for i := range classes {
			inner, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			outer, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			innerName, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			flags, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			classes[i] = InnerClassEntry{
				InnerClassInfoIndex:   ConstPoolIndex(inner),
				OuterClassInfoIndex:   ConstPoolIndex(outer),
				InnerNameIndex:        ConstPoolIndex(innerName),
				InnerClassAccessFlags: flags,
			}
		}
		base.Tag = AttrInnerClasses
		base.InnerClasses = &InnerClassesAttribute{Classes: classes}

	case "EnclosingMethod":
		classIdx, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		methodIdx, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrEnclosingMethod
		base.EnclosingMethod = &EnclosingMethodAttribute{
			ClassIndex:  ConstPoolIndex(classIdx),
			MethodIndex: ConstPoolIndex(methodIdx),
		}

	case "Synthetic":
		base.Tag = AttrSynthetic

	case "Signature":
		idx, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrSignature
		base.Signature = &SignatureAttribute{SignatureIndex: ConstPoolIndex(idx)}

	case "SourceFile":
		idx, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrSourceFile
		base.SourceFile = &SourceFileAttribute{SourceFileIndex: ConstPoolIndex(idx)}

	case "SourceDebugExtension":
		raw, err := r.bytes(int(length))
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrSourceDebugExtension
		base.SourceDebugExtension = &SourceDebugExtensionAttribute{DebugExtension: raw}

	case "LineNumberTable":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		entries := make([]LineNumberEntry, count)
		for i := range entries {
			startPC, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			line, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
		}
		base.Tag = AttrLineNumberTable
		base.LineNumberTable = &LineNumberTableAttribute{LineNumberTable: entries}

	case "LocalVariableTable":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		entries := make([]LocalVariableEntry, count)
		for i := range entries {
			e, err := parseLocalVariableEntry(r)
			if err != nil {
				return AttributeInfo{}, err
			}
			entries[i] = e
		}
		base.Tag = AttrLocalVariableTable
		base.LocalVariableTable = &LocalVariableTableAttribute{LocalVariableTable: entries}

	case "LocalVariableTypeTable":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		entries := make([]LocalVariableTypeEntry, count)
		for i := range entries {
			startPC, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			length, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			nameIdx, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			sigIdx, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			index, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			entries[i] = LocalVariableTypeEntry{
				StartPC:        startPC,
				Length:         length,
				NameIndex:      ConstPoolIndex(nameIdx),
				SignatureIndex: ConstPoolIndex(sigIdx),
				Index:          index,
			}
		}
		base.Tag = AttrLocalVariableTypeTable
		base.LocalVariableTypeTable = &LocalVariableTypeTableAttribute{LocalVariableTypeTable: entries}

	case "Deprecated":
		base.Tag = AttrDeprecated

	case "RuntimeVisibleAnnotations":
		anns, err := parseAnnotations(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrRuntimeVisibleAnnotations
		base.Annotations = anns

	case "RuntimeInvisibleAnnotations":
		anns, err := parseAnnotations(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrRuntimeInvisibleAnnotations
		base.Annotations = anns

	case "RuntimeVisibleParameterAnnotations":
		anns, err := parseParameterAnnotations(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrRuntimeVisibleParameterAnnotations
		base.ParameterAnnotations = anns

	case "RuntimeInvisibleParameterAnnotations":
		anns, err := parseParameterAnnotations(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrRuntimeInvisibleParameterAnnotations
		base.ParameterAnnotations = anns

	case "RuntimeVisibleTypeAnnotations":
		anns, err := parseTypeAnnotations(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrRuntimeVisibleTypeAnnotations
		base.TypeAnnotations = anns

	case "RuntimeInvisibleTypeAnnotations":
		anns, err := parseTypeAnnotations(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrRuntimeInvisibleTypeAnnotations
		base.TypeAnnotations = anns

	case "AnnotationDefault":
		v, err := parseElementValue(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrAnnotationDefault
		base.AnnotationDefault = &v

	case "BootstrapMethods":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		methods := make([]BootstrapMethod, count)
		for i := range methods {
			ref, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			argCount, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			args := make([]ConstPoolIndex, argCount)
			for j := range args {
				a, err := r.u2()
				if err != nil {
					return AttributeInfo{}, err
				}
				args[j] = ConstPoolIndex(a)
			}
			methods[i] = BootstrapMethod{BootstrapMethodRef: ConstPoolIndex(ref), BootstrapArguments: args}
		}
		base.Tag = AttrBootstrapMethods
		base.BootstrapMethods = methods

	case "MethodParameters":
		count, err := r.u1()
		if err != nil {
			return AttributeInfo{}, err
		}
		params := make([]MethodParameter, count)
		for i := range params {
			nameIdx, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			flags, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			params[i] = MethodParameter{NameIndex: ConstPoolIndex(nameIdx), AccessFlags: flags}
		}
		base.Tag = AttrMethodParameters
		base.MethodParameters = params

	case "Module":
		mod, err := parseModuleAttribute(r)
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrModule
		base.Module = mod

	case "ModulePackages":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		pkgs := make([]ConstPoolIndex, count)
		for i := range pkgs {
			v, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			pkgs[i] = ConstPoolIndex(v)
		}
		base.Tag = AttrModulePackages
		base.ModulePackages = pkgs

	case "ModuleMainClass":
		idx, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrModuleMainClass
		base.ModuleMainClass = ConstPoolIndex(idx)

	case "NestHost":
		idx, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrNestHost
		base.NestHost = ConstPoolIndex(idx)

	case "NestMembers":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		members := make([]ConstPoolIndex, count)
		for i := range members {
			v, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			members[i] = ConstPoolIndex(v)
		}
		base.Tag = AttrNestMembers
		base.NestMembers = members

	case "Record":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		components := make([]RecordComponent, count)
		for i := range components {
			nameIdx, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			descIdx, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			attrs, err := parseAttributes(r, pool)
			if err != nil {
				return AttributeInfo{}, err
			}
			components[i] = RecordComponent{
				NameIndex:       ConstPoolIndex(nameIdx),
				DescriptorIndex: ConstPoolIndex(descIdx),
				Attributes:      attrs,
			}
		}
		base.Tag = AttrRecord
		base.Record = components

	case "PermittedSubclasses":
		count, err := r.u2()
		if err != nil {
			return AttributeInfo{}, err
		}
		subs := make([]ConstPoolIndex, count)
		for i := range subs {
			v, err := r.u2()
			if err != nil {
				return AttributeInfo{}, err
			}
			subs[i] = ConstPoolIndex(v)
		}
		base.Tag = AttrPermittedSubclasses
		base.PermittedSubclasses = subs

	default:
		raw, err := r.bytes(int(length))
		if err != nil {
			return AttributeInfo{}, err
		}
		base.Tag = AttrUnknown
		base.Unknown = &UnknownAttribute{RawBytes: raw}
	}

	return base, nil
}

func parseLocalVariableEntry(r *reader) (LocalVariableEntry, error) {
	startPC, err := r.u2()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	length, err := r.u2()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	nameIdx, err := r.u2()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	descIdx, err := r.u2()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	index, err := r.u2()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	return LocalVariableEntry{
		StartPC:         startPC,
		Length:          length,
		NameIndex:       ConstPoolIndex(nameIdx),
		DescriptorIndex: ConstPoolIndex(descIdx),
		Index:           index,
	}, nil
}

// parseCodeAttribute reads the Code attribute body: max_stack, max_locals,
// the raw instruction stream, the exception table, and nested attributes
// (typically LineNumberTable, LocalVariableTable, StackMapTable).
func parseCodeAttribute(r *reader, pool []ConstantPoolEntry) (*CodeAttribute, error) {
	maxStack, err := r.u2()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.u2()
	if err != nil {
		return nil, err
	}
	codeLength, err := r.u4()
	if err != nil {
		return nil, err
	}
	code, err := r.bytes(int(codeLength))
	if err != nil {
		return nil, err
	}

	excCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionTableEntry, excCount)
	for i := range excTable {
		startPC, err := r.u2()
		if err != nil {
			return nil, err
		}
		endPC, err := r.u2()
		if err != nil {
			return nil, err
		}
		handlerPC, err := r.u2()
		if err != nil {
			return nil, err
		}
		catchType, err := r.u2()
		if err != nil {
			return nil, err
		}
		excTable[i] = ExceptionTableEntry{
			StartPC:   startPC,
			EndPC:     endPC,
			HandlerPC: handlerPC,
			CatchType: ConstPoolIndex(catchType),
		}
	}

	attrs, err := parseAttributes(r, pool)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}

func parseModuleAttribute(r *reader) (*ModuleAttribute, error) {
	nameIdx, err := r.u2()
	if err != nil {
		return nil, err
	}
	flags, err := r.u2()
	if err != nil {
		return nil, err
	}
	versionIdx, err := r.u2()
	if err != nil {
		return nil, err
	}

	requiresCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	requires := make([]RequiresEntry, requiresCount)
	for i := range requires {
		reqIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		reqFlags, err := r.u2()
		if err != nil {
			return nil, err
		}
		reqVersion, err := r.u2()
		if err != nil {
			return nil, err
		}
		requires[i] = RequiresEntry{
			RequiresIndex:        ConstPoolIndex(reqIdx),
			RequiresFlags:        reqFlags,
			RequiresVersionIndex: ConstPoolIndex(reqVersion),
		}
	}

	exportsCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	exports := make([]ExportsEntry, exportsCount)
	for i := range exports {
		expIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		expFlags, err := r.u2()
		if err != nil {
			return nil, err
		}
		toCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		to := make([]ConstPoolIndex, toCount)
		for j := range to {
			v, err := r.u2()
			if err != nil {
				return nil, err
			}
			to[j] = ConstPoolIndex(v)
		}
		exports[i] = ExportsEntry{ExportsIndex: ConstPoolIndex(expIdx), ExportsFlags: expFlags, ExportsToIndex: to}
	}

	opensCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	opens := make([]OpensEntry, opensCount)
	for i := range opens {
		opIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		opFlags, err := r.u2()
		if err != nil {
			return nil, err
		}
		toCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		to := make([]ConstPoolIndex, toCount)
		for j := range to {
			v, err := r.u2()
			if err != nil {
				return nil, err
			}
			to[j] = ConstPoolIndex(v)
		}
		opens[i] = OpensEntry{OpensIndex: ConstPoolIndex(opIdx), OpensFlags: opFlags, OpensToIndex: to}
	}

	usesCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	uses := make([]ConstPoolIndex, usesCount)
	for i := range uses {
		v, err := r.u2()
		if err != nil {
			return nil, err
		}
		uses[i] = ConstPoolIndex(v)
	}

	providesCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	provides := make([]ProvidesEntry, providesCount)
	for i := range provides {
		provIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		withCount, err := r.u2()
		if err != nil {
			return nil, err
		}
		with := make([]ConstPoolIndex, withCount)
		for j := range with {
			v, err := r.u2()
			if err != nil {
				return nil, err
			}
			with[j] = ConstPoolIndex(v)
		}
		provides[i] = ProvidesEntry{ProvidesIndex: ConstPoolIndex(provIdx), ProvidesWithIndex: with}
	}

	return &ModuleAttribute{
		ModuleNameIndex:    ConstPoolIndex(nameIdx),
		ModuleFlags:        flags,
		ModuleVersionIndex: ConstPoolIndex(versionIdx),
		Requires:           requires,
		Exports:            exports,
		Opens:              opens,
		Uses:               uses,
		Provides:           provides,
	}, nil
}
