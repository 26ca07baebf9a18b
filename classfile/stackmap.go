package classfile

// VerificationTag identifies the variant of a VerificationTypeInfo.
type VerificationTag uint8

const (
	VerifTop               VerificationTag = 0
	VerifInteger           VerificationTag = 1
	VerifFloat             VerificationTag = 2
	VerifDouble            VerificationTag = 3
	VerifLong              VerificationTag = 4
	VerifNull              VerificationTag = 5
	VerifUninitializedThis VerificationTag = 6
	VerifObject            VerificationTag = 7
	VerifUninitialized     VerificationTag = 8
)

// VerificationTypeInfo describes the type of one local variable or one
// operand-stack slot within a stack-map frame.
type VerificationTypeInfo struct {
	Tag VerificationTag

	// Populated only when Tag == VerifObject.
	CpoolIndex ConstPoolIndex
	// Populated only when Tag == VerifUninitialized: the bytecode offset
	// of the `new` instruction that created the uninitialized object.
	Offset uint16
}

// FrameKind identifies the variant of a StackMapFrame, selected by the
// range the leading frameType byte falls into (JVMS 4.7.4).
type FrameKind uint8

const (
	FrameSame FrameKind = iota
	FrameSameLocals1StackItem
	FrameSameLocals1StackItemExtended
	FrameChop
	FrameSameExtended
	FrameAppend
	FrameFull
)

// StackMapFrame is the tagged union of the seven frame shapes the format
// defines. The legacy uncompressed StackMap attribute (pre-Java 6) is
// normalised to FrameFull with OffsetDelta set to the frame's absolute
// bytecode offset, per the JVMS successor relationship between the two
// attributes; reimplementers relying on the delta semantics of compressed
// frames should treat StackMap-sourced frames specially.
type StackMapFrame struct {
	Kind      FrameKind
	FrameType uint8

	OffsetDelta uint16 // meaningful for every kind except FrameSame, where it equals FrameType

	// FrameChop: number of absent locals is (251 - FrameType).
	// FrameAppend: additional locals, length (FrameType - 251).
	Locals []VerificationTypeInfo
	Stack  []VerificationTypeInfo
}

func parseVerificationTypeInfo(r *reader) (VerificationTypeInfo, error) {
	tagByte, err := r.u1()
	if err != nil {
		return VerificationTypeInfo{}, err
	}
	tag := VerificationTag(tagByte)
	switch tag {
	case VerifTop, VerifInteger, VerifFloat, VerifDouble, VerifLong, VerifNull, VerifUninitializedThis:
		return VerificationTypeInfo{Tag: tag}, nil
	case VerifObject:
		idx, err := r.u2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, CpoolIndex: ConstPoolIndex(idx)}, nil
	case VerifUninitialized:
		off, err := r.u2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, Offset: off}, nil
	default:
		return VerificationTypeInfo{}, newTaggedError(KindUnknownVerificationTag, r.pos-1, uint64(tagByte))
	}
}

func parseVerificationTypeInfoList(r *reader, count int) ([]VerificationTypeInfo, error) {
	out := make([]VerificationTypeInfo, count)
	for i := 0; i < count; i++ {
		v, err := parseVerificationTypeInfo(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseStackMapFrame reads one compressed stack_map_frame as defined by
// JVMS 4.7.4, dispatching on the leading frameType byte.
func parseStackMapFrame(r *reader) (StackMapFrame, error) {
	frameType, err := r.u1()
	if err != nil {
		return StackMapFrame{}, err
	}
	switch {
	case frameType <= 63:
		return StackMapFrame{Kind: FrameSame, FrameType: frameType, OffsetDelta: uint16(frameType)}, nil

	case frameType >= 64 && frameType <= 127:
		stack, err := parseVerificationTypeInfoList(r, 1)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItem,
			FrameType:   frameType,
			OffsetDelta: uint16(frameType - 64),
			Stack:       stack,
		}, nil

	case frameType == 247:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := parseVerificationTypeInfoList(r, 1)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItemExtended,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Stack:       stack,
		}, nil

	case frameType >= 248 && frameType <= 250:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameChop, FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType == 251:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameSameExtended, FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType >= 252 && frameType <= 254:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals, err := parseVerificationTypeInfoList(r, int(frameType-251))
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameAppend,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Locals:      locals,
		}, nil

	case frameType == 255:
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		numLocals, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals, err := parseVerificationTypeInfoList(r, int(numLocals))
		if err != nil {
			return StackMapFrame{}, err
		}
		numStack, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := parseVerificationTypeInfoList(r, int(numStack))
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameFull,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Locals:      locals,
			Stack:       stack,
		}, nil

	default:
		// 128-246 is reserved for future use and never appears in a
		// well-formed class file.
		return StackMapFrame{}, newTaggedError(KindUnknownFrameType, r.pos-1, uint64(frameType))
	}
}

func parseStackMapTable(r *reader) ([]StackMapFrame, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, count)
	for i := range frames {
		f, err := parseStackMapFrame(r)
		if err != nil {
			return nil, err
		}
		frames[i] = f
	}
	return frames, nil
}

// parseLegacyStackMap reads the pre-Java-6 uncompressed StackMap attribute:
// a count followed by frames of shape (offset, locals_count, locals[],
// stack_count, stack[]). Each is normalised to FrameFull with OffsetDelta
// set to the absolute offset that was on the wire, per the documented
// reference behaviour this package intentionally preserves (see
// DESIGN.md); a from-scratch design would add a dedicated variant instead.
func parseLegacyStackMap(r *reader) ([]StackMapFrame, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, count)
	for i := range frames {
		offset, err := r.u2()
		if err != nil {
			return nil, err
		}
		numLocals, err := r.u2()
		if err != nil {
			return nil, err
		}
		locals, err := parseVerificationTypeInfoList(r, int(numLocals))
		if err != nil {
			return nil, err
		}
		numStack, err := r.u2()
		if err != nil {
			return nil, err
		}
		stack, err := parseVerificationTypeInfoList(r, int(numStack))
		if err != nil {
			return nil, err
		}
		frames[i] = StackMapFrame{
			Kind:        FrameFull,
			FrameType:   255,
			OffsetDelta: offset,
			Locals:      locals,
			Stack:       stack,
		}
	}
	return frames, nil
}
