package classfile

import "github.com/go-jclass/jclass/internal/cursor"

// VerificationTypeTag discriminates a VerificationTypeInfo (spec §4.4).
type VerificationTypeTag byte

const (
	VerifTop               VerificationTypeTag = 0
	VerifInteger           VerificationTypeTag = 1
	VerifFloat             VerificationTypeTag = 2
	VerifDouble            VerificationTypeTag = 3
	VerifLong              VerificationTypeTag = 4
	VerifNull              VerificationTypeTag = 5
	VerifUninitializedThis VerificationTypeTag = 6
	VerifObject            VerificationTypeTag = 7
	VerifUninitialized     VerificationTypeTag = 8
)

// VerificationTypeInfo is one verifier type snapshot entry: most tags carry
// no payload, Object carries a Class pool reference, Uninitialized carries
// a bytecode offset where the `new` that produced the value appeared.
type VerificationTypeInfo struct {
	Tag               VerificationTypeTag
	ObjectClass       PoolRef[ClassInfo] // valid when Tag == VerifObject
	UninitializedOffset uint16           // valid when Tag == VerifUninitialized
}

func parseVerificationTypeInfo(c *cursor.Cursor) (VerificationTypeInfo, error) {
	tagByte, err := c.U1()
	if err != nil {
		return VerificationTypeInfo{}, err
	}
	tag := VerificationTypeTag(tagByte)
	switch tag {
	case VerifTop, VerifInteger, VerifFloat, VerifDouble, VerifLong, VerifNull, VerifUninitializedThis:
		return VerificationTypeInfo{Tag: tag}, nil
	case VerifObject:
		idx, err := c.U2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, ObjectClass: PoolRef[ClassInfo]{Index: idx}}, nil
	case VerifUninitialized:
		off, err := c.U2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, UninitializedOffset: off}, nil
	default:
		return VerificationTypeInfo{}, errUnknownVerificationTag(tagByte)
	}
}

// StackMapFrameKind classifies a StackMapFrame by its frame_type range.
type StackMapFrameKind byte

const (
	FrameSame StackMapFrameKind = iota
	FrameSameLocals1StackItem
	FrameSameLocals1StackItemExtended
	FrameChop
	FrameSameExtended
	FrameAppend
	FrameFull
)

// StackMapFrame is one entry of a StackMapTable attribute. Which fields
// are meaningful is determined by Kind, mirroring the on-wire frame_type
// ranges described in spec §4.4.
type StackMapFrame struct {
	Kind StackMapFrameKind

	FrameType uint8 // the raw frame_type byte, kept for diagnostics

	OffsetDelta uint16 // valid for every Kind; derived from FrameType for FrameSame and FrameSameLocals1StackItem
	ChopCount   uint8  // valid for FrameChop: number of locals removed

	Stack  []VerificationTypeInfo // 0 or 1 items, except FrameFull which may carry any number
	Locals []VerificationTypeInfo // valid for FrameAppend and FrameFull
}

func parseStackMapFrame(c *cursor.Cursor) (StackMapFrame, error) {
	frameType, err := c.U1()
	if err != nil {
		return StackMapFrame{}, err
	}

	switch {
	case frameType <= 63:
		return StackMapFrame{Kind: FrameSame, FrameType: frameType, OffsetDelta: uint16(frameType)}, nil

	case frameType <= 127:
		stack, err := parseVerificationTypeInfo(c)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItem,
			FrameType:   frameType,
			OffsetDelta: uint16(frameType - 64),
			Stack:       []VerificationTypeInfo{stack},
		}, nil

	case frameType == 247:
		offsetDelta, err := c.U2()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := parseVerificationTypeInfo(c)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameSameLocals1StackItemExtended,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Stack:       []VerificationTypeInfo{stack},
		}, nil

	case frameType >= 248 && frameType <= 250:
		offsetDelta, err := c.U2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameChop,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			ChopCount:   251 - frameType,
		}, nil

	case frameType == 251:
		offsetDelta, err := c.U2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameSameExtended, FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType >= 252 && frameType <= 254:
		offsetDelta, err := c.U2()
		if err != nil {
			return StackMapFrame{}, err
		}
		localCount := frameType - 251
		locals := make([]VerificationTypeInfo, 0, localCount)
		for i := uint8(0); i < localCount; i++ {
			v, err := parseVerificationTypeInfo(c)
			if err != nil {
				return StackMapFrame{}, err
			}
			locals = append(locals, v)
		}
		return StackMapFrame{
			Kind:        FrameAppend,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Locals:      locals,
		}, nil

	case frameType == 255:
		offsetDelta, err := c.U2()
		if err != nil {
			return StackMapFrame{}, err
		}
		numLocals, err := c.U2()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals := make([]VerificationTypeInfo, 0, numLocals)
		for i := uint16(0); i < numLocals; i++ {
			v, err := parseVerificationTypeInfo(c)
			if err != nil {
				return StackMapFrame{}, err
			}
			locals = append(locals, v)
		}
		numStack, err := c.U2()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack := make([]VerificationTypeInfo, 0, numStack)
		for i := uint16(0); i < numStack; i++ {
			v, err := parseVerificationTypeInfo(c)
			if err != nil {
				return StackMapFrame{}, err
			}
			stack = append(stack, v)
		}
		return StackMapFrame{
			Kind:        FrameFull,
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Locals:      locals,
			Stack:       stack,
		}, nil

	default: // 128-246 is reserved for future use by the JVM spec
		return StackMapFrame{}, errUnknownStackFrameType(frameType)
	}
}

func parseStackMapTable(c *cursor.Cursor) (StackMapTableAttribute, error) {
	count, err := c.U2()
	if err != nil {
		return StackMapTableAttribute{}, err
	}
	frames := make([]StackMapFrame, 0, count)
	for i := uint16(0); i < count; i++ {
		f, err := parseStackMapFrame(c)
		if err != nil {
			return StackMapTableAttribute{}, err
		}
		frames = append(frames, f)
	}
	return StackMapTableAttribute{Frames: frames}, nil
}
