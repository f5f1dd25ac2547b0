package classfile

import (
	"errors"
	"fmt"

	"github.com/go-jclass/jclass/internal/cursor"
)

// Sentinel errors for the fixed, parameter-less failure kinds. Modeled on
// the sentinel error block in saferwall/pe's helper.go (ErrDOSMagicNotFound,
// ErrInvalidNtHeaderOffset, ...): callers discriminate with errors.Is.
var (
	// ErrTruncatedInput is returned when the cursor is exhausted mid-read.
	// It is the same sentinel internal/cursor returns, aliased here so
	// callers never need to import that package to check for it.
	ErrTruncatedInput = cursor.ErrTruncatedInput

	// ErrBadMagic is returned when the 4-byte magic prefix is not 0xCAFEBABE.
	ErrBadMagic = errors.New("classfile: bad magic, not a class file")

	// ErrBadPoolIndex is returned when a mandatory pool reference is zero.
	ErrBadPoolIndex = errors.New("classfile: pool reference index is zero")

	// ErrOutOfBoundsIndex is returned when a pool reference index exceeds
	// the constant pool.
	ErrOutOfBoundsIndex = errors.New("classfile: pool reference index out of bounds")

	// ErrInvalidUTF8 is returned when a Utf8 constant's payload does not
	// decode as valid UTF-8.
	ErrInvalidUTF8 = errors.New("classfile: invalid UTF-8 in Utf8 constant")

	// ErrRecursionLimit is returned when annotation nesting exceeds the
	// configured bound (see Options.MaxRecursionDepth).
	ErrRecursionLimit = errors.New("classfile: exceeded maximum recursion depth")
)

// ParseError is the concrete type behind every parameterized failure kind
// in spec §7 (UnknownPoolTag, PoolTypeMismatch, BadMethodHandleKind, ...).
// It carries a machine-checkable Kind alongside the formatted message so
// callers can still use errors.Is against the Kind sentinels below.
type ParseError struct {
	Kind    error // one of the Err* sentinels in this file, used with errors.Is
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() error { return e.Kind }

// Kind sentinels matched via errors.Is(err, classfile.ErrUnknownPoolTag) and
// friends; ParseError.Kind is always one of these.
var (
	ErrUnknownPoolTag         = errors.New("classfile: unknown constant pool tag")
	ErrBadMethodHandleKind    = errors.New("classfile: bad method handle kind")
	ErrUnknownVerificationTag = errors.New("classfile: unknown verification type tag")
	ErrUnknownStackFrameType  = errors.New("classfile: unknown stack map frame type")
	ErrUnknownAnnotationValue = errors.New("classfile: unknown annotation element value tag")
	ErrUnknownAttributeName   = errors.New("classfile: unknown attribute name")
	ErrPoolTypeMismatch       = errors.New("classfile: pool reference resolves to wrong constant variant")
)

func errUnknownPoolTag(tag byte) error {
	return &ParseError{Kind: ErrUnknownPoolTag, Message: fmt.Sprintf("classfile: unknown constant pool tag %d", tag)}
}

func errBadMethodHandleKind(kind byte) error {
	return &ParseError{Kind: ErrBadMethodHandleKind, Message: fmt.Sprintf("classfile: bad method handle kind %d", kind)}
}

func errUnknownVerificationTag(tag byte) error {
	return &ParseError{Kind: ErrUnknownVerificationTag, Message: fmt.Sprintf("classfile: unknown verification type tag %d", tag)}
}

func errUnknownStackFrameType(ty byte) error {
	return &ParseError{Kind: ErrUnknownStackFrameType, Message: fmt.Sprintf("classfile: unknown stack map frame type %d", ty)}
}

func errUnknownAnnotationValue(ch byte) error {
	return &ParseError{Kind: ErrUnknownAnnotationValue, Message: fmt.Sprintf("classfile: unknown annotation element value tag %q", ch)}
}

func errUnknownAttributeName(name string) error {
	return &ParseError{Kind: ErrUnknownAttributeName, Message: fmt.Sprintf("classfile: unknown attribute name %q", name)}
}

func errPoolTypeMismatch(expected, found string) error {
	return &ParseError{Kind: ErrPoolTypeMismatch, Message: fmt.Sprintf("classfile: pool type mismatch: expected %s, found %s", expected, found)}
}
