package borsh

import "errors"

// Decode/encode errors. These are the "Codec" kind from the error taxonomy:
// always fatal to the message being decoded, never to the client as a whole.
var (
	// ErrUnexpectedEOF is returned when a decode reads past the end of the
	// input buffer.
	ErrUnexpectedEOF = errors.New("borsh: unexpected end of input")

	// ErrTrailingBytes is returned when a decode succeeds but leaves unread
	// bytes in the input, which borsh treats as malformed input.
	ErrTrailingBytes = errors.New("borsh: trailing bytes after decode")

	// ErrInvalidOptionTag is returned when an Option tag byte is neither 0
	// nor 1.
	ErrInvalidOptionTag = errors.New("borsh: invalid option tag")

	// ErrInvalidEnumTag is returned when an enum discriminant byte does not
	// match any known variant.
	ErrInvalidEnumTag = errors.New("borsh: invalid enum discriminant")
)
