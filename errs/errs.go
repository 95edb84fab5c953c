// Package errs defines the sentinel errors returned by every layer of the
// jazelle decoder, from byte framing up through bank decoding and event
// assembly.
//
// Callers should match with errors.Is against the exported Err* values;
// every call site wraps these with fmt.Errorf("...: %w", ...) to attach
// record-number, bank-name, or field-position context before returning.
package errs

import "errors"

var (
	// ErrBadMagic is returned when a file does not open with the literal
	// "JAZELLE" tag.
	ErrBadMagic = errors.New("jazelle: bad magic, expected JAZELLE tag")

	// ErrUnexpectedEOF is returned when the underlying byte source ends
	// before a requested read completes. At a physical record boundary
	// this is the normal, clean end-of-stream signal; mid-record it is
	// fatal.
	ErrUnexpectedEOF = errors.New("jazelle: unexpected end of file")

	// ErrSyncFault1 is returned when a logical-header flags word has bits
	// set outside the low two bits.
	ErrSyncFault1 = errors.New("jazelle: sync fault 1: invalid logical header flags")

	// ErrSyncFault2 is returned when a fragment's continuation bit
	// disagrees with the prior fragment's expectation.
	ErrSyncFault2 = errors.New("jazelle: sync fault 2: continuation mismatch")

	// ErrOffsetMismatch is returned when one of the byte-cursor invariants
	// (usroff, tocoff1, datoff) is violated.
	ErrOffsetMismatch = errors.New("jazelle: offset mismatch")

	// ErrBufferUnderflow is returned when a bank decoder runs out of
	// payload bytes before completing its requested record count.
	ErrBufferUnderflow = errors.New("jazelle: buffer underflow")

	// ErrUnsupportedContent is returned for content this decoder
	// deliberately does not support, such as Monte-Carlo banks.
	ErrUnsupportedContent = errors.New("jazelle: unsupported content")

	// ErrBadValue is returned for an out-of-range sentinel in a bank field
	// that must be non-negative.
	ErrBadValue = errors.New("jazelle: bad value")
)
