// Package buffer provides a bounded, offset-tracking cursor over an
// in-memory byte slice, used by the bank decoders once a logical record's
// payload has been read into memory: a thin cursor with read/skip/remaining
// operations and no alignment requirements on the backing buffer.
package buffer

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/amete/jazelle/errs"
)

// Reader is a bounded cursor over a borrowed or owned byte slice.
//
// Reader is not safe for concurrent use; exactly one bank decoder walks one
// Reader at a time, matching the single-threaded, strictly sequential
// decode model the whole package assumes.
type Reader struct {
	data []byte
	pos  int
}

// New wraps data in a Reader starting at offset zero. The Reader borrows
// data; callers must not mutate it while decoding is in progress.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total length of the backing buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Pos returns the current byte offset into the backing buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Read returns the next n bytes and advances the cursor past them.
//
// The returned slice aliases the backing buffer; callers that need to
// retain it beyond the decode must copy it. Returns errs.ErrBufferUnderflow
// if fewer than n bytes remain.
func (r *Reader) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", errs.ErrBadValue, n)
	}
	if n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrBufferUnderflow, n, r.Remaining())
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// Skip advances the cursor by n bytes without returning them. Returns
// errs.ErrBufferUnderflow if fewer than n bytes remain.
func (r *Reader) Skip(n int) error {
	_, err := r.Read(n)
	return err
}

// ReadWords reinterprets the next n*4 bytes as a slice of n little-endian
// uint32 words without copying, advancing the cursor past them.
//
// Every bank payload is word-aligned, so bank decoders use this to pull a
// whole record batch's raw words in one step before extracting integer or
// VAX float fields by offset.
func (r *Reader) ReadWords(n int) ([]uint32, error) {
	raw, err := r.Read(n * 4)
	if err != nil {
		return nil, err
	}

	return bytesToUint32Slice(raw), nil
}

// bytesToUint32Slice reinterprets a word-aligned byte slice as a []uint32
// using the host's native byte order, then fixes up the order to
// little-endian when the host is big-endian. On every mainstream
// little-endian host (amd64, arm64) this is a zero-copy reinterpretation;
// the fallback path only triggers on big-endian hosts, which this decoder
// is not tuned for but must not silently corrupt.
func bytesToUint32Slice(b []byte) []uint32 {
	n := len(b) / 4
	if n == 0 {
		return nil
	}

	words := unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(b))), n)

	if isLittleEndianHost() {
		return words
	}

	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}

	return out
}

func isLittleEndianHost() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}
