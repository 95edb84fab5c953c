// Package stream implements the three layered byte readers that sit
// beneath bank decoding: a physical-record reader handling the raw
// length-prefixed framing, a logical-record reader gluing continuation
// fragments back together, and a JAZELLE reader that exposes typed
// primitive reads over the assembled byte stream.
//
// The three readers are composed rather than subclassed (each holds the
// layer below it as a named field and forwards the handful of operations
// it needs), so the byte cursor crossing a physical-record boundary stays
// an explicit, traceable call rather than an inherited side effect.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/amete/jazelle/errs"
)

const physicalHeaderSize = 4

// PhysicalReader reads a stream framed as a sequence of physical records,
// each opening with a 2-byte little-endian record length (counting this
// 4-byte header) and a 2-byte reserved field, followed by length-4 bytes of
// payload.
//
// Read transparently advances across physical record boundaries: a single
// call may span the tail of one record and the head of the next without
// the caller noticing.
type PhysicalReader struct {
	src      io.Reader
	recLen   int // total record length including the 4-byte header
	consumed int // payload bytes consumed from the current record
	onHeader func(p *PhysicalReader) error
}

// NewPhysicalReader constructs a PhysicalReader over src and reads the
// first physical header. src is never closed by the reader.
func NewPhysicalReader(src io.Reader) (*PhysicalReader, error) {
	return newPhysicalReader(src, nil)
}

// newPhysicalReader is the internal constructor used by LogicalReader to
// observe every physical header as it is consumed, including the first.
func newPhysicalReader(src io.Reader, onHeader func(p *PhysicalReader) error) (*PhysicalReader, error) {
	p := &PhysicalReader{src: src, onHeader: onHeader}
	if err := p.advanceHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// advanceHeader reads the next 4-byte physical header and, if present,
// invokes onHeader immediately afterward so a wrapping layer can react to
// every record transition at the moment it happens.
func (p *PhysicalReader) advanceHeader() error {
	hdr, err := readExact(p.src, physicalHeaderSize)
	if err != nil {
		return err
	}

	length := binary.LittleEndian.Uint16(hdr[0:2])
	// hdr[2:4] is reserved and discarded.

	p.recLen = int(length)
	p.consumed = 0

	if p.onHeader != nil {
		return p.onHeader(p)
	}
	return nil
}

// NextPhysicalRecord seeks over any unread tail bytes of the current
// record, then reads the next physical header.
//
// A clean end of stream (the header read returns zero bytes) surfaces as
// io.EOF; a partial header or a failed discard of tail bytes surfaces as
// errs.ErrUnexpectedEOF. Callers that want to treat stream exhaustion as a
// normal terminal condition should check errors.Is(err, io.EOF).
func (p *PhysicalReader) NextPhysicalRecord() error {
	remaining := p.recLen - physicalHeaderSize - p.consumed
	if remaining > 0 {
		if _, err := io.CopyN(io.Discard, p.src, int64(remaining)); err != nil {
			return fmt.Errorf("%w: discarding %d tail bytes: %v", errs.ErrUnexpectedEOF, remaining, err)
		}
		p.consumed += remaining
	}

	return p.advanceHeader()
}

// Read returns exactly n bytes, transparently crossing physical record
// boundaries as needed. It never returns a short read: on any framing or
// I/O failure it returns a nil slice and a non-nil error.
func (p *PhysicalReader) Read(n int) ([]byte, error) {
	out := make([]byte, n)
	if err := p.ReadInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadInto fills dst entirely, transparently crossing physical record
// boundaries as needed. Unlike Read, it performs no allocation, letting a
// caller reuse a pooled buffer across many reads (as event.Assembler does
// for each MINIDST payload).
func (p *PhysicalReader) ReadInto(dst []byte) error {
	n := len(dst)
	read := 0

	for read < n {
		avail := p.recLen - physicalHeaderSize - p.consumed
		if avail <= 0 {
			if err := p.NextPhysicalRecord(); err != nil {
				if errors.Is(err, io.EOF) {
					return fmt.Errorf("%w: stream ended mid-read", errs.ErrUnexpectedEOF)
				}
				return err
			}
			continue
		}

		toRead := avail
		if n-read < toRead {
			toRead = n - read
		}

		if _, err := io.ReadFull(p.src, dst[read:read+toRead]); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrUnexpectedEOF, err)
		}

		p.consumed += toRead
		read += toRead
	}

	return nil
}

// BytesInRecord returns the number of payload bytes consumed from the
// current physical record.
func (p *PhysicalReader) BytesInRecord() uint64 {
	return uint64(p.consumed)
}

// readExact reads exactly n bytes from src, distinguishing a clean
// end-of-stream (zero bytes read, surfaced as io.EOF) from a mid-read
// failure (surfaced as errs.ErrUnexpectedEOF).
func readExact(src io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)

	read, err := io.ReadFull(src, buf)
	if err == nil {
		return buf, nil
	}
	if errors.Is(err, io.EOF) && read == 0 {
		return nil, io.EOF
	}

	return nil, fmt.Errorf("%w: %v", errs.ErrUnexpectedEOF, err)
}
