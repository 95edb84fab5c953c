package stream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/amete/jazelle/errs"
)

const logicalHeaderSize = 4

const (
	logicalFlagContinues     = 0x1 // this fragment is followed by another
	logicalFlagContinuation  = 0x2 // this fragment continues a prior one
	logicalFlagKnownBitsMask = logicalFlagContinues | logicalFlagContinuation
)

// LogicalReader glues together physical records into logical records.
// Every physical record's 4-byte header is immediately followed, at the
// logical layer, by a 4-byte logical header (a length field this decoder
// does not need, plus a 2-bit flags field carrying the continuation
// state); LogicalReader validates that header on every physical-record
// transition via PhysicalReader's onHeader hook.
type LogicalReader struct {
	phys               *PhysicalReader
	expectContinuation bool
}

// NewLogicalReader constructs a LogicalReader over src, reading the first
// physical header and its associated logical header.
func NewLogicalReader(src io.Reader) (*LogicalReader, error) {
	l := &LogicalReader{}

	phys, err := newPhysicalReader(src, l.onPhysicalHeader)
	if err != nil {
		return nil, err
	}
	l.phys = phys

	return l, nil
}

// onPhysicalHeader is invoked by the wrapped PhysicalReader immediately
// after it consumes a physical header (including the very first one). It
// reads the 4-byte logical header from the fresh record and checks the
// continuation bit against what the prior fragment promised.
func (l *LogicalReader) onPhysicalHeader(p *PhysicalReader) error {
	data, err := p.Read(logicalHeaderSize)
	if err != nil {
		return err
	}

	flags := binary.LittleEndian.Uint16(data[2:4])
	// data[0:2] is a logical-record length field this decoder does not use;
	// LogicalReader relies on the continuation flags instead.

	if flags&^uint16(logicalFlagKnownBitsMask) != 0 {
		return fmt.Errorf("%w: logical header flags %#x", errs.ErrSyncFault1, flags)
	}

	isContinuation := flags&logicalFlagContinuation != 0
	if isContinuation != l.expectContinuation {
		return fmt.Errorf("%w: fragment continuation=%v, expected=%v",
			errs.ErrSyncFault2, isContinuation, l.expectContinuation)
	}

	l.expectContinuation = flags&logicalFlagContinues != 0

	return nil
}

// Read returns exactly n bytes from the glued logical byte stream,
// transparently crossing physical record boundaries.
func (l *LogicalReader) Read(n int) ([]byte, error) {
	return l.phys.Read(n)
}

// ReadInto fills dst entirely from the glued logical byte stream without
// allocating, forwarding to the physical layer.
func (l *LogicalReader) ReadInto(dst []byte) error {
	return l.phys.ReadInto(dst)
}

// BytesInRecord forwards to the underlying physical reader's cursor
// position within the current physical record.
func (l *LogicalReader) BytesInRecord() uint64 {
	return l.phys.BytesInRecord()
}

// NextLogicalRecord advances past any remaining continuation fragments of
// the current logical record, then begins the next one.
func (l *LogicalReader) NextLogicalRecord() error {
	for l.expectContinuation {
		if err := l.phys.NextPhysicalRecord(); err != nil {
			return err
		}
	}
	return l.phys.NextPhysicalRecord()
}

// AdvancePhysicalRecord moves the cursor to the next physical fragment of
// the current logical record, without requiring the logical record to end.
// A MINIDST record's data payload sometimes starts in the physical
// fragment following its PHMTOC, and this is how EventAssembler crosses
// that boundary explicitly.
func (l *LogicalReader) AdvancePhysicalRecord() error {
	return l.phys.NextPhysicalRecord()
}
