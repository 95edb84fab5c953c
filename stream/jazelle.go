package stream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/amete/jazelle/errs"
	"github.com/amete/jazelle/vaxnumeric"
)

// JazelleReader sits atop a LogicalReader and exposes the typed primitive
// reads every bank decoder is built from, plus iteration over successive
// JazelleRecords.
type JazelleReader struct {
	logical *LogicalReader
	Header  FileHeader
}

// NewJazelleReader opens src, validates the file header, and returns a
// reader positioned at the start of the first JazelleRecord.
func NewJazelleReader(src io.Reader) (*JazelleReader, error) {
	logical, err := NewLogicalReader(src)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}

	header, err := parseFileHeader(logical)
	if err != nil {
		return nil, err
	}

	return &JazelleReader{logical: logical, Header: header}, nil
}

// NextRecord advances to the next logical record and parses its
// JazelleRecord header.
func (j *JazelleReader) NextRecord() (RecordHeader, error) {
	if err := j.logical.NextLogicalRecord(); err != nil {
		return RecordHeader{}, err
	}
	return parseRecordHeader(j.logical)
}

// BytesInRecord returns the number of payload bytes consumed from the
// current physical record, used to verify the usroff/tocoff1/datoff byte
// offset invariants against the cursor's own account of position.
func (j *JazelleReader) BytesInRecord() uint64 {
	return j.logical.BytesInRecord()
}

// AdvancePhysicalRecord moves the cursor to the next physical fragment of
// the current logical record.
func (j *JazelleReader) AdvancePhysicalRecord() error {
	return j.logical.AdvancePhysicalRecord()
}

// ReadBytes returns the next n raw bytes.
func (j *JazelleReader) ReadBytes(n int) ([]byte, error) {
	return j.logical.Read(n)
}

// ReadBytesInto fills dst entirely with the next len(dst) raw bytes,
// without allocating. Callers decoding a large, variable-length payload
// (event.Assembler's MINIDST bytes) use this with a pooled buffer instead
// of ReadBytes.
func (j *JazelleReader) ReadBytesInto(dst []byte) error {
	return j.logical.ReadInto(dst)
}

// ReadUint32 reads a little-endian 32-bit unsigned integer.
func (j *JazelleReader) ReadUint32() (uint32, error) {
	data, err := j.logical.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadInt32 reads a little-endian 32-bit signed integer.
func (j *JazelleReader) ReadInt32() (int32, error) {
	v, err := j.ReadUint32()
	return int32(v), err
}

// ReadUint16 reads a little-endian 16-bit unsigned integer.
func (j *JazelleReader) ReadUint16() (uint16, error) {
	data, err := j.logical.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadInt16 reads a little-endian 16-bit signed integer.
func (j *JazelleReader) ReadInt16() (int16, error) {
	v, err := j.ReadUint16()
	return int16(v), err
}

// ReadVaxFloat32 reads one VAX F_FLOAT word and converts it to IEEE-754.
func (j *JazelleReader) ReadVaxFloat32() (float32, error) {
	word, err := j.ReadUint32()
	if err != nil {
		return 0, err
	}
	return vaxnumeric.F32ToIEEE(word), nil
}

// ReadTimestamp reads an 8-byte signed little-endian tick count and returns
// it unconverted; vaxnumeric.TicksToTime turns it into a civil UTC time.
func (j *JazelleReader) ReadTimestamp() (int64, error) {
	data, err := j.logical.Read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(data)), nil
}

// ReadFixedString reads n bytes, trims trailing spaces/NULs, and replaces
// any remaining non-printable byte with '?', the convention used by every
// fixed-width ASCII field in the format.
func (j *JazelleReader) ReadFixedString(n int) (string, error) {
	data, err := j.logical.Read(n)
	if err != nil {
		return "", err
	}
	return trimASCII(data), nil
}

// ReadWordsRaw reads n uint32 words in bulk, for bank decoders that gather
// a whole record batch before converting it in one pass
// (vaxnumeric.F32ToIEEESlice).
func (j *JazelleReader) ReadWordsRaw(n int) ([]uint32, error) {
	data, err := j.logical.Read(n * 4)
	if err != nil {
		return nil, err
	}

	words := make([]uint32, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return words, nil
}

// CheckOffset compares an offset field read from a header against the
// byte cursor's own account of position, returning errs.ErrOffsetMismatch
// on disagreement.
func (j *JazelleReader) CheckOffset(name string, declared uint64) error {
	actual := j.BytesInRecord()
	if declared != actual {
		return fmt.Errorf("%w: %s declared %d, cursor at %d", errs.ErrOffsetMismatch, name, declared, actual)
	}
	return nil
}
