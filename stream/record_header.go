package stream

import (
	"encoding/binary"
)

// recordHeaderSize is the documented on-disk size of a JazelleRecord
// header: the field list below accounts for 112 of those bytes, and the
// remaining 12 are a reserved trailer whose sub-layout this decoder does
// not need to interpret.
const recordHeaderSize = 124

const recordHeaderReservedSize = recordHeaderSize - 112

// RecordHeader is the user-level record header every JazelleRecord opens
// with, immediately following the logical-record framing.
type RecordHeader struct {
	RecordNumber int32
	Tag1         int32
	Tag2         int32
	Target       int32
	RecType      string
	Flag1        int32
	Flag2        int32
	Format       string
	Context      string

	TOCRecord int32
	DatRecord int32
	TOCSize   int32
	DatSize   int32
	TOCOffset1 int32
	TOCOffset2 int32
	TOCOffset3 int32
	DatOffset  int32

	SegmentName string
	UserName    string
	UserOffset  int32

	LogicalRecordFlags int32
	Spare1             int32
	Spare2             int32
}

// parseRecordHeader reads and decodes a 124-byte JazelleRecord header from
// r.
func parseRecordHeader(r *LogicalReader) (RecordHeader, error) {
	data, err := r.Read(recordHeaderSize)
	if err != nil {
		return RecordHeader{}, err
	}

	var h RecordHeader
	off := 0

	readI32 := func() int32 {
		v := int32(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4
		return v
	}
	readStr8 := func() string {
		s := trimASCII(data[off : off+8])
		off += 8
		return s
	}

	h.RecordNumber = readI32()
	h.Tag1 = readI32()
	h.Tag2 = readI32()
	h.Target = readI32()
	h.RecType = readStr8()
	h.Flag1 = readI32()
	h.Flag2 = readI32()
	h.Format = readStr8()
	h.Context = readStr8()
	h.TOCRecord = readI32()
	h.DatRecord = readI32()
	h.TOCSize = readI32()
	h.DatSize = readI32()
	h.TOCOffset1 = readI32()
	h.TOCOffset2 = readI32()
	h.TOCOffset3 = readI32()
	h.DatOffset = readI32()
	h.SegmentName = readStr8()
	h.UserName = readStr8()
	h.UserOffset = readI32()
	h.LogicalRecordFlags = readI32()
	h.Spare1 = readI32()
	h.Spare2 = readI32()

	// off now sits at 112; the remaining recordHeaderReservedSize bytes are
	// reserved trailer and are skipped by virtue of recordHeaderSize having
	// already been consumed whole.
	_ = recordHeaderReservedSize

	return h, nil
}
