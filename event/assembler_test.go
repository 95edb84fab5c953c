package event

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// --- raw fixture construction -------------------------------------------
//
// These helpers build byte-exact JAZELLE fixtures from scratch, mirroring
// the wire layouts in package stream without depending on its unexported
// parsing internals.

func physicalRecord(payload []byte) []byte {
	buf := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(payload)+4))
	copy(buf[4:], payload)
	return buf
}

func logicalFragment(flags uint16, payload []byte) []byte {
	logHdr := make([]byte, 4)
	binary.LittleEndian.PutUint16(logHdr[2:4], flags)
	return physicalRecord(append(logHdr, payload...))
}

func asciiField(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	for i := len(s); i < n; i++ {
		b[i] = ' '
	}
	return b
}

func buildFileHeader(filename string) []byte {
	buf := make([]byte, 8+2+8+8+4+80)
	copy(buf[0:8], asciiField("JAZELLE", 8))
	copy(buf[30:30+80], asciiField(filename, 80))
	return buf
}

type recordHeaderFields struct {
	recType    string
	format     string
	userName   string
	userOffset int32
	tocOffset1 int32
	datOffset  int32
	datRecord  int32
	datSize    int32
}

func buildRecordHeader(f recordHeaderFields) []byte {
	buf := make([]byte, 124)
	putI32 := func(off int, v int32) { binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v)) }

	// RecordNumber, Tag1, Tag2, Target left zero.
	copy(buf[16:24], asciiField(f.recType, 8))
	// Flag1, Flag2 left zero.
	copy(buf[32:40], asciiField(f.format, 8))
	copy(buf[40:48], asciiField("", 8)) // Context

	putI32(48, 0)           // TOCRecord
	putI32(52, f.datRecord) // DatRecord
	putI32(56, 0)           // TOCSize
	putI32(60, f.datSize)   // DatSize
	putI32(64, f.tocOffset1)
	putI32(68, 0) // TOCOffset2
	putI32(72, 0) // TOCOffset3
	putI32(76, f.datOffset)

	copy(buf[80:88], asciiField("", 8)) // SegmentName
	copy(buf[88:96], asciiField(f.userName, 8))
	putI32(96, f.userOffset)
	// LogicalRecordFlags, Spare1, Spare2 left zero.

	return buf
}

func buildEventHeader(run, evt int32) []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], 0) // header word
	binary.LittleEndian.PutUint32(buf[4:8], uint32(run))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(evt))
	binary.LittleEndian.PutUint64(buf[12:20], 0) // timestamp ticks
	binary.LittleEndian.PutUint32(buf[20:24], 0) // weight (VAX zero == 0)
	binary.LittleEndian.PutUint32(buf[24:28], 1) // type
	binary.LittleEndian.PutUint32(buf[28:32], 0) // trigger mask
	return buf
}

func buildPhmtoc(nPhPSum int32) []byte {
	buf := make([]byte, 72)
	// Version VAX word left zero.
	binary.LittleEndian.PutUint32(buf[4:8], uint32(nPhPSum))
	return buf
}

func buildPhpsumRecord(id, status int32) []byte {
	buf := make([]byte, 36)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(id))
	binary.LittleEndian.PutUint32(buf[32:36], uint32(status))
	return buf
}

// buildEvent constructs the two logical records (IJEVHD header, MINIDST
// data) for one event containing a single PHPSUM record, and returns the
// concatenated raw bytes.
func buildEvent(run, evt, particleID int32) []byte {
	headerPayload := append(
		buildRecordHeader(recordHeaderFields{
			recType:    "JZLEREC",
			userName:   "IJEVHD",
			userOffset: 128, // logical header(4) + record header(124)
		}),
		buildEventHeader(run, evt)...,
	)

	mchead := make([]byte, 20)
	phpsum := buildPhpsumRecord(particleID, 3)
	datsiz := int32(len(mchead) + len(phpsum))

	dataPayload := append(
		buildRecordHeader(recordHeaderFields{
			recType:    "JZLEREC",
			format:     "MINIDST",
			tocOffset1: 128,                // logical header(4) + record header(124)
			datOffset:  128 + 72,           // + PHMTOC
			datRecord:  0,
			datSize:    datsiz,
		}),
		buildPhmtoc(1)...,
	)
	dataPayload = append(dataPayload, mchead...)
	dataPayload = append(dataPayload, phpsum...)

	var out []byte
	out = append(out, logicalFragment(0, headerPayload)...)
	out = append(out, logicalFragment(0, dataPayload)...)
	return out
}

// buildEventWithCounts builds one event's header+data logical records with
// explicit PHPSUM/PHKLUS/PHKTRK counts instead of buildEvent's fixed single
// PHPSUM record, so zero-count bank decodes (the mandatory PHPSUM/PHCHRG/
// PHKLUS trio, PHCHRG's count left at zero, and PHKTRK once enabled via
// WithBanks) can be exercised end to end.
func buildEventWithCounts(run, evt, nPhPSum, nPhKlus, nPhKTrk int32) []byte {
	headerPayload := append(
		buildRecordHeader(recordHeaderFields{
			recType:    "JZLEREC",
			userName:   "IJEVHD",
			userOffset: 128,
		}),
		buildEventHeader(run, evt)...,
	)

	toc := make([]byte, 72)
	binary.LittleEndian.PutUint32(toc[4:8], uint32(nPhPSum))
	binary.LittleEndian.PutUint32(toc[12:16], uint32(nPhKlus))
	binary.LittleEndian.PutUint32(toc[24:28], uint32(nPhKTrk))

	mchead := make([]byte, 20)
	datsiz := int32(len(mchead))

	dataPayload := append(
		buildRecordHeader(recordHeaderFields{
			recType:    "JZLEREC",
			format:     "MINIDST",
			tocOffset1: 128,
			datOffset:  128 + 72,
			datRecord:  0,
			datSize:    datsiz,
		}),
		toc...,
	)
	dataPayload = append(dataPayload, mchead...)

	var out []byte
	out = append(out, logicalFragment(0, headerPayload)...)
	out = append(out, logicalFragment(0, dataPayload)...)
	return out
}

func buildFixture(events [][3]int32) []byte {
	var out []byte
	out = append(out, logicalFragment(0, buildFileHeader("fixture.dat"))...)
	for _, e := range events {
		out = append(out, buildEvent(e[0], e[1], e[2])...)
	}
	return out
}

// --- tests ----------------------------------------------------------------

func TestAssembler_EndToEndTwoEvents(t *testing.T) {
	raw := buildFixture([][3]int32{
		{1065, 1, 11},
		{1065, 2, 22},
	})

	a, err := NewAssembler(bytes.NewReader(raw))
	require.NoError(t, err)

	rec1, err := a.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1065), rec1.Run)
	require.Equal(t, int32(1), rec1.Event)
	require.Len(t, rec1.Particles, 1)
	require.Equal(t, int32(11), rec1.Particles[0].ID)

	rec2, err := a.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1065), rec2.Run)
	require.Equal(t, int32(2), rec2.Event)
	require.Equal(t, int32(22), rec2.Particles[0].ID)

	_, err = a.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestAssembler_MaxEvents(t *testing.T) {
	raw := buildFixture([][3]int32{
		{1, 1, 1},
		{1, 2, 2},
	})

	a, err := NewAssembler(bytes.NewReader(raw), WithMaxEvents(1))
	require.NoError(t, err)

	_, err = a.Next(context.Background())
	require.NoError(t, err)

	_, err = a.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestAssembler_OffsetMismatchIsFatal(t *testing.T) {
	headerPayload := append(
		buildRecordHeader(recordHeaderFields{
			recType:    "JZLEREC",
			userName:   "IJEVHD",
			userOffset: 999, // wrong on purpose
		}),
		buildEventHeader(1, 1)...,
	)

	var raw []byte
	raw = append(raw, logicalFragment(0, buildFileHeader("x"))...)
	raw = append(raw, logicalFragment(0, headerPayload)...)

	a, err := NewAssembler(bytes.NewReader(raw))
	require.NoError(t, err)

	_, err = a.Next(context.Background())
	require.Error(t, err)
}

func TestAssembler_ChecksumStableAcrossDecodes(t *testing.T) {
	raw := buildFixture([][3]int32{{1, 1, 5}})

	a1, err := NewAssembler(bytes.NewReader(raw))
	require.NoError(t, err)
	rec1, err := a1.Next(context.Background())
	require.NoError(t, err)

	a2, err := NewAssembler(bytes.NewReader(raw))
	require.NoError(t, err)
	rec2, err := a2.Next(context.Background())
	require.NoError(t, err)

	require.Equal(t, rec1.Checksum(), rec2.Checksum())
}

func TestAssembler_ZeroCountBanksDoNotPanic(t *testing.T) {
	var raw []byte
	raw = append(raw, logicalFragment(0, buildFileHeader("zero.dat"))...)
	raw = append(raw, buildEventWithCounts(1065, 1, 0, 0, 0)...)

	a, err := NewAssembler(bytes.NewReader(raw), WithBanks(BankSet{KTrk: true}))
	require.NoError(t, err)

	rec, err := a.Next(context.Background())
	require.NoError(t, err)
	require.Empty(t, rec.Particles)
	require.Empty(t, rec.Clusters)
	require.Empty(t, rec.KTrk)
}

func TestAssembler_CleanEOFAtBoundary(t *testing.T) {
	raw := buildFixture(nil)

	a, err := NewAssembler(bytes.NewReader(raw))
	require.NoError(t, err)

	_, err = a.Next(context.Background())
	require.ErrorIs(t, err, io.EOF)
}
