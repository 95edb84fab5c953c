package stream

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildRecordHeaderPayload(recordNumber int32, recType string) []byte {
	buf := make([]byte, recordHeaderSize)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(recordNumber))

	off := 16 // past RecordNumber, Tag1, Tag2, Target
	copy(buf[off:off+8], recType)
	for i := len(recType); i < 8; i++ {
		buf[off+i] = ' '
	}

	return buf
}

func TestParseRecordHeader(t *testing.T) {
	payload := buildRecordHeaderPayload(42, "IJEVHD")
	raw := logicalFragment(0, payload)

	l, err := NewLogicalReader(bytes.NewReader(raw))
	require.NoError(t, err)

	h, err := parseRecordHeader(l)
	require.NoError(t, err)
	require.Equal(t, int32(42), h.RecordNumber)
	require.Equal(t, "IJEVHD", h.RecType)
}
