package stream

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/amete/jazelle/errs"
	"github.com/amete/jazelle/vaxnumeric"
)

const (
	fileTagSize      = 8
	fileFilenameSize = 80
	// fileHeaderSize is the total byte length of the file header: the
	// 8-byte tag, a 2-byte flavor word, two 8-byte tick timestamps, a
	// 4-byte modification counter, and the 80-byte filename.
	fileHeaderSize = fileTagSize + 2 + 8 + 8 + 4 + fileFilenameSize

	fileTag = "JAZELLE"
)

// FileHeader is the fixed header every JAZELLE file opens with.
type FileHeader struct {
	Flavor   uint16 // IBM-vs-VAX flavor word; recorded but not used by decoding
	Created  time.Time
	Modified time.Time
	ModCount int32
	Filename string
}

// parseFileHeader reads and validates the file-level header from r.
func parseFileHeader(r *LogicalReader) (FileHeader, error) {
	data, err := r.Read(fileHeaderSize)
	if err != nil {
		return FileHeader{}, fmt.Errorf("reading file header: %w", err)
	}

	tag := strings.TrimRight(string(data[0:fileTagSize]), " ")
	if tag != fileTag {
		return FileHeader{}, fmt.Errorf("%w: got %q", errs.ErrBadMagic, tag)
	}

	off := fileTagSize
	flavor := binary.LittleEndian.Uint16(data[off : off+2])
	off += 2

	createdTicks := int64(binary.LittleEndian.Uint64(data[off : off+8]))
	off += 8
	modifiedTicks := int64(binary.LittleEndian.Uint64(data[off : off+8]))
	off += 8

	modCount := int32(binary.LittleEndian.Uint32(data[off : off+4]))
	off += 4

	filename := trimASCII(data[off : off+fileFilenameSize])

	return FileHeader{
		Flavor:   flavor,
		Created:  vaxnumeric.TicksToTime(createdTicks),
		Modified: vaxnumeric.TicksToTime(modifiedTicks),
		ModCount: modCount,
		Filename: filename,
	}, nil
}

// trimASCII trims trailing spaces and NUL bytes from a fixed-width ASCII
// field, the convention used throughout JAZELLE string fields, then replaces
// any remaining non-printable byte with '?' rather than passing it through:
// a corrupt or misaligned field should surface as garbled text, not as
// control characters leaking into logs and downstream consumers.
func trimASCII(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}

	out := make([]byte, end)
	for i := 0; i < end; i++ {
		c := b[i]
		if c < 0x20 || c > 0x7e {
			out[i] = '?'
			continue
		}
		out[i] = c
	}

	return string(out)
}
