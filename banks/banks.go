// Package banks decodes the fixed- and variable-width record tables
// ("banks") carried inside a MINIDST payload: PHMTOC, PHPSUM, PHCHRG,
// PHKLUS, PHWIC, PHCRID, PHKELID, and PHKTRK.
//
// PHPSUM, PHKLUS, PHKTRK, and PHMTOC are decoded in bulk: the whole record
// region is read once, reinterpreted as 32-bit words via
// buffer.Reader.ReadWords, and integer fields are extracted by word
// position; for PHPSUM and PHKLUS every VAX float field across the whole
// batch is gathered into one contiguous scratch slice and converted with a
// single vaxnumeric.F32ToIEEESlice call before being scattered back into
// the output records. PHCHRG, PHWIC, and PHKELID do not use this path: they
// read their record region once and then decode each field from an
// explicit byte offset, converting each VAX float with its own
// vaxnumeric.F32ToIEEE call. PHCRID's variable-length layout is decoded
// record by record (see phcrid.go).
package banks

import (
	"encoding/binary"
	"fmt"

	"github.com/amete/jazelle/buffer"
	"github.com/amete/jazelle/errs"
	"github.com/amete/jazelle/internal/pool"
	"github.com/amete/jazelle/vaxnumeric"
)

// checkCapacity validates that r has at least n*recordSize bytes
// remaining, returning errs.ErrBufferUnderflow with bank context otherwise.
func checkCapacity(bank string, r *buffer.Reader, n, recordSize int) error {
	need := n * recordSize
	if r.Remaining() < need {
		return fmt.Errorf("%w: bank %s needs %d bytes for %d records, have %d",
			errs.ErrBufferUnderflow, bank, need, n, r.Remaining())
	}
	return nil
}

// gatherFloats extracts the words at the given positions (indices into
// words) and converts them to IEEE-754 float32 in one vectorized pass,
// using pooled scratch slices for the intermediate gather buffer since this
// runs once per decoded record batch.
func gatherFloats(words []uint32, positions []int) []float32 {
	raw, rawDone := pool.GetUint32Slice(len(positions))
	defer rawDone()
	for i, p := range positions {
		raw[i] = words[p]
	}

	out := make([]float32, len(raw))
	vaxnumeric.F32ToIEEESlice(raw, out)

	return out
}

// int32At reads a little-endian int32 directly from a raw byte slice at
// byte offset off, for the banks (PHCHRG, PHWIC, PHKELID, PHCRID) that are
// decoded with explicit byte offsets instead of word reinterpretation.
func int32At(raw []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(raw[off : off+4]))
}

func uint32At(raw []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(raw[off : off+4])
}

func int16At(raw []byte, off int) int16 {
	return int16(binary.LittleEndian.Uint16(raw[off : off+2]))
}

func vaxFloatAt(raw []byte, off int) float32 {
	return vaxnumeric.F32ToIEEE(uint32At(raw, off))
}

// vaxFloatFromWord converts a single already-extracted word, for the rare
// case (PHMTOC's Version field) where only one float is present and a
// batch conversion would be overkill.
func vaxFloatFromWord(w uint32) float32 {
	return vaxnumeric.F32ToIEEE(w)
}
