package banks

import (
	"github.com/amete/jazelle/buffer"
)

// PhpsumRecordSize is the fixed on-disk size of one PHPSUM particle-summary
// record: two int32 fields (id, status) and seven VAX float fields.
const PhpsumRecordSize = 36

// Phpsum is one particle-summary record.
type Phpsum struct {
	ID     int32
	Px     float32
	Py     float32
	Pz     float32
	X      float32
	Y      float32
	Z      float32
	Charge float32
	Status int32
}

// phpsumRecordWords is PhpsumRecordSize/4.
const phpsumRecordWords = PhpsumRecordSize / 4

// phpsumFloatOffsets are the word positions, within one record, of the
// seven VAX float fields (px,py,pz,x,y,z,charge).
var phpsumFloatOffsets = [7]int{1, 2, 3, 4, 5, 6, 7}

// ParsePhpsum decodes n PHPSUM records from r in one bulk pass.
func ParsePhpsum(r *buffer.Reader, n int) ([]Phpsum, error) {
	if err := checkCapacity("PHPSUM", r, n, PhpsumRecordSize); err != nil {
		return nil, err
	}

	words, err := r.ReadWords(n * phpsumRecordWords)
	if err != nil {
		return nil, err
	}

	positions := make([]int, 0, n*len(phpsumFloatOffsets))
	for rec := 0; rec < n; rec++ {
		base := rec * phpsumRecordWords
		for _, off := range phpsumFloatOffsets {
			positions = append(positions, base+off)
		}
	}
	floats := gatherFloats(words, positions)

	out := make([]Phpsum, n)
	for rec := 0; rec < n; rec++ {
		base := rec * phpsumRecordWords
		fbase := rec * len(phpsumFloatOffsets)

		out[rec] = Phpsum{
			ID:     int32(words[base+0]),
			Px:     floats[fbase+0],
			Py:     floats[fbase+1],
			Pz:     floats[fbase+2],
			X:      floats[fbase+3],
			Y:      floats[fbase+4],
			Z:      floats[fbase+5],
			Charge: floats[fbase+6],
			Status: int32(words[base+8]),
		}
	}

	return out, nil
}
