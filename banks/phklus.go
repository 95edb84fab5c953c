package banks

import (
	"github.com/amete/jazelle/buffer"
)

// PhklusRecordSize is the fixed on-disk size of one PHKLUS cluster record.
const PhklusRecordSize = 100

const phklusRecordWords = PhklusRecordSize / 4

// Phklus is one calorimeter cluster record: four int32 fields, an 8-wide
// per-layer energy array, and 13 VAX float scalars.
type Phklus struct {
	ID     int32
	Status int32
	NHit2  int32
	NHit3  int32

	ELayer [8]float32

	// Scalars holds the 13 VAX float scalars the source names but does
	// not individually label beyond their position in the record.
	Scalars [13]float32
}

// phklusFloatOffsets are the word positions of every VAX float field: the
// 8-element ELayer array followed by the 13 scalar fields.
var phklusFloatOffsets = buildSequentialOffsets(4, 8+13)

func buildSequentialOffsets(start, count int) []int {
	offs := make([]int, count)
	for i := range offs {
		offs[i] = start + i
	}
	return offs
}

// ParsePhklus decodes n PHKLUS records from r in one bulk pass.
func ParsePhklus(r *buffer.Reader, n int) ([]Phklus, error) {
	if err := checkCapacity("PHKLUS", r, n, PhklusRecordSize); err != nil {
		return nil, err
	}

	words, err := r.ReadWords(n * phklusRecordWords)
	if err != nil {
		return nil, err
	}

	positions := make([]int, 0, n*len(phklusFloatOffsets))
	for rec := 0; rec < n; rec++ {
		base := rec * phklusRecordWords
		for _, off := range phklusFloatOffsets {
			positions = append(positions, base+off)
		}
	}
	floats := gatherFloats(words, positions)

	out := make([]Phklus, n)
	for rec := 0; rec < n; rec++ {
		base := rec * phklusRecordWords
		fbase := rec * len(phklusFloatOffsets)

		var k Phklus
		k.ID = int32(words[base+0])
		k.Status = int32(words[base+1])
		k.NHit2 = int32(words[base+2])
		k.NHit3 = int32(words[base+3])

		for i := range k.ELayer {
			k.ELayer[i] = floats[fbase+i]
		}
		for i := range k.Scalars {
			k.Scalars[i] = floats[fbase+len(k.ELayer)+i]
		}

		out[rec] = k
	}

	return out, nil
}
