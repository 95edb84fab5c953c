package banks

import (
	"github.com/amete/jazelle/buffer"
)

// PhmtocRecordSize is the fixed on-disk size of the PHMTOC table of
// contents: a VAX float version word plus 17 signed 32-bit counts.
const PhmtocRecordSize = 72

// Phmtoc is the per-event table of contents: per-bank record counts used
// by EventAssembler to know how many records to ask each bank decoder for.
type Phmtoc struct {
	Version float32

	NPhPSum  int32
	NPhChrg  int32
	NPhKlus  int32
	NPhWic   int32
	NPhCrid  int32
	NPhKTrk  int32
	NPhKElId int32
	NMcPart  int32

	// Spare holds the remaining 9 counts the source file reserves without
	// naming; EventAssembler only dispatches on the eight named above.
	Spare [9]int32
}

// ParsePhmtoc reads the single fixed-size PHMTOC record from r.
func ParsePhmtoc(r *buffer.Reader) (Phmtoc, error) {
	if err := checkCapacity("PHMTOC", r, 1, PhmtocRecordSize); err != nil {
		return Phmtoc{}, err
	}

	words, err := r.ReadWords(PhmtocRecordSize / 4)
	if err != nil {
		return Phmtoc{}, err
	}

	var m Phmtoc
	m.Version = vaxFloatFromWord(words[0])

	m.NPhPSum = int32(words[1])
	m.NPhChrg = int32(words[2])
	m.NPhKlus = int32(words[3])
	m.NPhWic = int32(words[4])
	m.NPhCrid = int32(words[5])
	m.NPhKTrk = int32(words[6])
	m.NPhKElId = int32(words[7])
	m.NMcPart = int32(words[8])

	for i := 0; i < len(m.Spare); i++ {
		m.Spare[i] = int32(words[9+i])
	}

	return m, nil
}
