package banks

import (
	"github.com/amete/jazelle/buffer"
)

// PhwicRecordSize is the fixed on-disk size of one PHWIC warm-iron-calorimeter
// record: 126 bytes of fields followed by a 2-byte trailing pad whose
// origin (on-disk field vs. struct-alignment artifact) is ambiguous; it is
// read and discarded here.
const PhwicRecordSize = 128

const phwicCoreSize = 126

// Phwic is one warm-iron-calorimeter hit record.
type Phwic struct {
	ID     int32
	Status int32
	NHit   int32

	Quality float32
	Pref1   [3]float32
	Pfit    [4]float32
	DPfit   [10]float32

	Counters [21]int16
}

// ParsePhwic decodes n PHWIC records from r.
func ParsePhwic(r *buffer.Reader, n int) ([]Phwic, error) {
	if err := checkCapacity("PHWIC", r, n, PhwicRecordSize); err != nil {
		return nil, err
	}

	raw, err := r.Read(n * PhwicRecordSize)
	if err != nil {
		return nil, err
	}

	out := make([]Phwic, n)
	for rec := 0; rec < n; rec++ {
		b := raw[rec*PhwicRecordSize : rec*PhwicRecordSize+phwicCoreSize]
		off := 0

		var w Phwic
		w.ID = int32At(b, off)
		off += 4
		w.Status = int32At(b, off)
		off += 4
		w.NHit = int32At(b, off)
		off += 4

		w.Quality = vaxFloatAt(b, off)
		off += 4

		for i := range w.Pref1 {
			w.Pref1[i] = vaxFloatAt(b, off)
			off += 4
		}
		for i := range w.Pfit {
			w.Pfit[i] = vaxFloatAt(b, off)
			off += 4
		}
		for i := range w.DPfit {
			w.DPfit[i] = vaxFloatAt(b, off)
			off += 4
		}

		for i := range w.Counters {
			w.Counters[i] = int16At(b, off)
			off += 2
		}

		out[rec] = w
	}

	return out, nil
}
