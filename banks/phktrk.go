package banks

import (
	"github.com/amete/jazelle/buffer"
)

// PhktrkRecordSize is the fixed on-disk size of one PHKTRK record. Only an
// id field is documented for this bank; real PHKTRK data may use a larger
// layout this decoder does not know about.
const PhktrkRecordSize = 4

// Phktrk is a placeholder track-reference record.
type Phktrk struct {
	ID int32
}

// ParsePhktrk decodes n PHKTRK records from r.
func ParsePhktrk(r *buffer.Reader, n int) ([]Phktrk, error) {
	if err := checkCapacity("PHKTRK", r, n, PhktrkRecordSize); err != nil {
		return nil, err
	}

	words, err := r.ReadWords(n)
	if err != nil {
		return nil, err
	}

	out := make([]Phktrk, n)
	for i, w := range words {
		out[i] = Phktrk{ID: int32(w)}
	}

	return out, nil
}
