package banks

import (
	"github.com/amete/jazelle/buffer"
)

// PhkelidRecordSize is the fixed on-disk size of one PHKELID
// particle-identification record.
const PhkelidRecordSize = 92

// Phkelid is one electron-identification hypothesis record. The source
// names 22 VAX float scalars, but the 92-byte record only has room for 21
// once the int32 id and the two int16 fields are accounted for; the
// 22nd is not modeled.
type Phkelid struct {
	ID     int32
	IDStat int16
	Prob   int16

	Scalars [21]float32
}

// ParsePhkelid decodes n PHKELID records from r.
func ParsePhkelid(r *buffer.Reader, n int) ([]Phkelid, error) {
	if err := checkCapacity("PHKELID", r, n, PhkelidRecordSize); err != nil {
		return nil, err
	}

	raw, err := r.Read(n * PhkelidRecordSize)
	if err != nil {
		return nil, err
	}

	out := make([]Phkelid, n)
	for rec := 0; rec < n; rec++ {
		b := raw[rec*PhkelidRecordSize : (rec+1)*PhkelidRecordSize]
		off := 0

		var k Phkelid
		k.ID = int32At(b, off)
		off += 4
		k.IDStat = int16At(b, off)
		off += 2
		k.Prob = int16At(b, off)
		off += 2

		for i := range k.Scalars {
			k.Scalars[i] = vaxFloatAt(b, off)
			off += 4
		}

		out[rec] = k
	}

	return out, nil
}
