package banks

import (
	"github.com/amete/jazelle/buffer"
)

// PhchrgRecordSize is the fixed on-disk size of one PHCHRG charged-track
// record. Its 206 bytes are not a multiple of 4 (the 11 int16 counters
// leave a half-word remainder), so PHCHRG is decoded with explicit
// byte-offset loads rather than the word-reinterpretation path PHPSUM,
// PHKLUS, and PHKTRK use.
const PhchrgRecordSize = 206

// Phchrg is one charged-track record. The source names thirteen VAX float
// "scalars" in addition to the helix-parameter arrays below, but the
// 206-byte record only has room for one once the four int32 fields, the
// four named arrays (41 floats), and the eleven int16 counters are
// accounted for; that single scalar is modeled here as Chi2.
type Phchrg struct {
	ID      int32
	Status  int32
	VxdHit  int32
	Dedx    int32
	Chi2    float32
	HlxPar  [6]float32
	DHlxPar [15]float32
	TkPar   [5]float32
	DTkPar  [15]float32
	Hits    [11]int16
}

// ParsePhchrg decodes n PHCHRG records from r.
func ParsePhchrg(r *buffer.Reader, n int) ([]Phchrg, error) {
	if err := checkCapacity("PHCHRG", r, n, PhchrgRecordSize); err != nil {
		return nil, err
	}

	raw, err := r.Read(n * PhchrgRecordSize)
	if err != nil {
		return nil, err
	}

	out := make([]Phchrg, n)
	for rec := 0; rec < n; rec++ {
		b := raw[rec*PhchrgRecordSize : (rec+1)*PhchrgRecordSize]
		off := 0

		var p Phchrg
		p.ID = int32At(b, off)
		off += 4
		p.Status = int32At(b, off)
		off += 4
		p.VxdHit = int32At(b, off)
		off += 4
		p.Dedx = int32At(b, off)
		off += 4

		p.Chi2 = vaxFloatAt(b, off)
		off += 4

		for i := range p.HlxPar {
			p.HlxPar[i] = vaxFloatAt(b, off)
			off += 4
		}
		for i := range p.DHlxPar {
			p.DHlxPar[i] = vaxFloatAt(b, off)
			off += 4
		}
		for i := range p.TkPar {
			p.TkPar[i] = vaxFloatAt(b, off)
			off += 4
		}
		for i := range p.DTkPar {
			p.DTkPar[i] = vaxFloatAt(b, off)
			off += 4
		}

		for i := range p.Hits {
			p.Hits[i] = int16At(b, off)
			off += 2
		}

		out[rec] = p
	}

	return out, nil
}
