package banks

import (
	"fmt"

	"github.com/amete/jazelle/buffer"
	"github.com/amete/jazelle/errs"
)

const (
	phcridHeaderSize   = 16
	phcridHypFullSize  = 36
	phcridHypShortSize = 4

	phcridLiquidFullBit = 0x10000
	phcridGasFullBit    = 0x20000
)

// Pidvec is the five-component particle-identification log-likelihood
// vector: electron, muon, pion, kaon, proton.
type Pidvec struct {
	E  float32
	Mu float32
	Pi float32
	K  float32
	P  float32
}

// add returns the componentwise sum of p and other.
func (p Pidvec) add(other Pidvec) Pidvec {
	return Pidvec{
		E:  p.E + other.E,
		Mu: p.Mu + other.Mu,
		Pi: p.Pi + other.Pi,
		K:  p.K + other.K,
		P:  p.P + other.P,
	}
}

// Cridhyp is one particle-identification hypothesis block, either the
// 36-byte "full" form or the 4-byte "short" form.
type Cridhyp struct {
	Full bool

	LogLik Pidvec // zero value when Full is false

	RC    int16
	NHits int16

	// The remaining fields are only populated when Full is true.
	BestHyp int32
	NHExp   int16
	NHFnd   int16
	NHBkg   int16
	MskPhot int16
}

// Phcrid is one Cherenkov ring-imaging particle-identification record.
type Phcrid struct {
	ID   int32
	Norm float32
	RC   int16
	Geom int16
	Trkp int16
	NHits int16

	Liquid Cridhyp
	Gas    Cridhyp

	// LLik is the combined PIDVEC: Norm in every component, plus the
	// liquid and gas log-likelihoods wherever their blocks are full.
	LLik Pidvec
}

// ParsePhcrid decodes n PHCRID records from r. Because each record's
// length depends on its own control bits, records are parsed one at a
// time rather than in one bulk pass.
func ParsePhcrid(r *buffer.Reader, n int) ([]Phcrid, error) {
	out := make([]Phcrid, n)

	for i := 0; i < n; i++ {
		rec, err := parseOnePhcrid(r)
		if err != nil {
			return nil, fmt.Errorf("PHCRID record %d: %w", i, err)
		}
		out[i] = rec
	}

	return out, nil
}

func parseOnePhcrid(r *buffer.Reader) (Phcrid, error) {
	if r.Remaining() < phcridHeaderSize {
		return Phcrid{}, fmt.Errorf("%w: need %d byte header, have %d",
			errs.ErrBufferUnderflow, phcridHeaderSize, r.Remaining())
	}

	hdr, err := r.Read(phcridHeaderSize)
	if err != nil {
		return Phcrid{}, err
	}

	var rec Phcrid
	rec.ID = int32At(hdr, 0)
	rec.Norm = vaxFloatAt(hdr, 4)
	rec.RC = int16At(hdr, 8)
	rec.Geom = int16At(hdr, 10)
	rec.Trkp = int16At(hdr, 12)
	rec.NHits = int16At(hdr, 14)

	liquidFull := uint32(rec.ID)&phcridLiquidFullBit != 0
	gasFull := uint32(rec.ID)&phcridGasFullBit != 0

	liquid, err := parseCridhyp(r, liquidFull)
	if err != nil {
		return Phcrid{}, fmt.Errorf("liquid hypothesis: %w", err)
	}
	rec.Liquid = liquid

	gas, err := parseCridhyp(r, gasFull)
	if err != nil {
		return Phcrid{}, fmt.Errorf("gas hypothesis: %w", err)
	}
	rec.Gas = gas

	rec.LLik = Pidvec{E: rec.Norm, Mu: rec.Norm, Pi: rec.Norm, K: rec.Norm, P: rec.Norm}
	if liquidFull {
		rec.LLik = rec.LLik.add(rec.Liquid.LogLik)
	}
	if gasFull {
		rec.LLik = rec.LLik.add(rec.Gas.LogLik)
	}

	return rec, nil
}

func parseCridhyp(r *buffer.Reader, full bool) (Cridhyp, error) {
	if full {
		if r.Remaining() < phcridHypFullSize {
			return Cridhyp{}, fmt.Errorf("%w: need %d bytes for full hypothesis, have %d",
				errs.ErrBufferUnderflow, phcridHypFullSize, r.Remaining())
		}

		b, err := r.Read(phcridHypFullSize)
		if err != nil {
			return Cridhyp{}, err
		}

		return Cridhyp{
			Full: true,
			LogLik: Pidvec{
				E:  vaxFloatAt(b, 0),
				Mu: vaxFloatAt(b, 4),
				Pi: vaxFloatAt(b, 8),
				K:  vaxFloatAt(b, 12),
				P:  vaxFloatAt(b, 16),
			},
			RC:      int16At(b, 20),
			NHits:   int16At(b, 22),
			BestHyp: int32At(b, 24),
			NHExp:   int16At(b, 28),
			NHFnd:   int16At(b, 30),
			NHBkg:   int16At(b, 32),
			MskPhot: int16At(b, 34),
		}, nil
	}

	if r.Remaining() < phcridHypShortSize {
		return Cridhyp{}, fmt.Errorf("%w: need %d bytes for short hypothesis, have %d",
			errs.ErrBufferUnderflow, phcridHypShortSize, r.Remaining())
	}

	b, err := r.Read(phcridHypShortSize)
	if err != nil {
		return Cridhyp{}, err
	}

	return Cridhyp{
		Full:  false,
		RC:    int16At(b, 0),
		NHits: int16At(b, 2),
	}, nil
}
