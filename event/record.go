package event

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/amete/jazelle/banks"
	"github.com/amete/jazelle/internal/hash"
	"github.com/amete/jazelle/vaxnumeric"
)

// Record is one fully assembled event: the IJEVHD scalar fields plus every
// bank vector decoded from the paired MINIDST payload.
type Record struct {
	Run     int32
	Event   int32
	Time    time.Time
	Weight  float32
	Type    int32
	Trigger uint32

	Particles []banks.Phpsum
	Tracks    []banks.Phchrg
	Clusters  []banks.Phklus

	Wic   []banks.Phwic
	Crid  []banks.Phcrid
	KelId []banks.Phkelid
	KTrk  []banks.Phktrk
}

func newRecord(h Header) Record {
	return Record{
		Run:     h.Run,
		Event:   h.Event,
		Time:    vaxnumeric.TicksToTime(h.TimeTicks),
		Weight:  h.Weight,
		Type:    h.Type,
		Trigger: h.TriggerMask,
	}
}

// Checksum returns an xxHash64 digest over the record's scalar fields, the
// length of every bank vector, and the ID of every Particles, Tracks, and
// Clusters entry; the other fields of bank records are not hashed. It is
// intended for idempotence testing (decoding the same file twice should
// yield identical checksums across all of its events), not as a security
// digest or a complete content hash of every field.
func (r Record) Checksum() uint64 {
	d := hash.NewDigest()

	var scalar [28]byte
	binary.LittleEndian.PutUint32(scalar[0:4], uint32(r.Run))
	binary.LittleEndian.PutUint32(scalar[4:8], uint32(r.Event))
	binary.LittleEndian.PutUint64(scalar[8:16], uint64(r.Time.UnixMilli()))
	binary.LittleEndian.PutUint32(scalar[16:20], uint32(r.Type))
	binary.LittleEndian.PutUint32(scalar[20:24], r.Trigger)
	binary.LittleEndian.PutUint32(scalar[24:28], math.Float32bits(r.Weight))
	_, _ = d.Write(scalar[:])

	writeLen := func(n int) {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n))
		_, _ = d.Write(b[:])
	}

	writeLen(len(r.Particles))
	for _, p := range r.Particles {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(p.ID))
		_, _ = d.Write(b[:])
	}

	writeLen(len(r.Tracks))
	for _, t := range r.Tracks {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(t.ID))
		_, _ = d.Write(b[:])
	}

	writeLen(len(r.Clusters))
	for _, c := range r.Clusters {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(c.ID))
		_, _ = d.Write(b[:])
	}

	writeLen(len(r.Wic))
	writeLen(len(r.Crid))
	writeLen(len(r.KelId))
	writeLen(len(r.KTrk))

	return d.Sum64()
}
