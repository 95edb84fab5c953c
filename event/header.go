// Package event assembles decoded bank vectors into per-event records by
// driving a stream.JazelleReader: it dispatches each logical record on its
// usrnam/format tags, validates the byte-offset checkpoints, and emits one
// EventRecord per (IJEVHD header, MINIDST payload) pair.
package event

import (
	"github.com/amete/jazelle/stream"
)

const eventHeaderSize = 32

// Header is the IJEVHD payload: event-level scalar metadata that precedes
// a MINIDST data record in the input stream.
type Header struct {
	HeaderWord  uint32
	Run         int32
	Event       int32
	TimeTicks   int64
	Weight      float32
	Type        int32
	TriggerMask uint32
}

// parseHeader reads the 32-byte IJEVHD payload from j.
func parseHeader(j *stream.JazelleReader) (Header, error) {
	var h Header
	var err error

	if h.HeaderWord, err = j.ReadUint32(); err != nil {
		return Header{}, err
	}
	if h.Run, err = j.ReadInt32(); err != nil {
		return Header{}, err
	}
	if h.Event, err = j.ReadInt32(); err != nil {
		return Header{}, err
	}
	if h.TimeTicks, err = j.ReadTimestamp(); err != nil {
		return Header{}, err
	}
	if h.Weight, err = j.ReadVaxFloat32(); err != nil {
		return Header{}, err
	}
	if h.Type, err = j.ReadInt32(); err != nil {
		return Header{}, err
	}
	triggerMask, err := j.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	h.TriggerMask = triggerMask

	return h, nil
}
