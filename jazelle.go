// Package jazelle decodes JAZELLE/MiniDST event files, the binary format
// SLD experiment reconstruction output was stored in.
//
// # Basic usage
//
//	r, _, err := archive.Open("run1065.jazelle.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	a, err := jazelle.Open(r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for {
//	    rec, err := a.Next(context.Background())
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("run=%d event=%d particles=%d\n", rec.Run, rec.Event, len(rec.Particles))
//	}
//
// # Package structure
//
// This package is a thin, convenient entry point over event.Assembler,
// which drives the lower-level stream and banks packages. The types and
// options below are re-exports of event's own (event.WithBanks,
// event.WithStrictOffsets, event.WithMaxEvents); use archive to
// transparently open a gzip/zstd/lz4-wrapped file.
package jazelle

import (
	"io"

	"github.com/amete/jazelle/event"
)

// Record is one fully assembled event: a header plus its decoded banks.
type Record = event.Record

// BankSet selects which optional banks beyond the mandatory PHPSUM,
// PHCHRG, and PHKLUS trio get decoded.
type BankSet = event.BankSet

// Option configures an Assembler at construction time.
type Option = event.Option

// WithBanks enables decoding of the named optional banks in addition to
// the always-decoded PHPSUM/PHCHRG/PHKLUS trio.
func WithBanks(set BankSet) Option { return event.WithBanks(set) }

// WithStrictOffsets controls whether a byte-offset checkpoint mismatch is
// fatal; see event.WithStrictOffsets.
func WithStrictOffsets(strict bool) Option { return event.WithStrictOffsets(strict) }

// WithMaxEvents stops decoding after emitting n events.
func WithMaxEvents(n int) Option { return event.WithMaxEvents(n) }

// Assembler pulls successive Records out of a JAZELLE byte stream.
type Assembler = event.Assembler

// Open opens src as a JAZELLE stream and returns an Assembler ready to
// yield events via Next. src should already be positioned at the start of
// the file header; use archive.Open first if the file may be
// gzip/zstd/lz4-compressed on disk.
func Open(src io.Reader, opts ...Option) (*Assembler, error) {
	return event.NewAssembler(src, opts...)
}
