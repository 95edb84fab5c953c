package event

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amete/jazelle/banks"
	"github.com/amete/jazelle/buffer"
	"github.com/amete/jazelle/errs"
	"github.com/amete/jazelle/internal/options"
	"github.com/amete/jazelle/internal/pool"
	"github.com/amete/jazelle/stream"
)

const mcHeadSize = 20

const (
	usrnamEventHeader = "IJEVHD"
	formatMinidst     = "MINIDST"
)

// Assembler drives a stream.JazelleReader, dispatching each logical
// record on its usrnam/format tags and emitting one Record per
// (IJEVHD header, MINIDST payload) pair. It is the only stateful
// component in the decode path: expect_continuation lives in the
// stream layer, bytes_in_record in the physical layer, and the pending
// event header here.
type Assembler struct {
	reader *stream.JazelleReader
	cfg    config

	pending       *Header
	recordNumber  int
	emittedEvents int

	// SkippedOrphanRecords counts MINIDST records seen with no pending
	// header; this is a warning condition rather than a fatal one, so the
	// count is exposed for callers that want to surface it.
	SkippedOrphanRecords int
}

// NewAssembler opens src as a JAZELLE stream and returns an Assembler
// ready to yield events via Next.
func NewAssembler(src io.Reader, opts ...Option) (*Assembler, error) {
	reader, err := stream.NewJazelleReader(src)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Assembler{reader: reader, cfg: cfg}, nil
}

// Header returns the file-level header the underlying stream parsed at
// open time.
func (a *Assembler) Header() stream.FileHeader {
	return a.reader.Header
}

// Next advances the assembler to the next fully assembled event. It
// returns io.EOF when the stream ends cleanly at a physical record
// boundary; any other error is fatal and carries the current logical
// record number.
func (a *Assembler) Next(ctx context.Context) (Record, error) {
	if a.cfg.maxEvents > 0 && a.emittedEvents >= a.cfg.maxEvents {
		return Record{}, io.EOF
	}

	for {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}

		rh, err := a.reader.NextRecord()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, fmt.Errorf("record %d: %w", a.recordNumber, err)
		}
		a.recordNumber++

		switch {
		case rh.UserName == usrnamEventHeader:
			if err := a.handleHeaderRecord(rh); err != nil {
				return Record{}, fmt.Errorf("record %d: %w", a.recordNumber, err)
			}

		case rh.Format == formatMinidst:
			rec, ok, err := a.handleDataRecord(rh)
			if err != nil {
				return Record{}, fmt.Errorf("record %d: %w", a.recordNumber, err)
			}
			if ok {
				a.emittedEvents++
				return rec, nil
			}

		default:
			// Any other record kind is counted implicitly by
			// recordNumber and otherwise skipped.
		}
	}
}

func (a *Assembler) handleHeaderRecord(rh stream.RecordHeader) error {
	if err := a.checkOffset("usroff", rh.UserOffset); err != nil {
		return err
	}

	h, err := parseHeader(a.reader)
	if err != nil {
		return fmt.Errorf("parsing IJEVHD header: %w", err)
	}

	a.pending = &h
	return nil
}

// handleDataRecord decodes a MINIDST record, returning (record, true, nil)
// once it is fully assembled, or (zero, false, nil) if it is skipped
// (an orphan MINIDST with no pending header).
func (a *Assembler) handleDataRecord(rh stream.RecordHeader) (Record, bool, error) {
	if err := a.checkOffset("tocoff1", rh.TOCOffset1); err != nil {
		return Record{}, false, err
	}

	tocBytes, err := a.reader.ReadBytes(banks.PhmtocRecordSize)
	if err != nil {
		return Record{}, false, fmt.Errorf("reading PHMTOC: %w", err)
	}

	toc, err := banks.ParsePhmtoc(buffer.New(tocBytes))
	if err != nil {
		return Record{}, false, fmt.Errorf("decoding PHMTOC: %w", err)
	}

	if rh.DatRecord > 0 {
		if err := a.reader.AdvancePhysicalRecord(); err != nil {
			return Record{}, false, fmt.Errorf("advancing to data record: %w", err)
		}
	}

	if err := a.checkOffset("datoff", rh.DatOffset); err != nil {
		return Record{}, false, err
	}

	payload := pool.GetEventBuffer()
	defer pool.PutEventBuffer(payload)

	datBytes := payload.ExtendOrGrow(int(rh.DatSize))
	if err := a.reader.ReadBytesInto(datBytes); err != nil {
		return Record{}, false, fmt.Errorf("reading MINIDST payload: %w", err)
	}

	buf := buffer.New(datBytes)
	if err := buf.Skip(mcHeadSize); err != nil {
		return Record{}, false, fmt.Errorf("skipping MCHEAD: %w", err)
	}

	if toc.NMcPart != 0 {
		return Record{}, false, fmt.Errorf("%w: NMcPart=%d", errs.ErrUnsupportedContent, toc.NMcPart)
	}

	if a.pending == nil {
		a.SkippedOrphanRecords++
		return Record{}, false, nil
	}

	rec := newRecord(*a.pending)
	a.pending = nil

	if rec.Particles, err = banks.ParsePhpsum(buf, int(toc.NPhPSum)); err != nil {
		return Record{}, false, fmt.Errorf("decoding PHPSUM: %w", err)
	}
	if rec.Tracks, err = banks.ParsePhchrg(buf, int(toc.NPhChrg)); err != nil {
		return Record{}, false, fmt.Errorf("decoding PHCHRG: %w", err)
	}
	if rec.Clusters, err = banks.ParsePhklus(buf, int(toc.NPhKlus)); err != nil {
		return Record{}, false, fmt.Errorf("decoding PHKLUS: %w", err)
	}

	if a.cfg.banks.Wic {
		if rec.Wic, err = banks.ParsePhwic(buf, int(toc.NPhWic)); err != nil {
			return Record{}, false, fmt.Errorf("decoding PHWIC: %w", err)
		}
	}
	if a.cfg.banks.Crid {
		if rec.Crid, err = banks.ParsePhcrid(buf, int(toc.NPhCrid)); err != nil {
			return Record{}, false, fmt.Errorf("decoding PHCRID: %w", err)
		}
	}
	if a.cfg.banks.KelId {
		if rec.KelId, err = banks.ParsePhkelid(buf, int(toc.NPhKElId)); err != nil {
			return Record{}, false, fmt.Errorf("decoding PHKELID: %w", err)
		}
	}
	if a.cfg.banks.KTrk {
		if rec.KTrk, err = banks.ParsePhktrk(buf, int(toc.NPhKTrk)); err != nil {
			return Record{}, false, fmt.Errorf("decoding PHKTRK: %w", err)
		}
	}

	return rec, true, nil
}

func (a *Assembler) checkOffset(name string, declared int32) error {
	if !a.cfg.strictOffsets {
		return nil
	}
	return a.reader.CheckOffset(name, uint64(declared))
}
