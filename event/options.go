package event

import (
	"github.com/amete/jazelle/internal/options"
)

// BankSet selects which optional banks beyond the mandatory PHPSUM,
// PHCHRG, and PHKLUS trio the assembler decodes for each event.
type BankSet struct {
	Wic   bool
	Crid  bool
	KelId bool
	KTrk  bool
}

// config holds an Assembler's resolved options.
type config struct {
	banks          BankSet
	strictOffsets  bool
	maxEvents      int // 0 means unlimited
}

func defaultConfig() config {
	return config{
		strictOffsets: true,
	}
}

// Option configures an Assembler at construction time.
type Option = options.Option[*config]

// WithBanks enables decoding of the named optional banks in addition to
// the always-decoded PHPSUM/PHCHRG/PHKLUS trio.
func WithBanks(set BankSet) Option {
	return options.NoError(func(c *config) {
		c.banks = set
	})
}

// WithStrictOffsets controls whether a byte-offset checkpoint mismatch
// (usroff, tocoff1, datoff) is fatal. It defaults to true; passing false
// is intended only for exploring malformed fixtures during development;
// every other caller should treat an offset mismatch as fatal.
func WithStrictOffsets(strict bool) Option {
	return options.NoError(func(c *config) {
		c.strictOffsets = strict
	})
}

// WithMaxEvents stops the assembler after emitting n events, or runs to
// end of stream when n is zero (the default).
func WithMaxEvents(n int) Option {
	return options.NoError(func(c *config) {
		c.maxEvents = n
	})
}
