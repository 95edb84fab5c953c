// Package vaxnumeric converts VAX F_FLOAT 32-bit words to IEEE-754
// single-precision floats, and VAX/Java-style 100-nanosecond tick counts to
// civil UTC timestamps.
//
// The conversion rules reproduce the VAX Architecture Reference Manual's
// F_floating layout exactly, in the spirit of
// "Baker, L.M., 2005, libvaxdata: VAX Data Format Conversion Routines"
// (USGS Open-File Report 2005-1424): two 16-bit little-endian words stored
// in swapped ("middle-endian") order, an 8-bit exponent biased by 128, and a
// 23-bit mantissa split across the two words.
package vaxnumeric

import (
	"math"
	"time"

	"github.com/amete/jazelle/internal/pool"
)

// vaxEpochOffsetMillis is the number of milliseconds between the VAX/Java
// 100-nanosecond tick epoch and the Unix epoch. Subtracting it from a tick
// count converted to milliseconds yields Unix milliseconds.
const vaxEpochOffsetMillis = 3_506_716_800_730

// F32ToIEEE converts one VAX F_FLOAT word to an IEEE-754 float32.
//
// The on-disk word has its two 16-bit halves swapped relative to the
// logical VAX word; F32ToIEEE first un-swaps them, then extracts sign,
// exponent, and mantissa fields to assemble the IEEE-754 result.
//
// Special cases:
//   - The all-zero word converts to exactly 0.0.
//   - A re-biased exponent of zero or negative (VAX exponent too small for a
//     normalized IEEE float) flushes to 0.0; VAX has no subnormal
//     representation, so there is nothing to preserve.
//   - A re-biased exponent of 255 or greater clamps to a signed infinity
//     with zero mantissa.
func F32ToIEEE(word uint32) float32 {
	if word == 0 {
		return 0
	}

	// Un-swap the two middle-endian 16-bit halves into the logical VAX word.
	w := (word&0xFFFF)<<16 | (word >> 16)

	// Field positions within the logical word W:
	// sign = bit 15, exponent = bits 7-14, mantissa high = bits 0-6,
	// mantissa low = bits 16-31.
	sign := (w >> 15) & 0x1
	vaxExp := (w >> 7) & 0xFF
	mantHigh := w & 0x7F
	mantLow := (w >> 16) & 0xFFFF
	mantissa := mantHigh<<16 | mantLow

	ieeeExp := int32(vaxExp) - 128 + 127
	switch {
	case ieeeExp <= 0:
		return 0
	case ieeeExp >= 255:
		return math.Float32frombits(sign<<31 | 0xFF<<23)
	default:
		bits := sign<<31 | uint32(ieeeExp)<<23 | mantissa
		return math.Float32frombits(bits)
	}
}

// F32ToIEEESlice converts a batch of VAX F_FLOAT words to IEEE-754 float32
// values, writing results into dst. len(dst) must equal
// len(words); the caller owns both slices.
//
// This is the vectorized bulk path: a single pass over a flat slice rather
// than one F32ToIEEE call per struct field at the decode site. It has no
// SIMD intrinsics; batching the loop is what "vectorized" buys here.
func F32ToIEEESlice(words []uint32, dst []float32) {
	if len(dst) != len(words) {
		panic("vaxnumeric: F32ToIEEESlice: dst and words length mismatch")
	}

	for i, w := range words {
		dst[i] = F32ToIEEE(w)
	}
}

// ConvertBulk converts a freshly-gathered batch of VAX words into float32
// values using a pooled scratch buffer, returning a slice the caller owns
// (it is a copy, not a pool-backed slice, so it is safe to retain).
//
// ConvertBulk is the convenience form for standalone callers and tests;
// banks.gatherFloats pools its own uint32 scratch slice at the decode site
// instead of calling through here.
func ConvertBulk(words []uint32) []float32 {
	scratch, cleanup := pool.GetFloat32Slice(len(words))
	defer cleanup()

	F32ToIEEESlice(words, scratch)

	out := make([]float32, len(words))
	copy(out, scratch)

	return out
}

// TicksToTime converts a signed 64-bit count of 100-nanosecond ticks since
// the VAX/Java proprietary epoch into a civil UTC timestamp.
//
// The conversion divides by 10,000 to get milliseconds, then subtracts
// vaxEpochOffsetMillis to shift onto the Unix epoch.
func TicksToTime(ticks int64) time.Time {
	millis := ticks/10_000 - vaxEpochOffsetMillis
	return time.UnixMilli(millis).UTC()
}

// ieeeToF32 encodes an IEEE-754 float32 back into a VAX F_FLOAT word. It is
// the inverse of F32ToIEEE and exists solely to let tests construct VAX
// words from known IEEE values and assert the round trip. It is
// intentionally unexported: nothing in the decoder writes VAX files.
func ieeeToF32(f float32) uint32 {
	if f == 0 {
		return 0
	}

	bits := math.Float32bits(f)
	sign := (bits >> 31) & 0x1
	ieeeExp := (bits >> 23) & 0xFF
	mantissa := bits & 0x7FFFFF

	vaxExp := int32(ieeeExp) - 127 + 128

	mantHigh := mantissa >> 16
	mantLow := mantissa & 0xFFFF

	// Logical word W: sign at bit 15, exponent at bits 7-14, mantissa high
	// at bits 0-6, mantissa low at bits 16-31 (inverse of F32ToIEEE).
	w := sign<<15 | uint32(vaxExp)<<7 | mantHigh | mantLow<<16

	// The disk-to-logical swap is its own inverse: applying it again turns
	// the logical word back into the on-disk middle-endian layout.
	return (w&0xFFFF)<<16 | (w >> 16)
}
