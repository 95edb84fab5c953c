// Package hash wraps xxHash64 for the two places this decoder needs a
// fast, non-cryptographic digest: a one-shot ID over a string key, and a
// streaming Digest an EventRecord can write its binary fields into to
// produce a checksum across a whole decode pass.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest is a streaming xxHash64 accumulator. Callers write successive
// binary-encoded fields to it and read back the running sum at any point
// via Sum64; it never returns a non-nil error from Write.
type Digest = xxhash.Digest

// NewDigest returns a fresh streaming digest.
func NewDigest() *Digest {
	return xxhash.New()
}
