// Package archive transparently strips an optional gzip/zstd/lz4 wrapper
// from a JAZELLE file before any JAZELLE byte is interpreted.
//
// Multi-gigabyte legacy MiniDST files are routinely stored compressed in
// tape-backed archives; decoding the bare JAZELLE grammar never has to care,
// so this package is a pure addition layered outside it: once unwrapped,
// the bytes handed to stream.NewPhysicalReader are bit-identical to an
// uncompressed file.
//
// Open sniffs a handful of magic bytes and dispatches on the resulting
// format.CompressionType tag, read off the wire rather than passed in by
// the caller.
package archive

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/amete/jazelle/format"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// sniffPeekSize is the number of leading bytes Open needs buffered to
// recognize every magic below; bufio.Reader.Peek can return fewer at EOF,
// which sniff treats as "no match" rather than an error.
const sniffPeekSize = 4

func sniff(peek []byte) format.CompressionType {
	switch {
	case len(peek) >= 2 && bytes.Equal(peek[:2], gzipMagic):
		return format.CompressionGzip
	case len(peek) >= 4 && bytes.Equal(peek[:4], zstdMagic):
		return format.CompressionZstd
	case len(peek) >= 4 && bytes.Equal(peek[:4], lz4Magic):
		return format.CompressionLZ4
	default:
		return format.CompressionNone
	}
}

// Open opens path and returns a reader over the decompressed JAZELLE byte
// stream, transparently unwrapping any recognized compression envelope.
// The returned format.CompressionType reports what, if anything, was
// unwrapped. Callers must Close the returned reader to release the
// underlying file (and, for zstd, the decoder's resources).
func Open(path string) (io.ReadCloser, format.CompressionType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, format.CompressionNone, err
	}

	br := bufio.NewReader(f)
	peek, _ := br.Peek(sniffPeekSize)
	kind := sniff(peek)

	switch kind {
	case format.CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, kind, fmt.Errorf("opening gzip archive: %w", err)
		}
		return &wrapped{Reader: zr, closer: multiCloser{zr, f}}, kind, nil

	case format.CompressionZstd:
		dec, err := newZstdStreamDecoder(br)
		if err != nil {
			f.Close()
			return nil, kind, fmt.Errorf("opening zstd archive: %w", err)
		}
		return &wrapped{Reader: dec, closer: multiCloser{dec, f}}, kind, nil

	case format.CompressionLZ4:
		return &wrapped{Reader: lz4.NewReader(br), closer: f}, kind, nil

	default:
		return &wrapped{Reader: br, closer: f}, kind, nil
	}
}

// wrapped adapts a decompressing io.Reader plus the io.Closer(s) that must
// run when the caller is done, into a single io.ReadCloser.
type wrapped struct {
	io.Reader
	closer io.Closer
}

func (w *wrapped) Close() error {
	return w.closer.Close()
}

// multiCloser closes every member in order, returning the first error
// encountered but still closing the rest.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
