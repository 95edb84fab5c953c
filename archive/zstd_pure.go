//go:build purego

package archive

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderCloser adapts klauspost/compress/zstd's Decoder.Close (which
// has no return value) to io.Closer.
type zstdDecoderCloser struct {
	*zstd.Decoder
}

func (c *zstdDecoderCloser) Close() error {
	c.Decoder.Close()
	return nil
}

func newZstdStreamDecoder(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &zstdDecoderCloser{Decoder: dec}, nil
}
