//go:build !purego

package archive

import (
	"io"

	"github.com/valyala/gozstd"
)

// zstdStreamDecoder adapts gozstd's cgo-backed streaming reader to
// io.ReadCloser; gozstd.Reader.Release frees the underlying C decoder
// state and never fails, so Close always returns nil.
type zstdStreamDecoder struct {
	r *gozstd.Reader
}

func newZstdStreamDecoder(r io.Reader) (io.ReadCloser, error) {
	return &zstdStreamDecoder{r: gozstd.NewReader(r)}, nil
}

func (d *zstdStreamDecoder) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *zstdStreamDecoder) Close() error {
	d.r.Release()
	return nil
}
