package loader

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/veela/pkg/errors"
)

// Decompressor opens a decompressing reader over a compressed payload.
type Decompressor func(r io.Reader) (io.ReadCloser, error)

// Gzip is the default decompressor.
func Gzip(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func decompress(d Decompressor, data []byte) ([]byte, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeCompressionUnsupported, "payload is compressed but no decompressor is available")
	}
	rc, err := d(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "open compressed stream")
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decompress payload")
	}
	return out, nil
}
