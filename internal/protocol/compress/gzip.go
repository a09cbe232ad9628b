package compress

import (
	"bytes"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Gzip uses klauspost's drop-in gzip implementation.
type Gzip struct{}

func (Gzip) Code() Code   { return CodeGzip }
func (Gzip) Name() string { return "gzip" }

func (Gzip) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "gzip write")
	}
	// Close flushes the trailer; the buffer is incomplete until it returns.
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "gzip close")
	}
	return buf.Bytes(), nil
}

func (Gzip) Uncompress(data []byte, max int) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "gzip header")
	}
	defer func() {
		_ = r.Close()
	}()
	out, err := readLimited(r, max)
	if err != nil {
		return nil, errors.Wrap(err, "gzip read")
	}
	return out, nil
}
