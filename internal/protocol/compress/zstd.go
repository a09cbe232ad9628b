package compress

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Zstd uses klauspost's zstd implementation.
type Zstd struct{}

func (Zstd) Code() Code   { return CodeZstd }
func (Zstd) Name() string { return "zstd" }

func (Zstd) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "zstd writer")
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, "zstd write")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "zstd close")
	}
	return buf.Bytes(), nil
}

func (Zstd) Uncompress(data []byte, max int) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, errors.Wrap(err, "zstd reader")
	}
	defer r.Close()
	out, err := readLimited(r, max)
	if err != nil {
		return nil, errors.Wrap(err, "zstd read")
	}
	return out, nil
}
