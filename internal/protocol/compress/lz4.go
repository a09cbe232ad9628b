package compress

import (
	"bytes"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// LZ4 uses the lz4 frame format so the decoded size needs no side channel.
type LZ4 struct{}

func (LZ4) Code() Code   { return CodeLZ4 }
func (LZ4) Name() string { return "lz4" }

func (LZ4) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "lz4 write")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "lz4 close")
	}
	return buf.Bytes(), nil
}

func (LZ4) Uncompress(data []byte, max int) ([]byte, error) {
	out, err := readLimited(lz4.NewReader(bytes.NewReader(data)), max)
	if err != nil {
		return nil, errors.Wrap(err, "lz4 read")
	}
	return out, nil
}
