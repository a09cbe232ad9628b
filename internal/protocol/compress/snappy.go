package compress

import (
	"bytes"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Snappy uses the snappy framing format.
type Snappy struct{}

func (Snappy) Code() Code   { return CodeSnappy }
func (Snappy) Name() string { return "snappy" }

func (Snappy) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "snappy write")
	}
	// Close must run before reading buf, or the last block is lost.
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "snappy close")
	}
	return buf.Bytes(), nil
}

func (Snappy) Uncompress(data []byte, max int) ([]byte, error) {
	out, err := readLimited(snappy.NewReader(bytes.NewReader(data)), max)
	if err != nil {
		return nil, errors.Wrap(err, "snappy read")
	}
	return out, nil
}
