// Package compress owns payload compression codecs for framed values.
//
// Each codec has a stable one-byte code carried on the wire and a name used
// in configuration.
package compress

import (
	"bytes"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnknownCodec = errors.New("compress: unknown codec")
	ErrTooLarge     = errors.New("compress: decompressed payload exceeds limit")
)

// Code identifies a codec on the wire.
type Code uint8

const (
	CodeNone   Code = 0
	CodeGzip   Code = 1
	CodeLZ4    Code = 2
	CodeSnappy Code = 3
	CodeZstd   Code = 4
)

// Compressor compresses and restores whole payloads.
type Compressor interface {
	Code() Code
	Name() string
	Compress(data []byte) ([]byte, error)
	// Uncompress fails with ErrTooLarge if the output would exceed max bytes.
	Uncompress(data []byte, max int) ([]byte, error)
}

var (
	byCode = map[Code]Compressor{}
	byName = map[string]Compressor{}
)

func init() {
	for _, c := range []Compressor{None{}, Gzip{}, LZ4{}, Snappy{}, Zstd{}} {
		byCode[c.Code()] = c
		byName[c.Name()] = c
	}
}

// Lookup returns the codec for a wire code.
func Lookup(code Code) (Compressor, error) {
	c, ok := byCode[code]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCodec, "code %d", code)
	}
	return c, nil
}

// ByName returns the codec registered under name (case-insensitive).
// An empty name selects "none".
func ByName(name string) (Compressor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return None{}, nil
	}
	c, ok := byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCodec, "name %q", name)
	}
	return c, nil
}

// Names returns registered codec names in sorted order.
func Names() []string {
	out := make([]string, 0, len(byName))
	for name := range byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// readLimited drains r into memory, failing once more than limit bytes
// arrive. A negative limit admits nothing.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	capped := int64(limit)
	if capped < 0 {
		capped = 0
	}
	window := capped
	if window < math.MaxInt64 {
		window++
	}
	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, window))
	if err != nil {
		return nil, err
	}
	if n > capped {
		return nil, ErrTooLarge
	}
	return buf.Bytes(), nil
}

// None passes payloads through unchanged.
type None struct{}

func (None) Code() Code   { return CodeNone }
func (None) Name() string { return "none" }

func (None) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (None) Uncompress(data []byte, max int) ([]byte, error) {
	if len(data) > max {
		return nil, ErrTooLarge
	}
	return data, nil
}
