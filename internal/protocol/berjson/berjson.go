// Package berjson maps ber values to and from a JSON notation.
//
// Canonical form is one tagged object per value:
//
//	{"seq":[...]}  {"fixed":[...]}  {"bytes":"0a1b"}  {"uint":"1000"}  {"text":"..."}
//
// Unmarshal also accepts shorthands: an array is a Sequence, a string is
// Text and a non-negative integer literal is an UnsignedInteger.
package berjson

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/bertlv/internal/protocol/ber"
)

var ErrInvalidNotation = errors.New("berjson: invalid notation")

const (
	keySeq   = "seq"
	keyFixed = "fixed"
	keyBytes = "bytes"
	keyUint  = "uint"
	keyText  = "text"
)

// Marshal renders v in canonical notation.
func Marshal(v ber.Value) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// MarshalIndent is Marshal with indentation.
func MarshalIndent(v ber.Value, prefix, indent string) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(node, prefix, indent)
}

// Unmarshal parses one value in canonical or shorthand notation.
func Unmarshal(data []byte) (ber.Value, error) {
	dec := NewDecoder(bytes.NewReader(data))
	v, err := dec.Next()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidNotation)
	}
	if err != nil {
		return nil, err
	}
	if !dec.atEOF() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidNotation)
	}
	return v, nil
}

// Decoder reads a stream of whitespace-separated values.
type Decoder struct {
	dec *json.Decoder
	n   int
}

func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

// Next returns the next value, or io.EOF once the stream is exhausted.
func (d *Decoder) Next() (ber.Value, error) {
	var raw any
	if err := d.dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: value %d: %v", ErrInvalidNotation, d.n, err)
	}
	v, err := fromNode(raw, fmt.Sprintf("$%d", d.n))
	d.n++
	return v, err
}

// atEOF reports whether the input holds no further tokens. A stray closing
// bracket counts as a token.
func (d *Decoder) atEOF() bool {
	_, err := d.dec.Token()
	return err == io.EOF
}

func toNode(v ber.Value) (map[string]any, error) {
	switch x := v.(type) {
	case ber.Sequence:
		children, err := toNodes(x)
		if err != nil {
			return nil, err
		}
		return map[string]any{keySeq: children}, nil
	case ber.FixedSequence:
		children, err := toNodes(x)
		if err != nil {
			return nil, err
		}
		return map[string]any{keyFixed: children}, nil
	case ber.ByteString:
		return map[string]any{keyBytes: hex.EncodeToString(x)}, nil
	case ber.UnsignedInteger:
		return map[string]any{keyUint: x.Big().String()}, nil
	case ber.Text:
		return map[string]any{keyText: string(x)}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ber.ErrUnsupportedKind, v)
	}
}

func toNodes(vs []ber.Value) ([]any, error) {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		n, err := toNode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func fromNode(raw any, path string) (ber.Value, error) {
	switch x := raw.(type) {
	case []any:
		children, err := fromNodes(x, path)
		if err != nil {
			return nil, err
		}
		return ber.Sequence(children), nil
	case string:
		return ber.Text(x), nil
	case json.Number:
		return parseUint(x.String(), path)
	case map[string]any:
		return fromObject(x, path)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported json value %T", ErrInvalidNotation, path, raw)
	}
}

func fromObject(obj map[string]any, path string) (ber.Value, error) {
	if len(obj) != 1 {
		return nil, fmt.Errorf("%w: %s: object must have exactly one key", ErrInvalidNotation, path)
	}
	for key, val := range obj {
		path := path + "." + key
		switch key {
		case keySeq, keyFixed:
			list, ok := val.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s: expected array", ErrInvalidNotation, path)
			}
			children, err := fromNodes(list, path)
			if err != nil {
				return nil, err
			}
			if key == keyFixed {
				return ber.FixedSequence(children), nil
			}
			return ber.Sequence(children), nil
		case keyBytes:
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s: expected hex string", ErrInvalidNotation, path)
			}
			b, err := hex.DecodeString(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNotation, path, err)
			}
			return ber.ByteString(b), nil
		case keyUint:
			switch n := val.(type) {
			case string:
				return parseUint(n, path)
			case json.Number:
				return parseUint(n.String(), path)
			default:
				return nil, fmt.Errorf("%w: %s: expected integer", ErrInvalidNotation, path)
			}
		case keyText:
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s: expected string", ErrInvalidNotation, path)
			}
			return ber.Text(s), nil
		default:
			return nil, fmt.Errorf("%w: %s: unknown key", ErrInvalidNotation, path)
		}
	}
	return nil, nil
}

func fromNodes(list []any, path string) ([]ber.Value, error) {
	out := make([]ber.Value, 0, len(list))
	for i, item := range list {
		v, err := fromNode(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseUint(s, path string) (ber.Value, error) {
	u, err := ber.ParseUint(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNotation, path, err)
	}
	return u, nil
}
