package ber

import (
	"errors"
	"unicode/utf8"
)

// ErrSkipChildren may be returned by a WalkFunc on a composite element to
// skip its children without aborting the walk.
var ErrSkipChildren = errors.New("ber: skip children")

// Element describes one encoded TLV header.
type Element struct {
	Offset    int
	Depth     int
	Tag       Tag
	Kind      Kind
	HeaderLen int
	Length    int
}

// End is the offset just past the element's payload.
func (e Element) End() int {
	return e.Offset + e.HeaderLen + e.Length
}

// WalkFunc is called for every element in document order.
type WalkFunc func(e Element, payload []byte) error

// Walk visits every element of the values encoded back to back in b without
// materializing them. Composite payloads are walked inside their declared
// window and Text payloads must be valid UTF-8, so Walk fails wherever
// Decode does. Nesting is capped at DefaultMaxDepth.
func Walk(b []byte, fn WalkFunc) error {
	return walk(b, 0, 0, fn)
}

func walk(b []byte, off, depth int, fn WalkFunc) error {
	start := len(b)
	for len(b) > 0 {
		elemOff := off + start - len(b)
		payload, rest, tag, kind, hdr, err := readHeader(b, elemOff)
		if err != nil {
			return err
		}
		if kind == KindText && !utf8.Valid(payload) {
			return decodeErr(elemOff, tag, ErrInvalidText)
		}
		e := Element{Offset: elemOff, Depth: depth, Tag: tag, Kind: kind, HeaderLen: hdr, Length: len(payload)}
		err = fn(e, payload)
		switch {
		case errors.Is(err, ErrSkipChildren):
		case err != nil:
			return err
		case kind.Composite():
			if depth+1 > DefaultMaxDepth {
				return decodeErr(elemOff, tag, ErrDepthExceeded)
			}
			if err := walk(payload, elemOff+hdr, depth+1, fn); err != nil {
				return err
			}
		}
		b = rest
	}
	return nil
}
