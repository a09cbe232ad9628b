package ber

import (
	"math/big"
	"unicode/utf8"
)

// DefaultMaxDepth bounds composite nesting for Decode and DecodeSingle.
const DefaultMaxDepth = 512

// Decoder decodes TLV buffers. The zero value applies no depth limit.
type Decoder struct {
	// MaxDepth is the deepest composite nesting accepted; 0 disables the check.
	MaxDepth int
}

var defaultDecoder = Decoder{MaxDepth: DefaultMaxDepth}

// Decode decodes one value from the front of b and returns it together with
// the unconsumed bytes.
func Decode(b []byte) (Value, []byte, error) {
	return defaultDecoder.Decode(b)
}

// DecodeSingle decodes b as exactly one value.
func DecodeSingle(b []byte) (Value, error) {
	return defaultDecoder.DecodeSingle(b)
}

// Decode decodes one value from the front of b.
func (d Decoder) Decode(b []byte) (Value, []byte, error) {
	return d.decode(b, 0, 0)
}

// DecodeSingle decodes b as exactly one value and rejects any residual.
func (d Decoder) DecodeSingle(b []byte) (Value, error) {
	v, rest, err := d.decode(b, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, &DecodeError{Offset: len(b) - len(rest), Tag: Tag(rest[0]), Err: ErrTrailingBytes}
	}
	return v, nil
}

// decode reads one element from b. off is the position of b[0] in the
// top-level buffer and is only used for error reporting.
func (d Decoder) decode(b []byte, off, depth int) (Value, []byte, error) {
	payload, rest, tag, kind, hdr, err := readHeader(b, off)
	if err != nil {
		return nil, nil, err
	}
	switch kind {
	case KindByteString:
		out := make([]byte, len(payload))
		copy(out, payload)
		return ByteString(out), rest, nil
	case KindText:
		if !utf8.Valid(payload) {
			return nil, nil, decodeErr(off, tag, ErrInvalidText)
		}
		return Text(payload), rest, nil
	case KindUnsignedInteger:
		return UnsignedInteger{n: new(big.Int).SetBytes(payload)}, rest, nil
	case KindSequence:
		children, err := d.decodeChildren(payload, off+hdr, depth+1, tag)
		if err != nil {
			return nil, nil, err
		}
		return Sequence(children), rest, nil
	case KindFixedSequence:
		children, err := d.decodeChildren(payload, off+hdr, depth+1, tag)
		if err != nil {
			return nil, nil, err
		}
		return FixedSequence(children), rest, nil
	default:
		return nil, nil, decodeErr(off, tag, ErrUnknownTag)
	}
}

// decodeChildren consumes window left to right. window is already cut to the
// composite's declared length, so children cannot read past it.
func (d Decoder) decodeChildren(window []byte, off, depth int, tag Tag) ([]Value, error) {
	if d.MaxDepth > 0 && depth > d.MaxDepth {
		return nil, decodeErr(off, tag, ErrDepthExceeded)
	}
	children := make([]Value, 0, 4)
	start := len(window)
	for len(window) > 0 {
		child, next, err := d.decode(window, off+start-len(window), depth)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		window = next
	}
	return children, nil
}

// readHeader splits b into the element payload and everything after it.
// hdr is the tag plus length field size.
func readHeader(b []byte, off int) (payload, rest []byte, tag Tag, kind Kind, hdr int, err error) {
	if len(b) == 0 {
		return nil, nil, 0, 0, 0, decodeErr(off, 0, ErrTruncated)
	}
	tag = Tag(b[0])
	kind, ok := tag.Kind()
	if !ok {
		return nil, nil, tag, 0, 0, decodeErr(off, tag, ErrUnknownTag)
	}
	n, afterLen, err := DecodeLength(b[1:])
	if err != nil {
		return nil, nil, tag, kind, 0, decodeErr(off, tag, err)
	}
	if n > uint64(len(afterLen)) {
		return nil, nil, tag, kind, 0, decodeErr(off, tag, ErrTruncated)
	}
	hdr = len(b) - len(afterLen)
	return afterLen[:n], afterLen[n:], tag, kind, hdr, nil
}
