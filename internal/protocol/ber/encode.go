package ber

import (
	"fmt"
	"unicode/utf8"
)

// guardByte prefixes every integer payload. It carries no numeric value.
const guardByte = 0x00

// Encode returns the TLV encoding of v.
func Encode(v Value) ([]byte, error) {
	return Append(nil, v)
}

// Append appends the TLV encoding of v to dst. On error dst is returned
// unchanged alongside the error.
func Append(dst []byte, v Value) ([]byte, error) {
	switch x := v.(type) {
	case Sequence:
		return appendComposite(dst, TagSequence, x)
	case FixedSequence:
		return appendComposite(dst, TagFixedSequence, x)
	case ByteString:
		return appendPrimitive(dst, TagByteString, x), nil
	case UnsignedInteger:
		if x.Sign() < 0 {
			return dst, fmt.Errorf("%w: negative integer %s", ErrUnsupportedKind, x.n)
		}
		mag := x.magnitude()
		payload := make([]byte, 0, 1+len(mag))
		payload = append(payload, guardByte)
		payload = append(payload, mag...)
		return appendPrimitive(dst, TagUnsignedInteger, payload), nil
	case Text:
		if !utf8.ValidString(string(x)) {
			return dst, ErrInvalidText
		}
		return appendPrimitive(dst, TagText, []byte(x)), nil
	case nil:
		return dst, fmt.Errorf("%w: nil value", ErrUnsupportedKind)
	default:
		return dst, fmt.Errorf("%w: %T", ErrUnsupportedKind, v)
	}
}

func appendComposite(dst []byte, tag Tag, children []Value) ([]byte, error) {
	var payload []byte
	for i, child := range children {
		var err error
		if payload, err = Append(payload, child); err != nil {
			return dst, fmt.Errorf("%s[%d]: %w", tag, i, err)
		}
	}
	return appendPrimitive(dst, tag, payload), nil
}

func appendPrimitive(dst []byte, tag Tag, payload []byte) []byte {
	dst = append(dst, byte(tag))
	dst = AppendLength(dst, uint64(len(payload)))
	return append(dst, payload...)
}
