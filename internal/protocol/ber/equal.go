package ber

import "bytes"

// Equal reports whether a and b are the same tree, including the
// Sequence/FixedSequence distinction. A nil ByteString equals an empty one.
func Equal(a, b Value) bool {
	return equal(a, b, true)
}

// EqualContents is Equal without the container kind check: a Sequence and a
// FixedSequence holding equal children compare equal.
func EqualContents(a, b Value) bool {
	return equal(a, b, false)
}

func equal(a, b Value, strict bool) bool {
	switch x := a.(type) {
	case Sequence:
		return equalComposite(x, b, KindSequence, strict)
	case FixedSequence:
		return equalComposite(x, b, KindFixedSequence, strict)
	case ByteString:
		y, ok := b.(ByteString)
		return ok && bytes.Equal(x, y)
	case UnsignedInteger:
		y, ok := b.(UnsignedInteger)
		return ok && x.Cmp(y) == 0
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case nil:
		return b == nil
	default:
		return false
	}
}

func equalComposite(xs []Value, b Value, kind Kind, strict bool) bool {
	var ys []Value
	switch y := b.(type) {
	case Sequence:
		ys = y
	case FixedSequence:
		ys = y
	default:
		return false
	}
	if strict && b.Kind() != kind {
		return false
	}
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !equal(xs[i], ys[i], strict) {
			return false
		}
	}
	return true
}
