package ber

import "math/bits"

const (
	shortFormMax  = 0x7f
	longFormFlag  = 0x80
	maxLengthSize = 8
)

// LengthSize returns how many bytes the length field for n occupies.
func LengthSize(n uint64) int {
	if n <= shortFormMax {
		return 1
	}
	return 1 + minimalSize(n)
}

// EncodeLength returns the length field for a payload of n bytes.
func EncodeLength(n uint64) []byte {
	return AppendLength(make([]byte, 0, LengthSize(n)), n)
}

// AppendLength appends the length field for n to dst.
// Short form holds n directly; long form is 0x80|k followed by k big-endian bytes.
func AppendLength(dst []byte, n uint64) []byte {
	if n <= shortFormMax {
		return append(dst, byte(n))
	}
	k := minimalSize(n)
	dst = append(dst, byte(longFormFlag|k))
	for i := k - 1; i >= 0; i-- {
		dst = append(dst, byte(n>>(8*uint(i))))
	}
	return dst
}

// DecodeLength reads a length field from the front of b and returns the
// length and the bytes following the field.
func DecodeLength(b []byte) (uint64, []byte, error) {
	if len(b) == 0 {
		return 0, nil, ErrTruncated
	}
	first := b[0]
	if first < longFormFlag {
		return uint64(first), b[1:], nil
	}
	k := int(first - longFormFlag)
	if k > maxLengthSize {
		return 0, nil, ErrLengthOverflow
	}
	if len(b)-1 < k {
		return 0, nil, ErrTruncated
	}
	var n uint64
	for _, c := range b[1 : 1+k] {
		n = n<<8 | uint64(c)
	}
	return n, b[1+k:], nil
}

func minimalSize(n uint64) int {
	return (bits.Len64(n) + 7) / 8
}
