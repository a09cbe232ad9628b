package ber

import (
	"fmt"
	"math/big"
)

// Value is one node of an encodable tree. The set of implementations is
// closed: Sequence, FixedSequence, ByteString, UnsignedInteger and Text.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// Sequence is an ordered list of values (tag 0x30).
type Sequence []Value

// FixedSequence shares the Sequence payload layout and differs only by tag (0x31).
type FixedSequence []Value

// ByteString is an opaque byte payload (tag 0x04).
type ByteString []byte

// Text is a UTF-8 character string (tag 0x0c).
type Text string

// UnsignedInteger is a non-negative integer of arbitrary size (tag 0x02).
// The zero value is 0.
type UnsignedInteger struct {
	n *big.Int
}

func (Sequence) Kind() Kind        { return KindSequence }
func (FixedSequence) Kind() Kind   { return KindFixedSequence }
func (ByteString) Kind() Kind      { return KindByteString }
func (UnsignedInteger) Kind() Kind { return KindUnsignedInteger }
func (Text) Kind() Kind            { return KindText }

func (Sequence) isValue()        {}
func (FixedSequence) isValue()   {}
func (ByteString) isValue()      {}
func (UnsignedInteger) isValue() {}
func (Text) isValue()            {}

// Uint returns the integer value v.
func Uint(v uint64) UnsignedInteger {
	return UnsignedInteger{n: new(big.Int).SetUint64(v)}
}

// BigUint copies n. Negative values are accepted here and rejected by Encode.
func BigUint(n *big.Int) UnsignedInteger {
	if n == nil {
		return UnsignedInteger{}
	}
	return UnsignedInteger{n: new(big.Int).Set(n)}
}

// ParseUint parses a base-10 non-negative integer.
func ParseUint(s string) (UnsignedInteger, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return UnsignedInteger{}, fmt.Errorf("ber: invalid integer %q", s)
	}
	if n.Sign() < 0 {
		return UnsignedInteger{}, fmt.Errorf("%w: negative integer %q", ErrUnsupportedKind, s)
	}
	return UnsignedInteger{n: n}, nil
}

// Big returns a copy of the integer.
func (u UnsignedInteger) Big() *big.Int {
	if u.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(u.n)
}

// Uint64 returns the integer if it fits in 64 bits.
func (u UnsignedInteger) Uint64() (uint64, bool) {
	if u.n == nil {
		return 0, true
	}
	if u.n.Sign() < 0 || !u.n.IsUint64() {
		return 0, false
	}
	return u.n.Uint64(), true
}

// Sign returns -1, 0 or +1.
func (u UnsignedInteger) Sign() int {
	if u.n == nil {
		return 0
	}
	return u.n.Sign()
}

// Cmp compares u and o numerically.
func (u UnsignedInteger) Cmp(o UnsignedInteger) int {
	return u.Big().Cmp(o.Big())
}

func (u UnsignedInteger) magnitude() []byte {
	if u.n == nil {
		return nil
	}
	return u.n.Bytes()
}
