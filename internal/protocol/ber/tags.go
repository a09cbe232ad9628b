package ber

import "fmt"

// Tag is the leading byte of an encoded element.
type Tag byte

// Tag bytes from the wire contract.
const (
	TagUnsignedInteger Tag = 0x02
	TagByteString      Tag = 0x04
	TagText            Tag = 0x0c
	TagSequence        Tag = 0x30
	TagFixedSequence   Tag = 0x31
)

// Kind identifies one member of the closed value set.
type Kind uint8

const (
	KindSequence Kind = iota + 1
	KindFixedSequence
	KindByteString
	KindUnsignedInteger
	KindText
)

// Kinds lists every value kind in tag-table order.
var Kinds = [...]Kind{KindSequence, KindFixedSequence, KindByteString, KindUnsignedInteger, KindText}

// Tag returns the wire tag for k.
func (k Kind) Tag() (Tag, bool) {
	switch k {
	case KindSequence:
		return TagSequence, true
	case KindFixedSequence:
		return TagFixedSequence, true
	case KindByteString:
		return TagByteString, true
	case KindUnsignedInteger:
		return TagUnsignedInteger, true
	case KindText:
		return TagText, true
	default:
		return 0, false
	}
}

// Composite reports whether values of k carry child values.
func (k Kind) Composite() bool {
	return k == KindSequence || k == KindFixedSequence
}

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindFixedSequence:
		return "fixed_sequence"
	case KindByteString:
		return "byte_string"
	case KindUnsignedInteger:
		return "unsigned_integer"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Kind returns the value kind announced by t.
func (t Tag) Kind() (Kind, bool) {
	switch t {
	case TagSequence:
		return KindSequence, true
	case TagFixedSequence:
		return KindFixedSequence, true
	case TagByteString:
		return KindByteString, true
	case TagUnsignedInteger:
		return KindUnsignedInteger, true
	case TagText:
		return KindText, true
	default:
		return 0, false
	}
}

func (t Tag) String() string {
	if k, ok := t.Kind(); ok {
		return k.String()
	}
	return fmt.Sprintf("tag(0x%02x)", byte(t))
}
