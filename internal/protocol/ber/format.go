package ber

import (
	"encoding/hex"
	"strconv"
	"strings"
)

func (s Sequence) String() string      { return formatComposite("SEQUENCE", s) }
func (s FixedSequence) String() string { return formatComposite("FIXED", s) }
func (b ByteString) String() string    { return "BYTES(" + hex.EncodeToString(b) + ")" }
func (u UnsignedInteger) String() string {
	return "UINT(" + u.Big().String() + ")"
}
func (t Text) String() string { return "TEXT(" + strconv.Quote(string(t)) + ")" }

func formatComposite(name string, children []Value) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('{')
	for i, c := range children {
		if i > 0 {
			sb.WriteString(", ")
		}
		if c == nil {
			sb.WriteString("<nil>")
			continue
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
