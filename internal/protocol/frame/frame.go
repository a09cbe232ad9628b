package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/danmuck/bertlv/internal/protocol/compress"
)

const (
	FixedHeaderLen        = 24
	Magic          uint32 = 0xBE7100D1
	Version        uint16 = 1
)

var (
	ErrShortHeader        = errors.New("frame: short fixed header")
	ErrInvalidMagic       = errors.New("frame: invalid magic")
	ErrUnsupportedVersion = errors.New("frame: unsupported version")
	ErrReservedBits       = errors.New("frame: reserved header bits set")
	ErrPayloadTooLarge    = errors.New("frame: payload too large")
	ErrTruncated          = errors.New("frame: truncated payload")
)

// Header is the fixed wire header.
type Header struct {
	Magic       uint32
	Version     uint16
	Compression compress.Code
	Reserved    uint8
	MessageID   uint64
	PayloadLen  uint64
}

// Frame is one complete wire message. Payload holds the (possibly
// compressed) encoded value.
type Frame struct {
	Header  Header
	Payload []byte
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	// MaxPayloadBytes caps both the wire payload and its decompressed form.
	MaxPayloadBytes uint64
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 8 * 1024 * 1024,
	}
}

// decompressLimit is MaxPayloadBytes clamped to the int range.
func (l Limits) decompressLimit() int {
	if l.MaxPayloadBytes > math.MaxInt {
		return math.MaxInt
	}
	return int(l.MaxPayloadBytes)
}

// ReadFrame reads one frame. A clean end of stream before the first header
// byte is reported as io.EOF.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var fixed [FixedHeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, ErrShortHeader
		}
		return Frame{}, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return Frame{}, err
	}
	if h.PayloadLen > limits.MaxPayloadBytes {
		return Frame{}, ErrPayloadTooLarge
	}

	payload := make([]byte, h.PayloadLen)
	if h.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Frame{}, ErrTruncated
			}
			return Frame{}, err
		}
	}

	return Frame{Header: h, Payload: payload}, nil
}

// WriteFrame writes f, filling in magic, version and payload length.
func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	payloadLen := uint64(len(f.Payload))
	if payloadLen > limits.MaxPayloadBytes {
		return ErrPayloadTooLarge
	}

	h := f.Header
	h.Magic = Magic
	h.Version = Version
	h.Reserved = 0
	h.PayloadLen = payloadLen

	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	if payloadLen > 0 {
		if _, err := w.Write(f.Payload); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, FixedHeaderLen)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = byte(h.Compression)
	buf[7] = h.Reserved
	binary.BigEndian.PutUint64(buf[8:16], h.MessageID)
	binary.BigEndian.PutUint64(buf[16:24], h.PayloadLen)
	return buf
}

// DecodeHeader parses and validates a fixed header.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != FixedHeaderLen {
		return Header{}, fmt.Errorf("frame: invalid fixed header length: %d", len(b))
	}
	h := Header{
		Magic:       binary.BigEndian.Uint32(b[0:4]),
		Version:     binary.BigEndian.Uint16(b[4:6]),
		Compression: compress.Code(b[6]),
		Reserved:    b[7],
		MessageID:   binary.BigEndian.Uint64(b[8:16]),
		PayloadLen:  binary.BigEndian.Uint64(b[16:24]),
	}
	if h.Magic != Magic {
		return Header{}, ErrInvalidMagic
	}
	if h.Version != Version {
		return Header{}, ErrUnsupportedVersion
	}
	if h.Reserved != 0 {
		return Header{}, ErrReservedBits
	}
	return h, nil
}
