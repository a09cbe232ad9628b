package frame

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/bertlv/internal/observability"
	"github.com/danmuck/bertlv/internal/protocol/ber"
	"github.com/danmuck/bertlv/internal/protocol/compress"
)

// Message is one value carried in one frame.
type Message struct {
	ID    uint64
	Value ber.Value
}

// Options controls value framing.
type Options struct {
	Limits Limits
	// Compression applies on write; nil means none. Reads follow the header.
	Compression compress.Compressor
	Decoder     ber.Decoder
}

func DefaultOptions() Options {
	return Options{
		Limits:  DefaultLimits(),
		Decoder: ber.Decoder{MaxDepth: ber.DefaultMaxDepth},
	}
}

// WriteValue encodes msg.Value, compresses it and writes one frame.
func WriteValue(w io.Writer, msg Message, opts Options) error {
	raw, err := ber.Encode(msg.Value)
	observability.RecordEncode(len(raw), err)
	if err != nil {
		return fmt.Errorf("frame: encode message %d: %w", msg.ID, err)
	}

	c := opts.Compression
	if c == nil {
		c = compress.None{}
	}
	payload, err := c.Compress(raw)
	if err != nil {
		return fmt.Errorf("frame: compress message %d: %w", msg.ID, err)
	}
	observability.RecordCompression(c.Name(), len(raw), len(payload))

	f := Frame{
		Header:  Header{MessageID: msg.ID, Compression: c.Code()},
		Payload: payload,
	}
	if err := WriteFrame(w, f, opts.Limits); err != nil {
		return err
	}
	log.Debug().
		Uint64("message_id", msg.ID).
		Str("compression", c.Name()).
		Int("raw_bytes", len(raw)).
		Int("wire_bytes", len(payload)).
		Msg("frame.WriteValue")
	return nil
}

// ReadValue reads one frame and decodes exactly one value from it.
// io.EOF is returned unchanged at a clean end of stream.
func ReadValue(r io.Reader, opts Options) (Message, error) {
	f, err := ReadFrame(r, opts.Limits)
	if err != nil {
		return Message{}, err
	}
	id := f.Header.MessageID

	c, err := compress.Lookup(f.Header.Compression)
	if err != nil {
		return Message{}, fmt.Errorf("frame: message %d: %w", id, err)
	}
	raw, err := c.Uncompress(f.Payload, opts.Limits.decompressLimit())
	if err != nil {
		return Message{}, fmt.Errorf("frame: decompress message %d: %w", id, err)
	}

	v, err := opts.Decoder.DecodeSingle(raw)
	observability.RecordDecode(len(raw), err)
	if err != nil {
		log.Warn().Uint64("message_id", id).Err(err).Msg("frame.ReadValue decode")
		return Message{}, fmt.Errorf("frame: decode message %d: %w", id, err)
	}
	log.Debug().
		Uint64("message_id", id).
		Str("compression", c.Name()).
		Int("raw_bytes", len(raw)).
		Str("kind", v.Kind().String()).
		Msg("frame.ReadValue")
	return Message{ID: id, Value: v}, nil
}
