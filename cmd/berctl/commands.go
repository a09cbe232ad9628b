package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/bertlv/internal/config"
	"github.com/danmuck/bertlv/internal/observability"
	"github.com/danmuck/bertlv/internal/protocol/ber"
	"github.com/danmuck/bertlv/internal/protocol/berjson"
	"github.com/danmuck/bertlv/internal/protocol/compress"
	"github.com/danmuck/bertlv/internal/protocol/frame"
)

func cmdEncode(e *env, c *encodeCmd) error {
	format, err := resolveFormat(e, c.Format)
	if err != nil {
		return err
	}
	in, err := readInput(e, c.Input)
	if err != nil {
		return err
	}
	v, err := berjson.Unmarshal(in)
	if err != nil {
		return err
	}
	b, err := ber.Encode(v)
	observability.RecordEncode(len(b), err)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	log.Debug().Str("kind", v.Kind().String()).Int("bytes", len(b)).Msg("berctl.encode")
	return withOutput(e, c.Output, func(w io.Writer) error {
		return writeEncoded(w, b, format)
	})
}

func cmdDecode(e *env, c *decodeCmd) error {
	format, err := resolveFormat(e, c.Format)
	if err != nil {
		return err
	}
	b, err := readEncoded(e, c.Input, format)
	if err != nil {
		return err
	}
	v, rest, err := e.cfg.Decoder().Decode(b)
	if err == nil && len(rest) > 0 && !c.AllowTrailing {
		err = &ber.DecodeError{Offset: len(b) - len(rest), Tag: ber.Tag(rest[0]), Err: ber.ErrTrailingBytes}
	}
	observability.RecordDecode(len(b)-len(rest), err)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(rest) > 0 {
		log.Warn().Int("residual_bytes", len(rest)).Msg("berctl.decode trailing bytes ignored")
	}
	out, err := marshalValue(e, v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, string(out))
	return err
}

func cmdPack(e *env, c *packCmd) error {
	opts, err := e.cfg.FrameOptions()
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Compression) != "" {
		if opts.Compression, err = compress.ByName(c.Compression); err != nil {
			return err
		}
	}
	r, err := openInput(e, c.Input)
	if err != nil {
		return err
	}
	defer r.Close()

	dec := berjson.NewDecoder(r)
	return withOutput(e, c.Output, func(w io.Writer) error {
		id := c.FirstID
		for {
			v, err := dec.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			if err := frame.WriteValue(w, frame.Message{ID: id, Value: v}, opts); err != nil {
				return err
			}
			id++
		}
		log.Info().
			Uint64("frames", id-c.FirstID).
			Str("compression", opts.Compression.Name()).
			Msg("berctl.pack")
		return nil
	})
}

type unpackedLine struct {
	ID    uint64          `json:"id"`
	Value json.RawMessage `json:"value"`
}

func cmdUnpack(e *env, c *unpackCmd) error {
	opts, err := e.cfg.FrameOptions()
	if err != nil {
		return err
	}
	r, err := openInput(e, c.Input)
	if err != nil {
		return err
	}
	defer r.Close()

	enc := json.NewEncoder(e.stdout)
	for {
		msg, err := frame.ReadValue(r, opts)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err := berjson.Marshal(msg.Value)
		if err != nil {
			return err
		}
		if err := enc.Encode(unpackedLine{ID: msg.ID, Value: value}); err != nil {
			return err
		}
	}
}

func cmdSample(e *env, c *sampleCmd) error {
	v := sampleTree()
	if c.Encoded {
		b, err := ber.Encode(v)
		if err != nil {
			return err
		}
		return writeEncoded(e.stdout, b, config.FormatHex)
	}
	out, err := marshalValue(e, v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, string(out))
	return err
}

func cmdConfig(e *env, c *configCmd) error {
	switch {
	case c.Init != nil:
		if err := config.WriteTemplate(c.Init.Output, c.Init.Force); err != nil {
			return err
		}
		log.Info().Str("path", c.Init.Output).Msg("berctl.config wrote template")
		return nil
	case c.Show != nil:
		out, err := config.Render(e.cfg)
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(out)
		return err
	case c.Validate != nil:
		if _, err := config.Load(c.Validate.Input); err != nil {
			return err
		}
		_, err := fmt.Fprintf(e.stdout, "%s: ok\n", c.Validate.Input)
		return err
	default:
		return errors.New("config: expected init, show or validate")
	}
}

func marshalValue(e *env, v ber.Value) ([]byte, error) {
	if e.cfg.Output.Indent {
		return berjson.MarshalIndent(v, "", "  ")
	}
	return berjson.Marshal(v)
}

// sampleTree is the reference tree covering every kind at depth three.
func sampleTree() ber.Value {
	return ber.Sequence{
		ber.FixedSequence{
			ber.ByteString{0x00, 0x01},
			ber.Text("test"),
			ber.Sequence{ber.Uint(100), ber.Uint(3)},
			ber.Sequence{},
			ber.Sequence{ber.ByteString{0x00}},
		},
		ber.Sequence{ber.ByteString{0x01, 0x32}, ber.Uint(1000)},
	}
}
