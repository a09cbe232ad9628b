package config

import (
	"github.com/danmuck/bertlv/internal/protocol/ber"
	"github.com/danmuck/bertlv/internal/protocol/compress"
	"github.com/danmuck/bertlv/internal/protocol/frame"
)

func (c Config) Decoder() ber.Decoder {
	return ber.Decoder{MaxDepth: c.Codec.MaxDepth}
}

func (c Config) FrameOptions() (frame.Options, error) {
	comp, err := compress.ByName(c.Frame.Compression)
	if err != nil {
		return frame.Options{}, err
	}
	return frame.Options{
		Limits:      frame.Limits{MaxPayloadBytes: c.Frame.MaxPayloadBytes},
		Compression: comp,
		Decoder:     c.Decoder(),
	}, nil
}
