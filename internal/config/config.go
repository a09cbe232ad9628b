package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	pelletier "github.com/pelletier/go-toml/v2"

	"github.com/danmuck/bertlv/internal/logging"
	"github.com/danmuck/bertlv/internal/protocol/ber"
	"github.com/danmuck/bertlv/internal/protocol/compress"
	"github.com/danmuck/bertlv/internal/protocol/frame"
)

const (
	FormatHex = "hex"
	FormatRaw = "raw"
)

// MaxPayloadCeiling bounds frame.max_payload_bytes so the limit stays a
// valid in-memory buffer size on every platform.
const MaxPayloadCeiling = math.MaxInt32

var ErrUnknownKey = errors.New("config: unknown key")

type Config struct {
	Codec  CodecConfig  `toml:"codec"`
	Frame  FrameConfig  `toml:"frame"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type CodecConfig struct {
	// MaxDepth caps composite nesting on decode; 0 disables the cap.
	MaxDepth int `toml:"max_depth"`
}

type FrameConfig struct {
	MaxPayloadBytes uint64 `toml:"max_payload_bytes"`
	Compression     string `toml:"compression"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Indent bool   `toml:"indent"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// ValidationError names the offending key.
type ValidationError struct {
	Key    string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

func Default() Config {
	return Config{
		Codec:  CodecConfig{MaxDepth: ber.DefaultMaxDepth},
		Frame:  FrameConfig{MaxPayloadBytes: frame.DefaultLimits().MaxPayloadBytes, Compression: "none"},
		Output: OutputConfig{Format: FormatHex, Indent: true},
		Log:    LogConfig{Level: "info"},
	}
}

// Load overlays the keys present in the file at path onto Default and
// validates the result. Keys the file does not define keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0].String())
	}

	if meta.IsDefined("codec", "max_depth") {
		cfg.Codec.MaxDepth = raw.Codec.MaxDepth
	}
	if meta.IsDefined("frame", "max_payload_bytes") {
		cfg.Frame.MaxPayloadBytes = raw.Frame.MaxPayloadBytes
	}
	if meta.IsDefined("frame", "compression") {
		cfg.Frame.Compression = strings.ToLower(strings.TrimSpace(raw.Frame.Compression))
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(raw.Output.Format))
	}
	if meta.IsDefined("output", "indent") {
		cfg.Output.Indent = raw.Output.Indent
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is non-empty.
func LoadOrDefault(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}

func Validate(cfg Config) error {
	if cfg.Codec.MaxDepth < 0 {
		return ValidationError{Key: "codec.max_depth", Reason: "must not be negative"}
	}
	if cfg.Frame.MaxPayloadBytes == 0 {
		return ValidationError{Key: "frame.max_payload_bytes", Reason: "must be positive"}
	}
	if cfg.Frame.MaxPayloadBytes > MaxPayloadCeiling {
		return ValidationError{
			Key:    "frame.max_payload_bytes",
			Reason: fmt.Sprintf("must not exceed %d", uint64(MaxPayloadCeiling)),
		}
	}
	if _, err := compress.ByName(cfg.Frame.Compression); err != nil {
		return ValidationError{
			Key:    "frame.compression",
			Reason: fmt.Sprintf("unknown codec %q (known: %s)", cfg.Frame.Compression, strings.Join(compress.Names(), ", ")),
		}
	}
	switch cfg.Output.Format {
	case FormatHex, FormatRaw:
	default:
		return ValidationError{Key: "output.format", Reason: fmt.Sprintf("unknown format %q", cfg.Output.Format)}
	}
	if cfg.Log.Level != "" {
		if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
			return ValidationError{Key: "log.level", Reason: fmt.Sprintf("unknown level %q", cfg.Log.Level)}
		}
	}
	return nil
}

// Render returns cfg as TOML.
func Render(cfg Config) ([]byte, error) {
	b, err := pelletier.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config render failed: %w", err)
	}
	return b, nil
}

// WriteRendered writes Render(cfg) to path.
func WriteRendered(path string, cfg Config) error {
	b, err := Render(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
