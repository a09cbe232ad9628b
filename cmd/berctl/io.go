package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/danmuck/bertlv/internal/config"
)

func openInput(e *env, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(e.stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func readInput(e *env, path string) ([]byte, error) {
	r, err := openInput(e, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}

// withOutput runs fn against the named file, or stdout when path is empty.
func withOutput(e *env, path string, fn func(w io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(e.stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func resolveFormat(e *env, flag string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		format = e.cfg.Output.Format
	}
	switch format {
	case config.FormatHex, config.FormatRaw:
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q", flag)
	}
}

// readEncoded reads BER bytes in the given format. Hex input may contain
// whitespace and an optional 0x prefix.
func readEncoded(e *env, path, format string) ([]byte, error) {
	b, err := readInput(e, path)
	if err != nil {
		return nil, err
	}
	if format == config.FormatRaw {
		return b, nil
	}
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(b))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return out, nil
}

func writeEncoded(w io.Writer, b []byte, format string) error {
	if format == config.FormatRaw {
		_, err := w.Write(b)
		return err
	}
	_, err := fmt.Fprintln(w, hex.EncodeToString(b))
	return err
}
