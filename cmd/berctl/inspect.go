package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/danmuck/bertlv/internal/protocol/ber"
)

const previewBytes = 24

type palette struct {
	offset    *color.Color
	composite *color.Color
	primitive *color.Color
	content   *color.Color
}

func newPalette(w io.Writer) palette {
	p := palette{
		offset:    color.New(color.FgHiBlack),
		composite: color.New(color.FgCyan, color.Bold),
		primitive: color.New(color.FgGreen),
		content:   color.New(color.FgYellow),
	}
	if !colorEnabled(w) {
		for _, c := range []*color.Color{p.offset, p.composite, p.primitive, p.content} {
			c.DisableColor()
		}
	}
	return p
}

func colorEnabled(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// cmdInspect prints one line per element, asn1parse style:
//
//	offset: d=depth hl=header len l=payload len kind [content]
func cmdInspect(e *env, c *inspectCmd) error {
	format, err := resolveFormat(e, c.Format)
	if err != nil {
		return err
	}
	b, err := readEncoded(e, c.Input, format)
	if err != nil {
		return err
	}
	p := newPalette(e.stdout)
	return ber.Walk(b, func(el ber.Element, payload []byte) error {
		kind := p.primitive
		if el.Kind.Composite() {
			kind = p.composite
		}
		line := fmt.Sprintf("%s d=%-2d hl=%d l=%4d %s",
			p.offset.Sprintf("%5d:", el.Offset),
			el.Depth, el.HeaderLen, el.Length,
			kind.Sprintf("%-16s", el.Kind))
		if preview := contentPreview(el.Kind, payload); preview != "" {
			line += " " + p.content.Sprint(preview)
		}
		_, err := fmt.Fprintln(e.stdout, strings.TrimRight(line, " "))
		return err
	})
}

func contentPreview(kind ber.Kind, payload []byte) string {
	switch kind {
	case ber.KindByteString:
		if len(payload) > previewBytes {
			return hex.EncodeToString(payload[:previewBytes]) + "..."
		}
		return hex.EncodeToString(payload)
	case ber.KindText:
		s := string(payload)
		if cut := previewBytes * 2; len(s) > cut {
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			s = s[:cut] + "..."
		}
		return strconv.Quote(s)
	case ber.KindUnsignedInteger:
		return new(big.Int).SetBytes(payload).String()
	default:
		return ""
	}
}
