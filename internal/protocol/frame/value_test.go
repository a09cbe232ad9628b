package frame

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/danmuck/bertlv/internal/protocol/ber"
	"github.com/danmuck/bertlv/internal/protocol/compress"
	"github.com/danmuck/bertlv/internal/testutil/testlog"
)

func sampleValue() ber.Value {
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

func TestWriteReadValueEachCompression(t *testing.T) {
	testlog.Start(t)
	for _, name := range compress.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := compress.ByName(name)
			if err != nil {
				t.Fatalf("lookup %s: %v", name, err)
			}
			opts := DefaultOptions()
			opts.Compression = c

			var buf bytes.Buffer
			if err := WriteValue(&buf, Message{ID: 9, Value: sampleValue()}, opts); err != nil {
				t.Fatalf("write value: %v", err)
			}
			got, err := ReadValue(&buf, DefaultOptions())
			if err != nil {
				t.Fatalf("read value: %v", err)
			}
			if got.ID != 9 {
				t.Fatalf("unexpected id: %d", got.ID)
			}
			if !ber.Equal(sampleValue(), got.Value) {
				t.Fatalf("value mismatch: got %s", got.Value)
			}
		})
	}
}

func TestReadValueStream(t *testing.T) {
	testlog.Start(t)
	var buf bytes.Buffer
	opts := DefaultOptions()
	for i := uint64(1); i <= 3; i++ {
		if err := WriteValue(&buf, Message{ID: i, Value: ber.Uint(i * 10)}, opts); err != nil {
			t.Fatalf("write value %d: %v", i, err)
		}
	}

	var ids []uint64
	for {
		msg, err := ReadValue(&buf, opts)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("read value: %v", err)
		}
		ids = append(ids, msg.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestReadValueRejectsTrailingBytes(t *testing.T) {
	testlog.Start(t)
	payload := []byte{0x04, 0x00, 0x04, 0x00}
	var buf bytes.Buffer
	if err := WriteFrame(&buf, Frame{Header: Header{MessageID: 5}, Payload: payload}, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if _, err := ReadValue(&buf, DefaultOptions()); !errors.Is(err, ber.ErrTrailingBytes) {
		t.Fatalf("expected ErrTrailingBytes, got %v", err)
	}
}

func TestReadValueUnknownCompression(t *testing.T) {
	testlog.Start(t)
	var buf bytes.Buffer
	f := Frame{Header: Header{MessageID: 1, Compression: compress.Code(99)}, Payload: []byte{0x30, 0x00}}
	if err := WriteFrame(&buf, f, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if _, err := ReadValue(&buf, DefaultOptions()); !errors.Is(err, compress.ErrUnknownCodec) {
		t.Fatalf("expected ErrUnknownCodec, got %v", err)
	}
}

func TestWriteValueUnsupportedKind(t *testing.T) {
	testlog.Start(t)
	err := WriteValue(io.Discard, Message{ID: 1, Value: ber.Sequence{nil}}, DefaultOptions())
	if !errors.Is(err, ber.ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
}

func TestReadValueDecompressionLimit(t *testing.T) {
	testlog.Start(t)
	big := ber.ByteString(bytes.Repeat([]byte{0x5a}, 64*1024))
	opts := DefaultOptions()
	opts.Compression = compress.Zstd{}
	var buf bytes.Buffer
	if err := WriteValue(&buf, Message{ID: 3, Value: big}, opts); err != nil {
		t.Fatalf("write value: %v", err)
	}

	read := DefaultOptions()
	read.Limits.MaxPayloadBytes = 32 * 1024
	if _, err := ReadValue(&buf, read); !errors.Is(err, compress.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestReadValueHugeLimitsClamp(t *testing.T) {
	testlog.Start(t)
	limits := []uint64{math.MaxUint64, 1 << 63, math.MaxInt64}
	for _, name := range compress.Names() {
		c, err := compress.ByName(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		for _, limit := range limits {
			opts := DefaultOptions()
			opts.Compression = c
			opts.Limits.MaxPayloadBytes = limit

			var buf bytes.Buffer
			if err := WriteValue(&buf, Message{ID: 1, Value: ber.Text("hi")}, opts); err != nil {
				t.Fatalf("%s limit=%d: write value: %v", name, limit, err)
			}
			got, err := ReadValue(&buf, opts)
			if err != nil {
				t.Fatalf("%s limit=%d: read value: %v", name, limit, err)
			}
			if !ber.Equal(ber.Text("hi"), got.Value) {
				t.Fatalf("%s limit=%d: value mismatch: got %s", name, limit, got.Value)
			}
		}
	}
}

func TestDecompressLimitClampsToInt(t *testing.T) {
	cases := map[uint64]int{
		0:               0,
		8 * 1024 * 1024: 8 * 1024 * 1024,
		math.MaxInt64:   math.MaxInt,
		math.MaxUint64:  math.MaxInt,
	}
	for in, want := range cases {
		if got := (Limits{MaxPayloadBytes: in}).decompressLimit(); got != want {
			t.Fatalf("decompressLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
