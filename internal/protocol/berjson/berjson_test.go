package berjson

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/bertlv/internal/protocol/ber"
)

func TestMarshalCanonical(t *testing.T) {
	v := ber.Sequence{
		ber.FixedSequence{ber.ByteString{0x00, 0x01}, ber.Text("test")},
		ber.Uint(1000),
	}
	got, err := Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"seq":[{"fixed":[{"bytes":"0001"},{"text":"test"}]},{"uint":"1000"}]}`,
		string(got))
}

func TestUnmarshalRoundTrip(t *testing.T) {
	v := ber.Sequence{
		ber.FixedSequence{
			ber.ByteString{0x00, 0x01},
			ber.Text("test"),
			ber.Sequence{ber.Uint(100), ber.Uint(3)},
			ber.Sequence{},
			ber.Sequence{ber.ByteString{0x00}},
		},
		ber.Sequence{ber.ByteString{0x01, 0x32}, ber.Uint(1000)},
	}
	data, err := MarshalIndent(v, "", "  ")
	require.NoError(t, err)

	out, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, ber.Equal(v, out), "got %s", out)
}

func TestUnmarshalShorthand(t *testing.T) {
	out, err := Unmarshal([]byte(`["hi", 18446744073709551617, {"uint": 7}, {"fixed": []}, []]`))
	require.NoError(t, err)

	big, err := ber.ParseUint("18446744073709551617")
	require.NoError(t, err)
	want := ber.Sequence{ber.Text("hi"), big, ber.Uint(7), ber.FixedSequence{}, ber.Sequence{}}
	assert.True(t, ber.Equal(want, out), "got %s", out)
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"negative":      `-1`,
		"float":         `1.5`,
		"bool":          `true`,
		"null":          `null`,
		"two keys":      `{"text":"a","uint":"1"}`,
		"unknown key":   `{"oid":"1.2"}`,
		"bad hex":       `{"bytes":"zz"}`,
		"seq not array": `{"seq":"x"}`,
		"nested bad":    `[["ok", {"uint":"-3"}]]`,
		"trailing":      `"a" "b"`,
		"stray bracket": `"a"]`,
		"extra closers": `[1]]]`,
		"stray brace":   `{"text":"a"}}`,
		"syntax":        `[`,
		"empty":         ``,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(in))
			require.ErrorIs(t, err, ErrInvalidNotation)
		})
	}
}

func TestMarshalRejectsNil(t *testing.T) {
	_, err := Marshal(ber.Sequence{nil})
	require.ErrorIs(t, err, ber.ErrUnsupportedKind)
}

func TestDecoderStream(t *testing.T) {
	dec := NewDecoder(strings.NewReader("{\"uint\":\"1\"}\n\"two\"\n[{\"bytes\":\"03\"}]\n"))
	var got []ber.Value
	for {
		v, err := dec.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Len(t, got, 3)
	assert.True(t, ber.Equal(ber.Uint(1), got[0]))
	assert.True(t, ber.Equal(ber.Text("two"), got[1]))
	assert.True(t, ber.Equal(ber.Sequence{ber.ByteString{3}}, got[2]))
}

func TestDecoderStreamReportsIndex(t *testing.T) {
	dec := NewDecoder(strings.NewReader(`"ok" {"uint":"x"}`))
	_, err := dec.Next()
	require.NoError(t, err)
	_, err = dec.Next()
	require.ErrorIs(t, err, ErrInvalidNotation)
	assert.Contains(t, err.Error(), "$1")
}
