package compress

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"
)

func TestCompressorsRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		[]byte("short"),
		bytes.Repeat([]byte{0x30, 0x03, 0x04, 0x01, 0x00}, 2000),
		frand.Bytes(64 * 1024),
	}
	for _, name := range Names() {
		c, err := ByName(name)
		require.NoError(t, err)
		t.Run(name, func(t *testing.T) {
			for _, p := range payloads {
				packed, err := c.Compress(p)
				require.NoError(t, err)
				out, err := c.Uncompress(packed, len(p))
				require.NoError(t, err)
				assert.True(t, bytes.Equal(p, out), "payload len %d mismatch", len(p))
			}
		})
	}
}

func TestUncompressEnforcesLimit(t *testing.T) {
	p := bytes.Repeat([]byte{0xab}, 4096)
	for _, name := range Names() {
		c, err := ByName(name)
		require.NoError(t, err)
		packed, err := c.Compress(p)
		require.NoError(t, err)
		_, err = c.Uncompress(packed, len(p)-1)
		assert.ErrorIs(t, err, ErrTooLarge, name)
	}
}

func TestUncompressExtremeLimits(t *testing.T) {
	p := []byte("payload under an effectively unbounded limit")
	for _, name := range Names() {
		c, err := ByName(name)
		require.NoError(t, err)
		packed, err := c.Compress(p)
		require.NoError(t, err)

		out, err := c.Uncompress(packed, math.MaxInt)
		require.NoError(t, err, name)
		assert.Equal(t, p, out, name)

		_, err = c.Uncompress(packed, -1)
		assert.ErrorIs(t, err, ErrTooLarge, name)
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"gzip", "lz4", "none", "snappy", "zstd"}, Names())

	c, err := Lookup(CodeSnappy)
	require.NoError(t, err)
	assert.Equal(t, "snappy", c.Name())

	c, err = ByName(" ZSTD ")
	require.NoError(t, err)
	assert.Equal(t, CodeZstd, c.Code())

	c, err = ByName("")
	require.NoError(t, err)
	assert.Equal(t, CodeNone, c.Code())

	_, err = Lookup(Code(42))
	assert.ErrorIs(t, err, ErrUnknownCodec)
	_, err = ByName("brotli")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestUncompressCorruptInput(t *testing.T) {
	for _, name := range []string{"gzip", "lz4", "snappy", "zstd"} {
		c, err := ByName(name)
		require.NoError(t, err)
		_, err = c.Uncompress([]byte("definitely not compressed"), 1024)
		assert.Error(t, err, name)
	}
}
