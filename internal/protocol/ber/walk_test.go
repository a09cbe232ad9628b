package ber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkSampleTree(t *testing.T) {
	var elems []Element
	err := Walk(sampleBytes, func(e Element, _ []byte) error {
		elems = append(elems, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, elems, 13)

	assert.Equal(t, Element{Offset: 0, Depth: 0, Tag: TagSequence, Kind: KindSequence, HeaderLen: 2, Length: 40}, elems[0])
	assert.Equal(t, Element{Offset: 2, Depth: 1, Tag: TagFixedSequence, Kind: KindFixedSequence, HeaderLen: 2, Length: 27}, elems[1])
	assert.Equal(t, Element{Offset: 4, Depth: 2, Tag: TagByteString, Kind: KindByteString, HeaderLen: 2, Length: 2}, elems[2])

	last := elems[len(elems)-1]
	assert.Equal(t, KindUnsignedInteger, last.Kind)
	assert.Equal(t, 37, last.Offset)
	assert.Equal(t, 2, last.Depth)
	assert.Equal(t, len(sampleBytes), last.End())
}

func TestWalkSkipChildren(t *testing.T) {
	count := 0
	err := Walk(sampleBytes, func(e Element, _ []byte) error {
		count++
		if e.Kind == KindFixedSequence {
			return ErrSkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestWalkReportsDecodeFailures(t *testing.T) {
	err := Walk([]byte{0x30, 0x03, 0x04, 0x04, 0xaa, 0xbb, 0xcc}, func(Element, []byte) error { return nil })
	require.ErrorIs(t, err, ErrTruncated)

	err = Walk([]byte{0x04, 0x00, 0xee}, func(Element, []byte) error { return nil })
	require.ErrorIs(t, err, ErrUnknownTag)
}

func TestWalkRejectsInvalidText(t *testing.T) {
	buf := []byte{0x30, 0x04, 0x0c, 0x02, 0xc3, 0x28}
	visited := 0
	err := Walk(buf, func(Element, []byte) error {
		visited++
		return nil
	})
	require.ErrorIs(t, err, ErrInvalidText)
	assert.Equal(t, 1, visited)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Offset)

	_, _, derr := Decode(buf)
	require.ErrorIs(t, derr, ErrInvalidText)
}

func TestWalkDepthLimit(t *testing.T) {
	noop := func(Element, []byte) error { return nil }

	require.NoError(t, Walk(nestedSequences(DefaultMaxDepth), noop))
	_, err := DecodeSingle(nestedSequences(DefaultMaxDepth))
	require.NoError(t, err)

	for _, depth := range []int{DefaultMaxDepth + 1, DefaultMaxDepth + 10} {
		buf := nestedSequences(depth)
		require.ErrorIs(t, Walk(buf, noop), ErrDepthExceeded, "walk depth %d", depth)
		_, err := DecodeSingle(buf)
		require.ErrorIs(t, err, ErrDepthExceeded, "decode depth %d", depth)
	}
}
