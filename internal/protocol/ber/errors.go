package ber

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated       = errors.New("ber: truncated input")
	ErrUnknownTag      = errors.New("ber: unknown tag")
	ErrInvalidText     = errors.New("ber: invalid utf-8 text")
	ErrUnsupportedKind = errors.New("ber: unsupported value kind")
	ErrLengthOverflow  = errors.New("ber: length field overflow")
	ErrDepthExceeded   = errors.New("ber: nesting depth exceeded")
	ErrTrailingBytes   = errors.New("ber: trailing bytes after value")
)

// DecodeError locates a decode failure within the top-level buffer.
type DecodeError struct {
	Offset int
	Tag    Tag
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at offset %d (tag 0x%02x)", e.Err, e.Offset, byte(e.Tag))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(off int, tag Tag, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Offset: off, Tag: tag, Err: err}
}
