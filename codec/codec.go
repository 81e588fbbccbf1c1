// Package codec converts between byte sequences and fixed-width words.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Order is a byte order able to both read and append words.
// binary.BigEndian and binary.LittleEndian satisfy it.
type Order interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Word is a native word of a compression function.
type Word interface {
	uint32 | uint64
}

var ErrInvalidLength = errors.New("invalid length")

// InvalidLengthError is returned when a byte sequence does not hold exactly the requested number of words.
type InvalidLengthError struct {
	Have, Want int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("codec: invalid length: have %d bytes, want %d", e.Have, e.Want)
}

func (e *InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// Size returns the width of W in bytes.
func Size[W Word]() int {
	var w W
	switch any(w).(type) {
	case uint32:
		return 4
	default:
		return 8
	}
}

// DecodeWords fills dst with words read from src in the given order.
// src must hold exactly len(dst) words.
func DecodeWords[W Word](dst []W, src []byte, order Order) error {
	if want := len(dst) * Size[W](); len(src) != want {
		return &InvalidLengthError{Have: len(src), Want: want}
	}

	switch d := any(dst).(type) {
	case []uint32:
		for i := range d {
			d[i] = order.Uint32(src[i*4:])
		}
	case []uint64:
		for i := range d {
			d[i] = order.Uint64(src[i*8:])
		}
	}
	return nil
}

// DecodeWordsAt is DecodeWords over the len(dst) words starting at src[offset:].
func DecodeWordsAt[W Word](dst []W, src []byte, offset int, order Order) error {
	want := len(dst) * Size[W]()
	if offset < 0 || offset > len(src) || len(src)-offset < want {
		return &InvalidLengthError{Have: max(len(src)-offset, 0), Want: want}
	}
	return DecodeWords(dst, src[offset:offset+want], order)
}

// MustDecodeWords is DecodeWords for callers that already guarantee the length.
func MustDecodeWords[W Word](dst []W, src []byte, order Order) {
	if err := DecodeWords(dst, src, order); err != nil {
		panic(err)
	}
}

// AppendWords appends the encoding of src in the given order to dst.
func AppendWords[W Word](dst []byte, src []W, order Order) []byte {
	switch s := any(src).(type) {
	case []uint32:
		for _, w := range s {
			dst = order.AppendUint32(dst, w)
		}
	case []uint64:
		for _, w := range s {
			dst = order.AppendUint64(dst, w)
		}
	}
	return dst
}
