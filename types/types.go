package types

import (
	"bytes"
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

var ErrInvalidSum = errors.New("invalid hex digest")

// Sum is a digest value of any length. It encodes to lowercase hex in text and JSON.
//
//nolint:recvcheck
type Sum []byte

func MustSumFromString(s string) Sum {
	if b, err := SumFromString(s); err != nil {
		panic(err)
	} else {
		return b
	}
}

func SumFromString(s string) (Sum, error) {
	if buf, err := fasthex.DecodeString(s); err != nil {
		return nil, errors.Join(ErrInvalidSum, err)
	} else {
		return buf, nil
	}
}

func (b Sum) Equal(other Sum) bool {
	return bytes.Equal(b, other)
}

func (b Sum) String() string {
	return fasthex.EncodeToString(b)
}

func (b Sum) MarshalText() ([]byte, error) {
	buf := make([]byte, len(b)*2)
	fasthex.Encode(buf, b)
	return buf, nil
}

func (b Sum) MarshalJSON() ([]byte, error) {
	buf := make([]byte, len(b)*2+2)
	buf[0] = '"'
	buf[len(buf)-1] = '"'
	fasthex.Encode(buf[1:], b)
	return buf, nil
}

func (b *Sum) UnmarshalText(buf []byte) error {
	if len(buf)%2 != 0 {
		return ErrInvalidSum
	}

	*b = make(Sum, len(buf)/2)

	if _, err := fasthex.Decode(*b, buf); err != nil {
		return errors.Join(ErrInvalidSum, err)
	}

	return nil
}

func (b *Sum) UnmarshalJSON(buf []byte) error {
	if len(buf) < 2 || buf[0] != '"' || buf[len(buf)-1] != '"' {
		return ErrInvalidSum
	}

	return b.UnmarshalText(buf[1 : len(buf)-1])
}
