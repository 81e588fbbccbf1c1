package digest

import (
	"encoding"
	"errors"
	"fmt"
	"hash"
)

var ErrNotCloneable = errors.New("hash state cannot be marshaled")

type wrapped struct {
	name string
	new  func() hash.Hash
	hash.Hash
}

// Wrap adapts a hash.Hash constructor to Digest. The hash must implement encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler, which Copy uses to clone its state; Wrap panics otherwise.
func Wrap(name string, fn func() hash.Hash) Digest {
	h := fn()
	if _, ok := h.(encoding.BinaryMarshaler); !ok {
		panic(fmt.Errorf("%w: %s", ErrNotCloneable, name))
	}
	if _, ok := h.(encoding.BinaryUnmarshaler); !ok {
		panic(fmt.Errorf("%w: %s", ErrNotCloneable, name))
	}
	return &wrapped{
		name: name,
		new:  fn,
		Hash: h,
	}
}

func (w *wrapped) Name() string { return w.name }

func (w *wrapped) WriteByte(c byte) error {
	_, err := w.Hash.Write([]byte{c})
	return err
}

func (w *wrapped) Digest(p []byte) []byte {
	_, _ = w.Hash.Write(p)
	defer w.Hash.Reset()
	return w.Hash.Sum(nil)
}

func (w *wrapped) Copy() Digest {
	//nolint:forcetypeassert
	state, err := w.Hash.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		panic(fmt.Errorf("%w: %s: %w", ErrNotCloneable, w.name, err))
	}

	h := w.new()
	//nolint:forcetypeassert
	if err = h.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		panic(fmt.Errorf("%w: %s: %w", ErrNotCloneable, w.name, err))
	}

	return &wrapped{
		name: w.name,
		new:  w.new,
		Hash: h,
	}
}
