// Package digest implements the streaming engine shared by every block-based hash in this module.
//
// An Engine buffers arbitrary input into fixed-size blocks and hands each full block to one Algorithm,
// which folds it into a chaining value. On Sum, the Algorithm pads the buffered tail, compresses the
// final block(s) and serializes its output. The engine never branches on which algorithm it runs.
package digest

import (
	"hash"
	"io"

	"lukechampine.com/uint128"
)

// MaxBlockSize is the largest block size an Algorithm may declare.
const MaxBlockSize = 136

// Digest is the public contract of every hash in this module.
type Digest interface {
	hash.Hash
	io.ByteWriter

	// Name returns the identifier of the algorithm, for example "BLAKE-512".
	Name() string

	// Digest writes p, returns the digest of everything written so far and resets the instance.
	Digest(p []byte) []byte

	// Copy returns an independent instance with identical state.
	Copy() Digest
}

// Descriptor holds the immutable parameters of an algorithm.
type Descriptor struct {
	Name string
	// Size is the digest size in bytes.
	Size int
	// BlockSize is the compression block size in bytes.
	BlockSize int
}

// Context is the position of a block within the message.
type Context struct {
	// Length is the number of message bytes compressed before this block.
	Length uint128.Uint128
	// Block is the zero-based index of this block.
	Block uint64
}

// Algorithm is a block compression function plus its padding policy, over chaining state S.
//
// S must be a value type (arrays or structs of arrays) so that copying it copies the whole state.
// Implementations must be immutable after construction; a single value may back many engines at once.
type Algorithm[S any] interface {
	Descriptor() Descriptor

	// Init loads the initial chaining value.
	Init(state *S)

	// Compress folds exactly one BlockSize block into state.
	Compress(state *S, block []byte, ctx Context)

	// Finalize pads tail (fewer than BlockSize bytes, must not be modified), compresses the final
	// block(s) into state and appends the Size byte digest to dst.
	// ctx describes the position right after the last full block.
	Finalize(state *S, tail []byte, ctx Context, dst []byte) []byte
}
