// Package keccak implements the original Keccak-256 and Keccak-512 hash functions, as used by Monero and
// Ethereum. They differ from SHA3-256 and SHA3-512 only in the padding byte.
package keccak

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/sph/codec"
	"git.gammaspectra.live/P2Pool/sph/digest"
)

const (
	Size256 = 32
	Size512 = 64

	// BlockSize256 and BlockSize512 are the sponge rates, 1600 bits minus twice the digest size.
	BlockSize256 = 200 - 2*Size256
	BlockSize512 = 200 - 2*Size512
)

type state = [25]uint64

type keccak struct {
	desc digest.Descriptor
}

var (
	keccak256Alg = keccak{desc: digest.Descriptor{Name: "Keccak-256", Size: Size256, BlockSize: BlockSize256}}
	keccak512Alg = keccak{desc: digest.Descriptor{Name: "Keccak-512", Size: Size512, BlockSize: BlockSize512}}
)

func New256() digest.Digest { return digest.New[state](keccak256Alg) }

func New512() digest.Digest { return digest.New[state](keccak512Alg) }

func (k keccak) Descriptor() digest.Descriptor { return k.desc }

func (keccak) Init(a *state) { *a = state{} }

func (keccak) Compress(a *state, block []byte, _ digest.Context) {
	absorb(a, block)
}

func (k keccak) Finalize(a *state, tail []byte, _ digest.Context, dst []byte) []byte {
	var buf [digest.MaxBlockSize]byte
	last := buf[:k.desc.BlockSize]
	n := copy(last, tail)
	last[n] ^= 0x01
	last[len(last)-1] ^= 0x80
	absorb(a, last)

	return codec.AppendWords(dst, a[:k.desc.Size/8], binary.LittleEndian)
}

func absorb(a *state, block []byte) {
	var m [digest.MaxBlockSize / 8]uint64
	words := m[:len(block)/8]
	codec.MustDecodeWords(words, block, binary.LittleEndian)
	for i, w := range words {
		a[i] ^= w
	}
	permute(a)
}
