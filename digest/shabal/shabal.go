// Package shabal implements the Shabal family of hash functions for 192 to 512 bit digests.
//
// Shabal keeps three word registers A (12 words), B and C (16 words each) and a 64-bit block counter W.
// A message block is added into B, W is mixed into A, the keyed permutation P mixes the registers, the
// block is subtracted from C and B and C are swapped. The padded last block is processed once more
// three times without advancing W, and the digest is read from the tail of B.
//
// Initial values are not tabulated: they are the state reached by hashing two prefix blocks that
// encode the digest size, starting from all zero registers and W = -1.
package shabal

import (
	"encoding/binary"
	"math/bits"

	"git.gammaspectra.live/P2Pool/sph/codec"
	"git.gammaspectra.live/P2Pool/sph/digest"
)

const BlockSize = 64

const (
	Size192 = 24
	Size224 = 28
	Size256 = 32
	Size384 = 48
	Size512 = 64
)

const (
	sizeA       = 12
	permRounds  = 3
	finalRounds = 3
)

type state struct {
	A [sizeA]uint32
	B [16]uint32
	C [16]uint32
}

type shabal struct {
	desc digest.Descriptor
	iv   state
}

var (
	shabal192Alg = newAlgorithm("Shabal-192", Size192)
	shabal224Alg = newAlgorithm("Shabal-224", Size224)
	shabal256Alg = newAlgorithm("Shabal-256", Size256)
	shabal384Alg = newAlgorithm("Shabal-384", Size384)
	shabal512Alg = newAlgorithm("Shabal-512", Size512)
)

func New192() digest.Digest { return digest.New[state](shabal192Alg) }

func New224() digest.Digest { return digest.New[state](shabal224Alg) }

func New256() digest.Digest { return digest.New[state](shabal256Alg) }

func New384() digest.Digest { return digest.New[state](shabal384Alg) }

func New512() digest.Digest { return digest.New[state](shabal512Alg) }

func newAlgorithm(name string, size int) *shabal {
	return &shabal{
		desc: digest.Descriptor{Name: name, Size: size, BlockSize: BlockSize},
		iv:   initialState(size * 8),
	}
}

// initialState hashes the prefix blocks (n, n+1, ..., n+15) and (n+16, ..., n+31) for an n-bit digest.
func initialState(n int) (s state) {
	var m [16]uint32
	for i := range m {
		m[i] = uint32(n + i)
	}
	s.round(&m, ^uint64(0))

	for i := range m {
		m[i] = uint32(n + 16 + i)
	}
	s.round(&m, 0)

	return s
}

func (a *shabal) Descriptor() digest.Descriptor { return a.desc }

func (a *shabal) Init(s *state) { *s = a.iv }

// Compress processes one message block. Message blocks are numbered from W = 1, after the prefix.
func (a *shabal) Compress(s *state, block []byte, ctx digest.Context) {
	var m [16]uint32
	codec.MustDecodeWords(m[:], block, binary.LittleEndian)
	s.round(&m, ctx.Block+1)
}

func (a *shabal) Finalize(s *state, tail []byte, ctx digest.Context, dst []byte) []byte {
	var buf [BlockSize]byte
	n := copy(buf[:], tail)
	buf[n] = 0x80

	var m [16]uint32
	codec.MustDecodeWords(m[:], buf[:], binary.LittleEndian)
	w := ctx.Block + 1

	// subtracting m from C, swapping, then adding m to B again cancels out between the final rounds
	for i := range m {
		s.B[i] += m[i]
	}
	s.xorW(w)
	s.permute(&m)

	for range finalRounds {
		s.B, s.C = s.C, s.B
		s.xorW(w)
		s.permute(&m)
	}

	return codec.AppendWords(dst, s.B[16-a.desc.Size/4:], binary.LittleEndian)
}

func (s *state) round(m *[16]uint32, w uint64) {
	for i := range m {
		s.B[i] += m[i]
	}
	s.xorW(w)
	s.permute(m)
	for i := range m {
		s.C[i] -= m[i]
	}
	s.B, s.C = s.C, s.B
}

func (s *state) xorW(w uint64) {
	s.A[0] ^= uint32(w)
	s.A[1] ^= uint32(w >> 32)
}

// permute is the keyed permutation P of A and B, keyed by the message block and C.
func (s *state) permute(m *[16]uint32) {
	for i := range s.B {
		s.B[i] = bits.RotateLeft32(s.B[i], 17)
	}

	for j := range permRounds {
		for i := range 16 {
			k := (16*j + i) % sizeA
			prev := (16*j + i + sizeA - 1) % sizeA

			s.A[k] = (s.A[k]^bits.RotateLeft32(s.A[prev], 15)*5^s.C[(8-i)&15])*3 ^
				s.B[(i+13)&15] ^ (s.B[(i+9)&15] &^ s.B[(i+6)&15]) ^ m[i]
			s.B[i] = ^(bits.RotateLeft32(s.B[i], 1) ^ s.A[k])
		}
	}

	for j := range 3 * sizeA {
		s.A[j%sizeA] += s.C[(j+3)&15]
	}
}
