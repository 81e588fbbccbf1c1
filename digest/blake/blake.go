// Package blake implements the BLAKE-224, BLAKE-256, BLAKE-384 and BLAKE-512 hash functions (SHA-3 finalist, final round version).
//
// Each compression is a HAIFA iteration: the chaining value, a salt and a counter of the message bits
// hashed so far are loaded into a 4x4 word matrix, mixed by ChaCha-like G functions over 14 (32-bit words)
// or 16 (64-bit words) rounds, and folded back into the chaining value.
package blake

import (
	"encoding/binary"
	"errors"
	"fmt"

	"git.gammaspectra.live/P2Pool/sph/digest"
)

const (
	BlockSize256 = 64
	BlockSize512 = 128

	Size224 = 28
	Size256 = 32
	Size384 = 48
	Size512 = 64

	SaltSize256 = 16 // salt size of BLAKE-224 and BLAKE-256
	SaltSize512 = 32 // salt size of BLAKE-384 and BLAKE-512
)

var ErrInvalidSaltSize = errors.New("invalid salt size")

var (
	blake224Alg = &blake256{desc: digest.Descriptor{Name: "BLAKE-224", Size: Size224, BlockSize: BlockSize256}, iv: iv224}
	blake256Alg = &blake256{desc: digest.Descriptor{Name: "BLAKE-256", Size: Size256, BlockSize: BlockSize256}, iv: iv256, final: 0x01}
	blake384Alg = &blake512{desc: digest.Descriptor{Name: "BLAKE-384", Size: Size384, BlockSize: BlockSize512}, iv: iv384}
	blake512Alg = &blake512{desc: digest.Descriptor{Name: "BLAKE-512", Size: Size512, BlockSize: BlockSize512}, iv: iv512, final: 0x01}
)

func New224() digest.Digest { return digest.New[[8]uint32](blake224Alg) }

func New256() digest.Digest { return digest.New[[8]uint32](blake256Alg) }

func New384() digest.Digest { return digest.New[[8]uint64](blake384Alg) }

func New512() digest.Digest { return digest.New[[8]uint64](blake512Alg) }

// NewSalt224 returns a BLAKE-224 digest using a SaltSize256 byte salt.
func NewSalt224(salt []byte) (digest.Digest, error) {
	return newSalt256(blake224Alg, salt)
}

// NewSalt256 returns a BLAKE-256 digest using a SaltSize256 byte salt.
func NewSalt256(salt []byte) (digest.Digest, error) {
	return newSalt256(blake256Alg, salt)
}

// NewSalt384 returns a BLAKE-384 digest using a SaltSize512 byte salt.
func NewSalt384(salt []byte) (digest.Digest, error) {
	return newSalt512(blake384Alg, salt)
}

// NewSalt512 returns a BLAKE-512 digest using a SaltSize512 byte salt.
func NewSalt512(salt []byte) (digest.Digest, error) {
	return newSalt512(blake512Alg, salt)
}

func newSalt256(base *blake256, salt []byte) (digest.Digest, error) {
	if len(salt) != SaltSize256 {
		return nil, fmt.Errorf("%w: %s takes %d bytes, got %d", ErrInvalidSaltSize, base.desc.Name, SaltSize256, len(salt))
	}
	alg := *base
	for i := range alg.salt {
		alg.salt[i] = binary.BigEndian.Uint32(salt[i*4:])
	}
	return digest.New[[8]uint32](&alg), nil
}

func newSalt512(base *blake512, salt []byte) (digest.Digest, error) {
	if len(salt) != SaltSize512 {
		return nil, fmt.Errorf("%w: %s takes %d bytes, got %d", ErrInvalidSaltSize, base.desc.Name, SaltSize512, len(salt))
	}
	alg := *base
	for i := range alg.salt {
		alg.salt[i] = binary.BigEndian.Uint64(salt[i*8:])
	}
	return digest.New[[8]uint64](&alg), nil
}

// pad copies tail into buf, which must be two blocks long, and appends the 0x80 marker and the final bit
// in front of a lengthSize byte length field. It returns the block that carries the length field, which
// is the second one when tail leaves no room for it.
func pad(buf, tail []byte, blockSize, lengthSize int, final byte) (last []byte, two bool) {
	n := copy(buf, tail)
	buf[n] = 0x80

	last = buf[:blockSize]
	if two = n >= blockSize-lengthSize; two {
		last = buf[blockSize : blockSize*2]
	}
	last[blockSize-lengthSize-1] |= final
	return last, two
}
