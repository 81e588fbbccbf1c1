package blake

import (
	"encoding/binary"
	"math/bits"

	"git.gammaspectra.live/P2Pool/sph/codec"
	"git.gammaspectra.live/P2Pool/sph/digest"
)

const rounds256 = 14

// blake256 is BLAKE-224 or BLAKE-256 over a [8]uint32 chaining value with a 64-bit bit counter.
type blake256 struct {
	desc  digest.Descriptor
	iv    [8]uint32
	salt  [4]uint32
	final byte // last padding bit, set for BLAKE-256 only
}

func (b *blake256) Descriptor() digest.Descriptor { return b.desc }

func (b *blake256) Init(h *[8]uint32) { *h = b.iv }

func (b *blake256) Compress(h *[8]uint32, block []byte, ctx digest.Context) {
	b.compress(h, block, (ctx.Length.Lo+BlockSize256)<<3)
}

func (b *blake256) Finalize(h *[8]uint32, tail []byte, ctx digest.Context, dst []byte) []byte {
	length := (ctx.Length.Lo + uint64(len(tail))) << 3

	var buf [BlockSize256 * 2]byte
	last, two := pad(buf[:], tail, BlockSize256, 8, b.final)
	binary.BigEndian.PutUint64(last[BlockSize256-8:], length)

	switch {
	case two:
		b.compress(h, buf[:BlockSize256], length)
		b.compress(h, last, 0)
	case len(tail) == 0:
		b.compress(h, last, 0)
	default:
		b.compress(h, last, length)
	}

	return codec.AppendWords(dst, h[:b.desc.Size/4], binary.BigEndian)
}

func (b *blake256) compress(h *[8]uint32, block []byte, t uint64) {
	var m [16]uint32
	codec.MustDecodeWords(m[:], block, binary.BigEndian)

	t0, t1 := uint32(t), uint32(t>>32)
	v := [16]uint32{
		h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7],
		b.salt[0] ^ u256[0], b.salt[1] ^ u256[1], b.salt[2] ^ u256[2], b.salt[3] ^ u256[3],
		t0 ^ u256[4], t0 ^ u256[5], t1 ^ u256[6], t1 ^ u256[7],
	}

	for r := range rounds256 {
		s := &sigma[r%10]

		g256(&v, 0, 4, 8, 12, m[s[0]]^u256[s[1]], m[s[1]]^u256[s[0]])
		g256(&v, 1, 5, 9, 13, m[s[2]]^u256[s[3]], m[s[3]]^u256[s[2]])
		g256(&v, 2, 6, 10, 14, m[s[4]]^u256[s[5]], m[s[5]]^u256[s[4]])
		g256(&v, 3, 7, 11, 15, m[s[6]]^u256[s[7]], m[s[7]]^u256[s[6]])

		g256(&v, 0, 5, 10, 15, m[s[8]]^u256[s[9]], m[s[9]]^u256[s[8]])
		g256(&v, 1, 6, 11, 12, m[s[10]]^u256[s[11]], m[s[11]]^u256[s[10]])
		g256(&v, 2, 7, 8, 13, m[s[12]]^u256[s[13]], m[s[13]]^u256[s[12]])
		g256(&v, 3, 4, 9, 14, m[s[14]]^u256[s[15]], m[s[15]]^u256[s[14]])
	}

	for i := range h {
		h[i] ^= b.salt[i&3] ^ v[i] ^ v[i+8]
	}
}

func g256(v *[16]uint32, a, b, c, d int, m0, m1 uint32) {
	v[a] += v[b] + m0
	v[d] = bits.RotateLeft32(v[d]^v[a], -16)
	v[c] += v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -12)
	v[a] += v[b] + m1
	v[d] = bits.RotateLeft32(v[d]^v[a], -8)
	v[c] += v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -7)
}
