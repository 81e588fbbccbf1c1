package blake

import (
	"encoding/binary"
	"math/bits"

	"git.gammaspectra.live/P2Pool/sph/codec"
	"git.gammaspectra.live/P2Pool/sph/digest"
	"lukechampine.com/uint128"
)

const rounds512 = 16

// blake512 is BLAKE-384 or BLAKE-512 over a [8]uint64 chaining value with a 128-bit bit counter.
type blake512 struct {
	desc  digest.Descriptor
	iv    [8]uint64
	salt  [4]uint64
	final byte // last padding bit, set for BLAKE-512 only
}

func (b *blake512) Descriptor() digest.Descriptor { return b.desc }

func (b *blake512) Init(h *[8]uint64) { *h = b.iv }

func (b *blake512) Compress(h *[8]uint64, block []byte, ctx digest.Context) {
	b.compress(h, block, ctx.Length.Add64(BlockSize512).Lsh(3))
}

func (b *blake512) Finalize(h *[8]uint64, tail []byte, ctx digest.Context, dst []byte) []byte {
	length := ctx.Length.Add64(uint64(len(tail))).Lsh(3)

	var buf [BlockSize512 * 2]byte
	last, two := pad(buf[:], tail, BlockSize512, 16, b.final)
	binary.BigEndian.PutUint64(last[BlockSize512-16:], length.Hi)
	binary.BigEndian.PutUint64(last[BlockSize512-8:], length.Lo)

	// a block holding no message bits is compressed with a zero counter
	switch {
	case two:
		b.compress(h, buf[:BlockSize512], length)
		b.compress(h, last, uint128.Zero)
	case len(tail) == 0:
		b.compress(h, last, uint128.Zero)
	default:
		b.compress(h, last, length)
	}

	return codec.AppendWords(dst, h[:b.desc.Size/8], binary.BigEndian)
}

func (b *blake512) compress(h *[8]uint64, block []byte, t uint128.Uint128) {
	var m [16]uint64
	codec.MustDecodeWords(m[:], block, binary.BigEndian)

	v := [16]uint64{
		h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7],
		b.salt[0] ^ u512[0], b.salt[1] ^ u512[1], b.salt[2] ^ u512[2], b.salt[3] ^ u512[3],
		t.Lo ^ u512[4], t.Lo ^ u512[5], t.Hi ^ u512[6], t.Hi ^ u512[7],
	}

	for r := range rounds512 {
		s := &sigma[r%10]

		g512(&v, 0, 4, 8, 12, m[s[0]]^u512[s[1]], m[s[1]]^u512[s[0]])
		g512(&v, 1, 5, 9, 13, m[s[2]]^u512[s[3]], m[s[3]]^u512[s[2]])
		g512(&v, 2, 6, 10, 14, m[s[4]]^u512[s[5]], m[s[5]]^u512[s[4]])
		g512(&v, 3, 7, 11, 15, m[s[6]]^u512[s[7]], m[s[7]]^u512[s[6]])

		g512(&v, 0, 5, 10, 15, m[s[8]]^u512[s[9]], m[s[9]]^u512[s[8]])
		g512(&v, 1, 6, 11, 12, m[s[10]]^u512[s[11]], m[s[11]]^u512[s[10]])
		g512(&v, 2, 7, 8, 13, m[s[12]]^u512[s[13]], m[s[13]]^u512[s[12]])
		g512(&v, 3, 4, 9, 14, m[s[14]]^u512[s[15]], m[s[15]]^u512[s[14]])
	}

	for i := range h {
		h[i] ^= b.salt[i&3] ^ v[i] ^ v[i+8]
	}
}

func g512(v *[16]uint64, a, b, c, d int, m0, m1 uint64) {
	v[a] += v[b] + m0
	v[d] = bits.RotateLeft64(v[d]^v[a], -32)
	v[c] += v[d]
	v[b] = bits.RotateLeft64(v[b]^v[c], -25)
	v[a] += v[b] + m1
	v[d] = bits.RotateLeft64(v[d]^v[a], -16)
	v[c] += v[d]
	v[b] = bits.RotateLeft64(v[b]^v[c], -11)
}
