// Package bmw implements the BMW-512 (Blue Midnight Wish) hash function.
//
// BMW is a wide-pipe design: the chaining value is sixteen 64-bit words, twice the digest size. Each
// block goes through three stages. f0 mixes the message and chaining value into sixteen words through
// fixed add/subtract combinations, f1 expands them to sixteen more with two expansion modes, and f2
// folds everything back into a new chaining value. After the padded message, one more compression is
// run with the chaining value as the message under a constant chaining value.
package bmw

import (
	"encoding/binary"
	"math/bits"

	"git.gammaspectra.live/P2Pool/sph/codec"
	"git.gammaspectra.live/P2Pool/sph/digest"
)

const (
	BlockSize = 128
	Size512   = 64
)

const (
	expandRounds1 = 2
	expandRounds2 = 14
)

type state = [16]uint64

var (
	// iv512 holds the bytes 0x80 to 0xff.
	iv512 = state{
		0x8081828384858687, 0x88898A8B8C8D8E8F, 0x9091929394959697, 0x98999A9B9C9D9E9F,
		0xA0A1A2A3A4A5A6A7, 0xA8A9AAABACADAEAF, 0xB0B1B2B3B4B5B6B7, 0xB8B9BABBBCBDBEBF,
		0xC0C1C2C3C4C5C6C7, 0xC8C9CACBCCCDCECF, 0xD0D1D2D3D4D5D6D7, 0xD8D9DADBDCDDDEDF,
		0xE0E1E2E3E4E5E6E7, 0xE8E9EAEBECEDEEEF, 0xF0F1F2F3F4F5F6F7, 0xF8F9FAFBFCFDFEFF,
	}

	// final is the chaining value of the last compression.
	final = state{
		0xaaaaaaaaaaaaaaa0, 0xaaaaaaaaaaaaaaa1, 0xaaaaaaaaaaaaaaa2, 0xaaaaaaaaaaaaaaa3,
		0xaaaaaaaaaaaaaaa4, 0xaaaaaaaaaaaaaaa5, 0xaaaaaaaaaaaaaaa6, 0xaaaaaaaaaaaaaaa7,
		0xaaaaaaaaaaaaaaa8, 0xaaaaaaaaaaaaaaa9, 0xaaaaaaaaaaaaaaaa, 0xaaaaaaaaaaaaaaab,
		0xaaaaaaaaaaaaaaac, 0xaaaaaaaaaaaaaaad, 0xaaaaaaaaaaaaaaae, 0xaaaaaaaaaaaaaaaf,
	}
)

type bmw512 struct{}

var bmw512Alg = bmw512{}

func New512() digest.Digest { return digest.New[state](bmw512Alg) }

func (bmw512) Descriptor() digest.Descriptor {
	return digest.Descriptor{Name: "BMW-512", Size: Size512, BlockSize: BlockSize}
}

func (bmw512) Init(h *state) { *h = iv512 }

func (bmw512) Compress(h *state, block []byte, _ digest.Context) {
	compressBlock(h, block)
}

func (bmw512) Finalize(h *state, tail []byte, ctx digest.Context, dst []byte) []byte {
	length := (ctx.Length.Lo + uint64(len(tail))) << 3

	var buf [BlockSize * 2]byte
	n := copy(buf[:], tail)
	buf[n] = 0x80

	last := buf[:BlockSize]
	if n >= BlockSize-8 {
		compressBlock(h, last)
		last = buf[BlockSize:]
	}
	binary.LittleEndian.PutUint64(last[BlockSize-8:], length)
	compressBlock(h, last)

	m := *h
	out := final
	compress(&out, &m)

	return codec.AppendWords(dst, out[8:], binary.LittleEndian)
}

func compressBlock(h *state, block []byte) {
	var m state
	codec.MustDecodeWords(m[:], block, binary.LittleEndian)
	compress(h, &m)
}

func compress(h *state, m *state) {
	var q [32]uint64

	f0(&q, h, m)

	for j := 16; j < 16+expandRounds1; j++ {
		q[j] = expand1(&q, m, h, j)
	}
	for j := 16 + expandRounds1; j < 16+expandRounds1+expandRounds2; j++ {
		q[j] = expand2(&q, m, h, j)
	}

	f2(h, m, &q)
}

func f0(q *[32]uint64, h, m *state) {
	var w state
	for i := range w {
		w[i] = m[i] ^ h[i]
	}

	q[0] = w[5] - w[7] + w[10] + w[13] + w[14]
	q[1] = w[6] - w[8] + w[11] + w[14] - w[15]
	q[2] = w[0] + w[7] + w[9] - w[12] + w[15]
	q[3] = w[0] - w[1] + w[8] - w[10] + w[13]
	q[4] = w[1] + w[2] + w[9] - w[11] - w[14]
	q[5] = w[3] - w[2] + w[10] - w[12] + w[15]
	q[6] = w[4] - w[0] - w[3] - w[11] + w[13]
	q[7] = w[1] - w[4] - w[5] - w[12] - w[14]
	q[8] = w[2] - w[5] - w[6] + w[13] - w[15]
	q[9] = w[0] - w[3] + w[6] - w[7] + w[14]
	q[10] = w[8] - w[1] - w[4] - w[7] + w[15]
	q[11] = w[8] - w[0] - w[2] - w[5] + w[9]
	q[12] = w[1] + w[3] - w[6] - w[9] + w[10]
	q[13] = w[2] + w[4] + w[7] + w[10] + w[11]
	q[14] = w[3] - w[5] + w[8] - w[11] - w[12]
	q[15] = w[12] - w[4] - w[6] - w[9] + w[13]

	for i := range 16 {
		q[i] = sFuncs[i%5](q[i]) + h[(i+1)&15]
	}
}

func s0(x uint64) uint64 {
	return x>>1 ^ x<<3 ^ bits.RotateLeft64(x, 4) ^ bits.RotateLeft64(x, 37)
}

func s1(x uint64) uint64 {
	return x>>1 ^ x<<2 ^ bits.RotateLeft64(x, 13) ^ bits.RotateLeft64(x, 43)
}

func s2(x uint64) uint64 {
	return x>>2 ^ x<<1 ^ bits.RotateLeft64(x, 19) ^ bits.RotateLeft64(x, 53)
}

func s3(x uint64) uint64 {
	return x>>2 ^ x<<2 ^ bits.RotateLeft64(x, 28) ^ bits.RotateLeft64(x, 59)
}

func s4(x uint64) uint64 {
	return x>>1 ^ x
}

func s5(x uint64) uint64 {
	return x>>2 ^ x
}

var sFuncs = [5]func(uint64) uint64{s0, s1, s2, s3, s4}

// rotations holds r1 to r7 of expand2.
var rotations = [7]int{5, 11, 27, 32, 37, 43, 53}

// addElement mixes three rotated message words and the j-th round constant with one chaining word.
func addElement(m, h *state, j int) uint64 {
	a, b, c := (j-16)&15, (j-13)&15, (j-6)&15
	k := uint64(j) * 0x0555555555555555
	return (bits.RotateLeft64(m[a], a+1) + bits.RotateLeft64(m[b], b+1) - bits.RotateLeft64(m[c], c+1) + k) ^ h[(j-9)&15]
}

func expand1(q *[32]uint64, m, h *state, j int) uint64 {
	var sum uint64
	for i := range 16 {
		sum += sFuncs[(i+1)&3](q[j-16+i])
	}
	return sum + addElement(m, h, j)
}

func expand2(q *[32]uint64, m, h *state, j int) uint64 {
	var sum uint64
	for i := 0; i < 14; i += 2 {
		sum += q[j-16+i] + bits.RotateLeft64(q[j-15+i], rotations[i/2])
	}
	return sum + s4(q[j-2]) + s5(q[j-1]) + addElement(m, h, j)
}

func f2(h, m *state, q *[32]uint64) {
	xl := q[16] ^ q[17] ^ q[18] ^ q[19] ^ q[20] ^ q[21] ^ q[22] ^ q[23]
	xh := xl ^ q[24] ^ q[25] ^ q[26] ^ q[27] ^ q[28] ^ q[29] ^ q[30] ^ q[31]

	h[0] = (xh<<5 ^ q[16]>>5 ^ m[0]) + (xl ^ q[24] ^ q[0])
	h[1] = (xh>>7 ^ q[17]<<8 ^ m[1]) + (xl ^ q[25] ^ q[1])
	h[2] = (xh>>5 ^ q[18]<<5 ^ m[2]) + (xl ^ q[26] ^ q[2])
	h[3] = (xh>>1 ^ q[19]<<5 ^ m[3]) + (xl ^ q[27] ^ q[3])
	h[4] = (xh>>3 ^ q[20] ^ m[4]) + (xl ^ q[28] ^ q[4])
	h[5] = (xh<<6 ^ q[21]>>6 ^ m[5]) + (xl ^ q[29] ^ q[5])
	h[6] = (xh>>4 ^ q[22]<<6 ^ m[6]) + (xl ^ q[30] ^ q[6])
	h[7] = (xh>>11 ^ q[23]<<2 ^ m[7]) + (xl ^ q[31] ^ q[7])

	h[8] = bits.RotateLeft64(h[4], 9) + (xh ^ q[24] ^ m[8]) + (xl<<8 ^ q[23] ^ q[8])
	h[9] = bits.RotateLeft64(h[5], 10) + (xh ^ q[25] ^ m[9]) + (xl>>6 ^ q[16] ^ q[9])
	h[10] = bits.RotateLeft64(h[6], 11) + (xh ^ q[26] ^ m[10]) + (xl<<6 ^ q[17] ^ q[10])
	h[11] = bits.RotateLeft64(h[7], 12) + (xh ^ q[27] ^ m[11]) + (xl<<4 ^ q[18] ^ q[11])
	h[12] = bits.RotateLeft64(h[0], 13) + (xh ^ q[28] ^ m[12]) + (xl>>3 ^ q[19] ^ q[12])
	h[13] = bits.RotateLeft64(h[1], 14) + (xh ^ q[29] ^ m[13]) + (xl>>4 ^ q[20] ^ q[13])
	h[14] = bits.RotateLeft64(h[2], 15) + (xh ^ q[30] ^ m[14]) + (xl>>7 ^ q[21] ^ q[14])
	h[15] = bits.RotateLeft64(h[3], 16) + (xh ^ q[31] ^ m[15]) + (xl>>2 ^ q[22] ^ q[15])
}
