package blake_test

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
	"testing"

	"git.gammaspectra.live/P2Pool/sph/digest"
	"git.gammaspectra.live/P2Pool/sph/digest/blake"
	dchest256 "github.com/dchest/blake256"
	dchest512 "github.com/dchest/blake512"
	"github.com/tmthrgd/go-hex"
)

type testVector struct {
	New    func() digest.Digest
	Input  []byte
	Output string
}

var testVectors = []testVector{
	{New: blake.New512, Input: []byte{}, Output: "a8cfbbd73726062df0c6864dda65defe58ef0cc52a5625090fa17601e1eecd1b628e94f396ae402a00acc9eab77b4d4c2e852aaaa25a636d80af3fc7913ef5b8"},
	{New: blake.New512, Input: []byte{0xcc}, Output: "4f0ef594f20172d23504873f596984c64c1583c7b2abb8d8786aa2aeeae1c46c744b61893d661b0733b76d1fe19257dd68e0ef05422ca25d058dfe6c33d68709"},

	// From the BLAKE submission document
	{New: blake.New512, Input: []byte{0x00}, Output: "97961587f6d970faba6d2478045de6d1fabd09b61ae50932054d52bc29d31be4ff9102b9f69e2bbdb83be13d4b9c06091e5fa0b48bd081b634058be0ec49beb3"},
	{New: blake.New512, Input: make([]byte, 144), Output: "313717d608e9cf758dcb1eb0f0c3cf9fc150b2d500fb33f51c52afc99d358a2f1374b8a38bba7974e7f6ef79cab16f22ce1e649d6e01ad9589c213045d545dde"},
	{New: blake.New256, Input: []byte{0x00}, Output: "0ce8d4ef4dd7cd8d62dfded9d4edb0a774ae6a41929a74da23109e8f11139c87"},
	{New: blake.New256, Input: make([]byte, 72), Output: "d419bad32d504fb7d44d460c42c5593fe544fa4c135dec31e21bd9abdcc22d41"},

	{New: blake.New256, Input: []byte{}, Output: "716f6e863f744b9ac22c97ec7b76ea5f5908bc5b2f67c61510bfc4751384ea7a"},
}

func TestSum(t *testing.T) {
	for _, v := range testVectors {
		d := v.New()
		t.Run(fmt.Sprintf("%s/%x_%d", d.Name(), v.Input[:min(len(v.Input), 8)], len(v.Input)), func(t *testing.T) {
			_, _ = d.Write(v.Input)
			if result := hex.EncodeToString(d.Sum(nil)); result != v.Output {
				t.Errorf("Sum(...) = %s, want %s", result, v.Output)
			}
		})
	}
}

func testMessage(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*7 + n)
	}
	return buf
}

func TestReferenceImplementation(t *testing.T) {
	salt256 := []byte("0123456789abcdef")
	salt512 := []byte("0123456789abcdef0123456789abcdef")

	salted256, err := blake.NewSalt256(salt256)
	if err != nil {
		t.Fatal(err)
	}
	salted512, err := blake.NewSalt512(salt512)
	if err != nil {
		t.Fatal(err)
	}

	pairs := []struct {
		ours      digest.Digest
		reference func() hash.Hash
	}{
		{blake.New224(), dchest256.New224},
		{blake.New256(), dchest256.New},
		{blake.New384(), dchest512.New384},
		{blake.New512(), dchest512.New},
		{salted256, func() hash.Hash { return dchest256.NewSalt(salt256) }},
		{salted512, func() hash.Hash { return dchest512.NewSalt(salt512) }},
	}

	for i, pair := range pairs {
		t.Run(fmt.Sprintf("%s/%d", pair.ours.Name(), i), func(t *testing.T) {
			// covers every tail length around the length field of both block sizes
			for n := range 3*blake.BlockSize512 + 1 {
				msg := testMessage(n)

				ref := pair.reference()
				_, _ = ref.Write(msg)
				want := ref.Sum(nil)

				pair.ours.Reset()
				_, _ = pair.ours.Write(msg)
				if got := pair.ours.Sum(nil); !bytes.Equal(got, want) {
					t.Fatalf("length %d: got %x, want %x", n, got, want)
				}
			}
		})
	}
}

func TestSaltChangesDigest(t *testing.T) {
	salted, err := blake.NewSalt512(bytes.Repeat([]byte{1}, blake.SaltSize512))
	if err != nil {
		t.Fatal(err)
	}
	zeroSalt, err := blake.NewSalt512(make([]byte, blake.SaltSize512))
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte("salted")
	if bytes.Equal(salted.Digest(msg), blake.New512().Digest(msg)) {
		t.Fatal("salt did not change the digest")
	}
	if !bytes.Equal(zeroSalt.Digest(msg), blake.New512().Digest(msg)) {
		t.Fatal("zero salt must match the unsalted digest")
	}
}

func TestInvalidSalt(t *testing.T) {
	constructors := []func([]byte) (digest.Digest, error){
		blake.NewSalt224, blake.NewSalt256, blake.NewSalt384, blake.NewSalt512,
	}
	for _, fn := range constructors {
		if _, err := fn(make([]byte, 5)); !errors.Is(err, blake.ErrInvalidSaltSize) {
			t.Errorf("expected ErrInvalidSaltSize, got %v", err)
		}
	}
}

func TestSizes(t *testing.T) {
	tests := []struct {
		d         digest.Digest
		name      string
		size      int
		blockSize int
	}{
		{blake.New224(), "BLAKE-224", blake.Size224, blake.BlockSize256},
		{blake.New256(), "BLAKE-256", blake.Size256, blake.BlockSize256},
		{blake.New384(), "BLAKE-384", blake.Size384, blake.BlockSize512},
		{blake.New512(), "BLAKE-512", blake.Size512, blake.BlockSize512},
	}

	for _, tt := range tests {
		if tt.d.Name() != tt.name || tt.d.Size() != tt.size || tt.d.BlockSize() != tt.blockSize {
			t.Errorf("%s: got name %s, size %d, block size %d", tt.name, tt.d.Name(), tt.d.Size(), tt.d.BlockSize())
		}
		if n := len(tt.d.Sum(nil)); n != tt.size {
			t.Errorf("%s: Sum returned %d bytes", tt.name, n)
		}
	}
}

func BenchmarkBLAKE512(b *testing.B) {
	d := blake.New512()
	buf := make([]byte, 8192)
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()

	for b.Loop() {
		d.Reset()
		_, _ = d.Write(buf)
		d.Sum(buf[:0])
	}
}

func BenchmarkBLAKE256(b *testing.B) {
	d := blake.New256()
	buf := make([]byte, 8192)
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()

	for b.Loop() {
		d.Reset()
		_, _ = d.Write(buf)
		d.Sum(buf[:0])
	}
}
