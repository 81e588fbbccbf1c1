package keccak

import (
	"bytes"
	"fmt"
	"hash"
	"testing"

	"git.gammaspectra.live/P2Pool/sph/digest"
	"github.com/tmthrgd/go-hex"
	"golang.org/x/crypto/sha3"
)

func TestSum(t *testing.T) {
	const want = "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"

	d := New256()
	if result := hex.EncodeToString(d.Sum(nil)); result != want {
		t.Fatalf("Sum(\"\") = %s, want %s", result, want)
	}
}

func TestReferenceImplementation(t *testing.T) {
	pairs := []struct {
		ours      func() digest.Digest
		reference func() hash.Hash
	}{
		{New256, sha3.NewLegacyKeccak256},
		{New512, sha3.NewLegacyKeccak512},
	}

	for _, pair := range pairs {
		d := pair.ours()
		t.Run(d.Name(), func(t *testing.T) {
			// includes the tail that puts both padding bits into one byte
			for n := range 3*BlockSize256 + 1 {
				msg := make([]byte, n)
				for i := range msg {
					msg[i] = byte(i*13 + n)
				}

				ref := pair.reference()
				_, _ = ref.Write(msg)
				want := ref.Sum(nil)

				if got := d.Digest(msg); !bytes.Equal(got, want) {
					t.Fatalf("length %d: got %x, want %x", n, got, want)
				}
			}
		})
	}
}

func TestSizes(t *testing.T) {
	for _, tt := range []struct {
		d         digest.Digest
		size      int
		blockSize int
	}{
		{New256(), Size256, 136},
		{New512(), Size512, 72},
	} {
		if tt.d.Size() != tt.size || tt.d.BlockSize() != tt.blockSize || tt.d.BlockSize() > digest.MaxBlockSize {
			t.Errorf("%s: size %d, block size %d", tt.d.Name(), tt.d.Size(), tt.d.BlockSize())
		}
	}
}

func TestPermuteZero(t *testing.T) {
	// first lane of Keccak-f[1600] applied to the all-zero state
	var a state
	permute(&a)
	if got := fmt.Sprintf("%016x", a[0]); got != "f1258f7940e1dde7" {
		t.Fatalf("a[0] = %s", got)
	}
}

func BenchmarkKeccak256(b *testing.B) {
	d := New256()
	buf := make([]byte, 8192)
	b.SetBytes(int64(len(buf)))
	b.ReportAllocs()

	for b.Loop() {
		d.Reset()
		_, _ = d.Write(buf)
		d.Sum(buf[:0])
	}
}
