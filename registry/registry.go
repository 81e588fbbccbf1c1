// Package registry maps algorithm identifiers to Digest constructors.
package registry

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"slices"
	"strings"
	"sync"

	"git.gammaspectra.live/P2Pool/sph/digest"
	"git.gammaspectra.live/P2Pool/sph/digest/blake"
	"git.gammaspectra.live/P2Pool/sph/digest/bmw"
	"git.gammaspectra.live/P2Pool/sph/digest/keccak"
	"git.gammaspectra.live/P2Pool/sph/digest/shabal"
	"github.com/dolthub/swiss"
	"golang.org/x/crypto/blake2b"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

type Algorithm string

const (
	BLAKE224 Algorithm = "BLAKE224"
	BLAKE256 Algorithm = "BLAKE256"
	BLAKE384 Algorithm = "BLAKE384"
	BLAKE512 Algorithm = "BLAKE512"

	BMW512 Algorithm = "BMW512"

	Shabal192 Algorithm = "Shabal192"
	Shabal224 Algorithm = "Shabal224"
	Shabal256 Algorithm = "Shabal256"
	Shabal384 Algorithm = "Shabal384"
	Shabal512 Algorithm = "Shabal512"

	Keccak256 Algorithm = "Keccak256"
	Keccak512 Algorithm = "Keccak512"

	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"

	BLAKE2b256 Algorithm = "BLAKE2b256"
	BLAKE2b512 Algorithm = "BLAKE2b512"
)

type Entry struct {
	Algorithm Algorithm
	New       func() digest.Digest
}

// Registry is a read-only table of constructors. It is safe for concurrent use once built.
type Registry swiss.Map[Algorithm, func() digest.Digest]

func (r *Registry) m() *swiss.Map[Algorithm, func() digest.Digest] {
	return (*swiss.Map[Algorithm, func() digest.Digest])(r)
}

// New builds a registry from entries. A later entry replaces an earlier one with the same identifier.
func New(entries ...Entry) *Registry {
	m := swiss.NewMap[Algorithm, func() digest.Digest](uint32(len(entries)))
	for _, e := range entries {
		m.Put(e.Algorithm, e.New)
	}
	return (*Registry)(m)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return New(Entries()...)
})

// Default returns the shared registry of every algorithm in this module.
func Default() *Registry {
	return defaultRegistry()
}

// Entries lists every algorithm in this module, including the wrapped standard hashes.
func Entries() []Entry {
	return []Entry{
		{BLAKE224, blake.New224},
		{BLAKE256, blake.New256},
		{BLAKE384, blake.New384},
		{BLAKE512, blake.New512},

		{BMW512, bmw.New512},

		{Shabal192, shabal.New192},
		{Shabal224, shabal.New224},
		{Shabal256, shabal.New256},
		{Shabal384, shabal.New384},
		{Shabal512, shabal.New512},

		{Keccak256, keccak.New256},
		{Keccak512, keccak.New512},

		{SHA256, wrap("SHA-256", sha256.New)},
		{SHA512, wrap("SHA-512", sha512.New)},

		{BLAKE2b256, wrap("BLAKE2b-256", unkeyed(blake2b.New256))},
		{BLAKE2b512, wrap("BLAKE2b-512", unkeyed(blake2b.New512))},
	}
}

func wrap(name string, fn func() hash.Hash) func() digest.Digest {
	return func() digest.Digest {
		return digest.Wrap(name, fn)
	}
}

// unkeyed adapts a keyed constructor. A nil key never fails.
func unkeyed(fn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

// New returns a fresh instance of id.
func (r *Registry) New(id Algorithm) (digest.Digest, error) {
	if fn, ok := r.m().Get(id); ok {
		return fn(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
}

func (r *Registry) Has(id Algorithm) bool {
	return r.m().Has(id)
}

func (r *Registry) Count() int {
	return r.m().Count()
}

// Algorithms returns every identifier in sorted order.
func (r *Registry) Algorithms() []Algorithm {
	ids := make([]Algorithm, 0, r.m().Count())
	r.m().Iter(func(id Algorithm, _ func() digest.Digest) (stop bool) {
		ids = append(ids, id)
		return false
	})
	slices.Sort(ids)
	return ids
}

// Lookup resolves a user supplied name. Case, dashes and underscores are ignored, so
// "blake-512" and "BLAKE_512" both resolve to BLAKE512.
func (r *Registry) Lookup(name string) (Algorithm, error) {
	key := normalize(name)
	var found Algorithm
	r.m().Iter(func(id Algorithm, _ func() digest.Digest) (stop bool) {
		if normalize(string(id)) == key {
			found = id
			return true
		}
		return false
	})
	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return found, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
}
