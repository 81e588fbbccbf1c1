// Package kat runs known-answer test vectors against a registry.
package kat

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"git.gammaspectra.live/P2Pool/sph/registry"
	"git.gammaspectra.live/P2Pool/sph/types"
	"git.gammaspectra.live/P2Pool/sph/utils"
)

type Vector struct {
	Algorithm registry.Algorithm `json:"algorithm"`
	Message   types.Sum          `json:"message"`
	Digest    types.Sum          `json:"digest"`
}

type Result struct {
	Vector Vector `json:"vector"`

	// OneShot is the digest of the message written in a single call.
	OneShot types.Sum `json:"one_shot"`
	// ByteWise is the digest of the message written one byte at a time.
	ByteWise types.Sum `json:"byte_wise"`
}

func (r Result) Passed() bool {
	return r.OneShot.Equal(r.Vector.Digest) && r.ByteWise.Equal(r.Vector.Digest)
}

//go:embed vectors.json
var builtin []byte

// Builtin returns the vectors shipped with this module.
func Builtin() (vectors []Vector) {
	if err := utils.UnmarshalJSON(builtin, &vectors); err != nil {
		utils.Panicf("kat: builtin vectors: %s", err)
	}
	return vectors
}

// Load decodes a JSON array of vectors.
func Load(r io.Reader) (vectors []Vector, err error) {
	if err = utils.NewJSONDecoder(r).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("kat: %w", err)
	}
	return vectors, nil
}

func LoadFile(path string) ([]Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vectors, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vectors, nil
}

// Check hashes the message of v once in one call and once byte by byte.
// A mismatch is reported through Result, an unknown algorithm as an error.
func Check(reg *registry.Registry, v Vector) (Result, error) {
	d, err := reg.New(v.Algorithm)
	if err != nil {
		return Result{}, err
	}

	result := Result{Vector: v}
	result.OneShot = d.Digest(v.Message)

	for _, c := range v.Message {
		_ = d.WriteByte(c)
	}
	result.ByteWise = d.Sum(nil)

	return result, nil
}

// Run checks every vector and logs each outcome. It stops at the first error.
func Run(reg *registry.Registry, vectors []Vector) (results []Result, err error) {
	results = make([]Result, 0, len(vectors))
	for i, v := range vectors {
		result, err := Check(reg, v)
		if err != nil {
			return results, fmt.Errorf("vector %d: %w", i, err)
		}

		if result.Passed() {
			if utils.IsLogLevelDebug() {
				utils.Debugf("KAT", "vector %d %s(%s) = %s", i, v.Algorithm, v.Message, v.Digest)
			}
		} else {
			utils.Errorf("KAT", "vector %d %s(%s): want %s, got %s (one-shot) %s (byte-wise)", i, v.Algorithm, v.Message, v.Digest, result.OneShot, result.ByteWise)
		}
		results = append(results, result)
	}
	return results, nil
}

// Failed counts the results that did not pass.
func Failed(results []Result) (n int) {
	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}
	return n
}
