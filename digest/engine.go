package digest

import (
	"git.gammaspectra.live/P2Pool/sph/utils"
)

// Engine drives one Algorithm over a stream of bytes. It is not safe for concurrent use.
type Engine[S any] struct {
	alg  Algorithm[S]
	desc Descriptor

	state S
	ctx   Context

	buf [MaxBlockSize]byte // bytes not yet compressed
	nx  int                // number of bytes in buf
}

// New returns a reset Engine running alg.
func New[S any](alg Algorithm[S]) *Engine[S] {
	desc := alg.Descriptor()
	if desc.BlockSize <= 0 || desc.BlockSize > MaxBlockSize || desc.Size <= 0 {
		utils.Panicf("digest: invalid descriptor for %s: size %d, block size %d", desc.Name, desc.Size, desc.BlockSize)
	}

	e := &Engine[S]{
		alg:  alg,
		desc: desc,
	}
	e.Reset()
	return e
}

func (e *Engine[S]) Name() string { return e.desc.Name }

func (e *Engine[S]) Size() int { return e.desc.Size }

func (e *Engine[S]) BlockSize() int { return e.desc.BlockSize }

// Reset restores the initial chaining value and clears the buffer and counters.
func (e *Engine[S]) Reset() {
	e.alg.Init(&e.state)
	e.ctx = Context{}
	e.nx = 0
}

func (e *Engine[S]) Write(p []byte) (nn int, err error) {
	nn = len(p)
	bs := e.desc.BlockSize

	if e.nx > 0 {
		n := copy(e.buf[e.nx:bs], p)
		e.nx += n
		if e.nx == bs {
			e.compress(e.buf[:bs])
			e.nx = 0
		}
		p = p[n:]
	}

	for len(p) >= bs {
		e.compress(p[:bs])
		p = p[bs:]
	}

	if len(p) > 0 {
		e.nx = copy(e.buf[:bs], p)
	}
	return
}

func (e *Engine[S]) WriteByte(c byte) error {
	e.buf[e.nx] = c
	e.nx++
	if e.nx == e.desc.BlockSize {
		e.compress(e.buf[:e.nx])
		e.nx = 0
	}
	return nil
}

func (e *Engine[S]) compress(block []byte) {
	e.alg.Compress(&e.state, block, e.ctx)
	e.ctx.Length = e.ctx.Length.Add64(uint64(len(block)))
	e.ctx.Block++
}

// Sum appends the digest of everything written so far to b. The engine state is left untouched.
func (e *Engine[S]) Sum(b []byte) []byte {
	if e.nx >= e.desc.BlockSize {
		utils.Panicf("digest: %s buffer holds %d bytes, block size is %d", e.desc.Name, e.nx, e.desc.BlockSize)
	}

	state := e.state
	n := len(b)
	b = e.alg.Finalize(&state, e.buf[:e.nx], e.ctx, b)
	if len(b)-n != e.desc.Size {
		utils.Panicf("digest: %s produced %d bytes, want %d", e.desc.Name, len(b)-n, e.desc.Size)
	}
	return b
}

// Digest writes p, returns the final digest and resets the engine.
func (e *Engine[S]) Digest(p []byte) []byte {
	_, _ = e.Write(p)
	defer e.Reset()
	return e.Sum(nil)
}

func (e *Engine[S]) Copy() Digest {
	c := *e
	return &c
}

var _ Digest = (*Engine[[8]uint64])(nil)
