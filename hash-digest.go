// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"hash"
)

// digest adapts an Engine to hash.Hash by buffering writes into blocks.
type digest struct {
	e  Engine
	x  [BlockSize]byte
	nx int
}

// New returns a hash.Hash computing alg. Sum may be called any number of
// times; writing can continue afterwards.
func New(alg Algorithm) hash.Hash {
	return &digest{e: newEngine(alg)}
}

// NewMD5 returns a hash.Hash computing MD5.
func NewMD5() hash.Hash { return New(MD5) }

// NewSHA1 returns a hash.Hash computing SHA-1.
func NewSHA1() hash.Hash { return New(SHA1) }

// Size - Return size of checksum
func (d *digest) Size() int { return d.e.alg.Size() }

// BlockSize - Return blocksize of checksum
func (d *digest) BlockSize() int { return BlockSize }

// Reset - reset digest to its initial values
func (d *digest) Reset() {
	d.e.Reset()
	d.nx = 0
}

// Write to digest
func (d *digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			d.e.Absorb(d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	for len(p) >= BlockSize {
		d.e.Absorb(p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// Sum - Return checksum in bytes
func (d *digest) Sum(in []byte) []byte {
	// Finish a copy so the caller can keep writing.
	e := d.e
	dg := finish(&e, d.x[:d.nx])
	return append(in, dg.sum[:dg.alg.Size()]...)
}
