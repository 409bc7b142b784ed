// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"io"

	"github.com/pkg/errors"
)

// SumBytes returns the digest of p.
func SumBytes(alg Algorithm, p []byte) Digest {
	e := newEngine(alg)
	for len(p) >= BlockSize {
		e.Absorb(p[:BlockSize])
		p = p[BlockSize:]
	}
	return finish(&e, p)
}

// SumMD5 returns the MD5 digest of p.
func SumMD5(p []byte) Digest { return SumBytes(MD5, p) }

// SumSHA1 returns the SHA-1 digest of p.
func SumSHA1(p []byte) Digest { return SumBytes(SHA1, p) }

// SumReader reads r to EOF in blocks of BlockSize bytes and returns the
// digest. Memory use does not depend on the length of the stream.
//
// A read error aborts the computation and is returned wrapped; the
// original error remains reachable through errors.Is and errors.Cause.
func SumReader(alg Algorithm, r io.Reader) (Digest, error) {
	ds, err := SumReaderAll(r, alg)
	if err != nil {
		return Digest{}, err
	}
	return ds[alg], nil
}

// SumReaderAll computes one digest per algorithm in a single pass over r.
// With no algorithms given, all supported algorithms are computed.
func SumReaderAll(r io.Reader, algs ...Algorithm) (Digests, error) {
	if len(algs) == 0 {
		algs = Algorithms
	}
	engines := make([]Engine, len(algs))
	for i, alg := range algs {
		engines[i] = newEngine(alg)
	}

	var buf [BlockSize]byte
	for block := 0; ; block++ {
		n, err := io.ReadFull(r, buf[:])
		switch err {
		case nil, io.EOF, io.ErrUnexpectedEOF:
		default:
			return nil, errors.Wrapf(err, "hashsum: reading block %d", block)
		}
		if n < BlockSize {
			ds := make(Digests, len(algs))
			for i := range engines {
				ds[engines[i].alg] = finish(&engines[i], buf[:n])
			}
			return ds, nil
		}
		for i := range engines {
			engines[i].Absorb(buf[:])
		}
	}
}

// finish absorbs the terminal block, plus the trailing length block when
// the padding spilled over, and returns the digest.
func finish(e *Engine, last []byte) Digest {
	e.Absorb(last)
	if !e.Done() {
		e.Absorb(nil)
	}
	d, _ := e.Digest()
	return d
}
