// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"encoding/binary"
	"fmt"
)

// padState tracks how far an engine has got with the final padding.
type padState uint8

const (
	// awaitingData: no padding written yet, the 0x80 marker is still owed.
	awaitingData padState = iota
	// awaitingLength: the marker went into a block that had no room for the
	// bit length; one more empty block must be absorbed.
	awaitingLength
	// done: the length block was compressed and the digest is available.
	done
)

func (s padState) String() string {
	switch s {
	case awaitingData:
		return "awaiting-data"
	case awaitingLength:
		return "awaiting-length"
	case done:
		return "done"
	}
	return fmt.Sprintf("padState(%d)", uint8(s))
}

// blockFunc compresses one 64-byte block into the registers.
type blockFunc func(h *[5]uint32, p *[BlockSize]byte)

// Engine computes a single MD5 or SHA-1 digest from blocks of at most
// BlockSize bytes delivered in stream order. Any block shorter than
// BlockSize is terminal and triggers padding.
//
// An Engine is a plain value with no references to shared state, so it can
// be copied to snapshot a computation. It is not safe for concurrent use.
type Engine struct {
	alg   Algorithm
	h     [5]uint32 // MD5 uses h[0:4]
	len   uint64    // message length in bits
	state padState
	order binary.ByteOrder
	block blockFunc
	sum   [SizeSHA1]byte
}

// NewEngine returns an engine ready to absorb the first block of a message.
// It panics if alg is not a supported algorithm.
func NewEngine(alg Algorithm) *Engine {
	e := newEngine(alg)
	return &e
}

func newEngine(alg Algorithm) (e Engine) {
	e.alg = alg
	switch alg {
	case MD5:
		e.order = binary.LittleEndian
		e.block = blockMD5
	case SHA1:
		e.order = binary.BigEndian
		e.block = blockSHA1
	default:
		panic(fmt.Sprintf("hashsum: invalid algorithm %d", uint8(alg)))
	}
	e.Reset()
	return
}

// Reset returns the engine to its initial state.
func (e *Engine) Reset() {
	switch e.alg {
	case MD5:
		e.h = [5]uint32{md5init0, md5init1, md5init2, md5init3}
	case SHA1:
		e.h = [5]uint32{sha1init0, sha1init1, sha1init2, sha1init3, sha1init4}
	}
	e.len = 0
	e.state = awaitingData
	e.sum = [SizeSHA1]byte{}
}

// Algorithm returns the algorithm the engine computes.
func (e *Engine) Algorithm() Algorithm { return e.alg }

// Done reports whether the digest has been produced.
func (e *Engine) Done() bool { return e.state == done }

// Absorb consumes the next block of the message.
//
// A block of exactly BlockSize bytes is compressed as is. A shorter block
// (including an empty one) ends the message: it is padded and, when fewer
// than 8 bytes remain for the bit length, the engine waits for one more
// empty block before producing the digest. Check Done after a terminal
// block and absorb nil if it reports false.
//
// Absorb panics if p is longer than BlockSize, if data follows a terminal
// block, or if the digest was already produced.
func (e *Engine) Absorb(p []byte) {
	if len(p) > BlockSize {
		panic(fmt.Sprintf("hashsum: block of %d bytes exceeds block size %d", len(p), BlockSize))
	}
	switch e.state {
	case done:
		panic("hashsum: absorb on a finished engine")
	case awaitingLength:
		if len(p) > 0 {
			panic("hashsum: data after terminal block")
		}
	}

	e.len += uint64(len(p)) << 3

	if len(p) == BlockSize {
		e.block(&e.h, (*[BlockSize]byte)(p))
		return
	}

	var x [BlockSize]byte
	n := copy(x[:], p)
	if e.state == awaitingData {
		x[n] = 0x80
		n++
	}
	if BlockSize-n < 8 {
		// No room left for the length; it goes into an extra block.
		e.block(&e.h, &x)
		e.state = awaitingLength
		return
	}
	e.order.PutUint64(x[lenOffset:], e.len)
	e.block(&e.h, &x)
	e.state = done

	for i := 0; i < e.alg.Size()/4; i++ {
		e.order.PutUint32(e.sum[i*4:], e.h[i])
	}
}

// Digest returns the finished digest. ok is false until Done reports true.
func (e *Engine) Digest() (d Digest, ok bool) {
	if e.state != done {
		return Digest{}, false
	}
	return newDigest(e.alg, e.sum[:e.alg.Size()]), true
}
