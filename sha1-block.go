// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"encoding/binary"
	"math/bits"
)

// blockSHA1 expands one block into the 80-word message schedule and runs
// the 80 SHA-1 rounds (FIPS 180-1, section 7).
func blockSHA1(h *[5]uint32, p *[BlockSize]byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[4*i:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
	for i := 0; i < 80; i++ {
		step := i / sha1Steps
		var f uint32
		switch step {
		case 0:
			f = (b & c) | (^b & d)
		case 2:
			f = (b & c) | (b & d) | (c & d)
		default:
			f = b ^ c ^ d
		}
		t := bits.RotateLeft32(a, 5) + f + e + sha1consts[step] + w[i]
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}
