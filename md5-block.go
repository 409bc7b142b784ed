// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"encoding/binary"
	"math/bits"
)

// blockMD5 runs the 64 MD5 rounds over one block (RFC 1321, section 3.4).
func blockMD5(h *[5]uint32, p *[BlockSize]byte) {
	var x [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(p[4*i:])
	}

	a, b, c, d := h[0], h[1], h[2], h[3]
	for i := 0; i < 64; i++ {
		var f uint32
		switch i >> 4 {
		case 0:
			f = (b & c) | (^b & d)
		case 1:
			f = (d & b) | (^d & c)
		case 2:
			f = b ^ c ^ d
		default:
			f = c ^ (b | ^d)
		}
		f += a + md5consts[i] + x[md5index[i]]
		a, b, c, d = d, b+bits.RotateLeft32(f, int(md5shifts[i])), b, c
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
}
