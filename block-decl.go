// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

// BlockSize is the block size of both MD5 and SHA-1 in bytes.
const BlockSize = 64

// lenOffset is where the 64-bit bit length starts in the last padded block.
const lenOffset = BlockSize - 8

// MD5 initialization constants
const (
	md5init0 = 0x67452301
	md5init1 = 0xefcdab89
	md5init2 = 0x98badcfe
	md5init3 = 0x10325476
)

// SHA-1 initialization constants
const (
	sha1init0 = 0x67452301
	sha1init1 = 0xefcdab89
	sha1init2 = 0x98badcfe
	sha1init3 = 0x10325476
	sha1init4 = 0xc3d2e1f0
)

// MD5 magic numbers, floor(abs(sin(i+1)) * 2^32).
var md5consts = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// Per-round left rotation amounts.
var md5shifts = [64]uint8{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// md5index holds the message word consumed by each round; expanded once
// at init time from the per-quarter formulas.
var md5index = func() (g [64]uint8) {
	for i := range g {
		switch i >> 4 {
		case 0:
			g[i] = uint8(i)
		case 1:
			g[i] = uint8((5*i + 1) % 16)
		case 2:
			g[i] = uint8((3*i + 5) % 16)
		default:
			g[i] = uint8((7 * i) % 16)
		}
	}
	return
}()

// sha1Steps is the number of consecutive rounds sharing one SHA-1 constant
// and round function.
const sha1Steps = 20

// SHA-1 round constants, one per 20-step range.
var sha1consts = [4]uint32{
	0x5a827999, // rounds 0..19
	0x6ed9eba1, // rounds 20..39
	0x8f1bbcdc, // rounds 40..59
	0xca62c1d6, // rounds 60..79
}
