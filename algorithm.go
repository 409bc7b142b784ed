// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package hashsum computes RFC 1321 MD5 and FIPS 180-1 SHA-1 digests
// block by block, so inputs of any length are hashed in constant memory.
package hashsum

import (
	"fmt"
	"strings"

	"github.com/multiformats/go-multihash"
)

// Algorithm selects the digest computed by an Engine.
type Algorithm uint8

const (
	MD5 Algorithm = iota + 1
	SHA1
)

// Digest sizes in bytes.
const (
	SizeMD5  = 16
	SizeSHA1 = 20
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{MD5, SHA1}

// ParseAlgorithm returns the algorithm for a name such as "md5" or "sha1".
// Matching is case insensitive and accepts "sha-1".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "md5":
		return MD5, nil
	case "sha1", "sha-1":
		return SHA1, nil
	}
	return 0, fmt.Errorf("hashsum: unknown algorithm %q", name)
}

// String returns the lowercase name, "md5" or "sha1".
func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA1:
		return "sha1"
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

// Tag returns the name used in BSD-style checksum lines.
func (a Algorithm) Tag() string {
	switch a {
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA1"
	}
	return strings.ToUpper(a.String())
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return SizeMD5
	case SHA1:
		return SizeSHA1
	}
	return 0
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool { return a == MD5 || a == SHA1 }

// multihashCode returns the multicodec identifier for a.
func (a Algorithm) multihashCode() uint64 {
	if a == SHA1 {
		return multihash.SHA1
	}
	return multihash.MD5
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("hashsum: invalid algorithm %d", uint8(a))
	}
	return []byte(a.String()), nil
}
