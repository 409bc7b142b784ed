// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package hashsum

import (
	"bytes"
	"encoding/hex"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
)

// Digest is a finished MD5 or SHA-1 digest. The zero value is not a valid
// digest; see IsZero.
type Digest struct {
	alg Algorithm
	sum [SizeSHA1]byte
}

func newDigest(alg Algorithm, b []byte) (d Digest) {
	d.alg = alg
	copy(d.sum[:], b)
	return
}

// Algorithm returns the algorithm that produced d.
func (d Digest) Algorithm() Algorithm { return d.alg }

// IsZero reports whether d is the zero Digest.
func (d Digest) IsZero() bool { return d.alg == 0 }

// Bytes returns a copy of the raw digest, 16 bytes for MD5 and 20 for SHA-1.
func (d Digest) Bytes() []byte {
	return append([]byte(nil), d.sum[:d.alg.Size()]...)
}

// Equal reports whether both digests were produced by the same algorithm
// over the same message.
func (d Digest) Equal(o Digest) bool {
	return d.alg == o.alg && bytes.Equal(d.sum[:], o.sum[:])
}

// Hex renders the digest as lowercase hexadecimal, 32 characters for MD5
// and 40 for SHA-1.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.sum[:d.alg.Size()])
}

// String implements fmt.Stringer and returns Hex.
func (d Digest) String() string { return d.Hex() }

// Base64 renders the digest as padded standard base64.
func (d Digest) Base64() string {
	s, err := multibase.Encode(multibase.Base64pad, d.sum[:d.alg.Size()])
	if err != nil {
		// Base64pad is always registered.
		panic(err)
	}
	// Drop the multibase prefix character.
	return s[1:]
}

// Multihash returns the digest wrapped as a multihash.
func (d Digest) Multihash() (multihash.Multihash, error) {
	if !d.alg.Valid() {
		return nil, errors.New("hashsum: multihash of zero digest")
	}
	mh, err := multihash.Encode(d.sum[:d.alg.Size()], d.alg.multihashCode())
	if err != nil {
		return nil, errors.Wrapf(err, "hashsum: encoding %s multihash", d.alg)
	}
	return mh, nil
}

// Multibase renders the multihash of d in the given base, e.g.
// multibase.Base32 for a "b..." string.
func (d Digest) Multibase(base multibase.Encoding) (string, error) {
	mh, err := d.Multihash()
	if err != nil {
		return "", err
	}
	s, err := multibase.Encode(base, mh)
	if err != nil {
		return "", errors.Wrap(err, "hashsum: multibase encoding")
	}
	return s, nil
}

// Digests holds the results of hashing one message with several algorithms.
type Digests map[Algorithm]Digest

// Map returns the raw digests keyed by algorithm name.
func (ds Digests) Map() map[string][]byte {
	m := make(map[string][]byte, len(ds))
	for alg, d := range ds {
		m[alg.String()] = d.Bytes()
	}
	return m
}
