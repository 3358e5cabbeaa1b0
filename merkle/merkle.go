// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Root - compute the merkle root of a list of leaf digests
//
// each level hashes adjacent pairs, an odd final node is paired with
// itself; a single leaf is its own root and an empty list hashes to
// the digest of no data
func Root(leaves []Digest) Digest {
	if 0 == len(leaves) {
		return NewDigest(nil)
	}

	level := make([]Digest, len(leaves))
	copy(level, leaves)

	for n := len(level); n > 1; n = (n + 1) / 2 {
		k := 0
		for i := 0; i < n; i += 2 {
			j := i + 1
			if j == n {
				j = i // compensate for odd number
			}
			b := make([]byte, 0, 2*DigestLength)
			b = append(b, level[i][:]...)
			b = append(b, level[j][:]...)
			level[k] = NewDigest(b)
			k += 1
		}
	}
	return level[0]
}
