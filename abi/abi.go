// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package abi

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgertable/fault"
)

// WordLength - size of one encoded slot
const WordLength = 32

// SelectorLength - bytes of function selector at the start of call data
const SelectorLength = 4

// Selector - identifies the called function
type Selector [SelectorLength]byte

// NewSelector - selector for a canonical signature
func NewSelector(signature string) Selector {
	var s Selector
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	copy(s[:], h.Sum(nil))
	return s
}

// SplitSelector - separate the selector from the arguments
func SplitSelector(input []byte) (Selector, []byte, error) {
	var s Selector
	if len(input) < SelectorLength {
		return s, nil, fault.ErrCallDataTruncated
	}
	copy(s[:], input[:SelectorLength])
	return s, input[SelectorLength:], nil
}

// Pack - selector followed by the encoded arguments
func Pack(signature string, e *Encoder) []byte {
	s := NewSelector(signature)
	buffer := append([]byte{}, s[:]...)
	if nil == e {
		return buffer
	}
	return append(buffer, e.Bytes()...)
}
