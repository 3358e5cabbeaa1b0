// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - fixed size ledger identities
//
// an Identity names a caller, a contract or an in-memory object
// handle; it is compared byte for byte and never changes once seen
package identity

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitmark-inc/ledgertable/fault"
)

// Length - number of bytes in an identity
const Length = 20

// Identity - a ledger address
type Identity [Length]byte

// Zero - the unset identity
var Zero Identity

// FromBytes - convert and validate a byte slice
func FromBytes(buffer []byte) (Identity, error) {
	var id Identity
	if Length != len(buffer) {
		return id, fault.ErrInvalidIdentityLength
	}
	copy(id[:], buffer)
	return id, nil
}

// FromHex - convert a hex string, with or without a leading "0x"
func FromHex(s string) (Identity, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hex.EncodedLen(Length) != len(s) {
		return Zero, fault.ErrInvalidIdentityLength
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return Zero, err
	}
	return FromBytes(buffer)
}

// FromUint64 - an identity whose low eight bytes hold n (big endian)
func FromUint64(n uint64) Identity {
	var id Identity
	binary.BigEndian.PutUint64(id[Length-8:], n)
	return id
}

// Uint64 - reverse of FromUint64
//
// false if any of the upper bytes are set
func (id Identity) Uint64() (uint64, bool) {
	for _, b := range id[:Length-8] {
		if 0 != b {
			return 0, false
		}
	}
	return binary.BigEndian.Uint64(id[Length-8:]), true
}

// IsZero - true for the unset identity
func (id Identity) IsZero() bool {
	return Zero == id
}

// Bytes - a copy as a byte slice
func (id Identity) Bytes() []byte {
	return append([]byte{}, id[:]...)
}

// String - "0x" prefixed hex for the fmt package (for %s)
func (id Identity) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// GoString - for %#v
func (id Identity) GoString() string {
	return "<identity:" + hex.EncodeToString(id[:]) + ">"
}

// MarshalText - hex text for JSON encoding
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - from hex text
func (id *Identity) UnmarshalText(s []byte) error {
	decoded, err := FromHex(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}

// Scan - for the fmt package scan routines
func (id *Identity) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			return true
		case c == 'x' || c == 'X':
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return id.UnmarshalText(token)
}
