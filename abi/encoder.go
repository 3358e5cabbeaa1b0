// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package abi

import (
	"math/big"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
)

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	minInt256  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	maxInt256  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	twoTo256   = new(big.Int).Lsh(big.NewInt(1), 256)
)

type slot struct {
	head    []byte
	tail    []byte
	dynamic bool
}

// Encoder - accumulates arguments or results in order
type Encoder struct {
	slots []slot
	err   error
}

// NewEncoder - an empty argument list
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) static(word []byte) *Encoder {
	e.slots = append(e.slots, slot{head: word})
	return e
}

func (e *Encoder) dynamic(tail []byte) *Encoder {
	e.slots = append(e.slots, slot{tail: tail, dynamic: true})
	return e
}

// Uint - unsigned 256 bit integer
func (e *Encoder) Uint(n *big.Int) *Encoder {
	if n.Sign() < 0 || n.Cmp(maxUint256) > 0 {
		e.err = fault.ErrInvalidCallData
		return e.static(make([]byte, WordLength))
	}
	return e.static(leftPad(n.Bytes()))
}

// Uint64 - unsigned integer
func (e *Encoder) Uint64(n uint64) *Encoder {
	return e.Uint(new(big.Int).SetUint64(n))
}

// Int - signed 256 bit integer, two's complement
func (e *Encoder) Int(n *big.Int) *Encoder {
	if n.Cmp(minInt256) < 0 || n.Cmp(maxInt256) > 0 {
		e.err = fault.ErrInvalidCallData
		return e.static(make([]byte, WordLength))
	}
	if n.Sign() >= 0 {
		return e.static(leftPad(n.Bytes()))
	}
	return e.static(leftPad(new(big.Int).Add(twoTo256, n).Bytes()))
}

// Bool - true or false
func (e *Encoder) Bool(b bool) *Encoder {
	word := make([]byte, WordLength)
	if b {
		word[WordLength-1] = 1
	}
	return e.static(word)
}

// Address - a 20 byte identity
func (e *Encoder) Address(id identity.Identity) *Encoder {
	return e.static(leftPad(id[:]))
}

// Bytes32 - fixed 32 bytes
func (e *Encoder) Bytes32(b [32]byte) *Encoder {
	return e.static(append([]byte{}, b[:]...))
}

// String - dynamic string
func (e *Encoder) String(s string) *Encoder {
	tail := lengthWord(len(s))
	tail = append(tail, rightPad([]byte(s))...)
	return e.dynamic(tail)
}

// AddressArray - dynamic array of identities
func (e *Encoder) AddressArray(ids []identity.Identity) *Encoder {
	tail := lengthWord(len(ids))
	for _, id := range ids {
		tail = append(tail, leftPad(id[:])...)
	}
	return e.dynamic(tail)
}

// Err - first encoding error, if any
func (e *Encoder) Err() error {
	return e.err
}

// Bytes - heads followed by tails
func (e *Encoder) Bytes() []byte {
	headLength := WordLength * len(e.slots)

	buffer := make([]byte, 0, headLength)
	tails := make([]byte, 0)
	for _, s := range e.slots {
		if !s.dynamic {
			buffer = append(buffer, s.head...)
			continue
		}
		buffer = append(buffer, lengthWord(headLength+len(tails))...)
		tails = append(tails, s.tail...)
	}
	return append(buffer, tails...)
}

func lengthWord(n int) []byte {
	return leftPad(new(big.Int).SetInt64(int64(n)).Bytes())
}

func leftPad(b []byte) []byte {
	word := make([]byte, WordLength)
	copy(word[WordLength-len(b):], b)
	return word
}

func rightPad(b []byte) []byte {
	n := (len(b) + WordLength - 1) / WordLength * WordLength
	padded := make([]byte, n)
	copy(padded, b)
	return padded
}
