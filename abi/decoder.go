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

// limit on any decoded length or offset
const maximumDynamicLength = 1 << 24

// Decoder - reads arguments in order from encoded data
type Decoder struct {
	data     []byte
	position int
}

// NewDecoder - decode data that has had any selector removed
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) word() ([]byte, error) {
	return d.wordAt(d.advance())
}

func (d *Decoder) advance() int {
	p := d.position
	d.position += WordLength
	return p
}

func (d *Decoder) wordAt(offset int) ([]byte, error) {
	if offset < 0 || offset+WordLength > len(d.data) {
		return nil, fault.ErrCallDataTruncated
	}
	return d.data[offset : offset+WordLength], nil
}

// small - a word that must hold a non-negative length or offset
func (d *Decoder) small(offset int) (int, error) {
	w, err := d.wordAt(offset)
	if nil != err {
		return 0, err
	}
	n := new(big.Int).SetBytes(w)
	if !n.IsInt64() || n.Int64() > maximumDynamicLength {
		return 0, fault.ErrInvalidCallData
	}
	return int(n.Int64()), nil
}

// Uint - unsigned 256 bit integer
func (d *Decoder) Uint() (*big.Int, error) {
	w, err := d.word()
	if nil != err {
		return nil, err
	}
	return new(big.Int).SetBytes(w), nil
}

// Uint64 - unsigned integer that must fit in 64 bits
func (d *Decoder) Uint64() (uint64, error) {
	n, err := d.Uint()
	if nil != err {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fault.ErrInvalidCallData
	}
	return n.Uint64(), nil
}

// Int - signed 256 bit integer, two's complement
func (d *Decoder) Int() (*big.Int, error) {
	w, err := d.word()
	if nil != err {
		return nil, err
	}
	n := new(big.Int).SetBytes(w)
	if 0 != w[0]&0x80 {
		n.Sub(n, twoTo256)
	}
	return n, nil
}

// Bool - 0 or 1, anything else is rejected
func (d *Decoder) Bool() (bool, error) {
	w, err := d.word()
	if nil != err {
		return false, err
	}
	for _, b := range w[:WordLength-1] {
		if 0 != b {
			return false, fault.ErrInvalidCallData
		}
	}
	switch w[WordLength-1] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fault.ErrInvalidCallData
}

// Address - a right aligned 20 byte identity
func (d *Decoder) Address() (identity.Identity, error) {
	w, err := d.word()
	if nil != err {
		return identity.Zero, err
	}
	return addressFromWord(w)
}

func addressFromWord(w []byte) (identity.Identity, error) {
	for _, b := range w[:WordLength-identity.Length] {
		if 0 != b {
			return identity.Zero, fault.ErrInvalidCallData
		}
	}
	return identity.FromBytes(w[WordLength-identity.Length:])
}

// Bytes32 - fixed 32 bytes
func (d *Decoder) Bytes32() ([32]byte, error) {
	var b [32]byte
	w, err := d.word()
	if nil != err {
		return b, err
	}
	copy(b[:], w)
	return b, nil
}

// String - dynamic string
func (d *Decoder) String() (string, error) {
	offset, err := d.small(d.advance())
	if nil != err {
		return "", err
	}
	length, err := d.small(offset)
	if nil != err {
		return "", err
	}
	start := offset + WordLength
	if start+length > len(d.data) {
		return "", fault.ErrCallDataTruncated
	}
	return string(d.data[start : start+length]), nil
}

// AddressArray - dynamic array of identities
func (d *Decoder) AddressArray() ([]identity.Identity, error) {
	offset, err := d.small(d.advance())
	if nil != err {
		return nil, err
	}
	count, err := d.small(offset)
	if nil != err {
		return nil, err
	}
	if offset+WordLength*(count+1) > len(d.data) {
		return nil, fault.ErrCallDataTruncated
	}
	ids := make([]identity.Identity, 0, count)
	for i := 0; i < count; i += 1 {
		w, err := d.wordAt(offset + WordLength*(i+1))
		if nil != err {
			return nil, err
		}
		id, err := addressFromWord(w)
		if nil != err {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
