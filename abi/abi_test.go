// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package abi_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertable/abi"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
)

func TestSelector(t *testing.T) {
	selectors := []struct {
		signature string
		expected  string
	}{
		{"get()", "6d4ce63c"},
		{"transfer(address,uint256)", "a9059cbb"},
		{"balanceOf(address)", "70a08231"},
	}

	for i, item := range selectors {
		s := abi.NewSelector(item.signature)
		if actual := hex.EncodeToString(s[:]); actual != item.expected {
			t.Errorf("%d: selector(%q) -> %s  expected: %s", i, item.signature, actual, item.expected)
		}
	}
}

func TestSplitSelector(t *testing.T) {
	input := abi.Pack("get()", nil)
	s, rest, err := abi.SplitSelector(input)
	assert.Nil(t, err)
	assert.Equal(t, abi.NewSelector("get()"), s)
	assert.Equal(t, 0, len(rest))

	_, _, err = abi.SplitSelector([]byte{1, 2})
	assert.Equal(t, fault.ErrCallDataTruncated, err)
}

func TestStaticLayout(t *testing.T) {
	id := identity.FromUint64(0x10001)
	data := abi.NewEncoder().Bool(true).Address(id).Uint64(7).Bytes()
	assert.Equal(t, 3*abi.WordLength, len(data))
	assert.Equal(t, byte(1), data[31])
	assert.Equal(t, byte(0x01), data[32+29])
	assert.Equal(t, byte(0x01), data[32+31])
	assert.Equal(t, byte(7), data[95])
}

func TestDynamicLayout(t *testing.T) {
	data := abi.NewEncoder().String("name").Uint64(5).Bytes()

	// head: offset(64), 5; tail: length 4, "name" padded
	assert.Equal(t, 4*abi.WordLength, len(data))
	assert.Equal(t, byte(64), data[31])
	assert.Equal(t, byte(5), data[63])
	assert.Equal(t, byte(4), data[95])
	assert.Equal(t, "name", string(data[96:100]))
	assert.Equal(t, byte(0), data[100])
}

func TestRoundTrip(t *testing.T) {
	id, _ := identity.FromHex("0x420f853b49838bd3e9466c85a4cc3428c960dde2")
	var b32 [32]byte
	copy(b32[:], "digest")

	e := abi.NewEncoder().
		String("WangWu").
		Address(id).
		Int(big.NewInt(-42)).
		Uint(big.NewInt(1000)).
		Bool(false).
		Bytes32(b32).
		AddressArray([]identity.Identity{id, identity.FromUint64(3)}).
		String("")
	assert.Nil(t, e.Err())

	d := abi.NewDecoder(e.Bytes())

	s, err := d.String()
	assert.Nil(t, err)
	assert.Equal(t, "WangWu", s)

	a, err := d.Address()
	assert.Nil(t, err)
	assert.Equal(t, id, a)

	i, err := d.Int()
	assert.Nil(t, err)
	assert.Equal(t, int64(-42), i.Int64())

	u, err := d.Uint64()
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), u)

	flag, err := d.Bool()
	assert.Nil(t, err)
	assert.False(t, flag)

	digest, err := d.Bytes32()
	assert.Nil(t, err)
	assert.Equal(t, b32, digest)

	ids, err := d.AddressArray()
	assert.Nil(t, err)
	assert.Equal(t, []identity.Identity{id, identity.FromUint64(3)}, ids)

	empty, err := d.String()
	assert.Nil(t, err)
	assert.Equal(t, "", empty)
}

func TestDecodeErrors(t *testing.T) {
	_, err := abi.NewDecoder(nil).Uint()
	assert.Equal(t, fault.ErrCallDataTruncated, err)

	data := abi.NewEncoder().String("a long enough string").Bytes()
	_, err = abi.NewDecoder(data[:70]).String()
	assert.Equal(t, fault.ErrCallDataTruncated, err)

	bad := abi.NewEncoder().Uint64(2).Bytes()
	_, err = abi.NewDecoder(bad).Bool()
	assert.Equal(t, fault.ErrInvalidCallData, err)

	wide := abi.NewEncoder().Bytes32([32]byte{0xff}).Bytes()
	_, err = abi.NewDecoder(wide).Address()
	assert.Equal(t, fault.ErrInvalidCallData, err)
}

func TestEncodeRangeErrors(t *testing.T) {
	e := abi.NewEncoder().Uint(big.NewInt(-1))
	assert.Equal(t, fault.ErrInvalidCallData, e.Err())

	huge := new(big.Int).Lsh(big.NewInt(1), 300)
	e = abi.NewEncoder().Int(huge)
	assert.Equal(t, fault.ErrInvalidCallData, e.Err())
}
