// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertable/abi"
	"github.com/bitmark-inc/ledgertable/contract"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/row"
)

func field(name string) *abi.Encoder {
	return abi.NewEncoder().String(name)
}

func TestRowStrings(t *testing.T) {
	r := row.New(testSchema)

	_, err := contract.CallRow(r, abi.Pack("set(string,string)", field("name").String("WangWu")))
	assert.Nil(t, err)

	output, err := contract.CallRow(r, abi.Pack("getString(string)", field("name")))
	assert.Nil(t, err)
	s, _ := abi.NewDecoder(output).String()
	assert.Equal(t, "WangWu", s)

	output, err = contract.CallRow(r, abi.Pack("getString(string)", field("status")))
	assert.Nil(t, err, "unset field reads as empty")
	s, _ = abi.NewDecoder(output).String()
	assert.Equal(t, "", s)

	_, err = contract.CallRow(r, abi.Pack("set(string,string)", field("colour").String("red")))
	assert.Equal(t, fault.ErrFieldNotFound, err)
	assert.Equal(t, fault.KindFieldNotFound, fault.KindOf(err))

	_, err = contract.CallRow(r, abi.Pack("getString(string)", field("colour")))
	assert.Equal(t, fault.ErrFieldNotFound, err)
}

func TestRowIntegers(t *testing.T) {
	r := row.New(testSchema)

	_, err := contract.CallRow(r, abi.Pack("set(string,int256)", field("status").Int(big.NewInt(42))))
	assert.Nil(t, err)

	v, _ := r.Get("status")
	assert.Equal(t, "42", v)

	output, err := contract.CallRow(r, abi.Pack("getInt(string)", field("status")))
	assert.Nil(t, err)
	n, _ := abi.NewDecoder(output).Int()
	assert.Equal(t, int64(42), n.Int64())

	_, err = contract.CallRow(r, abi.Pack("set(string,int256)", field("status").Int(big.NewInt(-1))))
	assert.Equal(t, fault.ErrNegativeValue, err)
	v, _ = r.Get("status")
	assert.Equal(t, "42", v, "unchanged")

	_ = r.Set("name", "WangWu")
	_, err = contract.CallRow(r, abi.Pack("getInt(string)", field("name")))
	assert.Equal(t, fault.ErrNotAnInteger, err)
}

func TestRowAddresses(t *testing.T) {
	r := row.New(testSchema)

	_, err := contract.CallRow(r, abi.Pack("set(string,address)", field("name").Address(ownerB)))
	assert.Nil(t, err)

	output, err := contract.CallRow(r, abi.Pack("getAddress(string)", field("name")))
	assert.Nil(t, err)
	assert.Equal(t, ownerB, decodeAddress(t, output))

	output, err = contract.CallRow(r, abi.Pack("getBytes32(string)", field("id")))
	assert.Nil(t, err)
	b, _ := abi.NewDecoder(output).Bytes32()
	assert.Equal(t, [32]byte{}, b)
}

func TestRowUnknown(t *testing.T) {
	r := row.New(testSchema)
	_, err := contract.CallRow(r, abi.Pack("toString()", nil))
	assert.Equal(t, fault.ErrUnknownFunction, err)
}
