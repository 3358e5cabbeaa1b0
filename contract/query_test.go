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
	"github.com/bitmark-inc/ledgertable/query"
)

func TestQueryClauses(t *testing.T) {
	q := query.New(testSchema)

	calls := []struct {
		signature string
		args      *abi.Encoder
		expected  query.Clause
	}{
		{"EQ(string,string)", field("name").String("WangWu"), query.Clause{Field: "name", Comparator: query.EQ, Value: "WangWu"}},
		{"NE(string,string)", field("name").String("LiSi"), query.Clause{Field: "name", Comparator: query.NE, Value: "LiSi"}},
		{"GT(string,int256)", field("status").Int(big.NewInt(-3)), query.Clause{Field: "status", Comparator: query.GT, Value: "-3"}},
		{"GE(string,string)", field("status").String("1"), query.Clause{Field: "status", Comparator: query.GE, Value: "1"}},
		{"LT(string,int256)", field("status").Int(big.NewInt(100)), query.Clause{Field: "status", Comparator: query.LT, Value: "100"}},
		{"LE(string,string)", field("id").String("z"), query.Clause{Field: "id", Comparator: query.LE, Value: "z"}},
	}

	for i, item := range calls {
		output, err := contract.CallQuery(q, abi.Pack(item.signature, item.args))
		if nil != err {
			t.Fatalf("%d: %s error: %s", i, item.signature, err)
		}
		if 0 != len(output) {
			t.Errorf("%d: %s unexpected output: %x", i, item.signature, output)
		}
	}

	clauses := q.Clauses()
	assert.Equal(t, len(calls), len(clauses))
	for i, item := range calls {
		assert.Equal(t, item.expected, clauses[i], "clause %d", i)
	}
}

func TestQueryLimit(t *testing.T) {
	q := query.New(testSchema)

	_, err := contract.CallQuery(q, abi.Pack("limit(uint256,uint256)", abi.NewEncoder().Uint64(2).Uint64(5)))
	assert.Nil(t, err)
	offset, count, limited := q.Window()
	assert.True(t, limited)
	assert.Equal(t, uint64(2), offset)
	assert.Equal(t, uint64(5), count)

	_, err = contract.CallQuery(q, abi.Pack("limit(uint256)", abi.NewEncoder().Uint64(3)))
	assert.Nil(t, err)
	offset, count, _ = q.Window()
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(3), count)
}

func TestQueryErrors(t *testing.T) {
	q := query.New(testSchema)

	_, err := contract.CallQuery(q, abi.Pack("EQ(string,string)", field("colour").String("red")))
	assert.Equal(t, fault.ErrFieldNotFound, err)
	assert.Equal(t, 0, q.Len())

	_, err = contract.CallQuery(q, abi.Pack("XX(string,string)", field("name").String("a")))
	assert.Equal(t, fault.ErrUnknownFunction, err)
}
