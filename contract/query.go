// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/ledgertable/abi"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/query"
)

type queryMethod func(q *query.Query, args *abi.Decoder) ([]byte, error)

var queryMethods = map[abi.Selector]queryMethod{
	abi.NewSelector("limit(uint256)"):         queryLimit,
	abi.NewSelector("limit(uint256,uint256)"): queryWindow,
}

// comparator clauses take either a string or an integer value
func init() {
	for _, c := range []query.Comparator{query.EQ, query.NE, query.GT, query.GE, query.LT, query.LE} {
		queryMethods[abi.NewSelector(c.String()+"(string,string)")] = clauseMethod(c, false)
		queryMethods[abi.NewSelector(c.String()+"(string,int256)")] = clauseMethod(c, true)
	}
}

// CallQuery - decode and run one call on a query
func CallQuery(q *query.Query, input []byte) ([]byte, error) {
	selector, data, err := abi.SplitSelector(input)
	if nil != err {
		return nil, err
	}
	method, ok := queryMethods[selector]
	if !ok {
		return nil, fault.ErrUnknownFunction
	}
	return method(q, abi.NewDecoder(data))
}

func clauseMethod(c query.Comparator, integer bool) queryMethod {
	return func(q *query.Query, args *abi.Decoder) ([]byte, error) {
		field, err := args.String()
		if nil != err {
			return nil, err
		}

		value := ""
		if integer {
			n, err := args.Int()
			if nil != err {
				return nil, err
			}
			value = n.String()
		} else {
			value, err = args.String()
			if nil != err {
				return nil, err
			}
		}

		if err := q.Add(field, c, value); nil != err {
			return nil, err
		}
		return []byte{}, nil
	}
}

func queryLimit(q *query.Query, args *abi.Decoder) ([]byte, error) {
	count, err := args.Uint64()
	if nil != err {
		return nil, err
	}
	q.Limit(0, count)
	return []byte{}, nil
}

func queryWindow(q *query.Query, args *abi.Decoder) ([]byte, error) {
	offset, err := args.Uint64()
	if nil != err {
		return nil, err
	}
	count, err := args.Uint64()
	if nil != err {
		return nil, err
	}
	q.Limit(offset, count)
	return []byte{}, nil
}
