// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/ledgertable/abi"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/row"
)

type rowMethod func(r *row.Row, args *abi.Decoder) ([]byte, error)

var rowMethods = map[abi.Selector]rowMethod{
	abi.NewSelector("getString(string)"):   rowGetString,
	abi.NewSelector("getInt(string)"):      rowGetInt,
	abi.NewSelector("getAddress(string)"):  rowGetAddress,
	abi.NewSelector("getBytes32(string)"):  rowGetBytes32,
	abi.NewSelector("set(string,string)"):  rowSetString,
	abi.NewSelector("set(string,int256)"):  rowSetInt,
	abi.NewSelector("set(string,address)"): rowSetAddress,
}

// CallRow - decode and run one call on a row
func CallRow(r *row.Row, input []byte) ([]byte, error) {
	selector, data, err := abi.SplitSelector(input)
	if nil != err {
		return nil, err
	}
	method, ok := rowMethods[selector]
	if !ok {
		return nil, fault.ErrUnknownFunction
	}
	return method(r, abi.NewDecoder(data))
}

func rowGetString(r *row.Row, args *abi.Decoder) ([]byte, error) {
	field, err := args.String()
	if nil != err {
		return nil, err
	}
	value, err := r.Get(field)
	if nil != err {
		return nil, err
	}
	return abi.NewEncoder().String(value).Bytes(), nil
}

func rowGetInt(r *row.Row, args *abi.Decoder) ([]byte, error) {
	field, err := args.String()
	if nil != err {
		return nil, err
	}
	n, err := r.GetInt(field)
	if nil != err {
		return nil, err
	}
	e := abi.NewEncoder().Int(n)
	if err := e.Err(); nil != err {
		return nil, err
	}
	return e.Bytes(), nil
}

func rowGetAddress(r *row.Row, args *abi.Decoder) ([]byte, error) {
	field, err := args.String()
	if nil != err {
		return nil, err
	}
	id, err := r.GetIdentity(field)
	if nil != err {
		return nil, err
	}
	return abi.NewEncoder().Address(id).Bytes(), nil
}

func rowGetBytes32(r *row.Row, args *abi.Decoder) ([]byte, error) {
	field, err := args.String()
	if nil != err {
		return nil, err
	}
	b, err := r.GetBytes32(field)
	if nil != err {
		return nil, err
	}
	return abi.NewEncoder().Bytes32(b).Bytes(), nil
}

func rowSetString(r *row.Row, args *abi.Decoder) ([]byte, error) {
	field, err := args.String()
	if nil != err {
		return nil, err
	}
	value, err := args.String()
	if nil != err {
		return nil, err
	}
	if err := r.Set(field, value); nil != err {
		return nil, err
	}
	return []byte{}, nil
}

func rowSetInt(r *row.Row, args *abi.Decoder) ([]byte, error) {
	field, err := args.String()
	if nil != err {
		return nil, err
	}
	n, err := args.Int()
	if nil != err {
		return nil, err
	}
	if n.Sign() < 0 {
		return nil, fault.ErrNegativeValue
	}
	if err := r.SetInt(field, n); nil != err {
		return nil, err
	}
	return []byte{}, nil
}

func rowSetAddress(r *row.Row, args *abi.Decoder) ([]byte, error) {
	field, err := args.String()
	if nil != err {
		return nil, err
	}
	id, err := args.Address()
	if nil != err {
		return nil, err
	}
	if err := r.SetIdentity(field, id); nil != err {
		return nil, err
	}
	return []byte{}, nil
}
