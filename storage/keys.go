// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgertable/fault"
)

const (
	rowPrefix     = 'R'
	maximumLength = 255
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

func tablePrefix(tableName string) ([]byte, error) {
	if 0 == len(tableName) || len(tableName) > maximumLength {
		return nil, fault.ErrValueTooLong
	}
	prefix := make([]byte, 0, 2+len(tableName))
	prefix = append(prefix, rowPrefix, byte(len(tableName)))
	return append(prefix, tableName...), nil
}

func rowKey(tableName string, key string) ([]byte, error) {
	if len(key) > maximumLength {
		return nil, fault.ErrKeyTooLong
	}
	prefix, err := tablePrefix(tableName)
	if nil != err {
		return nil, err
	}
	return append(prefix, key...), nil
}

func tableRange(tableName string) (*ldb_util.Range, []byte, error) {
	prefix, err := tablePrefix(tableName)
	if nil != err {
		return nil, nil, err
	}
	return ldb_util.BytesPrefix(prefix), prefix, nil
}
