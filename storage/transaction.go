// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/util"
)

type transaction struct {
	log    *logger.L
	access Access
	puts   int
	dels   int
}

// Get - a row as seen by this transaction
func (t *transaction) Get(tableName string, key string) (map[string]string, bool, error) {
	k, err := rowKey(tableName, key)
	if nil != err {
		return nil, false, err
	}
	value, err := t.access.Get(k)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	values, err := util.UnpackValues(value)
	if nil != err {
		return nil, false, err
	}
	return values, true, nil
}

func (t *transaction) Put(tableName string, key string, values map[string]string) error {
	k, err := rowKey(tableName, key)
	if nil != err {
		return err
	}
	t.access.Put(k, util.PackValues(values))
	t.puts += 1
	return nil
}

func (t *transaction) Delete(tableName string, key string) error {
	k, err := rowKey(tableName, key)
	if nil != err {
		return err
	}
	t.access.Delete(k)
	t.dels += 1
	return nil
}

// DeleteTable - delete every committed and pending row of a table
func (t *transaction) DeleteTable(tableName string) error {
	searchRange, prefix, err := tableRange(tableName)
	if nil != err {
		return err
	}

	keys := t.access.Pending(prefix)

	iter := t.access.Iterator(searchRange)
	for iter.Next() {
		keys = append(keys, append([]byte{}, iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return err
	}

	for _, k := range keys {
		t.access.Delete(k)
	}
	t.dels += len(keys)
	return nil
}

func (t *transaction) Commit() error {
	err := t.access.Commit()
	if nil != err {
		t.log.Errorf("commit error: %s", err)
		return err
	}
	t.log.Debugf("commit: puts: %d  deletes: %d", t.puts, t.dels)
	return nil
}

func (t *transaction) Abort() {
	t.access.Abort()
	t.log.Debugf("abort: discarded puts: %d  deletes: %d", t.puts, t.dels)
}
