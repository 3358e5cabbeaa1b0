// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgertable/fault"
)

// Access - batched raw access to the database
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Pending([]byte) [][]byte
	Put([]byte, []byte)
}

type accessData struct {
	sync.Mutex
	inUse   bool
	db      *leveldb.DB
	batch   *leveldb.Batch
	pending *pending
}

func newAccess(db *leveldb.DB) Access {
	return &accessData{
		inUse:   false,
		db:      db,
		batch:   new(leveldb.Batch),
		pending: newPending(),
	}
}

func (d *accessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionAlreadyInUse
	}

	d.inUse = true
	return nil
}

func (d *accessData) Put(key []byte, value []byte) {
	d.pending.set(dbPut, key, value)
	d.batch.Put(key, value)
}

func (d *accessData) Delete(key []byte) {
	d.pending.set(dbDelete, key, nil)
	d.batch.Delete(key)
}

// Commit - write the batch and end the transaction
func (d *accessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	d.reset()
	return err
}

// Abort - discard the batch and end the transaction
func (d *accessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.reset()
}

func (d *accessData) reset() {
	d.batch.Reset()
	d.pending.clear()
	d.inUse = false
}

// Get - pending value if any, otherwise committed
//
// a pending delete reads as leveldb.ErrNotFound
func (d *accessData) Get(key []byte) ([]byte, error) {
	value, deleted, found := d.pending.lookup(key)
	if found {
		if deleted {
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return d.db.Get(key, nil)
}

func (d *accessData) Has(key []byte) (bool, error) {
	_, deleted, found := d.pending.lookup(key)
	if found {
		return !deleted, nil
	}
	return d.db.Has(key, nil)
}

func (d *accessData) InUse() bool {
	d.Lock()
	defer d.Unlock()

	return d.inUse
}

// Iterator - committed content only
func (d *accessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

// Pending - keys put in this transaction that start with prefix
func (d *accessData) Pending(prefix []byte) [][]byte {
	return d.pending.withPrefix(prefix)
}
