// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/table"
	"github.com/bitmark-inc/ledgertable/util"
)

const currentDBVersion = 0x100

// Store - a leveldb backed table store
type Store struct {
	sync.RWMutex
	log      *logger.L
	db       *leveldb.DB
	access   Access
	readOnly bool
}

// Open - open or create the database
//
// a read only database must already exist at the current version
func Open(database string, readOnly bool) (*Store, error) {
	log := logger.New("storage")

	db, version, err := getDB(database, readOnly)
	if nil != err {
		log.Errorf("open: %s  error: %s", database, err)
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		db.Close()
		return nil, fault.ErrIncompatibleDatabase
	}

	if readOnly && version != currentDBVersion {
		log.Criticalf("database version: %d  current version: %d", version, currentDBVersion)
		db.Close()
		return nil, fault.ErrIncompatibleDatabase
	}

	if 0 == version {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	} else if version < currentDBVersion {
		log.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		db.Close()
		return nil, fault.ErrIncompatibleDatabase
	}

	log.Infof("opened: %s  read only: %t", database, readOnly)

	return newStore(db, newAccess(db), readOnly, log), nil
}

func newStore(db *leveldb.DB, access Access, readOnly bool, log *logger.L) *Store {
	return &Store{
		log:      log,
		db:       db,
		access:   access,
		readOnly: readOnly,
	}
}

// Close - abandon any open transaction and close the database
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return
	}
	if s.access.InUse() {
		s.log.Warn("close: aborting open transaction")
		s.access.Abort()
	}
	s.db.Close()
	s.db = nil
	s.log.Info("closed")
}

// Rows - committed rows of a table in key order
func (s *Store) Rows(tableName string) ([]table.Entry, error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, fault.ErrNotInitialised
	}

	searchRange, prefix, err := tableRange(tableName)
	if nil != err {
		return nil, err
	}

	iter := s.access.Iterator(searchRange)
	entries := make([]table.Entry, 0)
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		var values map[string]string
		values, err = util.UnpackValues(iter.Value())
		if nil != err {
			s.log.Errorf("table: %q  key: %x  error: %s", tableName, key, err)
			break iterating
		}

		entries = append(entries, table.Entry{
			Key:    string(key[len(prefix):]),
			Values: values,
		})
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return entries, err
}

// Begin - start the single write transaction
func (s *Store) Begin() (Transaction, error) {
	s.RLock()
	defer s.RUnlock()

	if nil == s.db {
		return nil, fault.ErrNotInitialised
	}
	if s.readOnly {
		return nil, fault.ErrStorageReadOnly
	}
	if err := s.access.Begin(); nil != err {
		return nil, err
	}
	return &transaction{
		log:    s.log,
		access: s.access,
	}, nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fault.ErrIncompatibleDatabase
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
