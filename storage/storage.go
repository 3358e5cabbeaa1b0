// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/ledgertable/table"
)

// access modes for Open
const (
	ReadOnly  = true
	ReadWrite = false
)

// Backend - committed table content
type Backend interface {
	Rows(tableName string) ([]table.Entry, error)
	Begin() (Transaction, error)
}

// Transaction - changes that become visible together on Commit
//
// only one transaction may be open on a backend at a time
type Transaction interface {
	Get(tableName string, key string) (map[string]string, bool, error)
	Put(tableName string, key string, values map[string]string) error
	Delete(tableName string, key string) error
	DeleteTable(tableName string) error
	Commit() error
	Abort()
}
