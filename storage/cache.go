// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	cache "github.com/patrickmn/go-cache"
)

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

type pendingData struct {
	op    dbOperation
	value []byte
}

// pending - writes of the open transaction, by database key
//
// entries never expire, Clear is called on commit and abort
type pending struct {
	cache *cache.Cache
}

func newPending() *pending {
	return &pending{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// lookup - found is false if the key has not been touched, a touched
// key is either a value or a deletion
func (p *pending) lookup(key []byte) (value []byte, deleted bool, found bool) {
	obj, found := p.cache.Get(string(key))
	if !found {
		return nil, false, false
	}
	data := obj.(pendingData)
	return data.value, dbDelete == data.op, true
}

func (p *pending) set(op dbOperation, key []byte, value []byte) {
	p.cache.Set(string(key), pendingData{op: op, value: value}, cache.NoExpiration)
}

// withPrefix - keys of pending puts starting with prefix
func (p *pending) withPrefix(prefix []byte) [][]byte {
	keys := make([][]byte, 0)
	for k, item := range p.cache.Items() {
		if dbPut != item.Object.(pendingData).op {
			continue
		}
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, []byte(k))
		}
	}
	return keys
}

func (p *pending) clear() {
	p.cache.Flush()
}
