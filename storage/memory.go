// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/google/btree"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/table"
)

const memoryDegree = 16

type memoryRow struct {
	key    string
	values map[string]string
}

func memoryLess(a memoryRow, b memoryRow) bool {
	return a.key < b.key
}

// Memory - an in-process backend, nothing survives the process
type Memory struct {
	sync.RWMutex
	tables map[string]*btree.BTreeG[memoryRow]
	inUse  bool
}

// NewMemory - an empty in-process backend
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string]*btree.BTreeG[memoryRow]),
	}
}

// Rows - committed rows of a table in key order
func (m *Memory) Rows(tableName string) ([]table.Entry, error) {
	m.RLock()
	defer m.RUnlock()

	entries := make([]table.Entry, 0)
	rows, ok := m.tables[tableName]
	if !ok {
		return entries, nil
	}
	rows.Ascend(func(r memoryRow) bool {
		entries = append(entries, table.Entry{Key: r.key, Values: copyValues(r.values)})
		return true
	})
	return entries, nil
}

// Begin - start the single write transaction
func (m *Memory) Begin() (Transaction, error) {
	m.Lock()
	defer m.Unlock()

	if m.inUse {
		return nil, fault.ErrTransactionAlreadyInUse
	}
	m.inUse = true
	return &memoryTransaction{
		memory: m,
		writes: make(map[string]map[string]*memoryWrite),
		drops:  make(map[string]struct{}),
	}, nil
}

type memoryWrite struct {
	deleted bool
	values  map[string]string
}

type memoryTransaction struct {
	memory *Memory
	done   bool
	drops  map[string]struct{}
	writes map[string]map[string]*memoryWrite
}

func (t *memoryTransaction) Get(tableName string, key string) (map[string]string, bool, error) {
	if w, ok := t.writes[tableName][key]; ok {
		if w.deleted {
			return nil, false, nil
		}
		return copyValues(w.values), true, nil
	}
	if _, dropped := t.drops[tableName]; dropped {
		return nil, false, nil
	}

	t.memory.RLock()
	defer t.memory.RUnlock()

	rows, ok := t.memory.tables[tableName]
	if !ok {
		return nil, false, nil
	}
	r, ok := rows.Get(memoryRow{key: key})
	if !ok {
		return nil, false, nil
	}
	return copyValues(r.values), true, nil
}

func (t *memoryTransaction) write(tableName string, key string, w *memoryWrite) error {
	if len(key) > maximumLength {
		return fault.ErrKeyTooLong
	}
	if 0 == len(tableName) || len(tableName) > maximumLength {
		return fault.ErrValueTooLong
	}
	writes, ok := t.writes[tableName]
	if !ok {
		writes = make(map[string]*memoryWrite)
		t.writes[tableName] = writes
	}
	writes[key] = w
	return nil
}

func (t *memoryTransaction) Put(tableName string, key string, values map[string]string) error {
	return t.write(tableName, key, &memoryWrite{values: copyValues(values)})
}

func (t *memoryTransaction) Delete(tableName string, key string) error {
	return t.write(tableName, key, &memoryWrite{deleted: true})
}

func (t *memoryTransaction) DeleteTable(tableName string) error {
	t.drops[tableName] = struct{}{}
	delete(t.writes, tableName)
	return nil
}

func (t *memoryTransaction) Commit() error {
	m := t.memory
	m.Lock()
	defer m.Unlock()

	if t.done {
		return fault.ErrNotInitialised
	}
	t.done = true

	for tableName := range t.drops {
		delete(m.tables, tableName)
	}
	for tableName, writes := range t.writes {
		rows, ok := m.tables[tableName]
		if !ok {
			rows = btree.NewG(memoryDegree, memoryLess)
			m.tables[tableName] = rows
		}
		for key, w := range writes {
			if w.deleted {
				rows.Delete(memoryRow{key: key})
			} else {
				rows.ReplaceOrInsert(memoryRow{key: key, values: w.values})
			}
		}
	}
	m.inUse = false
	return nil
}

func (t *memoryTransaction) Abort() {
	t.memory.Lock()
	defer t.memory.Unlock()

	if t.done {
		return
	}
	t.done = true
	t.memory.inUse = false
}

func copyValues(values map[string]string) map[string]string {
	c := make(map[string]string, len(values))
	for k, v := range values {
		c[k] = v
	}
	return c
}
