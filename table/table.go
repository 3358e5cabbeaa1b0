// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package table

import (
	"github.com/google/btree"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/merkle"
	"github.com/bitmark-inc/ledgertable/query"
	"github.com/bitmark-inc/ledgertable/row"
	"github.com/bitmark-inc/ledgertable/schema"
	"github.com/bitmark-inc/ledgertable/util"
)

// MaximumKeyLength - longest permitted row key in bytes
const MaximumKeyLength = 255

const btreeDegree = 32

type item struct {
	key string
	row *row.Row
}

func itemLess(a *item, b *item) bool {
	return a.key < b.key
}

// Table - rows of one table instance
//
// not safe for concurrent use, each execution context has its own
type Table struct {
	schema   *schema.Schema
	rows     *btree.BTreeG[*item]
	recorder Recorder
}

// New - an empty table
//
// the recorder is mandatory, use Discard to ignore changes
func New(s *schema.Schema, recorder Recorder) *Table {
	if nil == recorder {
		fault.PanicWithError("table.New", fault.ErrNilRecorder)
	}
	return &Table{
		schema:   s,
		rows:     btree.NewG(btreeDegree, itemLess),
		recorder: recorder,
	}
}

// Schema - the table definition
func (t *Table) Schema() *schema.Schema {
	return t.schema
}

// Name - the table name
func (t *Table) Name() string {
	return t.schema.Name()
}

// Load - add committed rows without recording any change
func (t *Table) Load(entries []Entry) error {
	for _, e := range entries {
		if len(e.Key) > MaximumKeyLength {
			return fault.ErrKeyTooLong
		}
		r, err := row.FromValues(t.schema, e.Values)
		if nil != err {
			return err
		}
		t.rows.ReplaceOrInsert(&item{key: e.Key, row: r})
	}
	return nil
}

// Get - a snapshot of the row stored under key
func (t *Table) Get(key string) (*row.Row, bool) {
	it, ok := t.rows.Get(&item{key: key})
	if !ok {
		return nil, false
	}
	return it.row.Clone(), true
}

// Has - true if key is present
func (t *Table) Has(key string) bool {
	return t.rows.Has(&item{key: key})
}

// Set - insert or replace the row under key
//
// a copy of r is stored as is, the key is kept apart from the field
// values; returns the number of rows affected, which is always 1
func (t *Table) Set(key string, r *row.Row) (int, error) {
	if len(key) > MaximumKeyLength {
		return 0, fault.ErrKeyTooLong
	}

	stored, err := row.FromValues(t.schema, r.Values())
	if nil != err {
		return 0, err
	}

	change := Change{
		Kind:  Insert,
		Table: t.schema.Name(),
		Key:   key,
	}
	if previous, ok := t.rows.ReplaceOrInsert(&item{key: key, row: stored}); ok {
		change.Kind = Update
		change.Prior = previous.row.Values()
	}
	t.recorder.Record(change)
	return 1, nil
}

// Remove - delete the row under key, returns the number of rows removed
func (t *Table) Remove(key string) int {
	previous, ok := t.rows.Delete(&item{key: key})
	if !ok {
		return 0
	}
	t.recorder.Record(Change{
		Kind:  Remove,
		Table: t.schema.Name(),
		Key:   key,
		Prior: previous.row.Values(),
	})
	return 1
}

// Clear - delete every row as a single change
func (t *Table) Clear() {
	prior := t.Entries()
	t.rows.Clear(false)
	t.recorder.Record(Change{
		Kind:      Clear,
		Table:     t.schema.Name(),
		PriorRows: prior,
	})
}

// Revert - undo a change previously recorded by this table
//
// nothing is recorded; changes must be reverted newest first
func (t *Table) Revert(c Change) {
	switch c.Kind {
	case Insert:
		t.rows.Delete(&item{key: c.Key})
	case Update, Remove:
		r, err := row.FromValues(t.schema, c.Prior)
		fault.PanicIfError("table.Revert", err)
		t.rows.ReplaceOrInsert(&item{key: c.Key, row: r})
	case Clear:
		t.rows.Clear(false)
		err := t.Load(c.PriorRows)
		fault.PanicIfError("table.Revert", err)
	default:
		fault.Panicf("table.Revert: unknown change kind: %s", c.Kind)
	}
}

// Select - snapshots of the rows matching q, in key order
func (t *Table) Select(q *query.Query) []*row.Row {
	offset, count, limited := q.Window()

	result := make([]*row.Row, 0)
	skipped := uint64(0)
	t.rows.Ascend(func(it *item) bool {
		if !q.Evaluate(it.row) {
			return true
		}
		if skipped < offset {
			skipped += 1
			return true
		}
		if limited && uint64(len(result)) >= count {
			return false
		}
		result = append(result, it.row.Clone())
		return true
	})
	return result
}

// Len - number of rows
func (t *Table) Len() int {
	return t.rows.Len()
}

// Keys - all keys in canonical order
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.rows.Len())
	t.rows.Ascend(func(it *item) bool {
		keys = append(keys, it.key)
		return true
	})
	return keys
}

// Entries - copies of all rows in canonical order
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, t.rows.Len())
	t.rows.Ascend(func(it *item) bool {
		entries = append(entries, Entry{Key: it.key, Values: it.row.Values()})
		return true
	})
	return entries
}

// Hash - digest of the current content
func (t *Table) Hash() merkle.Digest {
	leaves := make([]merkle.Digest, 0, t.rows.Len())
	t.rows.Ascend(func(it *item) bool {
		leaves = append(leaves, leafDigest(it.key, it.row.Values()))
		return true
	})
	return merkle.Root(leaves)
}

// SHA3-256 of the length prefixed key followed by each set field and
// its value, length prefixed, in byte-lexicographic field order
func leafDigest(key string, values map[string]string) merkle.Digest {
	buffer := util.AppendString(nil, key)
	for _, name := range util.SortedNames(values) {
		buffer = util.AppendString(buffer, name)
		buffer = util.AppendString(buffer, values[name])
	}
	return merkle.NewDigest(buffer)
}
