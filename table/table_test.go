// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package table_test

import (
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/query"
	"github.com/bitmark-inc/ledgertable/row"
	"github.com/bitmark-inc/ledgertable/schema"
	"github.com/bitmark-inc/ledgertable/table"
	"github.com/bitmark-inc/ledgertable/table/mocks"
)

var testSchema = schema.MustNew("t_test", "id", []string{"id", "name", "status"}, nil)

// collects every change
type changeLog struct {
	changes []table.Change
}

func (l *changeLog) Record(c table.Change) {
	l.changes = append(l.changes, c)
}

func newRow(t *testing.T, values map[string]string) *row.Row {
	r, err := row.FromValues(testSchema, values)
	if nil != err {
		t.Fatalf("row error: %s", err)
	}
	return r
}

func TestSetAndGet(t *testing.T) {
	tbl := table.New(testSchema, table.Discard)

	_, found := tbl.Get("name")
	assert.False(t, found, "key never written")

	n, err := tbl.Set("name", newRow(t, map[string]string{"name": "WangWu"}))
	assert.Nil(t, err)
	assert.Equal(t, 1, n)

	r, found := tbl.Get("name")
	assert.True(t, found)
	v, _ := r.Get("name")
	assert.Equal(t, "WangWu", v)
	assert.Equal(t, map[string]string{"name": "WangWu"}, r.Values(), "stored fields are the fields set")
	assert.False(t, r.Has("id"), "key is not copied into the primary key field")

	n, err = tbl.Set("name", newRow(t, map[string]string{"name": "LiSi"}))
	assert.Nil(t, err)
	assert.Equal(t, 1, n, "upsert still affects one row")
	assert.Equal(t, 1, tbl.Len())
}

func TestSetKeepsKeyFieldValue(t *testing.T) {
	byName := schema.MustNew("t_by_name", "name", []string{"id", "name", "status"}, nil)
	tbl := table.New(byName, table.Discard)

	source, err := row.FromValues(byName, map[string]string{"name": "WangWu"})
	assert.Nil(t, err)
	_, err = tbl.Set("name", source)
	assert.Nil(t, err)

	r, found := tbl.Get("name")
	assert.True(t, found)
	v, _ := r.Get("name")
	assert.Equal(t, "WangWu", v, "key field holds the value that was set")
	assert.True(t, source.Equal(r), "stored row equals the row passed in")
}

func TestGetReturnsSnapshot(t *testing.T) {
	tbl := table.New(testSchema, table.Discard)
	source := newRow(t, map[string]string{"name": "a"})
	_, _ = tbl.Set("k", source)

	_ = source.Set("name", "changed after set")
	r, _ := tbl.Get("k")
	v, _ := r.Get("name")
	assert.Equal(t, "a", v)

	_ = r.Set("name", "changed after get")
	r2, _ := tbl.Get("k")
	v, _ = r2.Get("name")
	assert.Equal(t, "a", v)
}

func TestKeyTooLong(t *testing.T) {
	log := &changeLog{}
	tbl := table.New(testSchema, log)

	_, err := tbl.Set(strings.Repeat("k", table.MaximumKeyLength), newRow(t, nil))
	assert.Nil(t, err, "boundary length is allowed")

	_, err = tbl.Set(strings.Repeat("k", table.MaximumKeyLength+1), newRow(t, nil))
	assert.Equal(t, fault.ErrKeyTooLong, err)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 1, len(log.changes), "failed set records nothing")
}

func TestSetRejectsForeignFields(t *testing.T) {
	other := schema.MustNew("other", "id", []string{"id", "colour"}, nil)
	r, _ := row.FromValues(other, map[string]string{"colour": "red"})

	tbl := table.New(testSchema, table.Discard)
	_, err := tbl.Set("k", r)
	assert.Equal(t, fault.ErrFieldNotFound, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestChangeRecords(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	recorder := mocks.NewMockRecorder(ctl)
	gomock.InOrder(
		recorder.EXPECT().Record(table.Change{
			Kind:  table.Insert,
			Table: "t_test",
			Key:   "x",
		}),
		recorder.EXPECT().Record(table.Change{
			Kind:  table.Update,
			Table: "t_test",
			Key:   "x",
			Prior: map[string]string{"name": "one"},
		}),
		recorder.EXPECT().Record(table.Change{
			Kind:  table.Remove,
			Table: "t_test",
			Key:   "x",
			Prior: map[string]string{"name": "two"},
		}),
	)

	tbl := table.New(testSchema, recorder)
	_, _ = tbl.Set("x", newRow(t, map[string]string{"name": "one"}))
	_, _ = tbl.Set("x", newRow(t, map[string]string{"name": "two"}))
	assert.Equal(t, 1, tbl.Remove("x"))
	assert.Equal(t, 0, tbl.Remove("x"), "second remove finds nothing and records nothing")
}

func TestClearIsOneChange(t *testing.T) {
	log := &changeLog{}
	tbl := table.New(testSchema, log)

	_, _ = tbl.Set("x", newRow(t, map[string]string{"name": "1"}))
	_, _ = tbl.Set("y", newRow(t, map[string]string{"name": "2"}))
	tbl.Clear()

	_, found := tbl.Get("x")
	assert.False(t, found)
	_, found = tbl.Get("y")
	assert.False(t, found)
	assert.Equal(t, 0, tbl.Len())

	assert.Equal(t, 3, len(log.changes))
	c := log.changes[2]
	assert.Equal(t, table.Clear, c.Kind)
	assert.Equal(t, 2, len(c.PriorRows))
	assert.Equal(t, "x", c.PriorRows[0].Key)
	assert.Equal(t, "y", c.PriorRows[1].Key)
}

func TestRevert(t *testing.T) {
	log := &changeLog{}
	tbl := table.New(testSchema, log)

	_, _ = tbl.Set("a", newRow(t, map[string]string{"name": "1"}))
	before := tbl.Hash()
	mark := len(log.changes)

	_, _ = tbl.Set("a", newRow(t, map[string]string{"name": "2"}))
	_, _ = tbl.Set("b", newRow(t, map[string]string{"name": "3"}))
	tbl.Remove("a")
	tbl.Clear()
	_, _ = tbl.Set("c", newRow(t, nil))

	for i := len(log.changes) - 1; i >= mark; i -= 1 {
		tbl.Revert(log.changes[i])
	}

	assert.Equal(t, before, tbl.Hash())
	assert.Equal(t, []string{"a"}, tbl.Keys())
}

func TestHashIsOrderIndependent(t *testing.T) {
	one := table.New(testSchema, table.Discard)
	_, _ = one.Set("a", newRow(t, map[string]string{"name": "1"}))
	_, _ = one.Set("b", newRow(t, map[string]string{"name": "2"}))
	_, _ = one.Set("c", newRow(t, map[string]string{"name": "3"}))

	two := table.New(testSchema, table.Discard)
	_, _ = two.Set("c", newRow(t, map[string]string{"name": "x"}))
	_, _ = two.Set("b", newRow(t, map[string]string{"name": "2"}))
	_, _ = two.Set("d", newRow(t, map[string]string{"name": "4"}))
	_, _ = two.Set("a", newRow(t, map[string]string{"name": "1"}))
	two.Remove("d")
	_, _ = two.Set("c", newRow(t, map[string]string{"name": "3"}))

	assert.Equal(t, one.Hash(), two.Hash(), "same content by different histories")

	_, _ = two.Set("b", newRow(t, map[string]string{"name": "2", "status": ""}))
	assert.NotEqual(t, one.Hash(), two.Hash(), "a newly assigned field changes the digest")

	_, _ = two.Set("b", newRow(t, map[string]string{"name": "22"}))
	assert.NotEqual(t, one.Hash(), two.Hash(), "a changed value changes the digest")
}

func TestHashOfEmptyTable(t *testing.T) {
	one := table.New(testSchema, table.Discard)
	two := table.New(testSchema, table.Discard)
	_, _ = two.Set("a", newRow(t, nil))
	two.Clear()
	assert.Equal(t, one.Hash(), two.Hash())
}

func TestHashIsFixed(t *testing.T) {
	tbl := table.New(testSchema, table.Discard)
	_, _ = tbl.Set("2", newRow(t, map[string]string{"name": "LiSi"}))
	_, _ = tbl.Set("1", newRow(t, map[string]string{"name": "ZhangSan", "status": "active"}))

	expected := "943702811d2b299cb79ea37f152819998d8d6010f226ffec96b3334fe7891c2f"
	assert.Equal(t, expected, tbl.Hash().String(), "two row table digest")

	single := table.New(testSchema, table.Discard)
	_, _ = single.Set("1", newRow(t, map[string]string{"name": "ZhangSan", "status": "active"}))
	expected = "edcdae811bc100f7fe1785e7271c6b028faea0ef08a9b77ebd9a3e7974a78144"
	assert.Equal(t, expected, single.Hash().String(), "single row is its own leaf")
}

func TestSelect(t *testing.T) {
	tbl := table.New(testSchema, table.Discard)
	for _, k := range []string{"e", "b", "d", "a", "c"} {
		status := "on"
		if "d" == k {
			status = "off"
		}
		_, _ = tbl.Set(k, newRow(t, map[string]string{"name": k, "status": status}))
	}

	q := query.New(testSchema)
	assert.Nil(t, q.EQ("status", "on"))

	rows := tbl.Select(q)
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		v, _ := r.Get("name")
		names = append(names, v)
	}
	assert.Equal(t, []string{"a", "b", "c", "e"}, names, "canonical key order")

	q.Limit(1, 2)
	rows = tbl.Select(q)
	assert.Equal(t, 2, len(rows))
	v, _ := rows[0].Get("name")
	assert.Equal(t, "b", v)

	assert.Equal(t, 5, len(tbl.Select(query.New(testSchema))))
}

func TestLoad(t *testing.T) {
	log := &changeLog{}
	tbl := table.New(testSchema, log)

	err := tbl.Load([]table.Entry{
		{Key: "b", Values: map[string]string{"id": "b", "name": "2"}},
		{Key: "a", Values: map[string]string{"id": "a", "name": "1"}},
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Keys())
	assert.Equal(t, 0, len(log.changes), "loading is not a change")

	err = tbl.Load([]table.Entry{{Key: "c", Values: map[string]string{"bogus": "1"}}})
	assert.Equal(t, fault.ErrFieldNotFound, err)
}

func TestNilRecorderPanics(t *testing.T) {
	assert.Panics(t, func() { table.New(testSchema, nil) })
}
