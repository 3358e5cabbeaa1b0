// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package executive_test

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertable/abi"
	"github.com/bitmark-inc/ledgertable/executive"
	"github.com/bitmark-inc/ledgertable/executive/mocks"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/storage"
	"github.com/bitmark-inc/ledgertable/table"
)

func TestNewRejectsBadCatalog(t *testing.T) {
	m := storage.NewMemory()

	_, err := executive.New(m, []executive.Definition{
		{Address: peopleAddress, Schema: people},
		{Address: peopleAddress, Schema: open},
	})
	assert.Equal(t, fault.ErrDuplicateTable, err, "same address")

	_, err = executive.New(m, []executive.Definition{
		{Address: peopleAddress, Schema: people},
		{Address: openAddress, Schema: people},
	})
	assert.Equal(t, fault.ErrDuplicateTable, err, "same name")

	_, err = executive.New(m, []executive.Definition{
		{Address: identity.FromUint64(0x10005), Schema: people},
	})
	assert.Equal(t, fault.ErrInvalidTableAddress, err)

	_, err = executive.New(m, []executive.Definition{
		{Address: peopleAddress, Schema: people},
		{Address: openAddress},
	})
	assert.Equal(t, fault.ErrMissingSchema, err, "no schema")
}

func TestDefinitions(t *testing.T) {
	e := newEngine(t, storage.NewMemory())

	definitions := e.Definitions()
	assert.Equal(t, 2, len(definitions))
	assert.Equal(t, "t_open", definitions[0].Schema.Name())
	assert.Equal(t, "t_people", definitions[1].Schema.Name())

	address, ok := e.Lookup("t_people")
	assert.True(t, ok)
	assert.Equal(t, peopleAddress, address)

	_, ok = e.Lookup("t_missing")
	assert.False(t, ok)
}

func TestCommit(t *testing.T) {
	m := storage.NewMemory()
	e := newEngine(t, m)

	c := e.Begin(ownerA)
	o := store(t, c, peopleAddress, "name", map[string]string{"name": "WangWu"})
	assert.False(t, o.Failed())
	assert.Equal(t, fault.KindNone, o.Kind)

	changes := c.Changes()
	assert.Equal(t, 1, len(changes))
	assert.Equal(t, table.Insert, changes[0].Kind)

	rows, _ := m.Rows("t_people")
	assert.Equal(t, 0, len(rows), "nothing stored before commit")

	assert.Nil(t, c.Commit())

	rows, _ = m.Rows("t_people")
	assert.Equal(t, 1, len(rows))
	assert.Equal(t, map[string]string{"name": "WangWu"}, rows[0].Values)

	o = c.Call(peopleAddress, abi.Pack("size()", nil))
	assert.Equal(t, fault.ErrContextClosed, o.Err)
	assert.Equal(t, fault.ErrContextClosed, c.Commit())

	// a new context loads the committed content
	c = e.Begin(ownerB)
	value, found := fetch(t, c, peopleAddress, "name", "name")
	assert.True(t, found)
	assert.Equal(t, "WangWu", value)
}

func TestFailedCallKeepsEarlierChanges(t *testing.T) {
	e := newEngine(t, storage.NewMemory())

	c := e.Begin(ownerA)
	o := store(t, c, peopleAddress, "first", map[string]string{"name": "WangWu"})
	assert.False(t, o.Failed())
	before, _ := c.Table(peopleAddress)
	hash := before.Hash()

	c.SetCaller(ownerB)
	assert.Equal(t, ownerB, c.Caller())

	o = store(t, c, peopleAddress, "second", map[string]string{"name": "LiSi"})
	assert.True(t, o.Failed())
	assert.Equal(t, fault.ErrPermissionDenied, o.Err)
	assert.Equal(t, fault.KindPermissionDenied, o.Kind)
	assert.Nil(t, o.Output)

	o = c.Call(peopleAddress, abi.Pack("clear()", nil))
	assert.Equal(t, fault.KindPermissionDenied, o.Kind)

	assert.Equal(t, 1, len(c.Changes()))
	assert.Equal(t, hash, before.Hash())

	_, found := fetch(t, c, peopleAddress, "first", "name")
	assert.True(t, found)
}

func TestRollback(t *testing.T) {
	m := storage.NewMemory()
	e := newEngine(t, m)

	c := e.Begin(ownerA)
	assert.False(t, store(t, c, peopleAddress, "x", map[string]string{"name": "one"}).Failed())
	assert.Nil(t, c.Commit())

	c = e.Begin(ownerA)
	tbl, err := c.Table(peopleAddress)
	assert.Nil(t, err)
	committed := tbl.Hash()

	assert.False(t, store(t, c, peopleAddress, "x", map[string]string{"name": "two"}).Failed())
	assert.False(t, store(t, c, peopleAddress, "y", map[string]string{"name": "three"}).Failed())
	mustCall(t, c, peopleAddress, abi.Pack("remove(string)", abi.NewEncoder().String("x")))
	mustCall(t, c, peopleAddress, abi.Pack("clear()", nil))
	assert.Equal(t, 4, len(c.Changes()))

	c.Rollback()

	assert.Equal(t, committed, tbl.Hash(), "every change reverted")
	assert.Equal(t, 0, len(c.Changes()))
	assert.Equal(t, fault.ErrContextClosed, c.Call(peopleAddress, abi.Pack("size()", nil)).Err)

	rows, _ := m.Rows("t_people")
	assert.Equal(t, 1, len(rows))
	assert.Equal(t, "one", rows[0].Values["name"])
}

func TestCommitClearAndRemove(t *testing.T) {
	m := storage.NewMemory()
	e := newEngine(t, m)

	c := e.Begin(ownerA)
	for _, key := range []string{"a", "b", "c"} {
		assert.False(t, store(t, c, peopleAddress, key, map[string]string{"name": key}).Failed())
		assert.False(t, store(t, c, openAddress, key, map[string]string{"value": key}).Failed())
	}
	assert.Nil(t, c.Commit())

	c = e.Begin(ownerA)
	mustCall(t, c, peopleAddress, abi.Pack("clear()", nil))
	assert.False(t, store(t, c, peopleAddress, "d", map[string]string{"name": "d"}).Failed())
	mustCall(t, c, openAddress, abi.Pack("remove(string)", abi.NewEncoder().String("b")))
	assert.Nil(t, c.Commit())

	rows, _ := m.Rows("t_people")
	assert.Equal(t, 1, len(rows))
	assert.Equal(t, "d", rows[0].Key)

	rows, _ = m.Rows("t_open")
	assert.Equal(t, 2, len(rows))
	assert.Equal(t, "a", rows[0].Key)
	assert.Equal(t, "c", rows[1].Key)
}

func TestContextIsolation(t *testing.T) {
	e := newEngine(t, storage.NewMemory())

	c1 := e.Begin(ownerA)
	c2 := e.Begin(ownerA)
	assert.NotEqual(t, c1.ID(), c2.ID())

	first1 := mustCall(t, c1, peopleAddress, abi.Pack("newRow()", nil))
	first2 := mustCall(t, c2, peopleAddress, abi.Pack("newRow()", nil))
	assert.Equal(t, first1, first2, "each context numbers its own handles")

	assert.False(t, store(t, c1, peopleAddress, "k", map[string]string{"name": "mine"}).Failed())
	_, found := fetch(t, c2, peopleAddress, "k", "name")
	assert.False(t, found, "uncommitted rows are private")

	// a handle from one context means nothing in another
	rowAddress, _ := abi.NewDecoder(mustCall(t, c1, peopleAddress, abi.Pack("newRow()", nil))).Address()
	o := c2.Call(rowAddress, abi.Pack("getString(string)", abi.NewEncoder().String("name")))
	assert.Equal(t, fault.KindInvalidReference, o.Kind)
}

func TestInvalidAddresses(t *testing.T) {
	e := newEngine(t, storage.NewMemory())
	c := e.Begin(ownerA)

	o := c.Call(identity.FromUint64(5), abi.Pack("size()", nil))
	assert.Equal(t, fault.ErrInvalidReference, o.Err)
	assert.Equal(t, fault.KindInvalidReference, o.Kind)

	o = c.Call(identity.FromUint64(0x20000), abi.Pack("size()", nil))
	assert.Equal(t, fault.ErrInvalidReference, o.Err)

	_, err := c.Table(identity.FromUint64(5))
	assert.Equal(t, fault.ErrTableNotFound, err)
}

func TestQueryThroughContext(t *testing.T) {
	e := newEngine(t, storage.NewMemory())
	c := e.Begin(ownerA)

	for i, status := range []string{"3", "12", "7"} {
		key := fmt.Sprintf("k%d", i)
		assert.False(t, store(t, c, peopleAddress, key, map[string]string{"status": status}).Failed())
	}

	condition, _ := abi.NewDecoder(mustCall(t, c, peopleAddress, abi.Pack("newCondition()", nil))).Address()
	mustCall(t, c, condition, abi.Pack("GT(string,string)", abi.NewEncoder().String("status").String("5")))

	o := c.Call(condition, abi.Pack("getString(string)", abi.NewEncoder().String("status")))
	assert.Equal(t, fault.ErrUnknownFunction, o.Err, "a query is not a row")

	output := mustCall(t, c, peopleAddress, abi.Pack("select(address)", abi.NewEncoder().Address(condition)))
	addresses, err := abi.NewDecoder(output).AddressArray()
	assert.Nil(t, err)
	assert.Equal(t, 2, len(addresses))
}

func TestCommitFailureAborts(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	backend := mocks.NewMockBackend(ctl)
	tx := mocks.NewMockTransaction(ctl)

	failure := fmt.Errorf("disk full")
	backend.EXPECT().Rows("t_open").Return([]table.Entry{}, nil).Times(1)
	gomock.InOrder(
		backend.EXPECT().Begin().Return(tx, nil),
		tx.EXPECT().Put("t_open", "k", map[string]string{"value": "v"}).Return(failure),
		tx.EXPECT().Abort(),
	)

	e, err := executive.New(backend, []executive.Definition{{Address: openAddress, Schema: open}})
	assert.Nil(t, err)

	c := e.Begin(ownerB)
	assert.False(t, store(t, c, openAddress, "k", map[string]string{"value": "v"}).Failed())

	assert.Equal(t, failure, c.Commit())
	assert.Equal(t, 1, len(c.Changes()), "context still open")
}

func TestOpenTableAnyCaller(t *testing.T) {
	e := newEngine(t, storage.NewMemory())

	for _, caller := range []identity.Identity{ownerA, ownerB, identity.Zero} {
		c := e.Begin(caller)
		o := store(t, c, openAddress, "k", map[string]string{"value": "v"})
		assert.False(t, o.Failed(), "caller: %s", caller)
		c.Rollback()
	}
}
