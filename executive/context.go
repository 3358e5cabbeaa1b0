// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package executive

import (
	"sort"

	"github.com/google/uuid"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/contract"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/registry"
	"github.com/bitmark-inc/ledgertable/storage"
	"github.com/bitmark-inc/ledgertable/table"
)

// Outcome - result of one call
//
// Kind is fault.KindNone on success
type Outcome struct {
	Output []byte
	Err    error
	Kind   fault.Kind
}

// Failed - true if the call raised an error
func (o Outcome) Failed() bool {
	return nil != o.Err
}

// Context - one transaction's view of the catalog
//
// not safe for concurrent use
type Context struct {
	id       uuid.UUID
	engine   *Engine
	log      *logger.L
	registry *registry.Registry
	tables   map[string]*table.Table
	caller   identity.Identity
	changes  []table.Change
	closed   bool
}

// ID - identifies the context in logs
func (c *Context) ID() string {
	return c.id.String()
}

// Registry - the context's object handles
func (c *Context) Registry() *registry.Registry {
	return c.registry
}

// Caller - identity used for permission checks
func (c *Context) Caller() identity.Identity {
	return c.caller
}

// SetCaller - identity for subsequent calls
func (c *Context) SetCaller(caller identity.Identity) {
	c.caller = caller
}

// Record - append to the change log
func (c *Context) Record(change table.Change) {
	c.changes = append(c.changes, change)
}

// Changes - copy of the change log, oldest first
func (c *Context) Changes() []table.Change {
	return append([]table.Change{}, c.changes...)
}

// Table - the context's instance of a catalog table, loaded from
// the store on first use
func (c *Context) Table(address identity.Identity) (*table.Table, error) {
	s, ok := c.engine.byAddress[address]
	if !ok {
		return nil, fault.ErrTableNotFound
	}
	if t, ok := c.tables[s.Name()]; ok {
		return t, nil
	}

	entries, err := c.engine.store.Rows(s.Name())
	if nil != err {
		c.log.Errorf("context: %s  load table: %q  error: %s", c.id, s.Name(), err)
		return nil, err
	}
	t := table.New(s, c)
	if err := t.Load(entries); nil != err {
		c.log.Errorf("context: %s  load table: %q  error: %s", c.id, s.Name(), err)
		return nil, err
	}
	c.tables[s.Name()] = t
	c.log.Debugf("context: %s  loaded table: %q  rows: %d", c.id, s.Name(), t.Len())
	return t, nil
}

// Call - run one call against a table or an object handle
//
// a failed call reverts its own changes, earlier calls are kept
func (c *Context) Call(address identity.Identity, input []byte) Outcome {
	if c.closed {
		return Outcome{Err: fault.ErrContextClosed, Kind: fault.KindOf(fault.ErrContextClosed)}
	}

	mark := len(c.changes)
	output, err := c.dispatch(address, input)
	if nil != err {
		c.revertTo(mark)
		kind := fault.KindOf(err)
		c.log.Warnf("context: %s  call: %s  caller: %s  kind: %s  error: %s", c.id, address, c.caller, kind, err)
		return Outcome{Err: err, Kind: kind}
	}
	return Outcome{Output: output, Kind: fault.KindNone}
}

func (c *Context) dispatch(address identity.Identity, input []byte) ([]byte, error) {
	if _, ok := c.engine.byAddress[address]; ok {
		t, err := c.Table(address)
		if nil != err {
			return nil, err
		}
		return contract.NewTable(t, c.engine.contractLog).Call(c.registry, c.caller, input)
	}

	h, ok := registry.HandleFromAddress(address)
	if !ok {
		return nil, fault.ErrInvalidReference
	}
	kind, ok := c.registry.KindOf(h)
	if !ok {
		return nil, fault.ErrInvalidReference
	}

	switch kind {
	case registry.KindRow:
		r, err := c.registry.ResolveRow(h)
		if nil != err {
			return nil, err
		}
		return contract.CallRow(r, input)
	case registry.KindQuery:
		q, err := c.registry.ResolveQuery(h)
		if nil != err {
			return nil, err
		}
		return contract.CallQuery(q, input)
	}
	return nil, fault.ErrReferenceTypeMismatch
}

// undo changes newer than mark, newest first
func (c *Context) revertTo(mark int) {
	for i := len(c.changes) - 1; i >= mark; i -= 1 {
		change := c.changes[i]
		c.tables[change.Table].Revert(change)
	}
	c.changes = c.changes[:mark]
}

// Rollback - discard every change and close the context
func (c *Context) Rollback() {
	if c.closed {
		return
	}
	n := len(c.changes)
	c.revertTo(0)
	c.closed = true
	c.log.Infof("context: %s  rollback  changes: %d", c.id, n)
}

// Commit - write the final state of every touched row as one storage
// transaction and close the context
//
// on error nothing is written and the context stays open
func (c *Context) Commit() error {
	if c.closed {
		return fault.ErrContextClosed
	}

	type touched struct {
		cleared bool
		keys    map[string]struct{}
	}
	byTable := make(map[string]*touched)
	for _, change := range c.changes {
		tt, ok := byTable[change.Table]
		if !ok {
			tt = &touched{keys: make(map[string]struct{})}
			byTable[change.Table] = tt
		}
		if table.Clear == change.Kind {
			tt.cleared = true
			continue
		}
		tt.keys[change.Key] = struct{}{}
	}

	names := make([]string, 0, len(byTable))
	for name := range byTable {
		names = append(names, name)
	}
	sort.Strings(names)

	tx, err := c.engine.store.Begin()
	if nil != err {
		c.log.Errorf("context: %s  commit error: %s", c.id, err)
		return err
	}

	for _, name := range names {
		if err := c.write(tx, name, byTable[name].cleared, byTable[name].keys); nil != err {
			tx.Abort()
			c.log.Errorf("context: %s  commit table: %q  error: %s", c.id, name, err)
			return err
		}
	}

	if err := tx.Commit(); nil != err {
		c.log.Errorf("context: %s  commit error: %s", c.id, err)
		return err
	}

	c.log.Infof("context: %s  commit  changes: %d  tables: %d", c.id, len(c.changes), len(names))
	c.changes = nil
	c.closed = true
	return nil
}

func (c *Context) write(tx storage.Transaction, name string, cleared bool, keys map[string]struct{}) error {
	t := c.tables[name]

	if cleared {
		if err := tx.DeleteTable(name); nil != err {
			return err
		}
		for _, e := range t.Entries() {
			if err := tx.Put(name, e.Key, e.Values); nil != err {
				return err
			}
		}
		return nil
	}

	for key := range keys {
		r, found := t.Get(key)
		if !found {
			if err := tx.Delete(name, key); nil != err {
				return err
			}
			continue
		}
		if err := tx.Put(name, key, r.Values()); nil != err {
			return err
		}
	}
	return nil
}
