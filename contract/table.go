// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/abi"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/merkle"
	"github.com/bitmark-inc/ledgertable/query"
	"github.com/bitmark-inc/ledgertable/registry"
	"github.com/bitmark-inc/ledgertable/row"
	"github.com/bitmark-inc/ledgertable/table"
)

// TableContractName - returned by toString, external tooling matches
// on this exact value
const TableContractName = "SimpleTable"

// Table - the call surface of one table
type Table struct {
	table *table.Table
	log   *logger.L
}

type tableMethod struct {
	name string
	call func(c *Table, reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error)
}

var tableMethods = map[abi.Selector]tableMethod{
	abi.NewSelector("get(string)"):         {"get", (*Table).callGet},
	abi.NewSelector("set(string,address)"): {"set", (*Table).callSet},
	abi.NewSelector("newRow()"):            {"newRow", (*Table).callNewRow},
	abi.NewSelector("newEntry()"):          {"newEntry", (*Table).callNewRow},
	abi.NewSelector("remove(string)"):      {"remove", (*Table).callRemove},
	abi.NewSelector("clear()"):             {"clear", (*Table).callClear},
	abi.NewSelector("hash()"):              {"hash", (*Table).callHash},
	abi.NewSelector("toString()"):          {"toString", (*Table).callToString},
	abi.NewSelector("newCondition()"):      {"newCondition", (*Table).callNewCondition},
	abi.NewSelector("select(address)"):     {"select", (*Table).callSelect},
	abi.NewSelector("size()"):              {"size", (*Table).callSize},
}

// NewTable - wrap a table instance
func NewTable(t *table.Table, log *logger.L) *Table {
	if nil == log {
		fault.Panicf("contract.NewTable: %s: nil logger", t.Name())
	}
	return &Table{
		table: t,
		log:   log,
	}
}

// Table - the wrapped table
func (c *Table) Table() *table.Table {
	return c.table
}

// Get - register a snapshot of the row under key
//
// a miss is not an error, it returns false and the zero handle
func (c *Table) Get(reg *registry.Registry, key string) (bool, registry.Handle) {
	r, found := c.table.Get(key)
	if !found {
		return false, registry.ZeroHandle
	}
	return true, reg.RegisterRow(r)
}

// Set - store the row referenced by h under key
func (c *Table) Set(reg *registry.Registry, caller identity.Identity, key string, h registry.Handle) (uint64, error) {
	if len(key) > table.MaximumKeyLength {
		return 0, fault.ErrKeyTooLong
	}
	if !c.table.Schema().IsAuthorized(caller) {
		return 0, fault.ErrPermissionDenied
	}
	r, err := reg.ResolveRow(h)
	if nil != err {
		return 0, err
	}
	n, err := c.table.Set(key, r)
	if nil != err {
		return 0, err
	}
	return uint64(n), nil
}

// NewRow - register an empty row bound to this table's schema
func (c *Table) NewRow(reg *registry.Registry) registry.Handle {
	return reg.RegisterRow(row.New(c.table.Schema()))
}

// Remove - delete the row under key
func (c *Table) Remove(caller identity.Identity, key string) (uint64, error) {
	if len(key) > table.MaximumKeyLength {
		return 0, fault.ErrKeyTooLong
	}
	if !c.table.Schema().IsAuthorized(caller) {
		return 0, fault.ErrPermissionDenied
	}
	return uint64(c.table.Remove(key)), nil
}

// Clear - delete every row
func (c *Table) Clear(caller identity.Identity) error {
	if !c.table.Schema().IsAuthorized(caller) {
		return fault.ErrPermissionDenied
	}
	c.table.Clear()
	return nil
}

// Hash - digest of the table content
func (c *Table) Hash() merkle.Digest {
	return c.table.Hash()
}

// String - the contract kind, independent of content
func (c *Table) String() string {
	return TableContractName
}

// NewCondition - register an empty query over this table's schema
func (c *Table) NewCondition(reg *registry.Registry) registry.Handle {
	return reg.RegisterQuery(query.New(c.table.Schema()))
}

// Select - register a snapshot of every row matched by the query
// referenced by h, in key order
func (c *Table) Select(reg *registry.Registry, h registry.Handle) ([]registry.Handle, error) {
	q, err := reg.ResolveQuery(h)
	if nil != err {
		return nil, err
	}
	rows := c.table.Select(q)
	handles := make([]registry.Handle, len(rows))
	for i, r := range rows {
		handles[i] = reg.RegisterRow(r)
	}
	return handles, nil
}

// Size - number of rows
func (c *Table) Size() uint64 {
	return uint64(c.table.Len())
}

// Call - decode and run one call
func (c *Table) Call(reg *registry.Registry, caller identity.Identity, input []byte) ([]byte, error) {
	selector, data, err := abi.SplitSelector(input)
	if nil != err {
		return nil, err
	}
	method, ok := tableMethods[selector]
	if !ok {
		c.log.Warnf("%s: unknown selector: %x", c.table.Name(), selector)
		return nil, fault.ErrUnknownFunction
	}

	c.log.Debugf("%s: %s caller: %s", c.table.Name(), method.name, caller)

	output, err := method.call(c, reg, caller, abi.NewDecoder(data))
	if nil != err {
		c.log.Warnf("%s: %s caller: %s  error: %s", c.table.Name(), method.name, caller, err)
		return nil, err
	}
	return output, nil
}

func (c *Table) callGet(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	key, err := args.String()
	if nil != err {
		return nil, err
	}
	found, h := c.Get(reg, key)
	return abi.NewEncoder().Bool(found).Address(h.Address()).Bytes(), nil
}

func (c *Table) callSet(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	key, err := args.String()
	if nil != err {
		return nil, err
	}
	address, err := args.Address()
	if nil != err {
		return nil, err
	}
	h, _ := registry.HandleFromAddress(address)
	n, err := c.Set(reg, caller, key, h)
	if nil != err {
		return nil, err
	}
	return abi.NewEncoder().Uint64(n).Bytes(), nil
}

func (c *Table) callNewRow(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	return abi.NewEncoder().Address(c.NewRow(reg).Address()).Bytes(), nil
}

func (c *Table) callRemove(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	key, err := args.String()
	if nil != err {
		return nil, err
	}
	n, err := c.Remove(caller, key)
	if nil != err {
		return nil, err
	}
	return abi.NewEncoder().Uint64(n).Bytes(), nil
}

func (c *Table) callClear(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	if err := c.Clear(caller); nil != err {
		return nil, err
	}
	return []byte{}, nil
}

func (c *Table) callHash(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	return abi.NewEncoder().Bytes32(c.Hash()).Bytes(), nil
}

func (c *Table) callToString(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	return abi.NewEncoder().String(c.String()).Bytes(), nil
}

func (c *Table) callNewCondition(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	return abi.NewEncoder().Address(c.NewCondition(reg).Address()).Bytes(), nil
}

func (c *Table) callSelect(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	address, err := args.Address()
	if nil != err {
		return nil, err
	}
	h, _ := registry.HandleFromAddress(address)
	handles, err := c.Select(reg, h)
	if nil != err {
		return nil, err
	}
	addresses := make([]identity.Identity, len(handles))
	for i, h := range handles {
		addresses[i] = h.Address()
	}
	return abi.NewEncoder().AddressArray(addresses).Bytes(), nil
}

func (c *Table) callSize(reg *registry.Registry, caller identity.Identity, args *abi.Decoder) ([]byte, error) {
	return abi.NewEncoder().Uint64(c.Size()).Bytes(), nil
}
