// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package executive - execution contexts over a catalog of tables
//
// an Engine holds the catalog and the committed store; every
// transaction runs in its own Context with a private registry, private
// table instances and a change log that is either committed to the
// store as one unit or rolled back
package executive

import (
	"sort"

	"github.com/google/uuid"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/registry"
	"github.com/bitmark-inc/ledgertable/schema"
	"github.com/bitmark-inc/ledgertable/storage"
	"github.com/bitmark-inc/ledgertable/table"
)

// Definition - a catalog entry
type Definition struct {
	Address identity.Identity
	Schema  *schema.Schema
}

// Engine - the catalog and its backing store
//
// immutable after New, contexts may be opened from any goroutine
type Engine struct {
	log         *logger.L
	contractLog *logger.L
	store       storage.Backend
	byAddress   map[identity.Identity]*schema.Schema
	byName      map[string]identity.Identity
}

// New - validate the catalog
func New(store storage.Backend, definitions []Definition) (*Engine, error) {
	log := logger.New("executive")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	contractLog := logger.New("contract")
	if nil == contractLog {
		return nil, fault.ErrInvalidLoggerChannel
	}

	e := &Engine{
		log:         log,
		contractLog: contractLog,
		store:       store,
		byAddress:   make(map[identity.Identity]*schema.Schema, len(definitions)),
		byName:      make(map[string]identity.Identity, len(definitions)),
	}

	for _, d := range definitions {
		if nil == d.Schema {
			log.Errorf("address: %s  error: %s", d.Address, fault.ErrMissingSchema)
			return nil, fault.ErrMissingSchema
		}
		if _, ok := registry.HandleFromAddress(d.Address); ok || d.Address.IsZero() {
			log.Errorf("table: %q  address: %s  error: %s", d.Schema.Name(), d.Address, fault.ErrInvalidTableAddress)
			return nil, fault.ErrInvalidTableAddress
		}
		if _, ok := e.byAddress[d.Address]; ok {
			return nil, fault.ErrDuplicateTable
		}
		if _, ok := e.byName[d.Schema.Name()]; ok {
			return nil, fault.ErrDuplicateTable
		}
		e.byAddress[d.Address] = d.Schema
		e.byName[d.Schema.Name()] = d.Address
		log.Infof("table: %q  address: %s  fields: %v", d.Schema.Name(), d.Address, d.Schema.Fields())
	}

	return e, nil
}

// Lookup - the address of a table by name
func (e *Engine) Lookup(name string) (identity.Identity, bool) {
	address, ok := e.byName[name]
	return address, ok
}

// Definitions - the catalog in name order
func (e *Engine) Definitions() []Definition {
	names := make([]string, 0, len(e.byName))
	for name := range e.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	definitions := make([]Definition, len(names))
	for i, name := range names {
		address := e.byName[name]
		definitions[i] = Definition{Address: address, Schema: e.byAddress[address]}
	}
	return definitions
}

// Begin - open a new execution context
func (e *Engine) Begin(caller identity.Identity) *Context {
	c := &Context{
		id:       uuid.New(),
		engine:   e,
		log:      e.log,
		registry: registry.New(),
		tables:   make(map[string]*table.Table),
		caller:   caller,
	}
	c.log.Infof("context: %s  begin  caller: %s", c.id, caller)
	return c
}
