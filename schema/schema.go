// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema - immutable table definitions
package schema

import (
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
)

// Schema - ordered field names, primary key field and the set of
// identities allowed to modify the table
//
// never modified after construction
type Schema struct {
	name       string
	key        string
	fields     []string
	index      map[string]int
	authorized []identity.Identity
	allowed    map[identity.Identity]struct{}
}

// New - validate and build a schema
func New(name string, key string, fields []string, authorized []identity.Identity) (*Schema, error) {
	if 0 == len(fields) {
		return nil, fault.ErrNoFields
	}

	s := &Schema{
		name:       name,
		key:        key,
		fields:     make([]string, len(fields)),
		index:      make(map[string]int, len(fields)),
		authorized: make([]identity.Identity, 0, len(authorized)),
		allowed:    make(map[identity.Identity]struct{}, len(authorized)),
	}
	copy(s.fields, fields)

	for i, f := range fields {
		if _, ok := s.index[f]; ok {
			return nil, fault.ErrDuplicateField
		}
		s.index[f] = i
	}

	if _, ok := s.index[key]; !ok {
		return nil, fault.ErrKeyNotAField
	}

	for _, id := range authorized {
		if _, ok := s.allowed[id]; ok {
			continue
		}
		s.allowed[id] = struct{}{}
		s.authorized = append(s.authorized, id)
	}

	return s, nil
}

// MustNew - as New but a bad definition is fatal
//
// for catalog entries, where a duplicate field cannot be recovered
// from at run time
func MustNew(name string, key string, fields []string, authorized []identity.Identity) *Schema {
	s, err := New(name, key, fields, authorized)
	fault.PanicIfError("schema: "+name, err)
	return s
}

// Name - the table name
func (s *Schema) Name() string {
	return s.name
}

// PrimaryKeyField - name of the field holding the row key
func (s *Schema) PrimaryKeyField() string {
	return s.key
}

// Fields - copy of the field names in declaration order
func (s *Schema) Fields() []string {
	return append([]string{}, s.fields...)
}

// HasField - true if name is one of the fields
func (s *Schema) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Authorized - copy of the authorized identity list
func (s *Schema) Authorized() []identity.Identity {
	return append([]identity.Identity{}, s.authorized...)
}

// IsAuthorized - may id modify the table
//
// a table with no authorized identities is open to everyone
func (s *Schema) IsAuthorized(id identity.Identity) bool {
	if 0 == len(s.allowed) {
		return true
	}
	_, ok := s.allowed[id]
	return ok
}
