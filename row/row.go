// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package row - mutable field/value maps bound to a table schema
package row

import (
	"math/big"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/schema"
)

// Row - the fields of one table row
//
// only fields of the owning schema may be read or written
type Row struct {
	schema *schema.Schema
	values map[string]string
}

// New - an empty row for the schema
func New(s *schema.Schema) *Row {
	return &Row{
		schema: s,
		values: make(map[string]string),
	}
}

// FromValues - a row holding a copy of values
func FromValues(s *schema.Schema, values map[string]string) (*Row, error) {
	r := New(s)
	for field, value := range values {
		if err := r.Set(field, value); nil != err {
			return nil, err
		}
	}
	return r, nil
}

// Schema - the owning schema
func (r *Row) Schema() *schema.Schema {
	return r.schema
}

// Get - value of a field, "" if the field has not been set
func (r *Row) Get(field string) (string, error) {
	if !r.schema.HasField(field) {
		return "", fault.ErrFieldNotFound
	}
	return r.values[field], nil
}

// Has - true if field has been set
func (r *Row) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Set - assign a field
func (r *Row) Set(field string, value string) error {
	if !r.schema.HasField(field) {
		return fault.ErrFieldNotFound
	}
	r.values[field] = value
	return nil
}

// GetInt - a field parsed as a base 10 integer
func (r *Row) GetInt(field string) (*big.Int, error) {
	s, err := r.Get(field)
	if nil != err {
		return nil, err
	}
	if "" == s {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fault.ErrNotAnInteger
	}
	return n, nil
}

// SetInt - store an integer in base 10
func (r *Row) SetInt(field string, value *big.Int) error {
	return r.Set(field, value.String())
}

// GetIdentity - a field holding an identity in hex
func (r *Row) GetIdentity(field string) (identity.Identity, error) {
	s, err := r.Get(field)
	if nil != err {
		return identity.Zero, err
	}
	if "" == s {
		return identity.Zero, nil
	}
	return identity.FromHex(s)
}

// SetIdentity - store an identity as hex
func (r *Row) SetIdentity(field string, id identity.Identity) error {
	return r.Set(field, id.String())
}

// GetBytes32 - the leading 32 bytes of a field, zero padded
func (r *Row) GetBytes32(field string) ([32]byte, error) {
	var b [32]byte
	s, err := r.Get(field)
	if nil != err {
		return b, err
	}
	copy(b[:], s)
	return b, nil
}

// Values - copy of the assigned fields
func (r *Row) Values() map[string]string {
	values := make(map[string]string, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	return values
}

// Len - number of assigned fields
func (r *Row) Len() int {
	return len(r.values)
}

// Clone - independent copy bound to the same schema
func (r *Row) Clone() *Row {
	return &Row{
		schema: r.schema,
		values: r.Values(),
	}
}

// Equal - content comparison, handle identity plays no part
func (r *Row) Equal(other *Row) bool {
	if nil == r || nil == other {
		return r == other
	}
	if len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
