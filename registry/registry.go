// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
	"github.com/bitmark-inc/ledgertable/query"
	"github.com/bitmark-inc/ledgertable/row"
)

// ReservedAddresses - addresses up to and including this value are
// never issued as handles
const ReservedAddresses = 0x10000

// FirstHandle - the value of the first handle issued by a registry
const FirstHandle = ReservedAddresses + 1

// Kind - type tag of a registered object
type Kind int

// object kinds
const (
	KindRow Kind = iota + 1
	KindQuery
)

// String - kind name
func (k Kind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindQuery:
		return "query"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Handle - reference to a registered object
type Handle struct {
	value uint64
}

// ZeroHandle - never refers to an object
var ZeroHandle Handle

// IsZero - true for ZeroHandle
func (h Handle) IsZero() bool {
	return 0 == h.value
}

// Address - the handle as it appears to contract code
func (h Handle) Address() identity.Identity {
	return identity.FromUint64(h.value)
}

// String - hex form of the address
func (h Handle) String() string {
	return h.Address().String()
}

// HandleFromAddress - recover a handle from an address
//
// false if the address cannot have been issued by any registry
func HandleFromAddress(id identity.Identity) (Handle, bool) {
	n, ok := id.Uint64()
	if !ok || n < FirstHandle {
		return ZeroHandle, false
	}
	return Handle{value: n}, true
}

type entry struct {
	kind   Kind
	object interface{}
}

// Registry - handle to object map for one execution context
type Registry struct {
	next    uint64
	objects map[uint64]entry
}

// New - an empty registry
func New() *Registry {
	return &Registry{
		next:    FirstHandle,
		objects: make(map[uint64]entry),
	}
}

// Register - store object and return its new handle
func (r *Registry) Register(object interface{}, kind Kind) Handle {
	h := Handle{value: r.next}
	r.next += 1
	r.objects[h.value] = entry{kind: kind, object: object}
	return h
}

// RegisterRow - store a row
func (r *Registry) RegisterRow(rw *row.Row) Handle {
	return r.Register(rw, KindRow)
}

// RegisterQuery - store a query
func (r *Registry) RegisterQuery(q *query.Query) Handle {
	return r.Register(q, KindQuery)
}

// Resolve - look up a handle expecting a particular kind
func (r *Registry) Resolve(h Handle, kind Kind) (interface{}, error) {
	e, ok := r.objects[h.value]
	if !ok {
		return nil, fault.ErrInvalidReference
	}
	if e.kind != kind {
		return nil, fault.ErrReferenceTypeMismatch
	}
	return e.object, nil
}

// KindOf - the kind registered under a handle
func (r *Registry) KindOf(h Handle) (Kind, bool) {
	e, ok := r.objects[h.value]
	return e.kind, ok
}

// ResolveRow - a row handle
func (r *Registry) ResolveRow(h Handle) (*row.Row, error) {
	object, err := r.Resolve(h, KindRow)
	if nil != err {
		return nil, err
	}
	rw, ok := object.(*row.Row)
	if !ok {
		return nil, fault.ErrReferenceTypeMismatch
	}
	return rw, nil
}

// ResolveQuery - a query handle
func (r *Registry) ResolveQuery(h Handle) (*query.Query, error) {
	object, err := r.Resolve(h, KindQuery)
	if nil != err {
		return nil, err
	}
	q, ok := object.(*query.Query)
	if !ok {
		return nil, fault.ErrReferenceTypeMismatch
	}
	return q, nil
}

// Len - number of registered objects
func (r *Registry) Len() int {
	return len(r.objects)
}
