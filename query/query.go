// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - conjunctive row selection predicates
package query

import (
	"math/big"
	"strings"

	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/schema"
)

// Comparator - the relation a clause tests
type Comparator int

// available comparators
const (
	EQ Comparator = iota
	NE
	GT
	GE
	LT
	LE
)

var comparatorNames = []string{"EQ", "NE", "GT", "GE", "LT", "LE"}

// String - comparator name
func (c Comparator) String() string {
	if c < EQ || c > LE {
		return "??"
	}
	return comparatorNames[c]
}

// ParseComparator - from the name as used by String (any case)
func ParseComparator(s string) (Comparator, error) {
	for i, name := range comparatorNames {
		if strings.EqualFold(name, s) {
			return Comparator(i), nil
		}
	}
	return EQ, fault.ErrInvalidComparator
}

// Readable - anything with field values, normally a *row.Row
type Readable interface {
	Get(field string) (string, error)
}

// Clause - field <comparator> value
type Clause struct {
	Field      string
	Comparator Comparator
	Value      string
}

// Query - clauses that must all hold, plus an optional window over
// the matching rows
type Query struct {
	schema  *schema.Schema
	clauses []Clause

	limited bool
	offset  uint64
	count   uint64
}

// New - an empty query, which matches every row
func New(s *schema.Schema) *Query {
	return &Query{schema: s}
}

// Schema - the schema clause fields are checked against
func (q *Query) Schema() *schema.Schema {
	return q.schema
}

// Add - append a clause
func (q *Query) Add(field string, c Comparator, value string) error {
	if c < EQ || c > LE {
		return fault.ErrInvalidComparator
	}
	if !q.schema.HasField(field) {
		return fault.ErrFieldNotFound
	}
	q.clauses = append(q.clauses, Clause{Field: field, Comparator: c, Value: value})
	return nil
}

// EQ - field == value
func (q *Query) EQ(field string, value string) error { return q.Add(field, EQ, value) }

// NE - field != value
func (q *Query) NE(field string, value string) error { return q.Add(field, NE, value) }

// GT - field > value
func (q *Query) GT(field string, value string) error { return q.Add(field, GT, value) }

// GE - field >= value
func (q *Query) GE(field string, value string) error { return q.Add(field, GE, value) }

// LT - field < value
func (q *Query) LT(field string, value string) error { return q.Add(field, LT, value) }

// LE - field <= value
func (q *Query) LE(field string, value string) error { return q.Add(field, LE, value) }

// Limit - only return count matches after skipping offset matches
func (q *Query) Limit(offset uint64, count uint64) {
	q.limited = true
	q.offset = offset
	q.count = count
}

// Window - the limit, if one is set
func (q *Query) Window() (offset uint64, count uint64, limited bool) {
	return q.offset, q.count, q.limited
}

// Clauses - copy of the clauses in the order they were added
func (q *Query) Clauses() []Clause {
	return append([]Clause{}, q.clauses...)
}

// Len - number of clauses
func (q *Query) Len() int {
	return len(q.clauses)
}

// Evaluate - true if every clause holds for r
func (q *Query) Evaluate(r Readable) bool {
	for _, c := range q.clauses {
		v, err := r.Get(c.Field)
		if nil != err {
			return false
		}
		if !c.holds(v) {
			return false
		}
	}
	return true
}

// EQ and NE compare strings exactly, the ordering comparators use
// compare
func (c Clause) holds(v string) bool {
	switch c.Comparator {
	case EQ:
		return v == c.Value
	case NE:
		return v != c.Value
	}
	result := compare(v, c.Value)
	switch c.Comparator {
	case GT:
		return result > 0
	case GE:
		return result >= 0
	case LT:
		return result < 0
	case LE:
		return result <= 0
	}
	return false
}

// two integers compare by value, any other pair byte by byte
//
// the choice is made per pair, so a column mixing integers with other
// text has no total order: "9" < "10" and "10" < "9a" but "9a" > "9"
func compare(a string, b string) int {
	x, okA := new(big.Int).SetString(a, 10)
	y, okB := new(big.Int).SetString(b, 10)
	if okA && okB {
		return x.Cmp(y)
	}
	return strings.Compare(a, b)
}
