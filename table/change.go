// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
)

// ChangeKind - type of mutation
type ChangeKind int

// mutation types
const (
	Insert ChangeKind = iota
	Update
	Remove
	Clear
)

// String - kind name
func (k ChangeKind) String() string {
	switch k {
	case Insert:
		return "Insert"
	case Update:
		return "Update"
	case Remove:
		return "Remove"
	case Clear:
		return "Clear"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Entry - a key and its field values
type Entry struct {
	Key    string
	Values map[string]string
}

// Change - one recorded mutation
//
// Prior holds the row before an Update or Remove (nil for Insert);
// PriorRows holds every row present before a Clear
type Change struct {
	Kind      ChangeKind
	Table     string
	Key       string
	Prior     map[string]string
	PriorRows []Entry
}

// Recorder - receives changes as they happen
type Recorder interface {
	Record(Change)
}

// RecorderFunc - adapt a function to a Recorder
type RecorderFunc func(Change)

// Record - call f
func (f RecorderFunc) Record(c Change) {
	f(c)
}

// Discard - a recorder that drops everything
var Discard Recorder = RecorderFunc(func(Change) {})
