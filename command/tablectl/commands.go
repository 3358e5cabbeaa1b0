// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertable/abi"
	"github.com/bitmark-inc/ledgertable/executive"
	"github.com/bitmark-inc/ledgertable/fault"
	"github.com/bitmark-inc/ledgertable/identity"
)

type session struct {
	engine *executive.Engine
	caller identity.Identity
	quiet  bool
	log    *logger.L
}

type command struct {
	arguments   string
	description string
	minimum     int
	writes      bool
	run         func(s *session, arguments []string) error
}

var commands = map[string]command{
	"tables": {
		arguments:   "",
		description: "list the configured tables",
		run:         listTables,
	},
	"hash": {
		arguments:   "TABLE",
		description: "print the content hash of a table",
		minimum:     1,
		run:         hashTable,
	},
	"dump": {
		arguments:   "TABLE",
		description: "print every row of a table",
		minimum:     1,
		run:         dumpTable,
	},
	"get": {
		arguments:   "TABLE KEY",
		description: "print one row",
		minimum:     2,
		run:         getRow,
	},
	"set": {
		arguments:   "TABLE KEY FIELD=VALUE…",
		description: "insert or replace one row",
		minimum:     2,
		writes:      true,
		run:         setRow,
	},
	"remove": {
		arguments:   "TABLE KEY",
		description: "delete one row",
		minimum:     2,
		writes:      true,
		run:         removeRow,
	},
	"clear": {
		arguments:   "TABLE",
		description: "delete every row of a table",
		minimum:     1,
		writes:      true,
		run:         clearTable,
	},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func listTables(s *session, arguments []string) error {
	for _, d := range s.engine.Definitions() {
		fmt.Printf("%s  %s  key: %s  fields: %s\n", d.Address, d.Schema.Name(), d.Schema.PrimaryKeyField(), strings.Join(d.Schema.Fields(), ","))
		if !s.quiet {
			for _, a := range d.Schema.Authorized() {
				fmt.Printf("    authorized: %s\n", a)
			}
		}
	}
	return nil
}

// call through a context, returning the decoded output
func call(c *executive.Context, address identity.Identity, signature string, e *abi.Encoder) (*abi.Decoder, error) {
	input := abi.Pack(signature, e)
	outcome := c.Call(address, input)
	if outcome.Failed() {
		return nil, outcome.Err
	}
	return abi.NewDecoder(outcome.Output), nil
}

func lookup(s *session, name string) (identity.Identity, error) {
	address, ok := s.engine.Lookup(name)
	if !ok {
		return identity.Zero, fault.ErrTableNotFound
	}
	return address, nil
}

func hashTable(s *session, arguments []string) error {
	address, err := lookup(s, arguments[0])
	if nil != err {
		return err
	}
	c := s.engine.Begin(s.caller)
	defer c.Rollback()

	d, err := call(c, address, "hash()", nil)
	if nil != err {
		return err
	}
	digest, err := d.Bytes32()
	if nil != err {
		return err
	}
	fmt.Printf("%s\n", hex.EncodeToString(digest[:]))
	return nil
}

func dumpTable(s *session, arguments []string) error {
	address, err := lookup(s, arguments[0])
	if nil != err {
		return err
	}
	c := s.engine.Begin(s.caller)
	defer c.Rollback()

	d, err := call(c, address, "newCondition()", nil)
	if nil != err {
		return err
	}
	condition, err := d.Address()
	if nil != err {
		return err
	}
	d, err = call(c, address, "select(address)", abi.NewEncoder().Address(condition))
	if nil != err {
		return err
	}
	rows, err := d.AddressArray()
	if nil != err {
		return err
	}
	fields := fieldsOf(s, address)
	for _, r := range rows {
		if err := printRow(c, fields, r); nil != err {
			return err
		}
	}
	if !s.quiet {
		fmt.Printf("rows: %d\n", len(rows))
	}
	return nil
}

func getRow(s *session, arguments []string) error {
	address, err := lookup(s, arguments[0])
	if nil != err {
		return err
	}
	c := s.engine.Begin(s.caller)
	defer c.Rollback()

	d, err := call(c, address, "get(string)", abi.NewEncoder().String(arguments[1]))
	if nil != err {
		return err
	}
	found, err := d.Bool()
	if nil != err {
		return err
	}
	if !found {
		return fault.ErrRowNotFound
	}
	r, err := d.Address()
	if nil != err {
		return err
	}
	return printRow(c, fieldsOf(s, address), r)
}

func setRow(s *session, arguments []string) error {
	address, err := lookup(s, arguments[0])
	if nil != err {
		return err
	}
	c := s.engine.Begin(s.caller)
	defer c.Rollback()

	d, err := call(c, address, "newEntry()", nil)
	if nil != err {
		return err
	}
	r, err := d.Address()
	if nil != err {
		return err
	}
	for _, assignment := range arguments[2:] {
		n := strings.IndexByte(assignment, '=')
		if n <= 0 {
			return fault.ErrInvalidAssignment
		}
		e := abi.NewEncoder().String(assignment[:n]).String(assignment[n+1:])
		if _, err := call(c, r, "set(string,string)", e); nil != err {
			return err
		}
	}
	d, err = call(c, address, "set(string,address)", abi.NewEncoder().String(arguments[1]).Address(r))
	if nil != err {
		return err
	}
	count, err := d.Uint64()
	if nil != err {
		return err
	}
	if err := c.Commit(); nil != err {
		return err
	}
	s.log.Infof("set: %s/%q  changed: %d", arguments[0], arguments[1], count)
	if !s.quiet {
		fmt.Printf("changed: %d\n", count)
	}
	return nil
}

func removeRow(s *session, arguments []string) error {
	address, err := lookup(s, arguments[0])
	if nil != err {
		return err
	}
	c := s.engine.Begin(s.caller)
	defer c.Rollback()

	d, err := call(c, address, "remove(string)", abi.NewEncoder().String(arguments[1]))
	if nil != err {
		return err
	}
	count, err := d.Uint64()
	if nil != err {
		return err
	}
	if err := c.Commit(); nil != err {
		return err
	}
	s.log.Infof("remove: %s/%q  removed: %d", arguments[0], arguments[1], count)
	if !s.quiet {
		fmt.Printf("removed: %d\n", count)
	}
	return nil
}

func clearTable(s *session, arguments []string) error {
	address, err := lookup(s, arguments[0])
	if nil != err {
		return err
	}
	c := s.engine.Begin(s.caller)
	defer c.Rollback()

	if _, err := call(c, address, "clear()", nil); nil != err {
		return err
	}
	if err := c.Commit(); nil != err {
		return err
	}
	s.log.Infof("clear: %s", arguments[0])
	return nil
}

func fieldsOf(s *session, address identity.Identity) []string {
	for _, d := range s.engine.Definitions() {
		if d.Address == address {
			return d.Schema.Fields()
		}
	}
	return nil
}

// print the fields of a row handle in schema order
func printRow(c *executive.Context, fields []string, r identity.Identity) error {
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		d, err := call(c, r, "getString(string)", abi.NewEncoder().String(field))
		if nil != err {
			return err
		}
		value, err := d.String()
		if nil != err {
			return err
		}
		values = append(values, fmt.Sprintf("%s=%q", field, value))
	}
	fmt.Printf("%s\n", strings.Join(values, " "))
	return nil
}
