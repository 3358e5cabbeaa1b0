// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk table store
//
// This maintains a LevelDB database holding the committed rows of
// every table.  All rows share a single prefix byte and are grouped by
// table name so one table can be scanned or dropped as a range.
//
// Notes:
// 1. ++           = concatenation of byte data
// 2. table        = table name, at most 255 bytes
// 3. key          = row key, at most 255 bytes
// 4. values       = Varint64(count) ++ [ field(varint length) ++ value(varint length) ]
//                   fields in byte-lexicographic order
//
// Version:
//
//   0x00 ++ "VERSION"          - database version
//                                data: big endian uint32
//
// Rows:
//
//   R ++ uint8(len table) ++ table ++ key
//                              - committed row
//                                data: values
//
// Changes are collected in a leveldb.Batch and written as a single
// atomic update on Commit; until then a pending cache lets the open
// transaction read its own writes
package storage
