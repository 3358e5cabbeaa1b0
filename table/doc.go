// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package table - the live row set of one table in one execution context
//
// rows are kept in a B-tree ordered by key bytes; that order is the
// canonical order for selection and for the content digest.
//
// Every mutation is reported to the Recorder passed to New before the
// mutating call returns.  The recorder belongs to the surrounding
// engine, which decides whether the recorded changes are committed or
// reverted; the table itself keeps no history.
//
// Digest:
//
//   leaf(row) = SHA3-256(Varint64(len key) ++ key ++ PackValues(fields))
//   digest    = merkle root of leaf(row) for rows in key order
//
// where PackValues lists the assigned fields in byte-lexicographic
// order of field name (see util.PackValues).  An empty table digests
// to SHA3-256 of no data.
package table
