// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contract - call surfaces of tables, rows and queries
//
// a table contract is addressed by the table's catalog address; the
// rows and queries it hands out are addressed by registry handles and
// served by CallRow and CallQuery
//
// all calls arrive as a four byte selector followed by abi encoded
// arguments and return abi encoded results.  Errors are returned
// unchanged, the execution context converts them to a failed call
package contract
