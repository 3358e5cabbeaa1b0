// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - per execution context object handles
//
// contract code cannot hold Go pointers, so rows and queries created
// during a call sequence are stored here and referred to by a handle
// that travels over the calling convention as a ledger address.
//
// Notes:
// 1. handle values start at FirstHandle, below that the address space
//    belongs to real ledger contracts
// 2. handles are allocated from a counter and never reused while the
//    registry lives, so a stale handle can only miss, never alias
// 3. every entry carries its kind; a lookup for the wrong kind fails
//    with fault.ErrReferenceTypeMismatch
// 4. a registry belongs to exactly one execution context and is not
//    safe for concurrent use
package registry
