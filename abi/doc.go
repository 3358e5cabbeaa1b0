// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package abi - the contract calling convention
//
// call data is a four byte function selector followed by the
// arguments; results are the encoded values with no selector.
//
// Notes:
// 1. selector  = first 4 bytes of Keccak-256(signature), signature as
//                "name(type,type)" with no spaces
// 2. word      = 32 bytes, integers big endian, addresses right
//                aligned, booleans 0 or 1
// 3. static    = uint256, int256, address, bool, bytes32: one head word
// 4. dynamic   = string, address[]: the head word is the byte offset
//                of the tail from the start of the arguments; the tail
//                is a length word followed by the data padded to a
//                whole number of words
package abi
