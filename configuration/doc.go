// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.
//
// the file must return a table, e.g.
//
//   local M = {}
//   M.data_directory = "."
//   M.database = { directory = "data", name = "tables.leveldb" }
//   M.logging = { file = "tablectl.log", levels = { DEFAULT = "info" } }
//   M.tables = {
//     {
//       name = "t_test",
//       address = "0x420f853b49838bd3e9466c85a4cc3428c960dde2",
//       key = "id",
//       fields = { "id", "name", "status" },
//       authorized = { "0x000000000000000000000000000000000000000a" },
//     },
//   }
//   return M
package configuration
