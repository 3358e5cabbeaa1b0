// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - SHA3-256 digests and merkle roots
//
// table content digests are computed as the merkle root of one leaf
// digest per row, taken in canonical key order, so two replicas that
// hold the same rows always agree on the digest whatever order the
// rows were written in
package merkle
