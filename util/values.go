// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"sort"

	"github.com/bitmark-inc/ledgertable/fault"
)

// SortedNames - the keys of a field map in byte-lexicographic order
func SortedNames(values map[string]string) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PackValues - canonical encoding of a field map
//
// Varint64(count) followed by (field, value) length prefixed pairs
// with fields in byte-lexicographic order, so equal maps always pack
// to equal bytes
func PackValues(values map[string]string) []byte {
	buffer := AppendVarint64(nil, uint64(len(values)))
	for _, name := range SortedNames(values) {
		buffer = AppendString(buffer, name)
		buffer = AppendString(buffer, values[name])
	}
	return buffer
}

// UnpackValues - reverse of PackValues
func UnpackValues(buffer []byte) (map[string]string, error) {
	count, n := FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrCallDataTruncated
	}
	buffer = buffer[n:]

	// each pair takes at least two bytes
	if count > uint64(len(buffer)/2) {
		return nil, fault.ErrCallDataTruncated
	}

	values := make(map[string]string, count)
	for i := uint64(0); i < count; i += 1 {
		name, n := ReadBytes(buffer)
		if 0 == n {
			return nil, fault.ErrCallDataTruncated
		}
		buffer = buffer[n:]

		value, n := ReadBytes(buffer)
		if 0 == n {
			return nil, fault.ErrCallDataTruncated
		}
		buffer = buffer[n:]

		values[string(name)] = string(value)
	}
	if 0 != len(buffer) {
		return nil, fault.ErrInvalidCallData
	}
	return values, nil
}
