// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// Kind - the category reported to a caller when a contract call fails
type Kind int

// call failure kinds
const (
	KindNone Kind = iota
	KindPermissionDenied
	KindKeyTooLong
	KindInvalidReference
	KindFieldNotFound
	KindDuplicateField
	KindInvalidCall
	KindInternal
)

var kindNames = map[Kind]string{
	KindNone:             "None",
	KindPermissionDenied: "PermissionDenied",
	KindKeyTooLong:       "KeyTooLong",
	KindInvalidReference: "InvalidReference",
	KindFieldNotFound:    "FieldNotFound",
	KindDuplicateField:   "DuplicateField",
	KindInvalidCall:      "InvalidCall",
	KindInternal:         "Internal",
}

// String - name of a kind
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// KindOf - map an error to the kind of call failure it represents
//
// a nil error is KindNone, anything not raised by this module is
// KindInternal
func KindOf(err error) Kind {
	switch err {
	case nil:
		return KindNone
	case ErrPermissionDenied:
		return KindPermissionDenied
	case ErrKeyTooLong:
		return KindKeyTooLong
	case ErrFieldNotFound, ErrKeyNotAField:
		return KindFieldNotFound
	case ErrDuplicateField:
		return KindDuplicateField
	}

	switch {
	case IsErrPermission(err):
		return KindPermissionDenied
	case IsErrReference(err):
		return KindInvalidReference
	case IsErrInvalid(err), IsErrLength(err):
		return KindInvalidCall
	}
	return KindInternal
}
