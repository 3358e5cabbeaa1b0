// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type ReferenceError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrCallDataTruncated       = LengthError("call data truncated")
	ErrConfigurationNotTable   = InvalidError("configuration did not return a table")
	ErrContextClosed           = ProcessError("execution context closed")
	ErrDuplicateField          = ExistsError("duplicate field")
	ErrDuplicateTable          = ExistsError("duplicate table")
	ErrFieldNotFound           = NotFoundError("field not found")
	ErrIncompatibleDatabase    = InvalidError("incompatible database version")
	ErrInvalidAssignment       = InvalidError("assignment is not field=value")
	ErrInvalidCallData         = InvalidError("invalid call data")
	ErrInvalidComparator       = InvalidError("invalid comparator")
	ErrInvalidIdentityLength   = LengthError("invalid identity length")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidDigestLength     = LengthError("invalid digest length")
	ErrInvalidReference        = ReferenceError("invalid reference")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrInvalidTableAddress     = InvalidError("table address is in the handle range")
	ErrKeyNotAField            = NotFoundError("primary key is not a field")
	ErrKeyTooLong              = LengthError("key too long")
	ErrMissingSchema           = InvalidError("table definition has no schema")
	ErrNegativeValue           = InvalidError("negative value")
	ErrNilRecorder             = InvalidError("nil change recorder")
	ErrNoFields                = InvalidError("field list is empty")
	ErrNotAnInteger            = InvalidError("value is not an integer")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrPermissionDenied        = PermissionError("permission denied")
	ErrReferenceTypeMismatch   = ReferenceError("reference type mismatch")
	ErrRowNotFound             = NotFoundError("row not found")
	ErrStorageReadOnly         = ProcessError("storage is read only")
	ErrTableNotFound           = NotFoundError("table not found")
	ErrTransactionAlreadyInUse = ProcessError("transaction already in use")
	ErrUnknownFunction         = InvalidError("unknown function selector")
	ErrValueTooLong            = LengthError("value too long")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e ReferenceError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrReference(e error) bool  { _, ok := e.(ReferenceError); return ok }
