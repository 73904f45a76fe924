// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package base

import (
	"github.com/cockroachdb/errors"
)

// Sentinel error kinds. Every error surfaced by the storage-engine core is
// either one of these sentinels or wraps one, so callers can always
// recover the kind with errors.Is.
var (
	// ErrNotFound is returned when a lookup does not find a key.
	ErrNotFound = errors.New("flint: not found")
	// ErrCorruption is returned for CRC mismatches, malformed varints,
	// truncated records, bad footer magics, and unexpected record types.
	ErrCorruption = errors.New("flint: corruption")
	// ErrInvalidArgument is returned for out-of-range indexes, bad
	// configuration values, and non-monotonic TableBuilder.Add calls.
	ErrInvalidArgument = errors.New("flint: invalid argument")
	// ErrIOError wraps a collaborator I/O failure.
	ErrIOError = errors.New("flint: I/O error")
	// ErrNotSupported is returned for a feature not compiled in (e.g. an
	// unrecognized compression scheme).
	ErrNotSupported = errors.New("flint: not supported")
	// ErrBadRecord is returned when a logical WAL record cannot be
	// reassembled from its fragments.
	ErrBadRecord = errors.New("flint: bad WAL record")
)

// CorruptionErrorf wraps ErrCorruption with a redaction-safe formatted
// message.
func CorruptionErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorruption, format, args...)
}

// IOErrorf wraps ErrIOError with a formatted message.
func IOErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIOError, format, args...)
}

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// BadRecordf wraps ErrBadRecord with a formatted message.
func BadRecordf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrBadRecord, format, args...)
}

// NotSupportedf wraps ErrNotSupported with a formatted message.
func NotSupportedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotSupported, format, args...)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCorruption reports whether err is (or wraps) ErrCorruption.
func IsCorruption(err error) bool {
	return errors.Is(err, ErrCorruption)
}
