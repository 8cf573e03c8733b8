// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds the small set of types shared by every package in the
// module: the error-kind taxonomy, the logging interface injected through
// Options, and the key comparator.
package base

import (
	"github.com/cockroachdb/errors"
)

// ErrCorrupt marks an error as indicating that some on-disk layout violated
// one of the format invariants (a short trailer, an inconsistent meta
// region, an offset that runs past the end of a block). Use errors.Is to
// test for it; use CorruptionErrorf to construct one.
var ErrCorrupt = errors.New("lsmkv: corrupt")

// ErrIO marks an error as originating from the underlying FileObject.
var ErrIO = errors.New("lsmkv: io")

// ErrInvalidArgument marks an error as a caller mistake (an empty key, or an
// empty value passed to Put) that left no state changed.
var ErrInvalidArgument = errors.New("lsmkv: invalid argument")

// CorruptionErrorf builds an error marked with ErrCorrupt.
func CorruptionErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrCorrupt)
}

// IOErrorf builds an error marked with ErrIO.
func IOErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrIO)
}

// WrapIO wraps an error returned by a FileObject and marks it with ErrIO. It
// returns nil if err is nil.
func WrapIO(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, format, args...), ErrIO)
}

// InvalidArgumentErrorf builds an error marked with ErrInvalidArgument.
func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

// IsCorrupt reports whether err (or something it wraps) is a corruption error.
func IsCorrupt(err error) bool { return errors.Is(err, ErrCorrupt) }

// IsIO reports whether err (or something it wraps) is an I/O error.
func IsIO(err error) bool { return errors.Is(err, ErrIO) }

// IsInvalidArgument reports whether err (or something it wraps) is an
// invalid-argument error.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
