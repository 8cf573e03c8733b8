// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterutil

// Fused wraps an Iterator whose values may include tombstones (empty
// values, per the engine's data model) and presents a stream with those
// tombstones hidden. It also makes repeated Next calls past exhaustion a
// safe no-op instead of implementation-defined behavior. Storage.Scan
// returns a *Fused.
type Fused struct {
	inner Iterator
	err   error
}

// NewFused wraps inner, skipping forward past any leading tombstone so the
// result is immediately positioned at a visible entry (or exhausted).
func NewFused(inner Iterator) *Fused {
	f := &Fused{inner: inner}
	f.skipTombstones()
	return f
}

func (f *Fused) skipTombstones() {
	for f.err == nil && f.inner.Valid() && len(f.inner.Value()) == 0 {
		f.err = f.inner.Next()
	}
}

// Key returns the current key. Only valid when Valid().
func (f *Fused) Key() []byte {
	return f.inner.Key()
}

// Value returns the current value. Tombstones are never observed here:
// Valid is false whenever the next visible entry doesn't exist.
func (f *Fused) Value() []byte {
	return f.inner.Value()
}

// Valid reports whether the fused stream has a current, non-tombstone entry.
func (f *Fused) Valid() bool {
	return f.err == nil && f.inner.Valid()
}

// Next advances past the current entry and past any run of tombstones that
// follows it. Calling Next once already exhausted is a safe no-op.
func (f *Fused) Next() error {
	if !f.Valid() {
		return f.err
	}
	if err := f.inner.Next(); err != nil {
		f.err = err
		return err
	}
	f.skipTombstones()
	return f.err
}

var _ Iterator = (*Fused)(nil)
