// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterutil

type side int

const (
	sideA side = iota
	sideB
)

// TwoMergeIterator merges two iterators of possibly different concrete
// types, preferring A's value whenever A and B agree on a key. It is the
// operator the storage coordinator uses to fold the memory-side merge
// (memtable ∪ immutables) over the on-disk side, with memory as A so the
// newest write always wins.
type TwoMergeIterator struct {
	a, b  Iterator
	cmp   CompareFunc
	which side
}

// NewTwoMergeIterator constructs a TwoMergeIterator and runs one
// reconciliation pass before returning, so a merge over two sources that
// already share a leading key is correctly deduplicated from the very first
// read rather than only after the first Next call.
func NewTwoMergeIterator(cmp CompareFunc, a, b Iterator) (*TwoMergeIterator, error) {
	t := &TwoMergeIterator{a: a, b: b, cmp: cmp}
	if err := t.reconcile(); err != nil {
		return nil, err
	}
	return t, nil
}

// reconcile propagates validity when one side is exhausted, otherwise skips
// B past any run of keys equal to A's current key, then picks the side
// holding the lesser key.
func (t *TwoMergeIterator) reconcile() error {
	if !t.a.Valid() || !t.b.Valid() {
		if t.a.Valid() {
			t.which = sideA
		} else {
			t.which = sideB
		}
		return nil
	}

	for t.b.Valid() && t.cmp(t.a.Key(), t.b.Key()) == 0 {
		if err := t.b.Next(); err != nil {
			return err
		}
	}
	if !t.b.Valid() {
		t.which = sideA
		return nil
	}
	if t.cmp(t.a.Key(), t.b.Key()) > 0 {
		t.which = sideB
	} else {
		t.which = sideA
	}
	return nil
}

func (t *TwoMergeIterator) current() Iterator {
	if t.which == sideA {
		return t.a
	}
	return t.b
}

// Key returns the current winning side's key. Only valid when Valid().
func (t *TwoMergeIterator) Key() []byte { return t.current().Key() }

// Value returns the current winning side's value.
func (t *TwoMergeIterator) Value() []byte { return t.current().Value() }

// Valid reports whether the currently-selected side is valid.
func (t *TwoMergeIterator) Valid() bool { return t.current().Valid() }

// Next advances whichever side is currently selected, then reconciles.
func (t *TwoMergeIterator) Next() error {
	if err := t.current().Next(); err != nil {
		return err
	}
	return t.reconcile()
}

var _ Iterator = (*TwoMergeIterator)(nil)
