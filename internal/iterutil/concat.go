// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterutil

// Concat chains a sequence of iterators end to end, advancing to the next
// one as each exhausts. It assumes the caller has already arranged the
// sub-iterators in key order with non-overlapping ranges — exactly the
// shape of a single compacted level (L1..Ln), where SSTs never overlap —
// so no merging across sub-iterators is needed, only sequencing.
type Concat struct {
	iters []Iterator
	idx   int
	err   error
}

// NewConcat returns a Concat over iters, skipping any that are already
// exhausted.
func NewConcat(iters ...Iterator) *Concat {
	c := &Concat{iters: iters}
	c.skipExhausted()
	return c
}

func (c *Concat) skipExhausted() {
	for c.idx < len(c.iters) && !c.iters[c.idx].Valid() {
		c.idx++
	}
}

// Key returns the current key. Only valid when Valid().
func (c *Concat) Key() []byte { return c.iters[c.idx].Key() }

// Value returns the current value. Only valid when Valid().
func (c *Concat) Value() []byte { return c.iters[c.idx].Value() }

// Valid reports whether any sub-iterator still has an entry.
func (c *Concat) Valid() bool {
	return c.err == nil && c.idx < len(c.iters)
}

// Next advances the current sub-iterator, moving to the next one in
// sequence once it exhausts.
func (c *Concat) Next() error {
	if !c.Valid() {
		return c.err
	}
	if err := c.iters[c.idx].Next(); err != nil {
		c.err = err
		return err
	}
	c.skipExhausted()
	return nil
}

var _ Iterator = (*Concat)(nil)
