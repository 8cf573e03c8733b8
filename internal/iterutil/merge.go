// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterutil

import (
	"bytes"
	"container/heap"
)

// CompareFunc orders two keys the way bytes.Compare does.
type CompareFunc func(a, b []byte) int

type mergeItem struct {
	origin int
	it     Iterator
}

// mergeHeap is a min-heap ordered by (key ascending, origin index ascending)
// — ties are broken in favor of the lowest origin index.
type mergeHeap struct {
	items []*mergeItem
	cmp   CompareFunc
}

func (h *mergeHeap) Len() int { return len(h.items) }

func (h *mergeHeap) Less(i, j int) bool {
	return ranksBefore(h.cmp, h.items[i], h.items[j])
}

func (h *mergeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *mergeHeap) Push(x interface{}) { h.items = append(h.items, x.(*mergeItem)) }

func (h *mergeHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

func ranksBefore(cmp CompareFunc, a, b *mergeItem) bool {
	c := cmp(a.it.Key(), b.it.Key())
	if c != 0 {
		return c < 0
	}
	return a.origin < b.origin
}

// MergeIterator performs a heap-ordered k-way merge of iterators of the same
// kind. On a key tie across sources, the source with the smallest origin
// index wins and the others are silently advanced past the tied key.
//
// Error policy: the first error returned by any source's Next invalidates
// the entire merge iterator (Valid becomes false) and is surfaced from the
// MergeIterator's own Next call.
type MergeIterator struct {
	heap    mergeHeap
	current *mergeItem
	err     error
}

// NewMergeIterator constructs a MergeIterator over iters, in the given
// origin-index order (iters[i] has origin index i). Only initially-valid
// iterators are pushed onto the heap.
func NewMergeIterator(cmp CompareFunc, iters ...Iterator) *MergeIterator {
	m := &MergeIterator{heap: mergeHeap{cmp: cmp}}
	for i, it := range iters {
		if it.Valid() {
			heap.Push(&m.heap, &mergeItem{origin: i, it: it})
		}
	}
	if m.heap.Len() > 0 {
		m.current = heap.Pop(&m.heap).(*mergeItem)
	}
	return m
}

// step advances the frontier by exactly one position.
func (m *MergeIterator) step() error {
	if m.current == nil {
		return nil
	}

	if err := m.current.it.Next(); err != nil {
		m.err = err
		m.current = nil
		return err
	}
	if !m.current.it.Valid() {
		if m.heap.Len() == 0 {
			m.current = nil
		} else {
			m.current = heap.Pop(&m.heap).(*mergeItem)
		}
		return nil
	}

	if m.heap.Len() == 0 {
		return nil
	}
	cand := heap.Pop(&m.heap).(*mergeItem)
	if ranksBefore(m.heap.cmp, cand, m.current) {
		m.current, cand = cand, m.current
	}
	heap.Push(&m.heap, cand)
	return nil
}

// Key returns the current front key. Only valid when Valid().
func (m *MergeIterator) Key() []byte {
	return m.current.it.Key()
}

// Value returns the value belonging to whichever source currently owns Key.
func (m *MergeIterator) Value() []byte {
	return m.current.it.Value()
}

// Valid reports whether the merge has a current entry.
func (m *MergeIterator) Valid() bool {
	return m.current != nil && m.err == nil
}

// Err returns the first error observed from a source, if the merge iterator
// was invalidated by one.
func (m *MergeIterator) Err() error {
	return m.err
}

// Next advances past the current key, then keeps stepping while the new
// front still carries the same key — this is the first-writer-wins dedup
// across sources. It assumes each source iterator emits a given key at
// most once.
func (m *MergeIterator) Next() error {
	if !m.Valid() {
		return m.err
	}
	k := append([]byte(nil), m.Key()...)
	if err := m.step(); err != nil {
		return err
	}
	for m.Valid() && bytes.Equal(m.Key(), k) {
		if err := m.step(); err != nil {
			return err
		}
	}
	return nil
}

var _ Iterator = (*MergeIterator)(nil)
