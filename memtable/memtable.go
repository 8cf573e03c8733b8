// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package memtable

import (
	"sync"

	"github.com/coldcache/lsmkv/internal/iterutil"
)

// Memtable is an ordered in-memory key→value mapping exposing get, put,
// and a range-scan iterator. Implementations must support concurrent
// Get/Put/NewIter calls.
type Memtable interface {
	Get(key []byte) ([]byte, bool)
	Put(key, value []byte)
	// NewIter returns an iterator over [lower, upper): lower == nil means
	// unbounded below, upper == nil means unbounded above.
	NewIter(lower, upper []byte) iterutil.Iterator
}

// SkipListMemtable is the reference Memtable implementation: a skip list
// guarded by a single RWMutex. Puts and Gets take the mutex directly;
// NewIter takes a read lock just long enough to copy out the requested key
// range, so the returned iterator is a point-in-time snapshot immune to
// concurrent mutation of the live skip list.
type SkipListMemtable struct {
	mu sync.RWMutex
	sl *skipList
}

// New returns an empty SkipListMemtable ordered by cmp.
func New(cmp func(a, b []byte) int) *SkipListMemtable {
	return &SkipListMemtable{sl: newSkipList(cmp)}
}

// Get returns the value stored for key, if present. A present empty value
// is returned as-is (ok == true, value == nil) — it is the caller's job to
// interpret that as a tombstone.
func (m *SkipListMemtable) Get(key []byte) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sl.get(key)
}

// Put inserts key/value, forbidding neither an empty key nor an empty
// value: the tombstone path (empty value) is a valid write at this layer.
// Callers enforcing an empty-key restriction do so above this interface,
// in the storage coordinator.
func (m *SkipListMemtable) Put(key, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sl.put(key, value)
}

// NewIter returns a snapshot iterator over [lower, upper).
func (m *SkipListMemtable) NewIter(lower, upper []byte) iterutil.Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n *node
	if lower == nil {
		n = m.sl.first()
	} else {
		n = m.sl.seekGE(lower)
	}

	var keys, values [][]byte
	for n != nil {
		if upper != nil && m.sl.cmp(n.key, upper) >= 0 {
			break
		}
		keys = append(keys, n.key)
		values = append(values, n.value)
		n = n.forward[0]
	}

	return &sliceIterator{keys: keys, values: values}
}

// sliceIterator is the concrete type NewIter returns: a snapshot copy of
// a key range, walked in order.
type sliceIterator struct {
	keys, values [][]byte
	idx          int
}

func (it *sliceIterator) Key() []byte   { return it.keys[it.idx] }
func (it *sliceIterator) Value() []byte { return it.values[it.idx] }
func (it *sliceIterator) Valid() bool   { return it.idx < len(it.keys) }
func (it *sliceIterator) Next() error {
	if it.idx < len(it.keys) {
		it.idx++
	}
	return nil
}

var (
	_ Memtable          = (*SkipListMemtable)(nil)
	_ iterutil.Iterator = (*sliceIterator)(nil)
)
