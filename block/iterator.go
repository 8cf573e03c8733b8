// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"bytes"
	"sort"
)

// Iterator walks the entries of a Block in key order. The zero value is not
// usable; construct one with CreateAndSeekToFirst or CreateAndSeekToKey. An
// Iterator is not safe for concurrent use, but the underlying Block it reads
// from may be shared across many Iterators.
type Iterator struct {
	block *Block
	idx   int // in [0, block.Len()]; block.Len() means exhausted
}

// CreateAndSeekToFirst returns an Iterator positioned at the block's first
// entry (or already exhausted, if the block is empty).
func CreateAndSeekToFirst(b *Block) *Iterator {
	return &Iterator{block: b, idx: 0}
}

// CreateAndSeekToKey returns an Iterator positioned at the first entry whose
// key is >= key (or exhausted, if none is).
func CreateAndSeekToKey(b *Block, key []byte) *Iterator {
	it := &Iterator{block: b}
	it.SeekGE(key)
	return it
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool {
	return it.idx < it.block.Len()
}

// Key returns the key at the current position. Only valid when Valid().
// The returned slice borrows from the block and must not be retained past
// the block's own lifetime.
func (it *Iterator) Key() []byte {
	key, _ := it.block.entryAt(it.block.offsets[it.idx])
	return key
}

// Value returns the value at the current position. Only valid when Valid().
func (it *Iterator) Value() []byte {
	_, value := it.block.entryAt(it.block.offsets[it.idx])
	return value
}

// Next advances to the next entry. Calling Next when already exhausted
// leaves the iterator exhausted; it is never an error.
func (it *Iterator) Next() error {
	if it.idx < it.block.Len() {
		it.idx++
	}
	return nil
}

// SeekFirst repositions the iterator at the block's first entry.
func (it *Iterator) SeekFirst() {
	it.idx = 0
}

// SeekGE repositions the iterator at the least-indexed entry whose key is
// >= key, via binary search over the block's offset index.
func (it *Iterator) SeekGE(key []byte) {
	n := it.block.Len()
	it.idx = sort.Search(n, func(i int) bool {
		k, _ := it.block.entryAt(it.block.offsets[i])
		return bytes.Compare(k, key) >= 0
	})
}
