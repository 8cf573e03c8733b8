// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import "github.com/coldcache/lsmkv/block"

// Iterator walks a Table's entries in key order across block boundaries. It
// implements internal/iterutil.Iterator. An Iterator is not safe for
// concurrent use.
type Iterator struct {
	table    *Table
	blockIdx int
	blockIt  *block.Iterator
	err      error
}

// CreateAndSeekToFirst returns an Iterator positioned at table's first
// entry, or already exhausted if table has no blocks.
func CreateAndSeekToFirst(table *Table) (*Iterator, error) {
	it := &Iterator{table: table}
	if table.NumBlocks() == 0 {
		return it, nil
	}
	b, err := table.ReadBlock(0)
	if err != nil {
		return nil, err
	}
	it.blockIt = block.CreateAndSeekToFirst(b)
	return it, nil
}

// CreateAndSeekToKey returns an Iterator positioned at the first entry
// whose key is >= key, or exhausted if none is. A block-level seek that
// lands past the end of its candidate block advances to the next block and
// retries, since key may exceed every key in the block FindBlockIdx chose
// but still be present further on.
func CreateAndSeekToKey(table *Table, key []byte) (*Iterator, error) {
	it := &Iterator{table: table}
	if table.NumBlocks() == 0 {
		return it, nil
	}

	idx := table.FindBlockIdx(key)
	for {
		b, err := table.ReadBlock(idx)
		if err != nil {
			return nil, err
		}
		it.blockIdx = idx
		it.blockIt = block.CreateAndSeekToKey(b, key)
		if it.blockIt.Valid() {
			return it, nil
		}
		idx++
		if idx >= table.NumBlocks() {
			return it, nil
		}
	}
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool {
	return it.err == nil && it.blockIt != nil && it.blockIt.Valid()
}

// Key returns the current key. Only valid when Valid().
func (it *Iterator) Key() []byte {
	return it.blockIt.Key()
}

// Value returns the current value. Only valid when Valid().
func (it *Iterator) Value() []byte {
	return it.blockIt.Value()
}

// Next advances to the next entry, crossing into the next block when the
// current one is exhausted.
func (it *Iterator) Next() error {
	if it.err != nil || it.blockIt == nil {
		return it.err
	}
	if err := it.blockIt.Next(); err != nil {
		it.err = err
		return err
	}
	if it.blockIt.Valid() {
		return nil
	}
	if it.blockIdx+1 >= it.table.NumBlocks() {
		return nil
	}
	it.blockIdx++
	b, err := it.table.ReadBlock(it.blockIdx)
	if err != nil {
		it.err = err
		return err
	}
	it.blockIt = block.CreateAndSeekToFirst(b)
	return nil
}
