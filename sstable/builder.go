// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"encoding/binary"
	"sort"

	"github.com/coldcache/lsmkv/block"
	"github.com/coldcache/lsmkv/cache"
	"github.com/coldcache/lsmkv/vfs"
)

// slot is one entry of the builder's ordered first_key → block index, kept
// as a slice sorted by firstKey rather than a tree: the builder's slot
// count tracks the number of blocks a table will end up with, which stays
// small relative to the entry count.
type slot struct {
	firstKey []byte
	b        *block.Builder
}

// Builder streams key/value pairs into a growing set of block.Builders,
// splitting a block when it overflows, and later drains them in ascending
// first-key order to produce a Table file. Builder accepts keys in any
// order: a key below every tracked slot's firstKey lowers that slot's
// recorded firstKey to match, so BlockMeta always reflects each block's
// actual least key regardless of insertion order. A Builder is not safe for
// concurrent use.
type Builder struct {
	cmp       func(a, b []byte) int
	blockSize int
	slots     []*slot
}

// NewBuilder returns a Builder that targets blockSize bytes per block,
// ordering keys with cmp.
func NewBuilder(blockSize int, cmp func(a, b []byte) int) *Builder {
	return &Builder{cmp: cmp, blockSize: blockSize}
}

// slotIdx returns the index of the slot with the greatest firstKey <= key,
// or -1 if every slot's firstKey is greater than key.
func (b *Builder) slotIdx(key []byte) int {
	i := sort.Search(len(b.slots), func(i int) bool {
		return b.cmp(b.slots[i].firstKey, key) > 0
	})
	return i - 1
}

// insertSlot inserts s into b.slots, keeping the slice sorted by firstKey.
func (b *Builder) insertSlot(s *slot) {
	i := sort.Search(len(b.slots), func(i int) bool {
		return b.cmp(b.slots[i].firstKey, s.firstKey) > 0
	})
	b.slots = append(b.slots, nil)
	copy(b.slots[i+1:], b.slots[i:])
	b.slots[i] = s
}

// Add appends (key, value) to the table under construction: locate the
// target block (exact first-key match, else the block whose first key is
// the greatest at-or-below key, else the leftmost block), try to add in
// place, and split on overflow.
func (b *Builder) Add(key, value []byte) {
	if len(b.slots) == 0 {
		bb := block.NewBuilder(b.blockSize)
		bb.Add(key, value)
		b.slots = append(b.slots, &slot{firstKey: append([]byte(nil), key...), b: bb})
		return
	}

	idx := b.slotIdx(key)
	belowMin := idx < 0
	if belowMin {
		idx = 0
	}
	target := b.slots[idx]

	if target.b.Add(key, value) {
		if belowMin {
			target.firstKey = append([]byte(nil), key...)
		}
		return
	}

	var splitKey []byte
	var rhs *block.Builder
	if target.b.Len() == 1 {
		rhs = block.NewBuilder(b.blockSize)
		splitKey = append([]byte(nil), key...)
	} else {
		splitKey, rhs = target.b.Split()
	}

	if b.cmp(key, splitKey) >= 0 {
		if !rhs.Add(key, value) {
			panic("sstable: fresh split block rejected an entry it must accept")
		}
	} else {
		if !target.b.Add(key, value) {
			panic("sstable: post-split block rejected an entry it must accept")
		}
		if belowMin {
			target.firstKey = append([]byte(nil), key...)
		}
	}

	b.insertSlot(&slot{firstKey: splitKey, b: rhs})
}

// EstimatedSize returns the sum of the tracked blocks' current sizes.
func (b *Builder) EstimatedSize() int {
	total := 0
	for _, s := range b.slots {
		total += s.b.Size()
	}
	return total
}

// Build drains the ordered slots in ascending first-key order, serializing
// each block and recording its BlockMeta, then appends the encoded meta
// region and trailer, writes the whole buffer through vfs.Create, and
// opens the resulting Table.
func (b *Builder) Build(id uint64, path string, c cache.Cache) (*Table, error) {
	var metas []BlockMeta
	var data []byte
	size := uint32(0)

	for _, s := range b.slots {
		metas = append(metas, BlockMeta{Offset: size, FirstKey: s.firstKey})
		encoded := s.b.Build().Bytes()
		data = append(data, encoded...)
		size += uint32(len(encoded))
	}

	metaOffset := size
	data = append(data, encodeMetas(metas)...)

	var trailer [trailerSize]byte
	binary.NativeEndian.PutUint32(trailer[:], metaOffset)
	data = append(data, trailer[:]...)

	file, err := vfs.Create(path, data)
	if err != nil {
		return nil, err
	}

	return &Table{
		ID:         id,
		file:       file,
		cmp:        b.cmp,
		meta:       metas,
		metaOffset: metaOffset,
		cache:      c,
	}, nil
}
