// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"encoding/binary"
	"sort"

	"github.com/coldcache/lsmkv/block"
	"github.com/coldcache/lsmkv/cache"
	"github.com/coldcache/lsmkv/internal/base"
	"github.com/coldcache/lsmkv/vfs"
)

// Table is an immutable, open sorted-string table: a file handle, the
// decoded meta index, and (optionally) the block cache shared across
// tables. A Table is safe for concurrent reads by many goroutines.
type Table struct {
	ID   uint64
	file vfs.File
	cmp  func(a, b []byte) int
	meta []BlockMeta
	// metaOffset is the trailer value: the byte offset where the meta
	// region begins, i.e. one past the last data block.
	metaOffset uint32
	cache      cache.Cache
}

// Open reads file's trailer and meta region and returns a ready-to-query
// Table. cache may be nil, in which case reads always go to file. Open
// fails with a base.ErrCorrupt-marked error when the trailer is truncated
// or any meta record overruns the file.
func Open(file vfs.File, id uint64, cmp func(a, b []byte) int, c cache.Cache) (*Table, error) {
	size := file.Size()
	if size < trailerSize {
		return nil, base.CorruptionErrorf("sstable: file of %d bytes is shorter than the %d-byte trailer", size, trailerSize)
	}
	trailer, err := file.ReadAt(size-trailerSize, trailerSize)
	if err != nil {
		return nil, err
	}
	metaOffset := binary.NativeEndian.Uint32(trailer)
	if int64(metaOffset) > size-trailerSize {
		return nil, base.CorruptionErrorf("sstable: meta offset %d is past the %d-byte file", metaOffset, size)
	}

	metaBytes, err := file.ReadAt(int64(metaOffset), size-trailerSize-int64(metaOffset))
	if err != nil {
		return nil, err
	}
	metas, err := decodeMetas(metaBytes)
	if err != nil {
		return nil, err
	}

	return &Table{
		ID:         id,
		file:       file,
		cmp:        cmp,
		meta:       metas,
		metaOffset: metaOffset,
		cache:      c,
	}, nil
}

// NumBlocks returns the number of data blocks in the table.
func (t *Table) NumBlocks() int {
	return len(t.meta)
}

// FirstKey returns the first key of the table as a whole, i.e. the first
// key of its first block.
func (t *Table) FirstKey() []byte {
	return t.meta[0].FirstKey
}

// ReadBlock returns the decoded block at index i, consulting and
// populating the shared block cache (if any) first.
func (t *Table) ReadBlock(i int) (*block.Block, error) {
	var key cache.Key
	if t.cache != nil {
		key = cache.Key{TableID: t.ID, BlockIndex: i}
		if b, ok := t.cache.Get(key); ok {
			return b, nil
		}
	}

	start := int64(t.meta[i].Offset)
	var end int64
	if i+1 < len(t.meta) {
		end = int64(t.meta[i+1].Offset)
	} else {
		end = int64(t.metaOffset)
	}

	raw, err := t.file.ReadAt(start, end-start)
	if err != nil {
		return nil, err
	}
	b, err := block.Decode(raw)
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		t.cache.Set(key, b)
	}
	return b, nil
}

// FindBlockIdx returns the greatest index i such that block_metas[i].FirstKey
// <= key, via binary search over the ascending first-key index. For a key
// less than every first key it returns 0; for a key greater than every
// first key it returns the last index. The returned block only *may*
// contain key — callers must verify with a block-level seek.
func (t *Table) FindBlockIdx(key []byte) int {
	// sort.Search finds the first index whose FirstKey > key; the block
	// that may hold key is the one just before it.
	i := sort.Search(len(t.meta), func(i int) bool {
		return t.cmp(t.meta[i].FirstKey, key) > 0
	})
	if i == 0 {
		return 0
	}
	return i - 1
}
