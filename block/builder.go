// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// fixedOverhead is the per-entry cost outside of the key and value bytes
// themselves: a 2-byte key length, a 2-byte value length, and a 2-byte
// offset-section entry.
const fixedOverhead = 2*lenFieldSize + offsetFieldSize

type kv struct {
	key, value []byte
}

// Builder packs key/value pairs into a single Block, splitting when the
// accumulated size would exceed a target size. A Builder is not safe for
// concurrent use.
type Builder struct {
	pending   []kv
	size      int // running estimate; starts at countFieldSize
	blockSize int
}

// NewBuilder returns a Builder that targets blockSize bytes per block. A
// single oversized pair is still accepted in an otherwise-empty builder (see
// Add), so blockSize is a target, not a hard ceiling.
func NewBuilder(blockSize int) *Builder {
	return &Builder{
		size:      countFieldSize,
		blockSize: blockSize,
	}
}

// Len returns the number of pairs currently buffered.
func (b *Builder) Len() int {
	return len(b.pending)
}

// IsEmpty reports whether the builder holds no pairs yet.
func (b *Builder) IsEmpty() bool {
	return len(b.pending) == 0
}

// Size returns the builder's current estimated encoded size.
func (b *Builder) Size() int {
	return b.size
}

// Add attempts to append (key, value) to the block under construction. It
// returns false when the pair does not fit and the caller must split.
//
// A single entry is always accepted into an empty builder, even if it alone
// exceeds blockSize. If the builder holds exactly one entry whose key
// equals key, Add overwrites that entry's value in place instead of
// rejecting it; this lets the sstable builder retry a failed Add against a
// freshly-split singleton block.
func (b *Builder) Add(key, value []byte) bool {
	delta := fixedOverhead + len(key) + len(value)

	if b.IsEmpty() {
		b.pending = append(b.pending, kv{key: append([]byte(nil), key...), value: append([]byte(nil), value...)})
		b.size += delta
		return true
	}

	if b.size+delta <= b.blockSize {
		b.pending = append(b.pending, kv{key: append([]byte(nil), key...), value: append([]byte(nil), value...)})
		b.size += delta
		return true
	}

	if len(b.pending) == 1 && bytes.Equal(b.pending[0].key, key) {
		old := b.pending[0].value
		b.size += len(value) - len(old)
		b.pending[0].value = append([]byte(nil), value...)
		return true
	}

	return false
}

// Split partitions the builder's pending pairs around their sorted midpoint.
// All keys strictly less than the returned splitKey remain in b; all keys
// greater than or equal to splitKey move to the returned Builder. If the
// walk encounters duplicate keys at the split point, only the last-seen
// value survives and the earlier duplicate's size contribution is
// subtracted.
func (b *Builder) Split() (splitKey []byte, rhs *Builder) {
	// A stable sort preserves insertion order among duplicate keys, so the
	// "last-seen wins" rule below has a well-defined meaning.
	sort.SliceStable(b.pending, func(i, j int) bool {
		return bytes.Compare(b.pending[i].key, b.pending[j].key) < 0
	})

	mid := len(b.pending) / 2
	splitKey = b.pending[mid].key

	var lhs, moved []kv
	var movedSize int
	var splitPair *kv

	for i := range b.pending {
		e := b.pending[i]
		switch bytes.Compare(e.key, splitKey) {
		case 1: // e.key > splitKey
			moved = append(moved, e)
			movedSize += fixedOverhead + len(e.key) + len(e.value)
		case -1: // e.key < splitKey
			lhs = append(lhs, e)
		default: // e.key == splitKey
			if splitPair != nil {
				b.size -= fixedOverhead + len(splitPair.key) + len(splitPair.value)
			}
			p := e
			splitPair = &p
		}
	}

	movedSize += fixedOverhead + len(splitPair.key) + len(splitPair.value)
	moved = append(moved, *splitPair)

	b.pending = lhs
	b.size -= movedSize

	return splitKey, &Builder{
		pending:   moved,
		size:      countFieldSize + movedSize,
		blockSize: b.blockSize,
	}
}

// Build finalizes the block: sorts the pending pairs by key and serializes
// them into the Block layout described in the block package doc.
func (b *Builder) Build() *Block {
	sort.SliceStable(b.pending, func(i, j int) bool {
		return bytes.Compare(b.pending[i].key, b.pending[j].key) < 0
	})

	var data []byte
	offsets := make([]uint16, 0, len(b.pending))

	for _, e := range b.pending {
		offsets = append(offsets, uint16(len(data)))

		var lenBuf [lenFieldSize]byte
		binary.NativeEndian.PutUint16(lenBuf[:], uint16(len(e.key)))
		data = append(data, lenBuf[:]...)
		data = append(data, e.key...)

		binary.NativeEndian.PutUint16(lenBuf[:], uint16(len(e.value)))
		data = append(data, lenBuf[:]...)
		data = append(data, e.value...)
	}

	return &Block{data: data, offsets: offsets}
}
