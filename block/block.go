// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package block implements the smallest unit of read and caching in the LSM
// tree: a sorted batch of key/value entries plus a parallel offset index.
//
// The on-disk layout is:
//
//	+----------------------------------------------------------------+
//	|             Data Section             |   Offset Section | Extra |
//	+----------------------------------------------------------------+
//	| Entry #1 | Entry #2 | ... | Entry #N | off_1 | ... | off_N |  N  |
//	+----------------------------------------------------------------+
//
// and each Entry is:
//
//	key_len (u16) | key | value_len (u16) | value
//
// All integers are host-endian; cross-host portability of the raw file
// format is not a goal.
package block

import (
	"encoding/binary"

	"github.com/coldcache/lsmkv/internal/base"
)

const (
	lenFieldSize    = 2 // size of a u16 length field
	offsetFieldSize = 2 // size of a u16 offset entry
	countFieldSize  = 2 // size of the trailing u16 element count
)

// Block is a shared, immutable, decoded view of a sorted batch of key/value
// entries. Block is safe to share across goroutines: nothing about it is
// ever mutated after Decode returns.
type Block struct {
	// data holds the data section only (offsets and the count are not
	// included); Decode slices it out of the on-disk buffer it was given.
	data []byte
	// offsets[i] is the byte offset, within data, of entry i.
	offsets []uint16
}

// Len returns the number of entries in the block.
func (b *Block) Len() int {
	return len(b.offsets)
}

// Encode builds a block from the parallel keys and values slices and
// serializes it into the on-disk layout described in the package doc.
func Encode(keys, values [][]byte) []byte {
	// Encode is a convenience entry point used by tests: it feeds every pair
	// through a Builder with no practical size limit and returns the bytes
	// of the single block it builds.
	bb := &Builder{blockSize: 1 << 31}
	for i := range keys {
		bb.Add(keys[i], values[i])
	}
	return bb.Build().Bytes()
}

// Bytes re-serializes the block to the on-disk layout of the package doc.
// Decode(b.Bytes()) reproduces a Block equivalent to b.
func (b *Block) Bytes() []byte {
	n := len(b.offsets)
	buf := make([]byte, len(b.data)+n*offsetFieldSize+countFieldSize)
	copy(buf, b.data)
	off := len(b.data)
	for _, o := range b.offsets {
		binary.NativeEndian.PutUint16(buf[off:], o)
		off += offsetFieldSize
	}
	binary.NativeEndian.PutUint16(buf[off:], uint16(n))
	return buf
}

// Decode parses data (the bytes produced by Bytes, or read verbatim off
// disk) into a Block. The returned Block borrows data: callers must not
// mutate it afterwards.
//
// Decode fails with a base.ErrCorrupt-marked error when data is too short to
// hold even the trailing count, when the claimed element count implies an
// offset section larger than the buffer, or when an entry's offset or
// length fields run past the end of the data section.
func Decode(data []byte) (*Block, error) {
	if len(data) < countFieldSize {
		return nil, base.CorruptionErrorf("block: buffer of %d bytes is shorter than the trailing count field", len(data))
	}
	n := int(binary.NativeEndian.Uint16(data[len(data)-countFieldSize:]))
	offsetsSize := n * offsetFieldSize
	boundary := len(data) - countFieldSize - offsetsSize
	if boundary < 0 {
		return nil, base.CorruptionErrorf("block: %d entries claimed but buffer is only %d bytes", n, len(data))
	}

	offsets := make([]uint16, n)
	for i := 0; i < n; i++ {
		o := boundary + i*offsetFieldSize
		offsets[i] = binary.NativeEndian.Uint16(data[o : o+offsetFieldSize])
		p := int(offsets[i])
		ok := p+lenFieldSize <= boundary
		if ok {
			p += lenFieldSize + int(binary.NativeEndian.Uint16(data[p:]))
			ok = p+lenFieldSize <= boundary
		}
		if ok {
			p += lenFieldSize + int(binary.NativeEndian.Uint16(data[p:]))
			ok = p <= boundary
		}
		if !ok {
			return nil, base.CorruptionErrorf("block: entry %d at offset %d overruns the %d-byte data section", i, offsets[i], boundary)
		}
	}

	return &Block{
		data:    data[:boundary],
		offsets: offsets,
	}, nil
}

// entryAt returns the key and value stored at byte offset off within the
// block's data section.
func (b *Block) entryAt(off uint16) (key, value []byte) {
	p := int(off)
	keyLen := int(binary.NativeEndian.Uint16(b.data[p:]))
	p += lenFieldSize
	key = b.data[p : p+keyLen]
	p += keyLen
	valLen := int(binary.NativeEndian.Uint16(b.data[p:]))
	p += lenFieldSize
	value = b.data[p : p+valLen]
	return key, value
}
