// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sstable implements the sorted-string table file format: a
// contiguous run of blocks, a parallel meta index recording each block's
// offset and first key, and a 4-byte trailer pointing at the start of the
// meta region.
package sstable

import (
	"encoding/binary"

	"github.com/coldcache/lsmkv/internal/base"
)

const (
	metaOffsetSize  = 4 // u32 block offset
	metaKeyLenSize  = 2 // u16 first_key_len
	trailerSize     = 4 // u32 byte offset of the meta region
)

// BlockMeta records a single data block's position in the file and its
// first key, used to binary search for the block that may contain a given
// key without reading any block bodies.
type BlockMeta struct {
	Offset   uint32
	FirstKey []byte
}

// encodedSize returns the number of bytes encodeMetas writes for m.
func (m BlockMeta) encodedSize() int {
	return metaOffsetSize + metaKeyLenSize + len(m.FirstKey)
}

// encodeMetas serializes metas as meta_1 | ... | meta_M, the meta region
// described in the package doc.
func encodeMetas(metas []BlockMeta) []byte {
	var buf []byte
	for _, m := range metas {
		var hdr [metaOffsetSize + metaKeyLenSize]byte
		binary.NativeEndian.PutUint32(hdr[:metaOffsetSize], m.Offset)
		binary.NativeEndian.PutUint16(hdr[metaOffsetSize:], uint16(len(m.FirstKey)))
		buf = append(buf, hdr[:]...)
		buf = append(buf, m.FirstKey...)
	}
	return buf
}

// decodeMetas parses the meta region [data[0], data[len(data)]) into a
// sequence of BlockMeta records. It fails with a base.ErrCorrupt-marked
// error if any record's header or key runs past the end of data.
func decodeMetas(data []byte) ([]BlockMeta, error) {
	var metas []BlockMeta
	p := 0
	for p < len(data) {
		if p+metaOffsetSize+metaKeyLenSize > len(data) {
			return nil, base.CorruptionErrorf("sstable: meta record header at byte %d overruns %d-byte meta region", p, len(data))
		}
		offset := binary.NativeEndian.Uint32(data[p:])
		p += metaOffsetSize
		keyLen := int(binary.NativeEndian.Uint16(data[p:]))
		p += metaKeyLenSize
		if p+keyLen > len(data) {
			return nil, base.CorruptionErrorf("sstable: meta record first_key at byte %d overruns %d-byte meta region", p, len(data))
		}
		firstKey := data[p : p+keyLen]
		p += keyLen
		metas = append(metas, BlockMeta{Offset: offset, FirstKey: firstKey})
	}
	return metas, nil
}
