// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package vfs provides the file contract the engine consumes for reading
// and writing SST files, plus two implementations: an in-memory one for
// tests and an on-disk one that holds the bytes it wrote to or read from
// a path. The engine never requires
// random-access reads at this layer — Open reads a file fully into memory.
package vfs

import (
	"os"

	"github.com/coldcache/lsmkv/internal/base"
)

// File is the file contract every SST reader and writer uses.
type File interface {
	// ReadAt returns the length bytes starting at offset off.
	ReadAt(off, length int64) ([]byte, error)
	// Size returns the total length of the file.
	Size() int64
}

// Create writes data to a new file at path and returns a File backed by it.
func Create(path string, data []byte) (File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, base.WrapIO(err, "vfs: create %q", path)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return nil, base.WrapIO(err, "vfs: write %q", path)
	}
	if err := f.Sync(); err != nil {
		return nil, base.WrapIO(err, "vfs: fsync %q", path)
	}
	return &diskFile{data: data}, nil
}

// Open reads path fully into memory and returns a File over its contents.
func Open(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, base.WrapIO(err, "vfs: open %q", path)
	}
	return &diskFile{data: data}, nil
}

// diskFile is a File over bytes that were read from (or just written to) an
// on-disk path. Once constructed it behaves identically to MemFile: the
// engine reads whole files eagerly, so there is no on-disk random access to
// model here.
type diskFile struct {
	data []byte
}

func (f *diskFile) ReadAt(off, length int64) ([]byte, error) {
	if off < 0 || length < 0 || off+length > int64(len(f.data)) {
		return nil, base.IOErrorf("vfs: read [%d, %d) out of range for %d-byte file", off, off+length, len(f.data))
	}
	return f.data[off : off+length], nil
}

func (f *diskFile) Size() int64 {
	return int64(len(f.data))
}

// MemFile is an in-memory File over a caller-supplied byte slice; it never
// touches disk. sstable.Builder.Build always writes through Create, so a
// MemFile is only reachable by handing one to sstable.Open directly.
type MemFile struct {
	data []byte
}

// NewMemFile wraps data (taken by reference, not copied) in a File.
func NewMemFile(data []byte) *MemFile {
	return &MemFile{data: data}
}

func (f *MemFile) ReadAt(off, length int64) ([]byte, error) {
	if off < 0 || length < 0 || off+length > int64(len(f.data)) {
		return nil, base.IOErrorf("vfs: read [%d, %d) out of range for %d-byte file", off, off+length, len(f.data))
	}
	return f.data[off : off+length], nil
}

func (f *MemFile) Size() int64 {
	return int64(len(f.data))
}

var (
	_ File = (*diskFile)(nil)
	_ File = (*MemFile)(nil)
)
