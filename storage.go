// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package lsmkv is an embedded, ordered key-value storage engine organized
// as a log-structured merge tree. It exposes point reads and writes,
// tombstone deletes, and ordered range scans over an immutable, versioned
// snapshot of an in-memory memtable plus leveled, on-disk sorted-string
// tables.
package lsmkv

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/coldcache/lsmkv/internal/base"
	"github.com/coldcache/lsmkv/internal/iterutil"
	"github.com/coldcache/lsmkv/memtable"
	"github.com/coldcache/lsmkv/sstable"
	"github.com/coldcache/lsmkv/vfs"
)

// StorageVersion is an immutable snapshot of every source the coordinator
// reads from: the active memtable, frozen (immutable) memtables oldest to
// newest, L0 tables oldest to newest, and L1..Ln levels, each internally
// sorted by key range with no overlap within a level.
type StorageVersion struct {
	memtable   memtable.Memtable
	immutables []memtable.Memtable
	l0         []*sstable.Table
	levels     [][]*sstable.Table
	nextSSTID  uint64
}

// Storage is the coordinator: it holds a single shared pointer to the
// current StorageVersion behind a read-write lock that exists only to
// guard the pointer swap. Readers copy the pointer under the
// read side of the lock and then probe the immutable snapshot lock-free.
type Storage struct {
	dir  string
	opts *Options

	sstIDCounter uint64 // atomic; next id handed out by FlushOldestToL0

	mu      sync.RWMutex
	version *StorageVersion
}

// Open returns a Storage rooted at dir, recovering any `*.sst` files left
// behind by a prior process as L0 tables (oldest id first). A nil opts is
// valid and means defaults.
func Open(dir string, opts *Options) (*Storage, error) {
	opts = opts.EnsureDefaults()

	paths, err := filepath.Glob(filepath.Join(dir, "*.sst"))
	if err != nil {
		return nil, base.WrapIO(err, "lsmkv: listing %q", dir)
	}
	sort.Strings(paths)

	var l0 []*sstable.Table
	var maxID uint64
	for _, path := range paths {
		var id uint64
		if _, err := fmt.Sscanf(filepath.Base(path), "%06d.sst", &id); err != nil {
			continue
		}
		file, err := vfs.Open(path)
		if err != nil {
			return nil, err
		}
		table, err := sstable.Open(file, id, opts.Comparer.Compare, opts.Cache)
		if err != nil {
			return nil, err
		}
		l0 = append(l0, table)
		if id >= maxID {
			maxID = id + 1
		}
	}

	s := &Storage{
		dir:          dir,
		opts:         opts,
		sstIDCounter: maxID,
		version: &StorageVersion{
			memtable:  memtable.New(opts.Comparer.Compare),
			l0:        l0,
			nextSSTID: maxID,
		},
	}
	return s, nil
}

func (s *Storage) currentVersion() *StorageVersion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Storage) installVersion(v *StorageVersion) {
	s.mu.Lock()
	s.version = v
	s.mu.Unlock()
	s.opts.Logger.Infof("installed version: %d immutables, %d L0 tables, %d levels", len(v.immutables), len(v.l0), len(v.levels))
}

// Put writes key/value, both of which must be non-empty (an empty value is
// reserved for the tombstone written by Delete).
func (s *Storage) Put(key, value []byte) error {
	if len(key) == 0 {
		return base.InvalidArgumentErrorf("lsmkv: put with empty key")
	}
	if len(value) == 0 {
		return base.InvalidArgumentErrorf("lsmkv: put with empty value; use Delete for tombstones")
	}
	s.currentVersion().memtable.Put(key, value)
	return nil
}

// Delete writes a tombstone (an empty value) for key.
func (s *Storage) Delete(key []byte) error {
	if len(key) == 0 {
		return base.InvalidArgumentErrorf("lsmkv: delete with empty key")
	}
	s.currentVersion().memtable.Put(key, nil)
	return nil
}

// Get returns the value for key, if any. A present tombstone (an empty
// value written by Delete) reports ok == false, the same as a missing key.
func (s *Storage) Get(key []byte) (value []byte, ok bool, err error) {
	v := s.currentVersion()
	cmp := s.opts.Comparer.Compare

	if val, found := v.memtable.Get(key); found {
		return tombstoneResult(val)
	}
	for i := len(v.immutables) - 1; i >= 0; i-- {
		if val, found := v.immutables[i].Get(key); found {
			return tombstoneResult(val)
		}
	}

	for i := len(v.l0) - 1; i >= 0; i-- {
		val, found, err := getFromTable(v.l0[i], key, cmp)
		if err != nil {
			return nil, false, err
		}
		if found {
			return tombstoneResult(val)
		}
	}

	for _, level := range v.levels {
		if len(level) == 0 {
			continue
		}
		idx := findTableIdx(level, key, cmp)
		val, found, err := getFromTable(level[idx], key, cmp)
		if err != nil {
			return nil, false, err
		}
		if found {
			return tombstoneResult(val)
		}
	}

	return nil, false, nil
}

func tombstoneResult(value []byte) ([]byte, bool, error) {
	if len(value) == 0 {
		return nil, false, nil
	}
	return value, true, nil
}

// getFromTable seeks table to key and reports whether the entry found
// matches key exactly.
func getFromTable(table *sstable.Table, key []byte, cmp func(a, b []byte) int) ([]byte, bool, error) {
	it, err := sstable.CreateAndSeekToKey(table, key)
	if err != nil {
		return nil, false, err
	}
	if it.Valid() && cmp(it.Key(), key) == 0 {
		return it.Value(), true, nil
	}
	return nil, false, nil
}

// findTableIdx returns the greatest index i such that tables[i].FirstKey()
// <= key, or 0 if no table qualifies — the same rule as
// sstable.Table.FindBlockIdx, one level up.
func findTableIdx(tables []*sstable.Table, key []byte, cmp func(a, b []byte) int) int {
	i := sort.Search(len(tables), func(i int) bool {
		return cmp(tables[i].FirstKey(), key) > 0
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// Scan returns a fused, tombstone-filtering iterator over the keys between
// lower and upper (each bound unbounded, inclusive or exclusive) in
// ascending key order, folding memtable+immutables, then L0, then each
// level in turn through the two-source preference merge, newest data
// always winning ties.
func (s *Storage) Scan(lower, upper Bound) (*iterutil.Fused, error) {
	v := s.currentVersion()
	cmp := s.opts.Comparer.Compare

	memIt, err := boundedMemIter(v.memtable, lower, cmp)
	if err != nil {
		return nil, err
	}
	memSources := []iterutil.Iterator{memIt}
	for i := len(v.immutables) - 1; i >= 0; i-- {
		it, err := boundedMemIter(v.immutables[i], lower, cmp)
		if err != nil {
			return nil, err
		}
		memSources = append(memSources, it)
	}
	fold := iterutil.Iterator(iterutil.NewMergeIterator(cmp, memSources...))

	var eg errgroup.Group
	l0Iters := make([]iterutil.Iterator, len(v.l0))
	for i := len(v.l0) - 1; i >= 0; i-- {
		i := i
		slot := len(v.l0) - 1 - i
		eg.Go(func() error {
			it, err := boundedTableIter(v.l0[i], lower, cmp)
			if err != nil {
				return err
			}
			l0Iters[slot] = it
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if len(l0Iters) > 0 {
		l0Merge := iterutil.NewMergeIterator(cmp, l0Iters...)
		merged, err := iterutil.NewTwoMergeIterator(cmp, fold, l0Merge)
		if err != nil {
			return nil, err
		}
		fold = merged
	}

	for _, level := range v.levels {
		if len(level) == 0 {
			continue
		}
		startIdx := 0
		if lower.Kind != Unbounded {
			startIdx = findTableIdx(level, lower.Key, cmp)
		}
		var levelIters []iterutil.Iterator
		for i := startIdx; i < len(level); i++ {
			b := lower
			if i != startIdx {
				b = Bound{Kind: Unbounded}
			}
			it, err := boundedTableIter(level[i], b, cmp)
			if err != nil {
				return nil, err
			}
			levelIters = append(levelIters, it)
		}
		if len(levelIters) == 0 {
			continue
		}
		concat := iterutil.NewConcat(levelIters...)
		merged, err := iterutil.NewTwoMergeIterator(cmp, fold, concat)
		if err != nil {
			return nil, err
		}
		fold = merged
	}

	return iterutil.NewFused(newBoundedIter(fold, upper, cmp)), nil
}

func boundedMemIter(m memtable.Memtable, lower Bound, cmp iterutil.CompareFunc) (iterutil.Iterator, error) {
	it := m.NewIter(lower.seekKey(), nil)
	if err := skipEqualLowerBound(it, lower, cmp); err != nil {
		return nil, err
	}
	return it, nil
}

func boundedTableIter(t *sstable.Table, lower Bound, cmp iterutil.CompareFunc) (iterutil.Iterator, error) {
	var it *sstable.Iterator
	var err error
	if lower.Kind == Unbounded {
		it, err = sstable.CreateAndSeekToFirst(t)
	} else {
		it, err = sstable.CreateAndSeekToKey(t, lower.Key)
	}
	if err != nil {
		return nil, err
	}
	if err := skipEqualLowerBound(it, lower, cmp); err != nil {
		return nil, err
	}
	return it, nil
}

// Flush freezes the active memtable into the immutable list and installs a
// fresh, empty memtable as the new active one. It does not write anything
// to disk — flushing an immutable memtable to an L0 table is
// FlushOldestToL0's job. Splitting the two keeps the cheap in-memory
// freeze separate from compaction's disk write, and lets a caller batch
// several freezes before paying for an SST write.
func (s *Storage) Flush() error {
	old := s.currentVersion()
	next := &StorageVersion{
		memtable:   memtable.New(s.opts.Comparer.Compare),
		immutables: append(append([]memtable.Memtable(nil), old.immutables...), old.memtable),
		l0:         old.l0,
		levels:     old.levels,
		nextSSTID:  old.nextSSTID,
	}
	s.installVersion(next)
	return nil
}

// FlushOldestToL0 builds an SST from the oldest immutable memtable and
// appends it to L0, in version-installation fashion: the new
// StorageVersion copies every unaffected pointer and rebinds atomically
// under the write lock.
func (s *Storage) FlushOldestToL0() error {
	s.mu.RLock()
	old := s.version
	s.mu.RUnlock()

	if len(old.immutables) == 0 {
		return base.InvalidArgumentErrorf("lsmkv: no immutable memtable to flush")
	}

	id := atomic.AddUint64(&s.sstIDCounter, 1) - 1
	builder := sstable.NewBuilder(s.opts.BlockSize, s.opts.Comparer.Compare)

	it := old.immutables[0].NewIter(nil, nil)
	for it.Valid() {
		builder.Add(it.Key(), it.Value())
		if err := it.Next(); err != nil {
			return err
		}
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%06d.sst", id))
	table, err := builder.Build(id, path, s.opts.Cache)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.version
	next := &StorageVersion{
		memtable:   cur.memtable,
		immutables: append([]memtable.Memtable(nil), cur.immutables[1:]...),
		l0:         append(append([]*sstable.Table(nil), cur.l0...), table),
		levels:     cur.levels,
		nextSSTID:  id + 1,
	}
	s.version = next
	s.opts.Logger.Infof("flushed immutable memtable to L0 table %d", id)
	return nil
}
