// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package cache implements the block cache: a concurrent mapping from (sst
// id, block index) to a shared, immutable block, consulted and populated by
// sstable.Table.ReadBlock on every block fetch.
package cache

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/swiss"

	"github.com/coldcache/lsmkv/block"
)

// Key identifies a single block within a single table.
type Key struct {
	TableID    uint64
	BlockIndex int
}

// Cache is the concurrent mapping consumed by sstable.Table.ReadBlock.
type Cache interface {
	Get(key Key) (*block.Block, bool)
	Set(key Key, b *block.Block)
}

const shardCount = 16

// ShardedCache is a Cache backed by shardCount independent
// github.com/cockroachdb/swiss maps, each guarded by its own mutex. Keys are
// routed to shards by an xxhash of the (table id, block index) pair, which
// keeps unrelated tables' cache traffic from contending on the same lock.
type ShardedCache struct {
	shards [shardCount]struct {
		mu sync.RWMutex
		m  *swiss.Map[Key, *block.Block]
	}
}

// NewShardedCache returns an empty ShardedCache.
func NewShardedCache() *ShardedCache {
	c := &ShardedCache{}
	for i := range c.shards {
		c.shards[i].m = swiss.New[Key, *block.Block](0)
	}
	return c
}

func shardFor(key Key) int {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], key.TableID)
	binary.LittleEndian.PutUint64(buf[8:], uint64(key.BlockIndex))
	return int(xxhash.Sum64(buf[:]) % shardCount)
}

// Get returns the cached block for key, if present.
func (c *ShardedCache) Get(key Key) (*block.Block, bool) {
	s := &c.shards[shardFor(key)]
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Get(key)
}

// Set installs b as the cached block for key.
func (c *ShardedCache) Set(key Key, b *block.Block) {
	s := &c.shards[shardFor(key)]
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Put(key, b)
}

var _ Cache = (*ShardedCache)(nil)
