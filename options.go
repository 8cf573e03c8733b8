// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lsmkv

import (
	"github.com/coldcache/lsmkv/cache"
	"github.com/coldcache/lsmkv/internal/base"
)

const defaultBlockSize = 4096

// Options configures a Storage. A nil *Options is valid wherever Open
// accepts one and means "use the defaults."
type Options struct {
	// BlockSize is the target size in bytes of an encoded data block.
	// Defaults to 4096.
	BlockSize int
	// Cache is the block cache shared by every table the Storage opens.
	// Defaults to a private cache.ShardedCache.
	Cache cache.Cache
	// Logger receives Info-level notices when a version is installed or an
	// immutable memtable is flushed to L0. Corruption errors are returned
	// to the caller and are not logged. Defaults to base.DefaultLogger.
	Logger base.Logger
	// Comparer orders keys. Defaults to base.DefaultComparer (raw byte
	// ordering). The core does not implement any other ordering; this
	// field exists as a documented seam for a future caller.
	Comparer base.Comparer
}

// EnsureDefaults fills every unset field of o with its default, in place,
// and returns o; a nil o is first replaced by a new, empty Options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.BlockSize == 0 {
		o.BlockSize = defaultBlockSize
	}
	if o.Cache == nil {
		o.Cache = cache.NewShardedCache()
	}
	if o.Logger == nil {
		o.Logger = base.DefaultLogger
	}
	if o.Comparer.Compare == nil {
		o.Comparer = base.DefaultComparer
	}
	return o
}
