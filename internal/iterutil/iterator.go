// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package iterutil defines the uniform iterator protocol every data source
// in the engine (a block, an SST, a memtable range, or a composition of
// those) implements, plus the operators — k-way merge, two-source
// preference merge, and tombstone-fusing — used to fold many sources into
// one logical ordered stream.
package iterutil

// Iterator is the contract every ordered key/value source in the engine
// implements. Key and Value are only meaningful while Valid reports true.
// Next never returns an error for reaching the end of the sequence —
// end-of-iterator is represented purely by Valid() becoming false, never
// as an error.
type Iterator interface {
	Key() []byte
	Value() []byte
	Valid() bool
	Next() error
}
