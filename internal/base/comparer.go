// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "bytes"

// Comparer defines the ordering used for keys. The core only implements the
// natural byte-string ordering, but the type is exposed through Options so a
// future caller has a documented seam to plug in a different one. The same
// ordering must be used for reading and writing a given table.
type Comparer struct {
	// Compare returns <0, 0, or >0 as a is less than, equal to, or greater
	// than b.
	Compare func(a, b []byte) int
	// Name identifies the comparator so a table built with one comparator is
	// never opened with another.
	Name string
}

// DefaultComparer orders keys lexicographically by their raw bytes.
var DefaultComparer = Comparer{
	Compare: bytes.Compare,
	Name:    "lsmkv.BytewiseComparator",
}
