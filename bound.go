// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lsmkv

import "github.com/coldcache/lsmkv/internal/iterutil"

// BoundKind identifies the shape of one end of a scan range.
type BoundKind int

const (
	// Unbounded means the range extends to infinity on this end.
	Unbounded BoundKind = iota
	// Inclusive means the range includes Bound.Key on this end.
	Inclusive
	// Exclusive means the range excludes Bound.Key on this end.
	Exclusive
)

// Bound is one endpoint of a Scan range: unbounded, inclusive(k), or
// exclusive(k).
type Bound struct {
	Kind BoundKind
	Key  []byte
}

// seekKey returns the key a source iterator should seek to in order to
// respect b used as a lower bound, or nil to mean "seek to first".
func (b Bound) seekKey() []byte {
	if b.Kind == Unbounded {
		return nil
	}
	return b.Key
}

// skipEqualLowerBound advances it once past a leading entry equal to b's
// key, when b is an exclusive lower bound. Every source iterator is seeked
// to the first key >= the bound's key, so an exclusive bound's excluded
// key (if present) always lands as the leading entry.
func skipEqualLowerBound(it iterutil.Iterator, b Bound, cmp iterutil.CompareFunc) error {
	if b.Kind == Exclusive && it.Valid() && cmp(it.Key(), b.Key) == 0 {
		return it.Next()
	}
	return nil
}

// boundedIter wraps an Iterator with an upper Bound: Valid becomes false
// once the inner iterator's key would fall outside the bound, without
// otherwise touching the inner iterator's position.
type boundedIter struct {
	inner iterutil.Iterator
	upper Bound
	cmp   iterutil.CompareFunc
}

func newBoundedIter(inner iterutil.Iterator, upper Bound, cmp iterutil.CompareFunc) *boundedIter {
	return &boundedIter{inner: inner, upper: upper, cmp: cmp}
}

func (b *boundedIter) Valid() bool {
	if !b.inner.Valid() {
		return false
	}
	switch b.upper.Kind {
	case Inclusive:
		return b.cmp(b.inner.Key(), b.upper.Key) <= 0
	case Exclusive:
		return b.cmp(b.inner.Key(), b.upper.Key) < 0
	default:
		return true
	}
}

func (b *boundedIter) Key() []byte   { return b.inner.Key() }
func (b *boundedIter) Value() []byte { return b.inner.Value() }
func (b *boundedIter) Next() error   { return b.inner.Next() }

var _ iterutil.Iterator = (*boundedIter)(nil)
