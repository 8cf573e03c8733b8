// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderAlwaysAcceptsFirstEntry(t *testing.T) {
	b := NewBuilder(1) // target size far smaller than any real entry
	require.True(t, b.IsEmpty())
	require.True(t, b.Add([]byte("oversized-key"), []byte("oversized-value")))
	require.False(t, b.IsEmpty())
	require.Equal(t, 1, b.Len())
}

func TestBuilderRejectsWhenFull(t *testing.T) {
	b := NewBuilder(20)
	require.True(t, b.Add([]byte("a"), []byte("1")))
	require.False(t, b.Add([]byte("bbbbbbbbbbbbbbbbbbbbbbbbb"), []byte("2")))
}

func TestBuilderOverwritesSingletonKey(t *testing.T) {
	b := NewBuilder(8)
	require.True(t, b.Add([]byte("k"), []byte("v1")))
	sizeBefore := b.Size()
	require.True(t, b.Add([]byte("k"), []byte("v2-longer")))
	require.Equal(t, 1, b.Len())
	require.NotEqual(t, sizeBefore, b.Size())

	built := b.Build()
	it := CreateAndSeekToFirst(built)
	require.True(t, it.Valid())
	require.Equal(t, []byte("v2-longer"), it.Value())
}

func TestBuilderSplitPartitionsAroundMidpoint(t *testing.T) {
	b := NewBuilder(1 << 20)
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.True(t, b.Add([]byte(k), []byte(k)))
	}

	splitKey, rhs := b.Split()
	require.Equal(t, []byte("c"), splitKey)
	require.Equal(t, 2, b.Len())
	require.Equal(t, 3, rhs.Len())

	lhsBlock := b.Build()
	it := CreateAndSeekToFirst(lhsBlock)
	for _, k := range []string{"a", "b"} {
		require.True(t, it.Valid())
		require.Equal(t, []byte(k), it.Key())
		require.NoError(t, it.Next())
	}
	require.False(t, it.Valid())

	rhsBlock := rhs.Build()
	it = CreateAndSeekToFirst(rhsBlock)
	for _, k := range []string{"c", "d", "e"} {
		require.True(t, it.Valid())
		require.Equal(t, []byte(k), it.Key())
		require.NoError(t, it.Next())
	}
	require.False(t, it.Valid())
}

func TestBuilderSplitDedupsAtBoundary(t *testing.T) {
	b := NewBuilder(1 << 20)
	require.True(t, b.Add([]byte("a"), []byte("1")))
	require.True(t, b.Add([]byte("b"), []byte("old")))
	// Force a duplicate key at the split boundary directly on the pending
	// slice, exercising Split's last-seen-wins dedup rule.
	b.pending = append(b.pending, kv{key: []byte("b"), value: []byte("new")})
	b.size += fixedOverhead + 1 + 3

	splitKey, rhs := b.Split()
	require.Equal(t, []byte("b"), splitKey)
	require.Equal(t, 1, rhs.Len())
	require.Equal(t, []byte("new"), rhs.pending[0].value)
}
