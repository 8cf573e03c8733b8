// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lsmkv

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/coldcache/lsmkv/internal/base"
)

func scanAll(t *testing.T, s *Storage) [][2]string {
	t.Helper()
	it, err := s.Scan(Bound{Kind: Unbounded}, Bound{Kind: Unbounded})
	require.NoError(t, err)
	var got [][2]string
	for it.Valid() {
		got = append(got, [2]string{string(it.Key()), string(it.Value())})
		require.NoError(t, it.Next())
	}
	return got
}

func TestScenarioS1GetRecency(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	require.NoError(t, s.Put([]byte("b"), []byte("2")))
	require.NoError(t, s.Put([]byte("a"), []byte("3")))

	v, ok, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("3"), v)

	v, ok, err = s.Get([]byte("b"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("2"), v)

	_, ok, err = s.Get([]byte("c"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestScenarioS2DeleteTombstone(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	require.NoError(t, s.Delete([]byte("a")))

	_, ok, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.False(t, ok)

	got := scanAll(t, s)
	require.Empty(t, got, "%# v", pretty.Formatter(got))
}

func TestPutRejectsEmptyKeyOrValue(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)

	err = s.Put(nil, []byte("v"))
	require.True(t, base.IsInvalidArgument(err))

	err = s.Put([]byte("k"), nil)
	require.True(t, base.IsInvalidArgument(err))
}

func TestScanRespectsBounds(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Put([]byte(k), []byte(k)))
	}

	it, err := s.Scan(Bound{Kind: Inclusive, Key: []byte("b")}, Bound{Kind: Exclusive, Key: []byte("d")})
	require.NoError(t, err)
	var got []string
	for it.Valid() {
		got = append(got, string(it.Key()))
		require.NoError(t, it.Next())
	}
	require.Equal(t, []string{"b", "c"}, got)
}

func TestFlushAndL0Survives(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	require.NoError(t, s.Put([]byte("b"), []byte("2")))
	require.NoError(t, s.Flush())
	require.NoError(t, s.FlushOldestToL0())

	require.NoError(t, s.Put([]byte("c"), []byte("3")))

	got := scanAll(t, s)
	require.Equal(t, [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}, got)

	v, ok, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)
}

func TestFlushNewerMemtableWinsOverL0(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.Put([]byte("a"), []byte("old")))
	require.NoError(t, s.Flush())
	require.NoError(t, s.FlushOldestToL0())

	require.NoError(t, s.Put([]byte("a"), []byte("new")))

	v, ok, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("new"), v)

	got := scanAll(t, s)
	require.Equal(t, [][2]string{{"a", "new"}}, got)
}
