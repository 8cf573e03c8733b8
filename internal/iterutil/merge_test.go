// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type pairIterator struct {
	keys, values [][]byte
	idx          int
}

func newPairIterator(pairs ...[2]string) *pairIterator {
	it := &pairIterator{}
	for _, p := range pairs {
		it.keys = append(it.keys, []byte(p[0]))
		it.values = append(it.values, []byte(p[1]))
	}
	return it
}

func (it *pairIterator) Key() []byte   { return it.keys[it.idx] }
func (it *pairIterator) Value() []byte { return it.values[it.idx] }
func (it *pairIterator) Valid() bool   { return it.idx < len(it.keys) }
func (it *pairIterator) Next() error {
	if it.idx < len(it.keys) {
		it.idx++
	}
	return nil
}

func drain(t *testing.T, it Iterator) [][2]string {
	t.Helper()
	var out [][2]string
	for it.Valid() {
		out = append(out, [2]string{string(it.Key()), string(it.Value())})
		require.NoError(t, it.Next())
	}
	return out
}

func TestMergeIteratorDedupBySmallestOrigin(t *testing.T) {
	i0 := newPairIterator([2]string{"a", "1"}, [2]string{"c", "3"})
	i1 := newPairIterator([2]string{"a", "10"}, [2]string{"b", "20"})
	i2 := newPairIterator([2]string{"b", "200"})

	m := NewMergeIterator(bytes.Compare, i0, i1, i2)
	require.Equal(t, [][2]string{{"a", "1"}, {"b", "20"}, {"c", "3"}}, drain(t, m))
	require.NoError(t, m.Err())
}

func TestMergeIteratorEmitsStrictlyIncreasingKeys(t *testing.T) {
	i0 := newPairIterator([2]string{"a", "1"}, [2]string{"d", "4"})
	i1 := newPairIterator([2]string{"b", "2"}, [2]string{"c", "3"})

	m := NewMergeIterator(bytes.Compare, i0, i1)
	got := drain(t, m)
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1][0], got[i][0])
	}
}
