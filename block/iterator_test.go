// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTestBlock(t *testing.T) *Block {
	t.Helper()
	b := NewBuilder(1 << 20)
	for _, k := range []string{"b", "d", "f", "h"} {
		require.True(t, b.Add([]byte(k), []byte("v-"+k)))
	}
	return b.Build()
}

func TestIteratorSeekGELandsOnLeastGreaterOrEqual(t *testing.T) {
	blk := buildTestBlock(t)

	cases := []struct {
		seek string
		want string
		ok   bool
	}{
		{"a", "b", true},
		{"b", "b", true},
		{"c", "d", true},
		{"h", "h", true},
		{"i", "", false},
	}
	for _, c := range cases {
		it := CreateAndSeekToKey(blk, []byte(c.seek))
		require.Equal(t, c.ok, it.Valid(), "seek(%q)", c.seek)
		if c.ok {
			require.Equal(t, []byte(c.want), it.Key(), "seek(%q)", c.seek)
		}
	}
}

func TestIteratorNextPastEndIsSafe(t *testing.T) {
	blk := buildTestBlock(t)
	it := CreateAndSeekToKey(blk, []byte("h"))
	require.True(t, it.Valid())
	require.NoError(t, it.Next())
	require.False(t, it.Valid())
	require.NoError(t, it.Next())
	require.False(t, it.Valid())
}
