// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwoMergeIteratorPrefersA(t *testing.T) {
	a := newPairIterator([2]string{"a", "A"}, [2]string{"c", "A"})
	b := newPairIterator([2]string{"a", "B"}, [2]string{"b", "B"}, [2]string{"c", "B"})

	m, err := NewTwoMergeIterator(bytes.Compare, a, b)
	require.NoError(t, err)
	require.Equal(t, [][2]string{{"a", "A"}, {"b", "B"}, {"c", "A"}}, drain(t, m))
}

func TestTwoMergeIteratorReconcilesAtConstruction(t *testing.T) {
	a := newPairIterator([2]string{"a", "A"})
	b := newPairIterator([2]string{"a", "B"})

	m, err := NewTwoMergeIterator(bytes.Compare, a, b)
	require.NoError(t, err)
	require.True(t, m.Valid())
	require.Equal(t, []byte("A"), m.Value())
	require.NoError(t, m.Next())
	require.False(t, m.Valid())
}

func TestTwoMergeIteratorPropagatesValidityWhenOneSideExhausted(t *testing.T) {
	a := newPairIterator()
	b := newPairIterator([2]string{"x", "1"})

	m, err := NewTwoMergeIterator(bytes.Compare, a, b)
	require.NoError(t, err)
	require.True(t, m.Valid())
	require.Equal(t, []byte("x"), m.Key())
}
