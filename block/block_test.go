// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockRoundtrip(t *testing.T) {
	var keys, values [][]byte
	for i := 0; i < 5; i++ {
		keys = append(keys, []byte(fmt.Sprintf("k%d", i)))
		values = append(values, []byte(fmt.Sprintf("v%d", i)))
	}

	encoded := Encode(keys, values)
	b, err := Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, len(keys), b.Len())

	it := CreateAndSeekToFirst(b)
	for i := range keys {
		require.True(t, it.Valid())
		require.Equal(t, keys[i], it.Key())
		require.Equal(t, values[i], it.Value())
		require.NoError(t, it.Next())
	}
	require.False(t, it.Valid())
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	_, err := Decode([]byte{0})
	require.Error(t, err)
}

func TestDecodeRejectsOverlongCount(t *testing.T) {
	b := Encode([][]byte{[]byte("a")}, [][]byte{[]byte("1")})
	// Claim far more entries than the buffer can hold.
	corrupt := append([]byte(nil), b...)
	corrupt[len(corrupt)-2] = 0xff
	corrupt[len(corrupt)-1] = 0xff
	_, err := Decode(corrupt)
	require.Error(t, err)
}

func TestBytesIsIdempotent(t *testing.T) {
	b := Encode([][]byte{[]byte("a"), []byte("b")}, [][]byte{[]byte("1"), []byte("2")})
	decoded, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, b, decoded.Bytes())
}
