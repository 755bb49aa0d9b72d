// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package memtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutMaintainsSortOrder(t *testing.T) {
	m := New()
	m.Put([]byte("c"), []byte("3"))
	m.Put([]byte("a"), []byte("1"))
	m.Put([]byte("b"), []byte("2"))

	cur, err := m.NewCursor(nil, false)
	require.NoError(t, err)
	defer cur.Close()

	var keys []string
	for {
		ok, err := cur.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		keys = append(keys, string(cur.Key()))
	}
	require.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestPutOverwritesExistingKey(t *testing.T) {
	m := New()
	m.Put([]byte("a"), []byte("1"))
	m.Put([]byte("a"), []byte("2"))

	cur, err := m.NewCursor(nil, false)
	require.NoError(t, err)
	defer cur.Close()

	ok, err := cur.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", string(cur.Value()))

	ok, err = cur.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestForwardCursorFromMidpoint(t *testing.T) {
	m := New()
	for _, k := range []string{"a", "b", "c", "d"} {
		m.Put([]byte(k), []byte(k))
	}

	cur, err := m.NewCursor([]byte("b"), false)
	require.NoError(t, err)
	defer cur.Close()

	var keys []string
	for {
		ok, err := cur.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		keys = append(keys, string(cur.Key()))
	}
	require.Equal(t, []string{"b", "c", "d"}, keys)
}

func TestReverseCursorFromNilStartsAtLast(t *testing.T) {
	m := New()
	for _, k := range []string{"a", "b", "c"} {
		m.Put([]byte(k), []byte(k))
	}

	cur, err := m.NewCursor(nil, true)
	require.NoError(t, err)
	defer cur.Close()

	var keys []string
	for {
		ok, err := cur.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		keys = append(keys, string(cur.Key()))
	}
	require.Equal(t, []string{"c", "b", "a"}, keys)
}

func TestReverseCursorFromMidpoint(t *testing.T) {
	m := New()
	for _, k := range []string{"a", "b", "c", "d"} {
		m.Put([]byte(k), []byte(k))
	}

	// NewCursor's documented contract (rangeiter.Engine) is "at or before
	// startKey" for a reverse cursor, so the first Next() must yield "c"
	// itself, not the record before it.
	cur, err := m.NewCursor([]byte("c"), true)
	require.NoError(t, err)
	defer cur.Close()

	ok, err := cur.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "c", string(cur.Key()))
}

func TestCorruptRecordDetected(t *testing.T) {
	m := New()
	m.Put([]byte("a"), []byte("1"))
	m.records[0].Checksum ^= 0xFF

	cur, err := m.NewCursor(nil, false)
	require.NoError(t, err)
	defer cur.Close()

	_, err = cur.Next()
	require.Error(t, err)
}
