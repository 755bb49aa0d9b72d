// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tuple

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []Tuple{
		{},
		{Int(0)},
		{Null(), Bool(true), Int(-5), Blob([]byte("x")), Text("y")},
	}
	for _, tup := range cases {
		encoded, err := Pack(nil, tup)
		require.NoError(t, err)

		decoded, rest, ok, err := Unpack(nil, encoded)
		require.NoError(t, err)
		require.True(t, ok)
		require.Nil(t, rest)
		require.True(t, tup.Equal(decoded))
	}
}

func TestPackListUnpacksRoundTrip(t *testing.T) {
	list := []Tuple{
		{Int(1)},
		{Int(2)},
		{Text("three")},
	}
	encoded, err := PackList(nil, list)
	require.NoError(t, err)

	decoded, err := UnpackList(nil, encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(list))
	for i := range list {
		require.True(t, list[i].Equal(decoded[i]))
	}
}

func TestUnpackPrefixMismatch(t *testing.T) {
	encoded, err := Pack([]byte("pre"), Tuple{Int(1)})
	require.NoError(t, err)

	_, _, ok, err := Unpack([]byte("other"), encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompareMatchesSpecExamples(t *testing.T) {
	a, err := Pack(nil, Tuple{Int(1)})
	require.NoError(t, err)
	b, err := Pack(nil, Tuple{Int(2)})
	require.NoError(t, err)
	require.True(t, bytes.Compare(a, b) < 0)

	c, err := Compare(Tuple{Int(1)}, Tuple{Int(2)})
	require.NoError(t, err)
	require.Equal(t, -1, c)
}

func TestSpecWorkedExamples(t *testing.T) {
	// spec §8.1: pack("", ()) -> "".
	empty, err := Pack(nil, Tuple{})
	require.NoError(t, err)
	require.Empty(t, empty)

	// pack("", (0,)) -> 15 00 (tag INT = 21 = 0x15, varint 0); (None,) -> 0F.
	zero, err := Pack(nil, Tuple{Int(0)})
	require.NoError(t, err)
	require.Equal(t, []byte{0x15, 0x00}, zero)

	null, err := Pack(nil, Tuple{Null()})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0F}, null)

	// spec §8.3.
	v240, err := Pack(nil, Tuple{Int(240)})
	require.NoError(t, err)
	require.Equal(t, []byte{0x15, 0xF0}, v240)

	v241, err := Pack(nil, Tuple{Int(241)})
	require.NoError(t, err)
	require.Equal(t, []byte{0x15, 0xF1, 0x01}, v241)

	vNeg1, err := Pack(nil, Tuple{Int(-1)})
	require.NoError(t, err)
	require.Equal(t, []byte{0x14, 0xFE}, vNeg1)

	// pack("pre", [(1,), (2,)]) -> "pre" ‖ 15 01 ‖ 66 ‖ 15 02.
	list, err := PackList([]byte("pre"), []Tuple{{Int(1)}, {Int(2)}})
	require.NoError(t, err)
	want := append([]byte("pre"), 0x15, 0x01, 0x66, 0x15, 0x02)
	require.Equal(t, want, list)
}

func TestSkipTuple(t *testing.T) {
	encoded, err := PackList(nil, []Tuple{{Int(1), Text("a")}, {Int(2)}})
	require.NoError(t, err)

	n, sawSep, err := SkipTuple(encoded)
	require.NoError(t, err)
	require.True(t, sawSep)

	n2, sawSep2, err := SkipTuple(encoded[n:])
	require.NoError(t, err)
	require.False(t, sawSep2)
	require.Equal(t, len(encoded), n+n2)
}
