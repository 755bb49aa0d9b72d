// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package key

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/tuplekey/tuple"
)

func mustKey(t *testing.T, elems ...tuple.Element) *Key {
	t.Helper()
	k, err := FromTuple(tuple.Tuple(elems))
	require.NoError(t, err)
	return k
}

func TestFromTupleLenAndAt(t *testing.T) {
	k := mustKey(t, tuple.Int(1), tuple.Text("two"), tuple.Bool(true))

	n, err := k.Len()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	v, err := k.At(0)
	require.NoError(t, err)
	iv, ok := v.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(1), iv)

	v, err = k.At(-1)
	require.NoError(t, err)
	bv, ok := v.AsBool()
	require.True(t, ok)
	require.True(t, bv)

	_, err = k.At(3)
	require.Error(t, err)
}

func TestSlice(t *testing.T) {
	k := mustKey(t, tuple.Int(1), tuple.Int(2), tuple.Int(3))

	sub, err := k.Slice(1, 3)
	require.NoError(t, err)
	n, err := sub.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	v, err := sub.At(0)
	require.NoError(t, err)
	iv, _ := v.AsInt()
	require.Equal(t, int64(2), iv)

	// Negative indices are resolved against the tuple's length.
	sub2, err := k.Slice(-2, -1)
	require.NoError(t, err)
	eq, err := sub2.EqualTuple(tuple.Tuple{tuple.Int(2)})
	require.NoError(t, err)
	require.True(t, eq)

	_, err = k.Slice(0, 4)
	require.Error(t, err)
}

func TestConcatTupleAndConcatKey(t *testing.T) {
	k := mustKey(t, tuple.Int(1))

	k2, err := k.ConcatTuple(tuple.Tuple{tuple.Int(2)})
	require.NoError(t, err)
	eq, err := k2.EqualTuple(tuple.Tuple{tuple.Int(1), tuple.Int(2)})
	require.NoError(t, err)
	require.True(t, eq)

	other := mustKey(t, tuple.Int(2))
	k3, err := k.ConcatKey(other)
	require.NoError(t, err)
	require.True(t, k3.Equal(k2))
}

func TestCompareAndEqual(t *testing.T) {
	a := mustKey(t, tuple.Int(1))
	b := mustKey(t, tuple.Int(2))
	c := mustKey(t, tuple.Int(1))

	require.True(t, a.Compare(b) < 0)
	require.True(t, b.Compare(a) > 0)
	require.Equal(t, 0, a.Compare(c))
	require.True(t, a.Equal(c))
	require.False(t, a.Equal(b))

	cmp, err := a.CompareTuple(tuple.Tuple{tuple.Int(2)})
	require.NoError(t, err)
	require.True(t, cmp < 0)
}

func TestHashEqualKeysHashEqual(t *testing.T) {
	a := mustKey(t, tuple.Text("same"))
	b := mustKey(t, tuple.Text("same"))
	c := mustKey(t, tuple.Text("different"))

	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())
}

func TestNextGreater(t *testing.T) {
	k, err := FromBytes([]byte{0x01, 0x02})
	require.NoError(t, err)

	ng, ok := k.NextGreater()
	require.True(t, ok)
	require.True(t, k.Compare(ng) < 0)
	require.Equal(t, []byte{0x01, 0x03}, ng.Bytes())

	allFF, err := FromBytes([]byte{0xFF, 0xFF})
	require.NoError(t, err)
	_, ok = allFF.NextGreater()
	require.False(t, ok)

	trailingFF, err := FromBytes([]byte{0x01, 0xFF})
	require.NoError(t, err)
	ng, ok = trailingFF.NextGreater()
	require.True(t, ok)
	require.Equal(t, []byte{0x02}, ng.Bytes())
}

func TestToRawWithinSlackAliasesNoCopy(t *testing.T) {
	k, err := FromBytes([]byte{0xAA, 0xBB})
	require.NoError(t, err)

	out := k.ToRaw([]byte("pre"))
	require.Equal(t, []byte{'p', 'r', 'e', 0xAA, 0xBB}, out)
}

func TestToRawBeyondSlackAllocatesFresh(t *testing.T) {
	k, err := FromBytes([]byte{0xAA, 0xBB})
	require.NoError(t, err)

	longPrefix := make([]byte, slack+1)
	for i := range longPrefix {
		longPrefix[i] = byte(i)
	}
	out := k.ToRaw(longPrefix)
	require.Equal(t, append(append([]byte{}, longPrefix...), 0xAA, 0xBB), out)
}

func TestFromBytesSharedInvalidatesToPrivateOrCopied(t *testing.T) {
	src := &testSource{}
	backing := []byte{0x01, 0x02, 0x03}
	k, err := FromBytesShared(backing, src)
	require.NoError(t, err)
	require.Equal(t, Shared, k.Mode())
	require.Equal(t, backing, k.Bytes())

	Notify(src)
	require.Equal(t, Private, k.Mode())
	require.Equal(t, []byte{0x01, 0x02, 0x03}, k.Bytes())

	// Mutating the original backing array must not affect the Key anymore.
	backing[0] = 0xFF
	require.Equal(t, byte(0x01), k.Bytes()[0])
}

func TestFromBytesSharedLargeInvalidatesToCopied(t *testing.T) {
	src := &testSource{}
	backing := make([]byte, slack+16)
	for i := range backing {
		backing[i] = byte(i)
	}
	k, err := FromBytesShared(backing, src)
	require.NoError(t, err)

	Notify(src)
	require.Equal(t, Copied, k.Mode())
	require.Equal(t, backing, k.Bytes())
}

func TestReleaseDetachesWithoutCopy(t *testing.T) {
	src := &testSource{}
	k, err := FromBytesShared([]byte{0x01}, src)
	require.NoError(t, err)

	k.Release()
	require.Equal(t, Shared, k.Mode())

	// A subsequent Notify must not invoke k's (already-cancelled) callback.
	require.NotPanics(t, func() { Notify(src) })
	require.Equal(t, Shared, k.Mode())
}
