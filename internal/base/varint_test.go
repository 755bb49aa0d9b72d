// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 239, 240, 241, 242, 2286, 2287, 2288, 2289,
		67822, 67823, 67824, 67825,
		1<<24 - 1, 1 << 24, 1<<32 - 1, 1 << 32,
		1<<56 - 1, 1 << 56, math.MaxUint64,
	}
	for _, mask := range []byte{0x00, 0xFF} {
		for _, v := range values {
			buf := AppendVarint(nil, v, mask)
			got, n, err := DecodeVarint(buf, mask)
			require.NoError(t, err)
			require.Equal(t, len(buf), n)
			require.Equal(t, v, got)

			skipped, err := SkipVarint(buf, mask)
			require.NoError(t, err)
			require.Equal(t, len(buf), skipped)
		}
	}
}

func TestVarintWidths(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{240, 1},
		{241, 2},
		{2287, 2},
		{2288, 3},
		{67823, 3},
		{67824, 4},
		{1<<24 - 1, 4},
		{1 << 24, 5},
		{1 << 56, 9},
	}
	for _, c := range cases {
		got := len(AppendVarint(nil, c.v, 0x00))
		require.Equalf(t, c.want, got, "v=%d", c.v)
	}
}

func TestVarintOrderPreserving(t *testing.T) {
	values := []uint64{0, 1, 240, 241, 2287, 2288, 67823, 67824, 1 << 24, 1 << 40, math.MaxUint64}
	for i := 1; i < len(values); i++ {
		a := AppendVarint(nil, values[i-1], 0x00)
		b := AppendVarint(nil, values[i], 0x00)
		require.Truef(t, lessBytes(a, b), "expected encode(%d) < encode(%d)", values[i-1], values[i])
	}
}

func TestVarintTruncated(t *testing.T) {
	full := AppendVarint(nil, 1<<40, 0x00)
	for i := 0; i < len(full); i++ {
		_, _, err := DecodeVarint(full[:i], 0x00)
		require.Error(t, err)
		kind, ok := ErrorKind(err)
		require.True(t, ok)
		require.Equal(t, KindTruncated, kind)
	}
}

func lessBytes(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
