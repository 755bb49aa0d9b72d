// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package pagecache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/tuplekey/key"
)

// TestPageReleaseNotifiesSinksWithoutMmap exercises the borrow/invalidate
// wiring on Page without going through Cache.Get, so it needs no real file
// descriptor or mmap syscall: Release's unmap step is skipped whenever
// bytes is nil, which is exactly the state of a Page that was never mapped
// by the cache.
func TestPageReleaseNotifiesSinksWithoutMmap(t *testing.T) {
	p := &Page{id: 1}

	k, err := key.FromBytesShared([]byte{0x01, 0x02, 0x03}, p)
	require.NoError(t, err)
	require.Equal(t, key.Shared, k.Mode())

	require.NoError(t, p.Release())
	require.Equal(t, key.Private, k.Mode())
	require.Equal(t, []byte{0x01, 0x02, 0x03}, k.Bytes())
}

func TestPageKeyIsStableString(t *testing.T) {
	require.Equal(t, "42", pageKey(PageID(42)))
	require.NotEqual(t, pageKey(PageID(1)), pageKey(PageID(2)))
}
