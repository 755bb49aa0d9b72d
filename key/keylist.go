// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package key

import (
	"github.com/cockroachdb/tuplekey/tuple"
)

// DecodeKeyList splits data on SEP boundaries (per spec.md §4.4's physical
// multi-key framing) and returns one Key per segment. An empty data slice
// yields a single empty Key, matching the invariant that a physical record
// always contains at least one key. If source is non-nil, each returned
// Key is Shared and borrows directly from data (which must remain valid,
// and must be Notify'd through source before it is reclaimed); otherwise
// each Key is a Private copy.
func DecodeKeyList(data []byte, source Source) ([]*Key, error) {
	var out []*Key
	pos := 0
	for {
		start := pos
		for pos < len(data) && tuple.Kind(data[pos]) != tuple.KindSep {
			n, err := tuple.SkipElement(data[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
		}
		seg := data[start:pos]
		k, err := decodeOneKey(seg, source)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
		if pos >= len(data) {
			return out, nil
		}
		pos++ // skip SEP
	}
}

func decodeOneKey(seg []byte, source Source) (*Key, error) {
	if source != nil {
		return FromBytesShared(seg, source)
	}
	return FromBytes(seg)
}
