// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package tuple implements the order-preserving element and tuple codec:
// the wire format that maps a sequence of heterogeneous typed elements
// onto a flat, order-preserving byte string.
package tuple

// Kind is the one-byte tag identifying an element's type in the wire
// format. These numeric values are part of the on-disk format and must
// never change; the gaps between them are deliberate so that typed tuples
// whose first element differs in type still sort correctly (integers sort
// before blobs, text sorts after blobs, times sort after UUIDs, and so
// on).
type Kind byte

// The element kinds, spec.md §3.
const (
	KindNull    Kind = 15
	KindNegInt  Kind = 20
	KindInt     Kind = 21
	KindBool    Kind = 30
	KindBlob    Kind = 40
	KindText    Kind = 50
	KindUUID    Kind = 90
	KindNegTime Kind = 91
	KindTime    Kind = 92
	KindSep     Kind = 102
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNegInt:
		return "neg_int"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindBlob:
		return "blob"
	case KindText:
		return "text"
	case KindUUID:
		return "uuid"
	case KindNegTime:
		return "neg_time"
	case KindTime:
		return "time"
	case KindSep:
		return "sep"
	default:
		return "unknown"
	}
}
