// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rangeiter implements the range-bounded iterator state machine:
// a cursor that wraps a lower-level storage engine's cursor, applies
// prefix framing and closed/open lower/upper bounds, and decodes physical
// records into Key lists.
package rangeiter

// Cursor is the minimal engine collaborator consumed by Iterator, per
// spec.md §6. A Cursor is positioned by Engine.NewCursor and stepped by
// repeated calls to Next; Key and Value are only valid after a call to
// Next has returned true, and only until the following call to Next or
// Close.
//
// If the byte slices returned by Key and Value are backed by memory the
// engine may reclaim or reuse (a mapped page, a reused read buffer), the
// concrete Cursor implementation should also implement key.Source and
// call key.Notify on that memory before it is reclaimed.
type Cursor interface {
	// Next advances the cursor to the next physical record in its
	// configured direction and reports whether one was found.
	Next() (ok bool, err error)

	// Key returns the raw physical key of the record the cursor is
	// currently positioned on.
	Key() []byte

	// Value returns the raw value of the record the cursor is currently
	// positioned on.
	Value() []byte

	// Close releases the cursor and any resources (locks, open handles)
	// it holds. It is always called exactly once, even after an error.
	Close() error
}

// Engine is the storage collaborator an Iterator drives, per spec.md §6.
type Engine interface {
	// NewCursor returns a Cursor positioned so that its first Next()
	// call yields the first physical record at or after startKey
	// (reverse=false) or at or before startKey (reverse=true). A nil
	// startKey with reverse=true means "start from the last physical
	// record in the engine" — the fallback rangeiter uses when a
	// reverse scan's prefix is all 0xFF bytes and therefore has no
	// next_greater to seek from.
	NewCursor(startKey []byte, reverse bool) (Cursor, error)
}
