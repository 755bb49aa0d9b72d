// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package memtable implements a deterministic, sorted in-memory
// rangeiter.Engine, the "external collaborator" spec.md §1 treats as out
// of scope for the codec core but which the range iterator needs
// something real to drive. It is not a production structure — no
// compaction, no durability — only a sorted slice, the minimum needed to
// exercise rangeiter.Iterator end to end.
package memtable

import (
	"bytes"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/tuplekey/rangeiter"
)

// Record is one physical (key, value) pair stored in a Memtable.
// Checksum covers Value the way the teacher's own sstable blocks are
// checksummed, even though this engine never persists anything — it
// exists so a corrupted-record test scenario has something concrete to
// corrupt.
type Record struct {
	Key      []byte
	Value    []byte
	Checksum uint64
}

func newRecord(key, value []byte) Record {
	cp := make([]byte, len(value))
	copy(cp, value)
	return Record{Key: key, Value: cp, Checksum: xxhash.Sum64(cp)}
}

// Verify reports whether r's stored checksum still matches its value.
func (r Record) Verify() bool {
	return xxhash.Sum64(r.Value) == r.Checksum
}

// Memtable is a sorted, in-memory rangeiter.Engine implementation.
type Memtable struct {
	records []Record
}

// New returns an empty Memtable.
func New() *Memtable {
	return &Memtable{}
}

// Put inserts or overwrites the record at key, maintaining sort order.
func (m *Memtable) Put(key, value []byte) {
	i := sort.Search(len(m.records), func(i int) bool {
		return bytes.Compare(m.records[i].Key, key) >= 0
	})
	rec := newRecord(append([]byte(nil), key...), value)
	if i < len(m.records) && bytes.Equal(m.records[i].Key, key) {
		m.records[i] = rec
		return
	}
	m.records = append(m.records, Record{})
	copy(m.records[i+1:], m.records[i:])
	m.records[i] = rec
}

// NewCursor implements rangeiter.Engine.
func (m *Memtable) NewCursor(startKey []byte, reverse bool) (rangeiter.Cursor, error) {
	if !reverse {
		i := sort.Search(len(m.records), func(i int) bool {
			return bytes.Compare(m.records[i].Key, startKey) >= 0
		})
		return &cursor{records: m.records, pos: i - 1, reverse: false}, nil
	}

	var i int
	if startKey == nil {
		i = len(m.records)
	} else {
		i = sort.Search(len(m.records), func(i int) bool {
			return bytes.Compare(m.records[i].Key, startKey) > 0
		})
	}
	return &cursor{records: m.records, pos: i, reverse: true}, nil
}

// cursor implements rangeiter.Cursor over a Memtable's snapshot slice.
// pos is the index of the record the cursor is currently positioned on,
// or the insertion point one step before the first Next() call.
type cursor struct {
	records []Record
	pos     int
	reverse bool
}

func (c *cursor) Next() (bool, error) {
	if !c.reverse {
		c.pos++
		if c.pos >= len(c.records) {
			return false, nil
		}
	} else {
		c.pos--
		if c.pos < 0 {
			return false, nil
		}
	}
	if !c.records[c.pos].Verify() {
		return false, errors.Newf("memtable: corrupt record at key %x", c.records[c.pos].Key)
	}
	return true, nil
}

func (c *cursor) Key() []byte   { return c.records[c.pos].Key }
func (c *cursor) Value() []byte { return c.records[c.pos].Value }
func (c *cursor) Close() error  { return nil }
