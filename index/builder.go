// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package index implements the index key builder described in spec.md
// §4.8: given a parent record's key and value, apply a set of named
// extractor functions to produce secondary index entries, composed the
// way a bucket-keyed storage layer lays out its secondary indexes —
// `prefix ‖ encode(index-value) ‖ SEP ‖ encode(parent-key)` — so that a
// range scan over one index prefix yields parent keys in index order.
package index

import (
	"github.com/cockroachdb/tuplekey/key"
	"github.com/cockroachdb/tuplekey/tuple"
)

// Extractor computes the index value(s) a parent record contributes to
// one index, given the record's value blob. It returns either a single
// tuple or several (for a multi-valued index, e.g. one entry per tag on
// a record); an extractor that produces no values returns an empty
// slice.
type Extractor func(value []byte) ([]tuple.Tuple, error)

// Spec names one secondary index: every value spec.Extractor produces is
// composed under spec.Prefix.
type Spec struct {
	Name      string
	Prefix    []byte
	Extractor Extractor
}

// Entry is one output of Build: a fully composed index key ready to be
// written to the engine under its own index prefix.
type Entry struct {
	Index string
	Key   *key.Key
}

// Build applies every Spec in specs, in order, to value, composing
// `prefix ‖ encode(index-value) ‖ SEP ‖ encode(parent-key)` for each
// index value an extractor returns. Within one extractor's output,
// entries are emitted in that output's order; across specs, in the
// order specs were given, per spec.md §4.8.
func Build(specs []Spec, parentKey *key.Key, value []byte) ([]Entry, error) {
	var out []Entry
	parentBytes := parentKey.Bytes()
	for _, spec := range specs {
		values, err := spec.Extractor(value)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			indexKey, err := key.FromTuple(v)
			if err != nil {
				return nil, err
			}
			entryBytes := make([]byte, 0, len(spec.Prefix)+len(indexKey.Bytes())+1+len(parentBytes))
			entryBytes = append(entryBytes, spec.Prefix...)
			entryBytes = append(entryBytes, indexKey.Bytes()...)
			entryBytes = append(entryBytes, byte(tuple.KindSep))
			entryBytes = append(entryBytes, parentBytes...)

			k, err := key.FromBytes(entryBytes)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Index: spec.Name, Key: k})
		}
	}
	return out, nil
}
