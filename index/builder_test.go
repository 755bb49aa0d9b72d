// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package index_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/tuplekey/index"
	"github.com/cockroachdb/tuplekey/key"
	"github.com/cockroachdb/tuplekey/tuple"
)

func byName(value []byte) ([]tuple.Tuple, error) {
	return []tuple.Tuple{{tuple.Text(string(value))}}, nil
}

func byTag(value []byte) ([]tuple.Tuple, error) {
	// Pretends value is a comma-joined tag list, producing one index
	// entry per tag.
	var out []tuple.Tuple
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			if i > start {
				out = append(out, tuple.Tuple{tuple.Text(string(value[start:i]))})
			}
			start = i + 1
		}
	}
	return out, nil
}

func TestBuildComposesPrefixValueSepParent(t *testing.T) {
	parent, err := key.FromTuple(tuple.Tuple{tuple.Int(42)})
	require.NoError(t, err)

	specs := []index.Spec{
		{Name: "by_name", Prefix: []byte("N"), Extractor: byName},
	}
	entries, err := index.Build(specs, parent, []byte("alice"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "by_name", entries[0].Index)

	nameKey, err := key.FromTuple(tuple.Tuple{tuple.Text("alice")})
	require.NoError(t, err)

	want := append([]byte("N"), nameKey.Bytes()...)
	want = append(want, byte(tuple.KindSep))
	want = append(want, parent.Bytes()...)
	require.Equal(t, want, entries[0].Key.Bytes())
}

func TestBuildMultiValuedExtractorPreservesOrder(t *testing.T) {
	parent, err := key.FromTuple(tuple.Tuple{tuple.Int(1)})
	require.NoError(t, err)

	specs := []index.Spec{
		{Name: "by_tag", Prefix: []byte("T"), Extractor: byTag},
	}
	entries, err := index.Build(specs, parent, []byte("red,green,blue"))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var tags []string
	for _, e := range entries {
		require.Equal(t, "by_tag", e.Index)
		// The entry key begins with the raw index prefix, so strip it and
		// decode the index value up to the SEP byte.
		tup, _, ok, err := tuple.Unpack([]byte("T"), e.Key.Bytes())
		require.NoError(t, err)
		require.True(t, ok)
		require.Greater(t, len(tup), 0)
		v, ok := tup[0].AsText()
		require.True(t, ok)
		tags = append(tags, v)
	}
	require.Equal(t, []string{"red", "green", "blue"}, tags)
}

func TestBuildMultipleSpecsInOrder(t *testing.T) {
	parent, err := key.FromTuple(tuple.Tuple{tuple.Int(7)})
	require.NoError(t, err)

	specs := []index.Spec{
		{Name: "by_name", Prefix: []byte("N"), Extractor: byName},
		{Name: "by_tag", Prefix: []byte("T"), Extractor: byTag},
	}
	entries, err := index.Build(specs, parent, []byte("bob"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "by_name", entries[0].Index)
	require.Equal(t, "by_tag", entries[1].Index)
}

func TestBuildExtractorErrorPropagates(t *testing.T) {
	parent, err := key.FromTuple(tuple.Tuple{tuple.Int(1)})
	require.NoError(t, err)

	broken := func([]byte) ([]tuple.Tuple, error) {
		return nil, errors.New("extractor: boom")
	}
	specs := []index.Spec{{Name: "broken", Prefix: []byte("B"), Extractor: broken}}
	_, err = index.Build(specs, parent, nil)
	require.Error(t, err)
}
