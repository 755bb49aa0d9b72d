// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tuple

import (
	"bytes"

	"github.com/cockroachdb/tuplekey/internal/base"
	"github.com/cockroachdb/tuplekey/internal/pool"
)

// Tuple is an ordered, finite sequence of elements, spec.md §3. An empty
// tuple is valid and sorts before any non-empty tuple.
type Tuple []Element

// Equal reports whether two tuples have the same elements in the same
// order.
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Pack encodes prefix followed by every element of t, with no inter-element
// separator (elements are self-delimiting by tag), per spec.md §4.4.
func Pack(prefix []byte, t Tuple) ([]byte, error) {
	buf := pool.NewSize(len(prefix) + 16)
	buf.Write(prefix)
	for _, e := range t {
		if err := appendElementToBuffer(buf, e); err != nil {
			return nil, err
		}
	}
	return buf.Take(), nil
}

// PackList encodes prefix followed by each tuple in list, separated by a
// single SEP byte between tuples (never before the first), per spec.md
// §4.4.
func PackList(prefix []byte, list []Tuple) ([]byte, error) {
	buf := pool.NewSize(len(prefix) + 16)
	buf.Write(prefix)
	for i, t := range list {
		if i > 0 {
			buf.WriteByte(byte(KindSep))
		}
		for _, e := range t {
			if err := appendElementToBuffer(buf, e); err != nil {
				return nil, err
			}
		}
	}
	return buf.Take(), nil
}

func appendElementToBuffer(buf *pool.Buffer, e Element) error {
	return buf.AppendFunc(func(b []byte) ([]byte, error) { return AppendElement(b, e) })
}

// Unpack strips prefix from data and decodes the remaining bytes as a
// single tuple, stopping at end-of-buffer or at a SEP byte (which is
// consumed but not included in the result). If data does not begin with
// prefix, Unpack returns an empty tuple and ok=false (PrefixMismatch,
// spec.md §7, signalled rather than raised as an error).
func Unpack(prefix []byte, data []byte) (t Tuple, rest []byte, ok bool, err error) {
	if len(data) < len(prefix) || !bytes.Equal(data[:len(prefix)], prefix) {
		return nil, nil, false, nil
	}
	data = data[len(prefix):]
	for len(data) > 0 {
		if Kind(data[0]) == KindSep {
			return t, data[1:], true, nil
		}
		e, n, err := DecodeElement(data)
		if err != nil {
			return nil, nil, false, err
		}
		t = append(t, e)
		data = data[n:]
	}
	return t, nil, true, nil
}

// UnpackList repeats Unpack, yielding one tuple per SEP-framed segment of
// data until exhaustion, per spec.md §4.4's `unpacks`.
func UnpackList(prefix []byte, data []byte) ([]Tuple, error) {
	t, rest, ok, err := Unpack(prefix, data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	out := []Tuple{t}
	for rest != nil {
		var next Tuple
		var more bool
		next, rest, more, err = unpackSegment(rest)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		out = append(out, next)
	}
	return out, nil
}

// unpackSegment decodes one already-prefix-stripped, SEP-framed tuple
// segment, used by UnpackList for every tuple after the first (which
// already had its collection prefix stripped by Unpack).
func unpackSegment(data []byte) (t Tuple, rest []byte, ok bool, err error) {
	for len(data) > 0 {
		if Kind(data[0]) == KindSep {
			return t, data[1:], true, nil
		}
		e, n, err := DecodeElement(data)
		if err != nil {
			return nil, nil, false, err
		}
		t = append(t, e)
		data = data[n:]
	}
	return t, nil, true, nil
}

// SkipTuple advances over one SEP-framed tuple segment at the front of
// data without materializing it, returning the number of bytes consumed
// (including the trailing SEP, if any) and whether a SEP terminated it.
func SkipTuple(data []byte) (n int, sawSep bool, err error) {
	pos := 0
	for pos < len(data) {
		if Kind(data[pos]) == KindSep {
			return pos + 1, true, nil
		}
		skip, err := SkipElement(data[pos:])
		if err != nil {
			return 0, false, err
		}
		pos += skip
	}
	return pos, false, nil
}

// Compare orders two tuples lexicographically by encoded element bytes,
// per spec.md §3/§8: component type breaks ties via the Kind tag byte
// ordering (baked into the codec), so comparing the encoded forms is
// equivalent to, and cheaper than, comparing decoded elements pairwise.
func Compare(a, b Tuple) (int, error) {
	ab, err := Pack(nil, a)
	if err != nil {
		return 0, err
	}
	bb, err := Pack(nil, b)
	if err != nil {
		return 0, err
	}
	return bytes.Compare(ab, bb), nil
}
