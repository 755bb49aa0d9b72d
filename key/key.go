// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package key implements the Key value type: an immutable, hashable,
// orderable, sliceable handle over the byte encoding of a tuple, plus the
// borrow/invalidate protocol that lets a Key share memory owned by a
// database page buffer, per spec.md §4.5-§4.6.
package key

import (
	"bytes"
	"encoding/hex"

	"github.com/cockroachdb/tuplekey/internal/base"
	"github.com/cockroachdb/tuplekey/tuple"
)

// Mode identifies which of the three storage modes a Key's bytes
// currently live in, per spec.md §3.
type Mode int

// The three storage modes.
const (
	// Private bytes live in the same allocation as the Key header.
	Private Mode = iota
	// Shared bytes live in an external buffer owned by a Source.
	Shared
	// Copied bytes live in a heap allocation separate from the header,
	// grown on invalidation of a formerly-Shared Key.
	Copied
)

func (m Mode) String() string {
	switch m {
	case Private:
		return "private"
	case Shared:
		return "shared"
	case Copied:
		return "copied"
	default:
		return "unknown"
	}
}

// slack is the fixed headroom reserved before a Private/Copied Key's data,
// so that ToRaw can write a short prefix in place without reallocating,
// per spec.md §4.5/§9.
const slack = 8

// Key is an immutable handle over the byte encoding of a tuple. The zero
// Key is not valid; construct one with FromTuple, FromBytes, FromHex or
// FromBytesShared.
type Key struct {
	mode Mode

	// bytes is the Key's byte image. For Private/Copied it aliases
	// raw[off:off+len(bytes)]; for Shared it aliases the Source's memory
	// directly.
	bytes []byte

	// raw and off are only meaningful for Private/Copied: raw is the
	// owned backing allocation (including the leading slack region), and
	// off is the offset within raw at which bytes begins.
	raw []byte
	off int

	// source and link are only meaningful for Shared.
	source Source
	link   sinkNode
}

func newOwned(mode Mode, data []byte) (*Key, error) {
	if len(data) > base.MaxKeySize {
		return nil, base.ErrCorrupt("key: %d bytes exceeds the %d byte maximum", len(data), base.MaxKeySize)
	}
	raw := make([]byte, slack+len(data))
	copy(raw[slack:], data)
	return &Key{mode: mode, raw: raw, off: slack, bytes: raw[slack : slack+len(data)]}, nil
}

// FromTuple encodes t and returns a Private Key. The empty tuple is
// allowed and encodes to the empty Key.
func FromTuple(t tuple.Tuple) (*Key, error) {
	data, err := tuple.Pack(nil, t)
	if err != nil {
		return nil, err
	}
	return newOwned(Private, data)
}

// FromBytes copies b and returns a Private Key with no associated Source.
func FromBytes(b []byte) (*Key, error) {
	return newOwned(Private, b)
}

// FromHex decodes hex-encoded s and returns a Private Key.
func FromHex(s string) (*Key, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, base.ErrCorrupt("key: invalid hex: %v", err)
	}
	return newOwned(Private, b)
}

// FromBytesShared returns a Shared Key borrowing b directly from source.
// The Key subscribes to source's invalidation list; when source notifies,
// the Key synchronously copies b out and transitions to Private (if it
// fits within the fixed slack) or Copied.
func FromBytesShared(b []byte, source Source) (*Key, error) {
	if len(b) > base.MaxKeySize {
		return nil, base.ErrCorrupt("key: %d bytes exceeds the %d byte maximum", len(b), base.MaxKeySize)
	}
	k := &Key{mode: Shared, bytes: b, source: source}
	Listen(source, &k.link, k.onInvalidate)
	return k, nil
}

// onInvalidate is the Sink callback registered by FromBytesShared. It
// must run synchronously and complete before the caller's Notify returns,
// since the Source's backing memory may be reclaimed immediately after.
func (k *Key) onInvalidate(Source) {
	data := k.bytes
	raw := make([]byte, slack+len(data))
	copy(raw[slack:], data)
	if len(data) <= slack {
		k.mode = Private
	} else {
		k.mode = Copied
	}
	k.raw = raw
	k.off = slack
	k.bytes = raw[slack : slack+len(data)]
	k.source = nil
}

// Release detaches a Shared Key from its Source early, without copying
// (the Key becomes unusable for further borrowing but its existing bytes
// slice is left aliasing the source — callers that want the bytes to
// survive the source's reclaim must use onInvalidate's path instead, i.e.
// simply let Notify run). Release exists for the case where the caller
// knows it will never read this Key again and wants to shrink the
// source's sink list before Notify, e.g. when discarding a KeyList early.
func (k *Key) Release() {
	if k.mode == Shared {
		Cancel(k.source, &k.link)
		k.source = nil
	}
}

// Mode reports the Key's current storage mode.
func (k *Key) Mode() Mode { return k.mode }

// Bytes returns the Key's raw byte image. The slice must not be mutated by
// the caller, and is only valid for as long as the Key's storage mode
// guarantees (forever for Private/Copied; until the Source invalidates,
// for Shared).
func (k *Key) Bytes() []byte { return k.bytes }

// Len returns the number of elements in the Key's tuple, computed via
// successive SkipElement calls.
func (k *Key) Len() (int, error) {
	data := k.bytes
	pos, n := 0, 0
	for pos < len(data) {
		skip, err := tuple.SkipElement(data[pos:])
		if err != nil {
			return 0, err
		}
		pos += skip
		n++
	}
	return n, nil
}

// At decodes and returns the i'th element of the Key's tuple. A negative i
// is resolved against the tuple's length; OutOfRange if it is still
// negative, or if i is past the end.
func (k *Key) At(i int) (tuple.Element, error) {
	data := k.bytes
	if i < 0 {
		n, err := k.Len()
		if err != nil {
			return tuple.Element{}, err
		}
		i += n
		if i < 0 {
			return tuple.Element{}, base.ErrOutOfRange("key: negative index still negative after normalization")
		}
	}
	pos := 0
	for j := 0; j < i; j++ {
		if pos >= len(data) {
			return tuple.Element{}, base.ErrOutOfRange("key: index %d out of range", i)
		}
		skip, err := tuple.SkipElement(data[pos:])
		if err != nil {
			return tuple.Element{}, err
		}
		pos += skip
	}
	if pos >= len(data) {
		return tuple.Element{}, base.ErrOutOfRange("key: index %d out of range", i)
	}
	e, _, err := tuple.DecodeElement(data[pos:])
	return e, err
}

// Slice materializes elements [a:b) of the Key's tuple and re-packs them
// as a fresh Private Key. Negative a/b are resolved against the tuple's
// length, so -1 names the last element.
func (k *Key) Slice(a, b int) (*Key, error) {
	n, err := k.Len()
	if err != nil {
		return nil, err
	}
	if a < 0 {
		a += n
	}
	if b < 0 {
		b += n
	}
	if a < 0 || b > n || a > b {
		return nil, base.ErrOutOfRange("key: slice [%d:%d] out of range for %d elements", a, b, n)
	}

	data := k.bytes
	pos := 0
	for j := 0; j < a; j++ {
		skip, err := tuple.SkipElement(data[pos:])
		if err != nil {
			return nil, err
		}
		pos += skip
	}
	var elems tuple.Tuple
	for j := a; j < b; j++ {
		e, skip, err := tuple.DecodeElement(data[pos:])
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		pos += skip
	}
	return FromTuple(elems)
}

// ConcatTuple returns a fresh Private Key whose tuple is k's tuple
// followed by t's elements.
func (k *Key) ConcatTuple(t tuple.Tuple) (*Key, error) {
	data, err := tuple.Pack(k.bytes, t)
	if err != nil {
		return nil, err
	}
	return newOwned(Private, data)
}

// ConcatKey returns a fresh Private Key whose byte image is the
// concatenation of k's and o's byte images.
func (k *Key) ConcatKey(o *Key) (*Key, error) {
	data := make([]byte, 0, len(k.bytes)+len(o.bytes))
	data = append(data, k.bytes...)
	data = append(data, o.bytes...)
	return newOwned(Private, data)
}

// Compare orders k against o lexicographically by byte image.
func (k *Key) Compare(o *Key) int {
	return bytes.Compare(k.bytes, o.bytes)
}

// CompareTuple orders k against t by re-encoding t and comparing byte
// images; this is equivalent to the streaming element-by-element compare
// spec.md §4.5 describes (if k's bytes run out first it is less; if t's
// elements run out first while k has bytes left, k is greater), since the
// codec's own ordering guarantee (spec.md §8) makes the two equivalent.
func (k *Key) CompareTuple(t tuple.Tuple) (int, error) {
	data, err := tuple.Pack(nil, t)
	if err != nil {
		return 0, err
	}
	return bytes.Compare(k.bytes, data), nil
}

// Equal reports whether k and o have identical byte images.
func (k *Key) Equal(o *Key) bool {
	return bytes.Equal(k.bytes, o.bytes)
}

// EqualTuple reports whether k's byte image equals t's encoding.
func (k *Key) EqualTuple(t tuple.Tuple) (bool, error) {
	c, err := k.CompareTuple(t)
	return c == 0, err
}

// Hash returns an FNV-like multiply-xor hash of k's byte image (multiplier
// 1000003, initial accumulator 0, XOR applied after each multiply),
// matching spec.md §4.5's testable property that equal Keys hash equal.
func (k *Key) Hash() uint64 {
	var h uint64
	for _, b := range k.bytes {
		h = h*1000003 ^ uint64(b)
	}
	return h
}

// NextGreater returns the shortest Key strictly greater than k but less
// than any Key that strictly extends k, per spec.md §4.5/GLOSSARY. It
// fails (ok=false, NoNextGreater per spec.md §7) if k's bytes are all
// 0xFF.
func (k *Key) NextGreater() (result *Key, ok bool) {
	data := k.bytes
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] < 0xFF {
			out := make([]byte, i+1)
			copy(out, data[:i+1])
			out[i]++
			nk, err := newOwned(Private, out)
			if err != nil {
				// out is never longer than k's own already-validated
				// bytes, so this cannot happen.
				panic(err)
			}
			return nk, true
		}
	}
	return nil, false
}

// ToRaw returns prefix ‖ k.Bytes(). If prefix fits within the Key's
// reserved slack and k is Private or Copied, the returned slice aliases
// the Key's own backing allocation (no copy) — but that means it is only
// valid until the next call to ToRaw on the same Key with a different
// prefix, which overwrites the same slack region. Callers that need the
// result to outlive a subsequent ToRaw call must copy it.
func (k *Key) ToRaw(prefix []byte) []byte {
	if (k.mode == Private || k.mode == Copied) && len(prefix) <= k.off {
		start := k.off - len(prefix)
		copy(k.raw[start:k.off], prefix)
		return k.raw[start : k.off+len(k.bytes)]
	}
	out := make([]byte, len(prefix)+len(k.bytes))
	copy(out, prefix)
	copy(out[len(prefix):], k.bytes)
	return out
}
