// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tuple

import (
	"github.com/cockroachdb/tuplekey/internal/base"
)

// Element is a single typed value: null, bool, signed integer, blob, text,
// UUID or timestamp. It is a sum type over the seven kinds named in
// spec.md §3, emulated the idiomatic Go way — one struct, one Kind tag,
// and exactly one of the typed fields populated — rather than as a
// runtime-dispatched interface, per spec.md §9's design note.
type Element struct {
	kind Kind
	i    int64 // INT, NEG_INT
	bl   bool
	blob []byte
	text string
	uuid [16]byte
	ts   Timestamp
}

// Null returns the null element.
func Null() Element { return Element{kind: KindNull} }

// Bool returns a boolean element.
func Bool(v bool) Element { return Element{kind: KindBool, bl: v} }

// Int returns a signed integer element. Values are encoded as INT when
// non-negative, NEG_INT when negative; the Kind tag reflects that split
// immediately, so two Elements built from the same value (one directly,
// one by decoding) always compare Equal.
func Int(v int64) Element {
	if v < 0 {
		return Element{kind: KindNegInt, i: v}
	}
	return Element{kind: KindInt, i: v}
}

// Blob returns a binary-string element.
func Blob(v []byte) Element {
	cp := make([]byte, len(v))
	copy(cp, v)
	return Element{kind: KindBlob, blob: cp}
}

// Text returns a UTF-8 text element.
func Text(v string) Element { return Element{kind: KindText, text: v} }

// UUID returns a 16-byte UUID element. The bytes are taken as-is (network
// byte order, i.e. canonical big-endian RFC 4122, if the source is a UUID
// library); this package does not parse UUID text itself.
func UUID(v [16]byte) Element { return Element{kind: KindUUID, uuid: v} }

// Time returns a timestamp element. Moments before the Unix epoch are
// encoded as NEG_TIME, and the Kind tag reflects that split immediately,
// as Int does for NEG_INT.
func Time(v Timestamp) Element {
	if v.UnixMilli < 0 {
		return Element{kind: KindNegTime, ts: v}
	}
	return Element{kind: KindTime, ts: v}
}

// Kind reports the element's kind.
func (e Element) Kind() Kind { return e.kind }

// AsBool returns the element's boolean value and whether it was a BOOL.
func (e Element) AsBool() (bool, bool) { return e.bl, e.kind == KindBool }

// AsInt returns the element's integer value and whether it was an INT or
// NEG_INT.
func (e Element) AsInt() (int64, bool) {
	return e.i, e.kind == KindInt || e.kind == KindNegInt
}

// AsBlob returns the element's byte string and whether it was a BLOB.
func (e Element) AsBlob() ([]byte, bool) { return e.blob, e.kind == KindBlob }

// AsText returns the element's string and whether it was TEXT.
func (e Element) AsText() (string, bool) { return e.text, e.kind == KindText }

// AsUUID returns the element's raw bytes and whether it was a UUID.
func (e Element) AsUUID() ([16]byte, bool) { return e.uuid, e.kind == KindUUID }

// AsTime returns the element's timestamp and whether it was TIME or
// NEG_TIME.
func (e Element) AsTime() (Timestamp, bool) {
	return e.ts, e.kind == KindTime || e.kind == KindNegTime
}

// Equal reports whether two elements have identical kind and value.
func (e Element) Equal(o Element) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case KindNull:
		return true
	case KindBool:
		return e.bl == o.bl
	case KindInt, KindNegInt:
		return e.i == o.i
	case KindBlob:
		if len(e.blob) != len(o.blob) {
			return false
		}
		for i := range e.blob {
			if e.blob[i] != o.blob[i] {
				return false
			}
		}
		return true
	case KindText:
		return e.text == o.text
	case KindUUID:
		return e.uuid == o.uuid
	case KindTime, KindNegTime:
		return e.ts == o.ts
	default:
		return false
	}
}

// AppendElement encodes e onto buf and returns the extended slice.
func AppendElement(buf []byte, e Element) ([]byte, error) {
	switch e.kind {
	case KindNull:
		return append(buf, byte(KindNull)), nil

	case KindBool:
		buf = append(buf, byte(KindBool))
		if e.bl {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil

	case KindInt:
		if e.i < 0 {
			return appendSignedInt(buf, e.i)
		}
		buf = append(buf, byte(KindInt))
		return base.AppendVarint(buf, uint64(e.i), 0x00), nil

	case KindNegInt:
		return appendSignedInt(buf, e.i)

	case KindBlob:
		buf = append(buf, byte(KindBlob))
		return base.AppendByteString(buf, e.blob), nil

	case KindText:
		buf = append(buf, byte(KindText))
		return base.AppendByteString(buf, []byte(e.text)), nil

	case KindUUID:
		buf = append(buf, byte(KindUUID))
		return append(buf, e.uuid[:]...), nil

	case KindTime, KindNegTime:
		return appendTimestamp(buf, e.ts)

	default:
		return nil, base.ErrTypeMismatch("tuple: unsupported element kind %d", e.kind)
	}
}

// appendSignedInt dispatches a signed integer to INT (non-negative) or
// NEG_INT (negative), matching spec.md §4.3: the magnitude is stored in
// both cases, with NEG_INT's varint XORed by 0xFF so that larger
// magnitudes sort smaller.
func appendSignedInt(buf []byte, v int64) ([]byte, error) {
	if v >= 0 {
		buf = append(buf, byte(KindInt))
		return base.AppendVarint(buf, uint64(v), 0x00), nil
	}
	buf = append(buf, byte(KindNegInt))
	mag := uint64(-(v + 1)) + 1 // avoids overflow for v == math.MinInt64
	return base.AppendVarint(buf, mag, 0xFF), nil
}

// DecodeElement decodes one element from the front of buf, returning the
// element and the number of bytes consumed.
func DecodeElement(buf []byte) (Element, int, error) {
	if len(buf) == 0 {
		return Element{}, 0, base.ErrTruncated("tuple: empty input")
	}
	kind := Kind(buf[0])
	switch kind {
	case KindNull:
		return Null(), 1, nil

	case KindBool:
		if len(buf) < 2 {
			return Element{}, 0, base.ErrTruncated("tuple: bool needs 2 bytes")
		}
		return Bool(buf[1] != 0), 2, nil

	case KindInt:
		v, n, err := base.DecodeVarint(buf[1:], 0x00)
		if err != nil {
			return Element{}, 0, err
		}
		return Int(int64(v)), 1 + n, nil

	case KindNegInt:
		mag, n, err := base.DecodeVarint(buf[1:], 0xFF)
		if err != nil {
			return Element{}, 0, err
		}
		return Element{kind: KindNegInt, i: -int64(mag)}, 1 + n, nil

	case KindBlob:
		s, n, err := base.DecodeByteString(buf[1:])
		if err != nil {
			return Element{}, 0, err
		}
		return Blob(s), 1 + n, nil

	case KindText:
		s, n, err := base.DecodeByteString(buf[1:])
		if err != nil {
			return Element{}, 0, err
		}
		return Text(string(s)), 1 + n, nil

	case KindUUID:
		if len(buf) < 17 {
			return Element{}, 0, base.ErrTruncated("tuple: uuid needs 17 bytes")
		}
		var u [16]byte
		copy(u[:], buf[1:17])
		return UUID(u), 17, nil

	case KindTime, KindNegTime:
		return decodeTimestamp(buf)

	default:
		return Element{}, 0, base.ErrCorrupt("tuple: unknown element kind %d", buf[0])
	}
}

// SkipElement advances over one element at the front of buf without
// materializing its value, returning the number of bytes consumed. It
// must leave the cursor on the byte immediately after the element (or at
// end-of-buffer), and must agree exactly with DecodeElement about where
// that is.
func SkipElement(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, base.ErrTruncated("tuple: empty input")
	}
	kind := Kind(buf[0])
	switch kind {
	case KindNull:
		return 1, nil
	case KindBool:
		if len(buf) < 2 {
			return 0, base.ErrTruncated("tuple: bool needs 2 bytes")
		}
		return 2, nil
	case KindInt:
		n, err := base.SkipVarint(buf[1:], 0x00)
		return 1 + n, err
	case KindNegInt:
		n, err := base.SkipVarint(buf[1:], 0xFF)
		return 1 + n, err
	case KindBlob, KindText:
		n, err := base.SkipByteString(buf[1:])
		return 1 + n, err
	case KindUUID:
		if len(buf) < 17 {
			return 0, base.ErrTruncated("tuple: uuid needs 17 bytes")
		}
		return 17, nil
	case KindTime:
		n, err := base.SkipVarint(buf[1:], 0x00)
		return 1 + n, err
	case KindNegTime:
		n, err := base.SkipVarint(buf[1:], 0xFF)
		return 1 + n, err
	default:
		return 0, base.ErrCorrupt("tuple: unknown element kind %d", buf[0])
	}
}
