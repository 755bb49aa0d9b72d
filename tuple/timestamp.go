// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tuple

import (
	"time"

	"github.com/cockroachdb/tuplekey/internal/base"
)

// utcOffsetShift biases the 15-minute UTC offset slot into an unsigned
// 7-bit range, spec.md §6.
const utcOffsetShift = 64

// secondsPerOffsetStep is the granularity at which UTC offsets are stored.
const secondsPerOffsetStep = 15 * 60

// Timestamp is a moment in time plus a UTC offset in whole multiples of 15
// minutes, per spec.md §3/§6.
type Timestamp struct {
	// UnixMilli is milliseconds since the Unix epoch, possibly negative.
	UnixMilli int64
	// OffsetSeconds is the UTC offset, a multiple of 900.
	OffsetSeconds int32
}

// FromTime builds a Timestamp from a time.Time, using whatever zone offset
// the value carries. Go's time.Time cannot represent "no zone", so a value
// whose Location is exactly time.UTC is treated as zone-less: FromTime
// re-expresses it in time.Local and records the local offset. Any other
// Location's offset is recorded as is.
func FromTime(t time.Time) Timestamp {
	if t.Location() == time.UTC {
		t = t.In(time.Local)
	}
	_, offset := t.Zone()
	ms := t.Unix()*1000 + int64(t.Nanosecond())/int64(time.Millisecond)
	return Timestamp{UnixMilli: ms, OffsetSeconds: int32(offset)}
}

// Go reconstructs a time.Time from the Timestamp, in a fixed zone carrying
// its stored offset.
func (ts Timestamp) Go() time.Time {
	loc := time.FixedZone("", int(ts.OffsetSeconds))
	sec := ts.UnixMilli / 1000
	ms := ts.UnixMilli % 1000
	if ms < 0 {
		ms += 1000
		sec--
	}
	return time.Unix(sec, ms*int64(time.Millisecond)).In(loc)
}

// appendTimestamp encodes ts as a TIME or NEG_TIME element, per spec.md §6:
// pack the offset into a 7-bit slot, fold it into a 71-bit-ish signed
// integer alongside the millisecond timestamp, and varint-encode the
// magnitude with the sign determining TIME vs NEG_TIME (mirroring
// appendSignedInt's NEG_INT convention).
func appendTimestamp(buf []byte, ts Timestamp) ([]byte, error) {
	steps := utcOffsetShift + ts.OffsetSeconds/secondsPerOffsetStep
	if steps < 0 || steps > 127 {
		return nil, base.ErrTypeMismatch(
			"tuple: utc offset %ds is out of the encodable +/-16h range", ts.OffsetSeconds)
	}
	val := ts.UnixMilli*128 + int64(steps)

	if val >= 0 {
		buf = append(buf, byte(KindTime))
		return base.AppendVarint(buf, uint64(val), 0x00), nil
	}
	buf = append(buf, byte(KindNegTime))
	mag := uint64(-(val + 1)) + 1
	return base.AppendVarint(buf, mag, 0xFF), nil
}

// decodeTimestamp decodes a TIME or NEG_TIME element from the front of
// buf.
func decodeTimestamp(buf []byte) (Element, int, error) {
	kind := Kind(buf[0])
	var val int64
	var n int
	switch kind {
	case KindTime:
		v, nn, err := base.DecodeVarint(buf[1:], 0x00)
		if err != nil {
			return Element{}, 0, err
		}
		val, n = int64(v), nn
	case KindNegTime:
		mag, nn, err := base.DecodeVarint(buf[1:], 0xFF)
		if err != nil {
			return Element{}, 0, err
		}
		val, n = -int64(mag), nn
	default:
		return Element{}, 0, base.ErrCorrupt("tuple: not a timestamp kind %d", buf[0])
	}

	steps := val % 128
	if steps < 0 {
		steps += 128
	}
	unixMilli := (val - steps) / 128
	offset := (int32(steps) - utcOffsetShift) * secondsPerOffsetStep

	return Element{
		kind: kind,
		ts:   Timestamp{UnixMilli: unixMilli, OffsetSeconds: offset},
	}, 1 + n, nil
}
