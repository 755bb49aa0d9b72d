// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

// Escaped byte-string codec.
//
// Every body byte has its high bit set, so the body sorts above every
// element kind tag byte (which are all < 0x80) and above the 0x00 terminator.
// That lets a decoder find the end of a string by scanning for the first
// byte whose high bit is clear, without needing a length prefix, while
// keeping the whole encoding order-preserving.
//
// Bit-packing: a 7-bit shift register s (1..7) and trailer t accumulate the
// excess bits of each input byte as they're shifted out, one extra output
// byte flushed every 7 input bytes.

const byteStringTerminator = 0x00

// AppendByteString appends the escaped encoding of s, followed by the
// terminator byte, to buf.
func AppendByteString(buf []byte, s []byte) []byte {
	shift := uint(1)
	var trailer byte
	for _, o := range s {
		buf = append(buf, 0x80|trailer|(o>>shift))
		if shift < 7 {
			trailer = (o << (7 - shift)) & 0x7F
			shift++
		} else {
			buf = append(buf, 0x80|o)
			shift = 1
			trailer = 0
		}
	}
	if shift > 1 {
		buf = append(buf, 0x80|trailer)
	}
	return append(buf, byteStringTerminator)
}

// DecodeByteString decodes one escaped byte string (including its
// terminator) from the front of buf, returning the unescaped bytes and the
// number of input bytes consumed.
//
// Every body byte carries exactly 7 payload bits (its low 7 bits; the high
// bit is just the continuation marker), and the encoder never pads except
// with trailing zero bits in an incomplete final group. So decoding is
// just: concatenate the low 7 bits of every body byte into one bitstream,
// MSB-first, and re-chunk it into 8-bit bytes, dropping the final partial
// chunk (which is encoder padding, not data).
func DecodeByteString(buf []byte) (decoded []byte, n int, err error) {
	end, err := byteStringSpan(buf)
	if err != nil {
		return nil, 0, err
	}
	body := buf[:end-1] // drop terminator

	out := make([]byte, 0, len(body)*7/8)
	var acc uint64
	var bits uint
	for _, b := range body {
		acc = (acc << 7) | uint64(b&0x7F)
		bits += 7
		for bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>bits))
			acc &= (1 << bits) - 1 // drop consumed high bits so acc can't grow unbounded
		}
	}
	return out, end, nil
}

// byteStringSpan returns the length, in encoded bytes including the
// terminator, of the escaped byte string at the front of buf, without
// decoding its payload. This is the primitive SkipElement relies on.
func byteStringSpan(buf []byte) (int, error) {
	for i, b := range buf {
		if b&0x80 == 0 {
			if b != byteStringTerminator {
				return 0, ErrCorrupt("byte string: expected terminator 0x00, found 0x%02x at offset %d", b, i)
			}
			return i + 1, nil
		}
	}
	return 0, ErrTruncated("byte string: missing terminator")
}

// SkipByteString advances past one escaped byte string (including its
// terminator) at the front of buf, returning the number of bytes consumed.
func SkipByteString(buf []byte) (int, error) {
	return byteStringSpan(buf)
}
