// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package pool provides a growable byte buffer used by the tuple and key
// encoders. It is adapted from arloliu/mebo's internal/pool.ByteBuffer,
// regrown to the allocation policy this module's spec mandates: double
// capacity until a fixed additive cap, then grow additively, and always
// trim the final output to the bytes actually written.
package pool

// additiveGrowthCap is the point at which Buffer switches from doubling
// its capacity to growing it by a fixed additive increment, per spec.
const additiveGrowthCap = 512

// defaultSize is the initial capacity handed out by New.
const defaultSize = 64

// Buffer is a growable byte buffer with the doubling-then-additive growth
// policy described in spec.md §5. Unlike a sync.Pool-backed buffer it is
// not itself pooled; callers that want reuse hold on to a *Buffer and call
// Reset between uses, exactly as mebo's own ByteBuffer is used across an
// encoder's lifetime.
type Buffer struct {
	b []byte
}

// New returns a Buffer with a small initial capacity.
func New() *Buffer {
	return &Buffer{b: make([]byte, 0, defaultSize)}
}

// NewSize returns a Buffer with the given initial capacity.
func NewSize(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	return &Buffer{b: make([]byte, 0, size)}
}

// Bytes returns the buffer's current contents. The slice is valid until
// the next call to a mutating method.
func (buf *Buffer) Bytes() []byte { return buf.b }

// Len returns the number of bytes written so far.
func (buf *Buffer) Len() int { return len(buf.b) }

// Cap returns the buffer's current capacity.
func (buf *Buffer) Cap() int { return cap(buf.b) }

// Reset empties the buffer but retains its allocation for reuse.
func (buf *Buffer) Reset() { buf.b = buf.b[:0] }

// grow ensures the buffer has room for n additional bytes, following the
// doubling-then-additive policy.
func (buf *Buffer) grow(n int) {
	have := cap(buf.b) - len(buf.b)
	if have >= n {
		return
	}
	want := cap(buf.b)
	if want == 0 {
		want = defaultSize
	}
	for want-len(buf.b) < n {
		if want < additiveGrowthCap {
			want *= 2
		} else {
			want += additiveGrowthCap
		}
	}
	grown := make([]byte, len(buf.b), want)
	copy(grown, buf.b)
	buf.b = grown
}

// Write appends p to the buffer, growing it if necessary.
func (buf *Buffer) Write(p []byte) {
	buf.grow(len(p))
	buf.b = append(buf.b, p...)
}

// WriteByte appends a single byte to the buffer, growing it if necessary.
func (buf *Buffer) WriteByte(c byte) {
	buf.grow(1)
	buf.b = append(buf.b, c)
}

// AppendFunc calls fn with the buffer's current contents and appends
// whatever bytes fn added beyond that, through the buffer's own growth
// policy. fn is free to return a freshly allocated slice (as the plain
// []byte-returning codec helpers in tuple and key do); only the bytes
// past the original length are copied in, so fn can never alias or
// bypass the buffer's own allocation.
func (buf *Buffer) AppendFunc(fn func([]byte) ([]byte, error)) error {
	before := len(buf.b)
	extended, err := fn(buf.b)
	if err != nil {
		return err
	}
	buf.Write(extended[before:])
	return nil
}

// Trim truncates the buffer to pos bytes. Trim never grows the buffer; pos
// must be <= Len().
func (buf *Buffer) Trim(pos int) {
	buf.b = buf.b[:pos]
}

// Take returns the buffer's contents trimmed to exactly what was written,
// and detaches them from the Buffer (a subsequent Write starts from a
// fresh allocation). This is the final step of every encoder in this
// module: the growing allocation backing the Buffer is never handed to a
// caller directly until Take trims it to size.
func (buf *Buffer) Take() []byte {
	out := buf.b
	buf.b = nil
	return out
}
