// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds the low-level primitives shared by the tuple codec,
// the Key value type and the range iterator: error kinds, the
// order-preserving varint codec and the escaped byte-string codec.
package base

import (
	"github.com/cockroachdb/errors"
)

// Kind classifies the errors this module can produce. It is exported so
// callers can distinguish failure modes with ErrorKind without depending on
// specific error values.
type Kind int

// The error kinds named in the wire-format and Key-object specification.
const (
	_ Kind = iota
	KindTruncated
	KindCorrupt
	KindTypeMismatch
	KindOutOfRange
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindCorrupt:
		return "corrupt"
	case KindTypeMismatch:
		return "type mismatch"
	case KindOutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// kindError wraps a Kind so errors.As/errors.Is can recover it from an
// arbitrary wrapped error chain.
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }
func (e *kindError) Cause() error  { return e.err }

// ErrorKind extracts the Kind from err if err (or something it wraps) was
// produced by this package, and reports whether it found one.
func ErrorKind(err error) (Kind, bool) {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind, true
	}
	return 0, false
}

// ErrTruncated reports that a decoder needed more bytes than remained in
// the input.
func ErrTruncated(format string, args ...interface{}) error {
	return &kindError{kind: KindTruncated, err: errors.Newf("tuplekey: truncated: "+format, args...)}
}

// ErrCorrupt reports an unknown element tag, or a key that would exceed the
// 65535-byte maximum.
func ErrCorrupt(format string, args ...interface{}) error {
	return &kindError{kind: KindCorrupt, err: errors.Newf("tuplekey: corrupt: "+format, args...)}
}

// ErrTypeMismatch reports an encode of an unsupported Go value, or an
// ordered comparison against an unsupported type.
func ErrTypeMismatch(format string, args ...interface{}) error {
	return &kindError{kind: KindTypeMismatch, err: errors.Newf("tuplekey: type mismatch: "+format, args...)}
}

// ErrOutOfRange reports a Key index past the end of the tuple, or a
// negative index that is still negative after normalization.
func ErrOutOfRange(format string, args ...interface{}) error {
	return &kindError{kind: KindOutOfRange, err: errors.Newf("tuplekey: out of range: "+format, args...)}
}

// MaxKeySize is the largest encoded Key the codec will produce or accept,
// per spec.
const MaxKeySize = 65535

// AssertTrue panics with an assertion failure, in the teacher's idiom of
// surfacing violated internal invariants (conditions the caller cannot
// trigger through the public API) as assertion errors rather than as
// ordinary returned errors.
func AssertTrue(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(errors.AssertionFailedf(format, args...))
	}
}
