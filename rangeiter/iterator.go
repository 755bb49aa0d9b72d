// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rangeiter

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/tuplekey/internal/base"
	"github.com/cockroachdb/tuplekey/internal/metrics"
	"github.com/cockroachdb/tuplekey/key"
)

// Predicate names one of the four comparisons a bound can impose, per
// spec.md §4.7. A bound's predicate reads as "bound-key OP current-key";
// iteration continues for as long as that relation holds.
type Predicate int

// The four bound predicates.
const (
	LT Predicate = iota
	LE
	GT
	GE
)

func (p Predicate) String() string {
	switch p {
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	default:
		return "?"
	}
}

// bound pairs a Key with the predicate used to test a candidate key
// against it.
type bound struct {
	key  *key.Key
	pred Predicate
}

// satisfies reports whether current continues iteration under b, i.e.
// whether "b.key b.pred current" holds.
func (b *bound) satisfies(current *key.Key) bool {
	if b == nil {
		return true
	}
	cmp := current.Compare(b.key) // current - b.key, sign-wise
	switch b.pred {
	case LE: // b.key <= current
		return cmp >= 0
	case LT: // b.key < current
		return cmp > 0
	case GE: // b.key >= current
		return cmp <= 0
	case GT: // b.key > current
		return cmp < 0
	default:
		return false
	}
}

// Iterator is a range-bounded cursor over an Engine, per spec.md §4.7. The
// zero Iterator is not valid; construct one with New.
type Iterator struct {
	engine Engine
	prefix []byte

	lo, hi *bound
	stop   *bound
	max    int64 // -1 means unbounded

	cur     Cursor
	rawKey  []byte
	rawVal  []byte
	started bool
	keys    []*key.Key

	done bool
	err  error

	logger  base.Logger
	metrics *metrics.Metrics
}

// New returns an unconfigured Iterator over engine, namespaced to prefix.
// prefix must be non-empty: per spec.md §9's open-issue resolution, an
// empty prefix is rejected at construction rather than only when Reverse
// is later called, since Reverse's priming step depends on
// next_greater(prefix) being defined.
func New(engine Engine, prefix []byte) (*Iterator, error) {
	if len(prefix) == 0 {
		return nil, errors.New("rangeiter: prefix must be non-empty")
	}
	p := make([]byte, len(prefix))
	copy(p, prefix)
	return &Iterator{engine: engine, prefix: p, max: -1}, nil
}

// SetLo bounds the iteration to keys at or after (closed=true) or
// strictly after (closed=false) lo.
func (it *Iterator) SetLo(lo *key.Key, closed bool) {
	pred := LT
	if closed {
		pred = LE
	}
	it.lo = &bound{key: lo, pred: pred}
}

// SetHi bounds the iteration to keys at or before (closed=true) or
// strictly before (closed=false) hi.
func (it *Iterator) SetHi(hi *key.Key, closed bool) {
	pred := GT
	if closed {
		pred = GE
	}
	it.hi = &bound{key: hi, pred: pred}
}

// SetPrefix restricts iteration to [k, next_greater(k)), i.e. every key
// that has k as a byte prefix.
func (it *Iterator) SetPrefix(k *key.Key) error {
	next, ok := k.NextGreater()
	if !ok {
		return errors.New("rangeiter: set_prefix key has no next_greater (all 0xFF bytes)")
	}
	it.lo = &bound{key: k, pred: LE}
	it.hi = &bound{key: next, pred: GT}
	return nil
}

// SetExact restricts iteration to physical records whose decoded key list
// contains exactly k.
func (it *Iterator) SetExact(k *key.Key) {
	it.lo = &bound{key: k, pred: LE}
	it.hi = &bound{key: k, pred: GE}
}

// SetMax limits the number of records Next will yield. n < 0 means
// unbounded (the default).
func (it *Iterator) SetMax(n int64) {
	it.max = n
}

// SetLogger attaches a Logger that records prefix mismatches and corrupt
// records encountered while decoding. A nil logger (the default) disables
// logging.
func (it *Iterator) SetLogger(l base.Logger) {
	it.logger = l
}

// SetMetrics attaches a Metrics that counts records decoded, prefix
// mismatches and corrupt records encountered while decoding. A nil
// metrics (the default) disables counting.
func (it *Iterator) SetMetrics(m *metrics.Metrics) {
	it.metrics = m
}

// Key returns the first decoded Key of the current record.
func (it *Iterator) Key() *key.Key {
	if len(it.keys) == 0 {
		return nil
	}
	return it.keys[0]
}

// Keys returns every decoded Key of the current physical record, in
// order.
func (it *Iterator) Keys() []*key.Key { return it.keys }

// Data returns the raw value of the current physical record.
func (it *Iterator) Data() []byte { return it.rawVal }

// Err returns the error that ended iteration, if any.
func (it *Iterator) Err() error { return it.err }

func (it *Iterator) finish(err error) {
	it.done = true
	it.err = err
	if it.cur != nil {
		_ = it.cur.Close()
		it.cur = nil
	}
	it.keys = nil
	it.rawVal = nil
}

// decodeCurrent verifies the cursor's current physical key starts with
// it.prefix and, if so, decodes the remainder into a KeyList sharing the
// cursor's Source (if the Cursor implements one), per spec.md §4.7's
// "decoding a physical record".
//
// ok=false with err=nil means the record is outside the collection
// (prefix mismatch) — a normal end-of-range signal, not an error.
func (it *Iterator) decodeCurrent() (ok bool, err error) {
	raw := it.cur.Key()
	if len(raw) < len(it.prefix) || !bytes.Equal(raw[:len(it.prefix)], it.prefix) {
		if it.metrics != nil {
			it.metrics.PrefixMismatches.Inc()
		}
		if it.logger != nil {
			it.logger.Infof("rangeiter: physical key %x outside prefix %x", raw, it.prefix)
		}
		return false, nil
	}
	var source key.Source
	if s, isSource := it.cur.(key.Source); isSource {
		source = s
	}
	keys, err := key.DecodeKeyList(raw[len(it.prefix):], source)
	if err != nil {
		if it.metrics != nil {
			it.metrics.CorruptRecords.Inc()
		}
		if it.logger != nil {
			it.logger.Errorf("rangeiter: corrupt record at key %x: %v", raw, err)
		}
		return false, err
	}
	if it.metrics != nil {
		it.metrics.RecordsDecoded.Inc()
	}
	it.rawKey = raw
	it.rawVal = it.cur.Value()
	it.keys = keys
	return true, nil
}

// step advances the underlying cursor once and decodes the resulting
// physical record. ok=false, err=nil means the range has ended (engine
// exhausted or prefix mismatch).
func (it *Iterator) step() (ok bool, err error) {
	more, err := it.cur.Next()
	if err != nil {
		if it.metrics != nil {
			it.metrics.CorruptRecords.Inc()
		}
		if it.logger != nil {
			it.logger.Errorf("rangeiter: engine cursor step failed: %v", err)
		}
		return false, err
	}
	if !more {
		return false, nil
	}
	return it.decodeCurrent()
}

// anyFails reports whether any key in it.keys fails b (used for the
// priming-time lo/hi adjustment loops and for the general stop test).
func anyFails(keys []*key.Key, b *bound) bool {
	for _, k := range keys {
		if !b.satisfies(k) {
			return true
		}
	}
	return false
}

// Forward primes the iterator for ascending iteration, per spec.md
// §4.7's forward().
func (it *Iterator) Forward() error {
	start := it.prefix
	if it.lo != nil {
		start = it.lo.key.ToRaw(it.prefix)
	}
	cur, err := it.engine.NewCursor(start, false)
	if err != nil {
		return err
	}
	it.cur = cur
	it.started = false
	it.stop = it.hi

	ok, err := it.step()
	if err != nil {
		it.finish(err)
		return err
	}
	if ok && it.lo != nil && anyFails(it.keys, it.lo) {
		// Landed exactly on an open lower bound; the engine's seek found
		// the bound key itself, which this iteration must not yield.
		ok, err = it.step()
		if err != nil {
			it.finish(err)
			return err
		}
	}
	if !ok {
		it.finish(err)
	}
	return nil
}

// Reverse primes the iterator for descending iteration, per spec.md
// §4.7's reverse().
func (it *Iterator) Reverse() error {
	var start []byte
	if it.hi != nil {
		start = it.hi.key.ToRaw(it.prefix)
	} else {
		prefixKey, err := key.FromBytes(it.prefix)
		if err != nil {
			return err
		}
		ng, hasNext := prefixKey.NextGreater()
		if !hasNext {
			// The prefix is all 0xFF bytes; there is no finite upper
			// bound to seek from, so the failure semantics in spec.md
			// §4.7 apply: run until the engine itself is exhausted by
			// starting descent from an unbounded position.
			start = nil
		} else {
			start = ng.Bytes()
		}
	}

	cur, err := it.engine.NewCursor(start, true)
	if err != nil {
		return err
	}
	it.cur = cur
	it.started = false
	it.stop = it.lo

	ok, err := it.step()
	for ok && it.hi != nil && anyFails(it.keys, it.hi) {
		ok, err = it.step()
		if err != nil {
			break
		}
	}
	if err != nil {
		it.finish(err)
		return err
	}
	if !ok {
		it.finish(nil)
	}
	return nil
}

// Next advances the iterator and reports whether a record is available.
// On the first call after priming it reuses the record obtained during
// Forward/Reverse; subsequent calls step the underlying cursor, per
// spec.md §4.7's next().
func (it *Iterator) Next() (bool, error) {
	if it.done {
		return false, it.err
	}
	if it.max == 0 {
		it.finish(nil)
		return false, nil
	}
	if it.max > 0 {
		it.max--
	}

	if !it.started {
		it.started = true
	} else {
		ok, err := it.step()
		if err != nil {
			it.finish(err)
			return false, err
		}
		if !ok {
			it.finish(nil)
			return false, nil
		}
	}

	if it.stop != nil && anyFails(it.keys, it.stop) {
		it.finish(nil)
		return false, nil
	}
	return true, nil
}

// Close releases the iterator's underlying engine cursor, if any. It is
// safe to call multiple times and after Next has already ended the
// iteration.
func (it *Iterator) Close() error {
	if it.cur != nil {
		err := it.cur.Close()
		it.cur = nil
		return err
	}
	return nil
}
