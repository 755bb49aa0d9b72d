// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package pagecache implements a memory-mapped, read-only page cache
// backing an Engine: a concrete key.Source giving the borrow/invalidate
// protocol (spec.md §4.6) something real to protect. A Key built SHARED
// against a mapped page must copy itself out before that page's mapping
// is torn down; Evict is the one place that happens.
package pagecache

import (
	"context"
	"strconv"

	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
	"github.com/cockroachdb/tokenbucket"
	"github.com/cockroachdb/tuplekey/internal/metrics"
	"github.com/cockroachdb/tuplekey/key"
	"golang.org/x/sync/singleflight"
	"golang.org/x/sys/unix"
)

// PageID identifies one fixed-size region of a backing file.
type PageID uint64

// Page is one memory-mapped region. It implements key.Source: any Key
// built SHARED against Page.Bytes() is linked into sinks and must be
// notified before Release unmaps the page.
type Page struct {
	id    PageID
	bytes []byte
	sinks key.SinkList
}

// Sinks implements key.Source.
func (p *Page) Sinks() *key.SinkList { return &p.sinks }

// Bytes returns the page's mapped contents. The slice is only valid
// until Release is called on this Page.
func (p *Page) Bytes() []byte { return p.bytes }

// Release notifies every Key currently SHARED against this page (they
// synchronously copy themselves out, per spec.md §4.6) and then unmaps
// the page's memory. After Release, p.bytes must not be read.
func (p *Page) Release() error {
	key.Notify(p)
	if p.bytes == nil {
		return nil
	}
	err := unix.Munmap(p.bytes)
	p.bytes = nil
	return err
}

// Cache is a fault-driven cache of memory-mapped pages read from a single
// backing file descriptor. It has no capacity limit: a mapped page stays in
// the index until Evict or Close. Concurrent faults for the same
// page are deduplicated with singleflight, the in-memory page index is
// an open-addressing swiss.Map, and the fault path is rate-limited by a
// token bucket — the same three techniques the teacher's block cache
// layer combines for its own page-fault path, applied here to a much
// smaller surface.
type Cache struct {
	fd         int
	pageSize   int64
	index      *swiss.Map[PageID, *Page]
	faultGroup singleflight.Group
	limiter    tokenbucket.TokenBucket
	metrics    *metrics.Metrics
}

// Options configures a Cache.
type Options struct {
	// PageSize is the byte size of each mapped region; must be a
	// multiple of the OS page size.
	PageSize int64
	// FaultsPerSecond and FaultBurst bound the rate of page faults this
	// Cache will service; a fault that would exceed the bucket blocks
	// until a token is available.
	FaultsPerSecond float64
	FaultBurst      float64
	Metrics         *metrics.Metrics
}

// New returns a Cache reading pages from fd.
func New(fd int, opts Options) *Cache {
	c := &Cache{
		fd:       fd,
		pageSize: opts.PageSize,
		index:    swiss.New[PageID, *Page](16),
		metrics:  opts.Metrics,
	}
	c.limiter.Init(tokenbucket.TokensPerSecond(opts.FaultsPerSecond), tokenbucket.Tokens(opts.FaultBurst))
	return c
}

// Get returns the page for id, mapping it in on a cache miss. Concurrent
// Get calls for the same id share one mapping attempt.
func (c *Cache) Get(ctx context.Context, id PageID) (*Page, error) {
	if p, ok := c.index.Get(id); ok {
		return p, nil
	}

	v, err, _ := c.faultGroup.Do(pageKey(id), func() (interface{}, error) {
		if p, ok := c.index.Get(id); ok {
			return p, nil
		}
		if err := c.limiter.WaitCtx(ctx, tokenbucket.Tokens(1)); err != nil {
			return nil, err
		}

		start := crtime.NowMono()
		b, err := unix.Mmap(c.fd, int64(id)*c.pageSize, int(c.pageSize), unix.PROT_READ, unix.MAP_SHARED)
		if c.metrics != nil {
			c.metrics.ObserveStep(start.Elapsed())
			c.metrics.PageFaults.Inc()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "pagecache: mmap page %d", id)
		}

		p := &Page{id: id, bytes: b}
		c.index.Put(id, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Page), nil
}

// Evict removes id from the index and releases its mapping, notifying
// any Keys still SHARED against it.
func (c *Cache) Evict(id PageID) error {
	p, ok := c.index.Get(id)
	if !ok {
		return nil
	}
	c.index.Delete(id)
	return p.Release()
}

// Close evicts every page currently held by the cache.
func (c *Cache) Close() error {
	var firstErr error
	for _, p := range c.index.All() {
		if err := p.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func pageKey(id PageID) string {
	return strconv.FormatUint(uint64(id), 10)
}
