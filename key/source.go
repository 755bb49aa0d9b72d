// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package key

// Source is implemented by any object that exports memory a Key can
// borrow from — typically a database page buffer — and that must notify
// borrowers before that memory is reclaimed, per spec.md §4.6. Sinks
// is the intrusive list of currently-borrowing sinks; a Source
// implementation simply embeds a SinkList and returns its address.
type Source interface {
	Sinks() *SinkList
}

// SinkList is the doubly-linked list of sinks currently borrowing from a
// Source, embedded by any Source implementation. The zero value is an
// empty list.
type SinkList struct {
	head *sinkNode
}

// sinkNode is the intrusive link node embedded inline in every SHARED Key,
// per spec.md §4.6 ("the sink's link node lives inline in the Key
// struct").
type sinkNode struct {
	prev, next *sinkNode
	invalidate func(Source)
}

// Listen registers sink against src, prepending it to src's sink list.
// O(1).
func Listen(src Source, sink *sinkNode, invalidate func(Source)) {
	sink.invalidate = invalidate
	list := src.Sinks()
	sink.prev = nil
	sink.next = list.head
	if list.head != nil {
		list.head.prev = sink
	}
	list.head = sink
}

// Cancel unlinks sink from src's sink list. O(1). A sink that is already
// unlinked (including one notified by a prior Notify) is left unchanged —
// Cancel is a no-op in that case.
func Cancel(src Source, sink *sinkNode) {
	list := src.Sinks()
	if sink.prev != nil {
		sink.prev.next = sink.next
	} else if list.head == sink {
		list.head = sink.next
	}
	if sink.next != nil {
		sink.next.prev = sink.prev
	}
	sink.prev, sink.next = nil, nil
}

// Notify calls invalidate(src) on every sink currently registered against
// src, in LIFO registration order (the most recently listened sink first,
// since the list is maintained by prepending), then clears the list. Each
// sink is unlinked before its callback runs, so a callback that calls
// Cancel on itself or on another already-notified sink is a safe no-op.
// The callback is expected to copy out whatever bytes it was borrowing;
// Notify must be called before the source's backing memory is reclaimed.
func Notify(src Source) {
	list := src.Sinks()
	node := list.head
	list.head = nil
	for node != nil {
		next := node.next
		node.prev, node.next = nil, nil
		cb := node.invalidate
		node.invalidate = nil
		if cb != nil {
			cb(src)
		}
		node = next
	}
}
