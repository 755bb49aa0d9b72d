// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"fmt"
	"os"

	"github.com/cockroachdb/logtags"
)

// Logger is the minimal logging interface used throughout this module,
// mirroring the teacher's own base.LoggerAndTracer collaborator: callers
// attach a Logger explicitly (e.g. rangeiter.Iterator.SetLogger) rather
// than this package ever reaching for a global logger.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// DefaultLogger writes to os.Stderr, tagging every line with the
// logtags.Buffer it was constructed with (typically the collection
// prefix and/or iterator id, threaded through the same way the teacher
// threads request-scoped tags into its own log lines).
type DefaultLogger struct {
	tags *logtags.Buffer
}

// NewLogger returns a DefaultLogger that prefixes every line with tags.
// A nil tags is valid and produces untagged output.
func NewLogger(tags *logtags.Buffer) *DefaultLogger {
	return &DefaultLogger{tags: tags}
}

// WithTag returns a DefaultLogger with an additional tag appended, for
// scoping a Logger to one iterator or one collection prefix without
// mutating a shared parent.
func (l *DefaultLogger) WithTag(key string, value interface{}) *DefaultLogger {
	return &DefaultLogger{tags: l.tags.Add(key, value)}
}

func (l *DefaultLogger) prefix() string {
	tags := l.tags.Get()
	if len(tags) == 0 {
		return ""
	}
	s := "["
	for i, t := range tags {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%v", t.Key(), t.Value())
	}
	return s + "] "
}

// Infof logs at informational severity.
func (l *DefaultLogger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "I "+l.prefix()+format+"\n", args...)
}

// Errorf logs at error severity.
func (l *DefaultLogger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "E "+l.prefix()+format+"\n", args...)
}

// Fatalf logs at fatal severity and terminates the process, matching the
// teacher's own Fatalf contract.
func (l *DefaultLogger) Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "F "+l.prefix()+format+"\n", args...)
	os.Exit(1)
}
