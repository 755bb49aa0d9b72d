// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package metrics collects counters and a latency histogram for the
// engine and range-iterator layers, exported the way the teacher's own
// storage engine surfaces its operational metrics: Prometheus collectors
// for cumulative counts, an HdrHistogram for latency distribution detail
// that a simple counter can't express.
package metrics

import (
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates the counters and histograms this module exposes.
// Callers register it with their own prometheus.Registry (or
// prometheus.DefaultRegisterer) via Register.
type Metrics struct {
	RecordsDecoded   prometheus.Counter
	PrefixMismatches prometheus.Counter
	CorruptRecords   prometheus.Counter
	PageFaults       prometheus.Counter

	stepLatency *hdrhistogram.Histogram
}

// New returns a Metrics with fresh, unregistered collectors and a
// step-latency histogram covering 1 microsecond to 10 seconds at 3
// significant figures, matching the resolution the teacher uses for its
// own I/O latency tracking.
func New() *Metrics {
	return &Metrics{
		RecordsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tuplekey",
			Name:      "records_decoded_total",
			Help:      "Physical records successfully decoded into a KeyList.",
		}),
		PrefixMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tuplekey",
			Name:      "prefix_mismatches_total",
			Help:      "Physical records rejected as outside the iteration's collection prefix.",
		}),
		CorruptRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tuplekey",
			Name:      "corrupt_records_total",
			Help:      "Physical records that failed to decode.",
		}),
		PageFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tuplekey",
			Name:      "page_faults_total",
			Help:      "Page cache misses serviced by the engine.",
		}),
		stepLatency: hdrhistogram.New(1, 10*int64(time.Second/time.Microsecond), 3),
	}
}

// Register adds every collector in m to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.RecordsDecoded, m.PrefixMismatches, m.CorruptRecords, m.PageFaults} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveStep records the latency of one engine cursor step.
func (m *Metrics) ObserveStep(d time.Duration) {
	_ = m.stepLatency.RecordValue(int64(d / time.Microsecond))
}

// StepLatencyHistogram returns the underlying histogram for callers that
// want to render it (e.g. cmd/tuplekey's bench subcommand, via
// asciigraph).
func (m *Metrics) StepLatencyHistogram() *hdrhistogram.Histogram {
	return m.stepLatency
}
