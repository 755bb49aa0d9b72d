// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/cockroachdb/tuplekey/engine/memtable"
	"github.com/cockroachdb/tuplekey/internal/base"
	"github.com/cockroachdb/tuplekey/internal/metrics"
	"github.com/cockroachdb/tuplekey/rangeiter"
	"github.com/cockroachdb/tuplekey/tuple"
	"github.com/guptarohit/asciigraph"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

func newBenchCommand() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Scan n generated records and plot step latency as an ASCII sparkline",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := []byte("bench")
			m := memtable.New()
			for i := 0; i < n; i++ {
				k, err := keyForInt(i)
				if err != nil {
					return err
				}
				m.Put(append(append([]byte(nil), prefix...), k...), nil)
			}

			it, err := rangeiter.New(m, prefix)
			if err != nil {
				return err
			}
			mtr := metrics.New()
			it.SetMetrics(mtr)
			it.SetLogger(base.NewLogger(nil).WithTag("prefix", string(prefix)))
			if err := it.Forward(); err != nil {
				return err
			}
			defer it.Close()

			count := 0
			for {
				start := time.Now()
				ok, err := it.Next()
				mtr.ObserveStep(time.Since(start))
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				count++
			}

			hist := mtr.StepLatencyHistogram()
			buckets := make([]float64, 0, 20)
			for _, v := range hist.CumulativeDistribution() {
				buckets = append(buckets, float64(v.ValueAt))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scanned %d records\n", count)
			if len(buckets) > 1 {
				fmt.Fprintln(cmd.OutOrStdout(), asciigraph.Plot(buckets, asciigraph.Height(10)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%# v\n", pretty.Formatter(hist))
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 100, "number of records to generate and scan")
	return cmd
}

func keyForInt(i int) ([]byte, error) {
	data, err := tuple.Pack(nil, tuple.Tuple{tuple.Int(int64(i))})
	return data, err
}
