// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/tuplekey/engine/memtable"
	"github.com/cockroachdb/tuplekey/internal/base"
	"github.com/cockroachdb/tuplekey/internal/metrics"
	"github.com/cockroachdb/tuplekey/key"
	"github.com/cockroachdb/tuplekey/rangeiter"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newScanCommand() *cobra.Command {
	var prefix string
	var puts []string
	var reverse bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Populate a scratch engine and range-scan it, printing the results as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefix == "" {
				return errors.New("scan: --prefix is required")
			}
			m := memtable.New()
			for _, spec := range puts {
				t, err := parseTuple(strings.Split(spec, ","))
				if err != nil {
					return err
				}
				k, err := key.FromTuple(t)
				if err != nil {
					return err
				}
				m.Put(k.ToRaw([]byte(prefix)), nil)
			}

			it, err := rangeiter.New(m, []byte(prefix))
			if err != nil {
				return err
			}
			it.SetLogger(base.NewLogger(nil).WithTag("prefix", prefix))
			it.SetMetrics(metrics.New())
			dir := it.Forward
			if reverse {
				dir = it.Reverse
			}
			if err := dir(); err != nil {
				return err
			}
			defer it.Close()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"key"})
			for {
				ok, err := it.Next()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				for _, k := range it.Keys() {
					n, _ := k.Len()
					elems := make([]string, n)
					for i := 0; i < n; i++ {
						e, _ := k.At(i)
						elems[i] = formatElement(e)
					}
					table.Append([]string{strings.Join(elems, " ")})
				}
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "collection prefix (raw string)")
	cmd.Flags().StringArrayVar(&puts, "put", nil, "comma-separated element specs for one tuple to seed the scratch engine; repeatable")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "scan in descending order")
	return cmd
}
