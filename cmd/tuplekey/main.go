// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command tuplekey is operator tooling for the tuple codec and Key value
// type: packing and unpacking tuples by hand, scanning a scratch
// in-memory engine, and benchmarking engine step latency. It plays the
// same role for this module that cmd/pebble plays for the teacher's own
// storage engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "tuplekey",
		Short: "Inspect and exercise the tuplekey codec",
	}
	root.AddCommand(newPackCommand())
	root.AddCommand(newUnpackCommand())
	root.AddCommand(newScanCommand())
	root.AddCommand(newBenchCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
