// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/cockroachdb/tuplekey/key"
	"github.com/spf13/cobra"
)

func newPackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <element>...",
		Short: "Encode a tuple given as element specs and print its hex key bytes",
		Args:  cobra.MinimumNArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTuple(args)
			if err != nil {
				return err
			}
			k, err := key.FromTuple(t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(k.Bytes()))
			return nil
		},
	}
}
