// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/tuplekey/key"
	"github.com/spf13/cobra"
)

func newUnpackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <hex>",
		Short: "Decode a hex-encoded key and print its elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := key.FromHex(args[0])
			if err != nil {
				return err
			}
			n, err := k.Len()
			if err != nil {
				return err
			}
			elems := make([]string, n)
			for i := 0; i < n; i++ {
				e, err := k.At(i)
				if err != nil {
					return err
				}
				elems[i] = formatElement(e)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(elems, " "))
			return nil
		},
	}
}
