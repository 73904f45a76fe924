// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Command flint-dump opens an SSTable file read-only and prints the
// number of entries and the first and last key, or with --values every
// key/value pair. It does not print the comparator, filter policy, index
// entries, or per-block statistics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flint-db/flint/sstable"
	"github.com/flint-db/flint/vfs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flint-dump <table-file>",
		Short: "Inspect an SSTable file's entries without opening the full storage engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(cmd, args[0])
		},
	}
	root.Flags().Bool("values", false, "print every key/value pair, not just the entry count and key range")
	return root
}

func dump(cmd *cobra.Command, path string) error {
	r, err := vfs.DiskRandomReader(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	reader, err := sstable.Open(r, nil)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	printValues, _ := cmd.Flags().GetBool("values")
	if printValues {
		return dumpValues(cmd, reader)
	}
	return dumpSummary(cmd, path, reader)
}

func dumpSummary(cmd *cobra.Command, path string, reader *sstable.Reader) error {
	it := reader.NewIter()
	table := newTableWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"#", "first key", "last key"})

	n := 0
	var first, last []byte
	for ok := it.First(); ok; ok = it.Next() {
		if first == nil {
			first = append([]byte(nil), it.Key()...)
		}
		last = append([]byte(nil), it.Key()...)
		n++
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("walk %s: %w", path, err)
	}
	table.Append([]string{fmt.Sprint(n), string(first), string(last)})
	table.Render()
	return nil
}

func dumpValues(cmd *cobra.Command, reader *sstable.Reader) error {
	it := reader.NewIter()
	table := newTableWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"key", "value"})
	for ok := it.First(); ok; ok = it.Next() {
		table.Append([]string{string(it.Key()), string(it.Value())})
	}
	if err := it.Error(); err != nil {
		return err
	}
	table.Render()
	return nil
}
