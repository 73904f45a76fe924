// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

func newTableWriter(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	return t
}
