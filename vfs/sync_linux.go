// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

//go:build linux

package vfs

import "golang.org/x/sys/unix"

// Sync flushes data to stable storage using fdatasync, which skips the
// inode-metadata flush a plain fsync would also perform, matching the
// teacher's own real vfs package behavior on Linux.
func (d *diskFile) Sync() error {
	if err := unix.Fdatasync(int(d.f.Fd())); err != nil {
		return d.f.Sync()
	}
	return nil
}
