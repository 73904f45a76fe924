// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

//go:build !linux

package vfs

// Sync flushes data to stable storage via the standard File.Sync on
// platforms without fdatasync.
func (d *diskFile) Sync() error {
	return d.f.Sync()
}
