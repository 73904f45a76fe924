// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package vfs

import (
	"io"
	"os"
)

// DiskSequentialReader opens path for forward-only reads, backing
// SequentialReader with a real os.File.
func DiskSequentialReader(path string) (SequentialReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &diskFile{f: f}, nil
}

// DiskRandomReader opens path for positioned reads, backing RandomReader
// with a real os.File.
func DiskRandomReader(path string) (RandomReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &diskFile{f: f}, nil
}

// DiskAppendableWriter opens (creating if necessary) path for append-only
// writes, backing AppendableWriter with a real os.File.
func DiskAppendableWriter(path string) (AppendableWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &diskFile{f: f}, nil
}

type diskFile struct {
	f *os.File
}

func (d *diskFile) Read(p []byte) (int, error)               { return d.f.Read(p) }
func (d *diskFile) ReadAt(p []byte, off int64) (int, error)   { return d.f.ReadAt(p, off) }
func (d *diskFile) Write(p []byte) (int, error)               { return d.f.Write(p) }
func (d *diskFile) Close() error                               { return d.f.Close() }

func (d *diskFile) Seek(offset int64) error {
	_, err := d.f.Seek(offset, io.SeekStart)
	return err
}

func (d *diskFile) Size() (int64, error) {
	fi, err := d.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
