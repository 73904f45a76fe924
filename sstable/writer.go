// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import (
	"github.com/flint-db/flint/internal/base"
	"github.com/flint-db/flint/internal/bloom"
	"github.com/flint-db/flint/internal/crc"
	"github.com/flint-db/flint/vfs"
	"github.com/golang/snappy"
)

// Compression selects the per-block compression codec.
type Compression uint8

const (
	// NoCompression stores block payloads verbatim.
	NoCompression Compression = 0
	// SnappyCompression compresses block payloads with snappy.
	SnappyCompression Compression = 1
)

const blockTrailerLen = 5 // 1 byte compression type + 4 byte masked CRC32C

// WriterOptions configures a Writer.
type WriterOptions struct {
	Comparer        *base.Comparer
	BlockSize       int // default 4096
	RestartInterval int // default 16, for data blocks only
	Compression     Compression
	FilterPolicy    *bloom.FilterPolicy // nil disables the filter block
}

func (o *WriterOptions) ensureDefaults() *WriterOptions {
	out := *o
	if out.Comparer == nil {
		out.Comparer = base.DefaultComparer
	}
	if out.BlockSize == 0 {
		out.BlockSize = 4096
	}
	if out.RestartInterval == 0 {
		out.RestartInterval = defaultRestartInterval
	}
	return &out
}

// Writer builds a single SSTable, streaming blocks to w as they fill.
// Entries must be added in ascending key order; a Writer is not safe for
// concurrent use.
type Writer struct {
	w    vfs.AppendableWriter
	opts *WriterOptions

	offset int64

	dataBlock  *blockWriter
	indexBlock *blockWriter
	filter     *filterBlockBuilder

	lastKey       []byte
	pendingHandle BlockHandle
	havePending   bool
	closed        bool
	err           error
}

// NewWriter returns a Writer that appends a new table to w.
func NewWriter(w vfs.AppendableWriter, opts *WriterOptions) *Writer {
	if opts == nil {
		opts = &WriterOptions{}
	}
	opts = opts.ensureDefaults()
	tw := &Writer{
		w:          w,
		opts:       opts,
		dataBlock:  newBlockWriter(opts.RestartInterval),
		indexBlock: newBlockWriter(1),
	}
	if opts.FilterPolicy != nil {
		tw.filter = newFilterBlockBuilder(opts.FilterPolicy)
		tw.filter.startBlock(0)
	}
	return tw
}

// Add appends one key/value entry. key must be >= every previously added
// key under the writer's comparator.
func (tw *Writer) Add(key, value []byte) error {
	if tw.err != nil {
		return tw.err
	}
	if tw.lastKey != nil && tw.opts.Comparer.Compare(tw.lastKey, key) > 0 {
		return base.InvalidArgumentf("sstable: keys added out of order")
	}

	if tw.havePending {
		sep := tw.opts.Comparer.Separator(nil, tw.lastKey, key)
		tw.indexBlock.add(sep, tw.pendingHandle.EncodeVarints(nil))
		tw.havePending = false
	}

	if tw.filter != nil {
		tw.filter.addKey(key)
	}
	tw.dataBlock.add(key, value)
	tw.lastKey = append(tw.lastKey[:0], key...)

	if tw.dataBlock.estimatedSize() >= tw.opts.BlockSize {
		if err := tw.flushDataBlock(); err != nil {
			tw.err = err
			return err
		}
	}
	return nil
}

func (tw *Writer) flushDataBlock() error {
	if tw.dataBlock.empty() {
		return nil
	}
	handle, err := tw.writeBlock(tw.dataBlock.finish())
	if err != nil {
		return err
	}
	tw.dataBlock.reset()
	tw.pendingHandle = handle
	tw.havePending = true
	if tw.filter != nil {
		tw.filter.startBlock(uint64(tw.offset))
	}
	return nil
}

// writeBlock compresses (if configured), appends the trailer, and writes
// payload to the underlying file, returning a handle to the as-stored
// (possibly compressed) payload.
func (tw *Writer) writeBlock(payload []byte) (BlockHandle, error) {
	compression := tw.opts.Compression
	stored := payload
	if compression == SnappyCompression {
		stored = snappy.Encode(nil, payload)
	}

	trailer := make([]byte, 1, blockTrailerLen)
	trailer[0] = byte(compression)
	sum := crc.Mask(crc.Extend(crc.Value(stored), trailer))
	trailer = base.EncodeFixed32(trailer, sum)

	handle := BlockHandle{Offset: uint64(tw.offset), Size: uint64(len(stored))}
	if _, err := tw.w.Write(stored); err != nil {
		return BlockHandle{}, base.IOErrorf("sstable: write block: %v", err)
	}
	if _, err := tw.w.Write(trailer); err != nil {
		return BlockHandle{}, base.IOErrorf("sstable: write block trailer: %v", err)
	}
	tw.offset += int64(len(stored)) + blockTrailerLen
	return handle, nil
}

// Finish flushes any pending data block, emits the filter, meta-index,
// and index blocks, writes the footer, and syncs the underlying file.
func (tw *Writer) Finish() error {
	if tw.closed {
		return base.InvalidArgumentf("sstable: Finish called twice")
	}
	tw.closed = true
	if tw.err != nil {
		return tw.err
	}

	if err := tw.flushDataBlock(); err != nil {
		return err
	}

	var filterHandle BlockHandle
	haveFilter := tw.filter != nil
	if haveFilter {
		h, err := tw.writeBlock(tw.filter.finish())
		if err != nil {
			return err
		}
		filterHandle = h
	}

	metaIndex := newBlockWriter(1)
	if haveFilter {
		metaIndex.add([]byte(tw.opts.FilterPolicy.Name()), filterHandle.EncodeVarints(nil))
	}
	metaIndex.add([]byte(comparatorMetaName), []byte(tw.opts.Comparer.Name))
	metaindexHandle, err := tw.writeBlock(metaIndex.finish())
	if err != nil {
		return err
	}

	if tw.havePending {
		succ := tw.opts.Comparer.Successor(nil, tw.lastKey)
		tw.indexBlock.add(succ, tw.pendingHandle.EncodeVarints(nil))
		tw.havePending = false
	}
	indexHandle, err := tw.writeBlock(tw.indexBlock.finish())
	if err != nil {
		return err
	}

	foot := footer{metaindexBH: metaindexHandle, indexBH: indexHandle}
	if _, err := tw.w.Write(foot.encode()); err != nil {
		return base.IOErrorf("sstable: write footer: %v", err)
	}
	return tw.w.Sync()
}

// Abandon discards the writer without writing a footer; the partially
// written file is not a valid table and must be discarded by the caller.
func (tw *Writer) Abandon() {
	tw.closed = true
	tw.err = base.InvalidArgumentf("sstable: writer abandoned")
}
