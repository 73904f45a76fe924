// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import (
	"context"
	"time"

	"github.com/flint-db/flint/internal/base"
	"github.com/flint-db/flint/internal/bloom"
	"github.com/flint-db/flint/internal/cache"
	"github.com/flint-db/flint/internal/crc"
	"github.com/flint-db/flint/vfs"
	"github.com/golang/snappy"
)

// TODO(flint): should the threshold be configurable.
const slowReadTracingThreshold = 5 * time.Millisecond

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	Comparer     *base.Comparer
	FilterPolicy *bloom.FilterPolicy // must match what the table was built with, if any

	// Cache, if non-nil, holds decoded data blocks keyed by (TableID,
	// block offset), shared across every Reader that sets the same
	// TableID for the same underlying file.
	Cache   *cache.Cache
	TableID uint64

	// Logger receives a trace event for any footer or block read slower
	// than slowReadTracingThreshold. Defaults to base.DefaultLogger,
	// which never traces.
	Logger base.LoggerAndTracer
}

func (o *ReaderOptions) ensureDefaults() *ReaderOptions {
	out := *o
	if out.Comparer == nil {
		out.Comparer = base.DefaultComparer
	}
	if out.Logger == nil {
		out.Logger = base.DefaultLogger
	}
	return &out
}

// traceSlowRead calls IsTracingEnabled to avoid the allocations of boxing
// integers into an interface{}, unless tracing is actually enabled.
func traceSlowRead(ctx context.Context, logger base.LoggerAndTracer, what string, n int, elapsed time.Duration) {
	if elapsed >= slowReadTracingThreshold && logger.IsTracingEnabled(ctx) {
		logger.Eventf(ctx, "reading %s of %d bytes took %s", what, n, elapsed.String())
	}
}

// Reader opens an existing SSTable for point lookups and iteration. It
// eagerly loads the footer, index block, and meta-index block — read
// paths that bear on every subsequent Get.
type Reader struct {
	r    vfs.RandomReader
	opts *ReaderOptions

	index  *blockReader
	filter *filterBlockReader
}

// Open reads r's footer and index, returning a ready Reader.
func Open(r vfs.RandomReader, opts *ReaderOptions) (*Reader, error) {
	if opts == nil {
		opts = &ReaderOptions{}
	}
	opts = opts.ensureDefaults()

	size, err := r.Size()
	if err != nil {
		return nil, base.IOErrorf("sstable: stat: %v", err)
	}
	if size < footerLen {
		return nil, base.CorruptionErrorf("sstable: file too small to contain a footer")
	}

	ctx := context.Background()

	footBuf := make([]byte, footerLen)
	start := time.Now()
	if _, err := readFullAt(r, footBuf, size-footerLen); err != nil {
		return nil, base.IOErrorf("sstable: read footer: %v", err)
	}
	traceSlowRead(ctx, opts.Logger, "footer", len(footBuf), time.Since(start))
	foot, err := parseFooter(footBuf)
	if err != nil {
		return nil, err
	}

	indexPayload, err := readBlock(ctx, opts.Logger, r, foot.indexBH)
	if err != nil {
		return nil, err
	}
	index, err := newBlockReader(indexPayload)
	if err != nil {
		return nil, err
	}

	rd := &Reader{r: r, opts: opts, index: index}

	metaPayload, err := readBlock(ctx, opts.Logger, r, foot.metaindexBH)
	if err != nil {
		return nil, err
	}
	metaIndex, err := newBlockReader(metaPayload)
	if err != nil {
		return nil, err
	}
	it := metaIndex.newIterator()
	for it.first(); it.isValid(); it.next() {
		switch string(it.key()) {
		case comparatorMetaName:
			if name := string(it.value()); name != opts.Comparer.Name {
				return nil, base.InvalidArgumentf("sstable: table built with comparer %q, opened with %q", name, opts.Comparer.Name)
			}
		default:
			if opts.FilterPolicy == nil || string(it.key()) != opts.FilterPolicy.Name() {
				continue
			}
			handle, n := DecodeBlockHandle(it.value())
			if n == 0 {
				return nil, base.CorruptionErrorf("sstable: bad filter block handle")
			}
			filterPayload, err := readBlock(ctx, opts.Logger, r, handle)
			if err != nil {
				return nil, err
			}
			filter, err := newFilterBlockReader(opts.FilterPolicy, filterPayload)
			if err != nil {
				return nil, err
			}
			rd.filter = filter
		}
	}
	if it.error() != nil {
		return nil, it.error()
	}

	return rd, nil
}

// Get returns the value stored for key, or base.ErrNotFound if no entry
// with exactly that key exists in the table.
func (r *Reader) Get(key []byte) ([]byte, error) {
	entry, ok, err := r.index.seekGE(r.opts.Comparer, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, base.ErrNotFound
	}
	handle, n := DecodeBlockHandle(entry.value)
	if n == 0 {
		return nil, base.CorruptionErrorf("sstable: bad data block handle")
	}

	if r.filter != nil && !r.filter.mayContain(handle.Offset, key) {
		return nil, base.ErrNotFound
	}

	data, err := r.readDataBlock(handle)
	if err != nil {
		return nil, err
	}
	dataEntry, ok, err := data.seekGE(r.opts.Comparer, key)
	if err != nil {
		return nil, err
	}
	if !ok || !r.opts.Comparer.Equal(dataEntry.key, key) {
		return nil, base.ErrNotFound
	}
	return dataEntry.value, nil
}

// dataBlockCacheKey packs (TableID, block offset) into the byte key the
// block cache indexes on.
func dataBlockCacheKey(tableID uint64, offset uint64) []byte {
	key := make([]byte, 0, 16)
	key = base.EncodeFixed64(key, tableID)
	key = base.EncodeFixed64(key, offset)
	return key
}

func (r *Reader) readDataBlock(handle BlockHandle) (*blockReader, error) {
	ctx := context.Background()
	if r.opts.Cache == nil {
		payload, err := readBlock(ctx, r.opts.Logger, r.r, handle)
		if err != nil {
			return nil, err
		}
		return newBlockReader(payload)
	}

	key := dataBlockCacheKey(r.opts.TableID, handle.Offset)
	hash := cache.HashKey(key)
	if v, ok := r.opts.Cache.Lookup(key, hash); ok {
		return v.(*blockReader), nil
	}

	payload, err := readBlock(ctx, r.opts.Logger, r.r, handle)
	if err != nil {
		return nil, err
	}
	block, err := newBlockReader(payload)
	if err != nil {
		return nil, err
	}
	r.opts.Cache.Insert(key, hash, block, int64(len(payload)))
	return block, nil
}

// readBlock reads, trailer-verifies, and decompresses the block at
// handle, tracing the read if it is slower than slowReadTracingThreshold.
func readBlock(ctx context.Context, logger base.LoggerAndTracer, r vfs.RandomReader, handle BlockHandle) ([]byte, error) {
	buf := make([]byte, handle.Size+blockTrailerLen)
	start := time.Now()
	if _, err := readFullAt(r, buf, int64(handle.Offset)); err != nil {
		return nil, base.IOErrorf("sstable: read block: %v", err)
	}
	traceSlowRead(ctx, logger, "block", len(buf), time.Since(start))
	stored := buf[:handle.Size]
	trailer := buf[handle.Size:]

	want := crc.Unmask(base.DecodeFixed32(trailer[1:5]))
	got := crc.Extend(crc.Value(stored), trailer[:1])
	if want != got {
		return nil, base.CorruptionErrorf("sstable: block checksum mismatch at offset %d", handle.Offset)
	}

	switch Compression(trailer[0]) {
	case NoCompression:
		return stored, nil
	case SnappyCompression:
		payload, err := snappy.Decode(nil, stored)
		if err != nil {
			return nil, base.CorruptionErrorf("sstable: snappy decode: %v", err)
		}
		return payload, nil
	default:
		return nil, base.NotSupportedf("sstable: unknown compression type %d", trailer[0])
	}
}

func readFullAt(r vfs.RandomReader, buf []byte, off int64) (int, error) {
	n, err := r.ReadAt(buf, off)
	if err != nil && n == len(buf) {
		// Some RandomReader implementations (e.g. disk files at EOF)
		// return io.EOF alongside a full read; only a short read is an
		// actual error here.
		return n, nil
	}
	return n, err
}
