// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package wal implements a block-framed, CRC-checked write-ahead log
// codec: a record stream that tolerates torn writes at block boundaries.
package wal

import (
	"github.com/flint-db/flint/internal/base"
	"github.com/flint-db/flint/internal/crc"
	"github.com/flint-db/flint/vfs"
)

// blockSize is the fixed WAL block size that every physical record is
// framed within; no record ever straddles a block boundary.
const blockSize = 32768

// headerSize is the per-record header: crc32c (4) + len (2) + type (1).
const headerSize = 7

// recordType tags each physical fragment of a logical record.
type recordType uint8

const (
	recordFull   recordType = 1
	recordFirst  recordType = 2
	recordMiddle recordType = 3
	recordLast   recordType = 4
)

// typeCRCSeed precomputes crc.New([]byte{type}) for each record type, so
// Writer.Append doesn't redundantly hash the 1-byte type on every record.
var typeCRCSeed = [5]uint32{
	recordFull:   crc.Value([]byte{byte(recordFull)}),
	recordFirst:  crc.Value([]byte{byte(recordFirst)}),
	recordMiddle: crc.Value([]byte{byte(recordMiddle)}),
	recordLast:   crc.Value([]byte{byte(recordLast)}),
}

// Writer appends logical records to a single AppendableWriter, splitting
// them across block boundaries as needed.
type Writer struct {
	w           vfs.AppendableWriter
	blockOffset int
}

// NewWriter returns a Writer appending to w.
func NewWriter(w vfs.AppendableWriter) *Writer {
	return &Writer{w: w}
}

// Append writes payload as one or more physical records. An empty
// payload still writes one zero-length FULL record, so the reader can
// distinguish "a record of length zero was written" from "nothing was
// written."
func (w *Writer) Append(payload []byte) error {
	first := true
	for {
		leftover := blockSize - w.blockOffset
		if leftover < headerSize {
			if leftover > 0 {
				if _, err := w.w.Write(make([]byte, leftover)); err != nil {
					return base.IOErrorf("wal: zero-fill block tail: %v", err)
				}
			}
			w.blockOffset = 0
			leftover = blockSize
		}

		avail := leftover - headerSize
		fragment := len(payload)
		if fragment > avail {
			fragment = avail
		}

		var typ recordType
		switch {
		case first && fragment == len(payload):
			typ = recordFull
		case first:
			typ = recordFirst
		case fragment == len(payload):
			typ = recordLast
		default:
			typ = recordMiddle
		}

		if err := w.writePhysicalRecord(typ, payload[:fragment]); err != nil {
			return err
		}

		payload = payload[fragment:]
		first = false
		if len(payload) == 0 {
			return nil
		}
	}
}

func (w *Writer) writePhysicalRecord(typ recordType, fragment []byte) error {
	var header [headerSize]byte
	checksum := crc.Mask(crc.Extend(typeCRCSeed[typ], fragment))
	base.EncodeFixed32(header[:0], checksum)
	header[4] = byte(len(fragment))
	header[5] = byte(len(fragment) >> 8)
	header[6] = byte(typ)

	if _, err := w.w.Write(header[:]); err != nil {
		return base.IOErrorf("wal: write record header: %v", err)
	}
	if len(fragment) > 0 {
		if _, err := w.w.Write(fragment); err != nil {
			return base.IOErrorf("wal: write record payload: %v", err)
		}
	}
	w.blockOffset += headerSize + len(fragment)
	return nil
}

// Sync flushes the underlying writer to stable storage.
func (w *Writer) Sync() error {
	return w.w.Sync()
}
