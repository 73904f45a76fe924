// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package wal

import (
	"io"

	"github.com/flint-db/flint/internal/base"
	"github.com/flint-db/flint/internal/crc"
	"github.com/flint-db/flint/vfs"
)

// DropReason explains why Reader.Next skipped bytes. Callers get more
// than "corruption occurred": they learn how many bytes were dropped and
// whether the record was structurally invalid or simply incomplete.
type DropReason int

const (
	// DropBadRecord means a record's CRC or type was invalid.
	DropBadRecord DropReason = iota
	// DropIncompleteRecord means a FIRST/MIDDLE record was followed by
	// something other than its continuation (including EOF).
	DropIncompleteRecord
)

// Reader reads the logical record stream written by a Writer, tolerating
// torn writes at block boundaries.
type Reader struct {
	r        vfs.SequentialReader
	checkCRC bool
	buf      [blockSize]byte
	avail    []byte // unconsumed portion of buf
	eof      bool
	// Dropped, if non-nil, is invoked whenever the reader skips bytes due
	// to corruption: it advances to the next block boundary and continues,
	// reporting the skipped region.
	Dropped func(bytes int, reason DropReason, err error)
}

// NewReader returns a Reader over r, optionally verifying CRCs, starting
// at the block containing initialOffset (skipping to the next block if
// initialOffset falls within a block's final 6 bytes, since no header
// can start there).
func NewReader(r vfs.SequentialReader, checkCRC bool, initialOffset int64) (*Reader, error) {
	rd := &Reader{r: r, checkCRC: checkCRC}
	if initialOffset > 0 {
		blockStart := initialOffset - initialOffset%blockSize
		if initialOffset%blockSize >= blockSize-6 {
			blockStart += blockSize
		}
		if blockStart > 0 {
			if err := r.Seek(blockStart); err != nil {
				return nil, base.IOErrorf("wal: seek to initial offset: %v", err)
			}
		}
	}
	return rd, nil
}

// Next returns the next logical record, or io.EOF when the stream is
// exhausted with no partial record pending. Corruption causes the reader
// to skip to the next block boundary and, on its way, invoke Dropped if
// set; Next itself returns base.ErrBadRecord only for corruption that
// leaves no further progress possible within the current call (EOF mid-
// record).
func (r *Reader) Next() ([]byte, error) {
	var buf []byte
	inFragment := false

	for {
		frag, typ, err := r.readPhysicalRecord()
		if err != nil {
			if err == io.EOF {
				if inFragment {
					r.report(len(buf), DropIncompleteRecord, io.EOF)
					return nil, base.BadRecordf("wal: EOF inside partial record")
				}
				return nil, io.EOF
			}
			return nil, err
		}

		switch typ {
		case recordFull:
			if inFragment {
				r.report(len(buf), DropIncompleteRecord, nil)
			}
			return frag, nil

		case recordFirst:
			if inFragment {
				r.report(len(buf), DropIncompleteRecord, nil)
			}
			buf = append([]byte{}, frag...)
			inFragment = true

		case recordMiddle:
			if !inFragment {
				r.reportCorruptType(len(frag), "MIDDLE without FIRST")
				continue
			}
			buf = append(buf, frag...)

		case recordLast:
			if !inFragment {
				r.reportCorruptType(len(frag), "LAST without FIRST")
				continue
			}
			buf = append(buf, frag...)
			return buf, nil

		default:
			// readPhysicalRecord already reported and resynced; loop.
		}
	}
}

func (r *Reader) report(n int, reason DropReason, err error) {
	if r.Dropped != nil {
		r.Dropped(n, reason, err)
	}
}

func (r *Reader) reportCorruptType(n int, msg string) {
	if r.Dropped != nil {
		r.Dropped(n, DropBadRecord, base.CorruptionErrorf("wal: %s", msg))
	}
}

// readPhysicalRecord reads exactly one header+payload physical record
// from the block buffer, refilling from r when the buffer is exhausted.
// On corruption it reports the drop and resyncs to the next block itself,
// so callers only ever see well-formed fragments, io.EOF, or an I/O error
// from refilling the buffer.
func (r *Reader) readPhysicalRecord() ([]byte, recordType, error) {
	for {
		if len(r.avail) < headerSize {
			if !r.eof {
				if err := r.fillBuffer(); err != nil {
					return nil, 0, err
				}
				continue
			}
			if len(r.avail) != 0 {
				// Trailing zero-fill shorter than a header: not an
				// error, just the end of the stream.
				r.avail = nil
			}
			return nil, 0, io.EOF
		}

		header := r.avail[:headerSize]
		length := int(header[4]) | int(header[5])<<8
		typ := recordType(header[6])

		if headerSize+length > len(r.avail) {
			// A record cannot cross a block boundary by construction;
			// this means the length field itself is corrupt.
			dropped := len(r.avail)
			r.reportCorruptType(dropped, "record length exceeds block")
			r.avail = nil
			continue
		}

		fragment := r.avail[headerSize : headerSize+length]
		remainingInBlock := len(r.avail) // bytes available before consuming this record

		if typ > recordLast || typ < recordFull {
			// Bad type: skip the remainder of this block and report it.
			r.reportCorruptType(remainingInBlock, "invalid record type")
			r.avail = nil
			continue
		}
		if r.checkCRC {
			stored := base.DecodeFixed32(header[:4])
			want := crc.Unmask(stored)
			got := crc.Extend(typeCRCSeed[typ], fragment)
			if want != got {
				r.reportCorruptType(remainingInBlock, "checksum mismatch")
				r.avail = nil
				continue
			}
		}

		r.avail = r.avail[headerSize+length:]
		return fragment, typ, nil
	}
}

func (r *Reader) fillBuffer() error {
	n, err := io.ReadFull(r.r, r.buf[:])
	if n > 0 {
		r.avail = r.buf[:n]
	}
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			r.eof = true
			if n == 0 {
				return io.EOF
			}
			return nil
		}
		return base.IOErrorf("wal: read block: %v", err)
	}
	return nil
}
