// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package base

import (
	"context"
	"log"
	"os"
)

// Logger is the ambient logging sink consumed by the core. It is
// deliberately small: the core has no metrics or replication surface to
// log about, only I/O timing and corruption reports.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Tracer allows a caller to opt into per-operation trace events without
// paying allocation cost when tracing is disabled: callers check
// IsTracingEnabled before formatting an event.
type Tracer interface {
	IsTracingEnabled(ctx context.Context) bool
	Eventf(ctx context.Context, format string, args ...interface{})
}

// LoggerAndTracer bundles Logger and Tracer, the shape passed down into
// low-level read paths.
type LoggerAndTracer interface {
	Logger
	Tracer
}

// DefaultLogger writes to the standard library's log package and never
// traces, matching the zero-value behavior pebble uses when the caller
// supplies no Options.Logger.
var DefaultLogger LoggerAndTracer = defaultLogger{std: log.New(os.Stderr, "", log.LstdFlags)}

type defaultLogger struct {
	std *log.Logger
}

func (l defaultLogger) Infof(format string, args ...interface{})  { l.std.Printf(format, args...) }
func (l defaultLogger) Errorf(format string, args ...interface{}) { l.std.Printf(format, args...) }
func (l defaultLogger) Fatalf(format string, args ...interface{}) {
	l.std.Printf(format, args...)
	os.Exit(1)
}

func (l defaultLogger) IsTracingEnabled(ctx context.Context) bool { return false }
func (l defaultLogger) Eventf(ctx context.Context, format string, args ...interface{}) {
}
