// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package k197

import (
	"fmt"
	"log"
)

// DiagKind classifies a protocol anomaly observed while decoding.
type DiagKind int

const (
	// DiagByteCount reports a frame whose populated byte count differs
	// from the nominal FrameLen. The frame still decodes best-effort.
	DiagByteCount DiagKind = iota + 1

	// DiagDupDecimal reports a second decimal-point bit within one
	// frame. The first occurrence wins; the duplicate marker is dropped
	// and the glyph kept.
	DiagDupDecimal

	// DiagCompaction reports a lossy graph-history compaction triggered
	// by the auto-decimation policy.
	DiagCompaction
)

func (k DiagKind) String() string {
	switch k {
	case DiagByteCount:
		return "byte-count"
	case DiagDupDecimal:
		return "dup-decimal"
	case DiagCompaction:
		return "compaction"
	}
	return fmt.Sprintf("DiagKind(%d)", int(k))
}

// DiagEvent is one anomaly report. Arg carries the byte count
// (DiagByteCount), the digit position of the duplicate decimal point
// (DiagDupDecimal) or the new decimation factor (DiagCompaction).
type DiagEvent struct {
	Kind DiagKind
	Arg  int
}

func (e DiagEvent) String() string {
	return fmt.Sprintf("%v (arg=%d)", e.Kind, e.Arg)
}

// DiagSink receives anomaly reports. Implementations are pure
// observers: a report must never affect the decoding outcome.
type DiagSink interface {
	Report(e DiagEvent)
}

// NopSink discards all reports.
type NopSink struct{}

func (NopSink) Report(e DiagEvent) {}

// LogSink writes reports to a logger.
type LogSink struct {
	Msg *log.Logger
}

func (s LogSink) Report(e DiagEvent) {
	s.Msg.Printf("diag: %v", e)
}

var (
	_ DiagSink = (*NopSink)(nil)
	_ DiagSink = (*LogSink)(nil)
)
