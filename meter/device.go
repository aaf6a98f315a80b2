// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meter holds the render-facing measurement state of a K197
// display tap: the latest decoded reading, rolling statistics, the
// graph history and the hold snapshot.
package meter // import "github.com/alx2009/K197Display-sub000/meter"

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/alx2009/K197Display-sub000/k197"
)

// Option configures a measurement device.
type Option func(*config)

type config struct {
	count uint8 // EMA divisor
	skip  int   // graph decimation factor
	auto  bool  // auto-decimation on graph saturation
	tc    bool  // thermocouple mode
	diag  k197.DiagSink
	msg   *log.Logger
}

func newConfig() *config {
	return &config{
		count: 10,
		diag:  k197.NopSink{},
	}
}

// WithSampleCount sets the divisor of the exponential moving average.
func WithSampleCount(n uint8) Option {
	return func(cfg *config) {
		cfg.count = n
	}
}

// WithDecimation sets the initial graph decimation factor.
func WithDecimation(skip int) Option {
	return func(cfg *config) {
		cfg.skip = skip
	}
}

// WithAutoDecimate enables lossy graph compaction on saturation.
func WithAutoDecimate(on bool) Option {
	return func(cfg *config) {
		cfg.auto = on
	}
}

// WithThermocouple enables the mV-DC to temperature unit substitution.
func WithThermocouple(on bool) Option {
	return func(cfg *config) {
		cfg.tc = on
	}
}

// WithDiagSink routes decoder and graph anomaly reports to sink.
func WithDiagSink(sink k197.DiagSink) Option {
	return func(cfg *config) {
		cfg.diag = sink
	}
}

// WithLogger sets the device logger.
func WithLogger(msg *log.Logger) Option {
	return func(cfg *config) {
		cfg.msg = msg
	}
}

// Device is one measurement pipeline instance. OnFrame feeds it raw
// display frames; accessors expose the resulting state, live or from
// the hold snapshot. A Device may be shared between the frame source
// and readers; all methods are safe for concurrent use.
type Device struct {
	msg *log.Logger

	mu      sync.Mutex
	dec     *k197.Decoder
	tc      bool
	reading k197.Reading
	unit    k197.Unit
	stats   *Stats
	graph   *Graph
	hold    *Snapshot
}

// New creates a measurement device.
func New(opts ...Option) (*Device, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.msg == nil {
		cfg.msg = log.New(os.Stdout, "meter: ", 0)
	}

	stats, err := NewStats(cfg.count)
	if err != nil {
		return nil, fmt.Errorf("meter: could not create statistics: %w", err)
	}

	graph := NewGraph(cfg.diag)
	if err := graph.SetDecimation(cfg.skip); err != nil {
		return nil, fmt.Errorf("meter: could not configure graph: %w", err)
	}
	graph.SetAutoDecimate(cfg.auto)

	dev := &Device{
		msg:   cfg.msg,
		dec:   k197.NewDecoder(cfg.diag),
		tc:    cfg.tc,
		stats: stats,
		graph: graph,
	}
	return dev, nil
}

// OnFrame runs the decode, statistics and graph pipeline on one raw
// frame. The caller hands over a complete, stable frame; OnFrame does
// not retain raw.
func (dev *Device) OnFrame(raw []byte) k197.Reading {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	r := dev.dec.Decode(raw)
	u := k197.ResolveUnit(r.Ann, dev.tc)

	if r.Numeric {
		if u != dev.unit && dev.graph.Len() > 0 {
			dev.graph.Rescale(k197.Pow10(dev.unit.Exp - u.Exp))
		}
		dev.unit = u
		dev.stats.Update(r, u)
		dev.graph.Push(r.Value)
	}
	dev.reading = r

	return r
}

// Reading returns the decoded reading, live or held.
func (dev *Device) Reading(hold bool) k197.Reading {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if hold && dev.hold != nil {
		return dev.hold.Reading
	}
	return dev.reading
}

// Unit returns the resolved unit, live or held.
func (dev *Device) Unit(hold bool) k197.Unit {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if hold && dev.hold != nil {
		return dev.hold.Unit
	}
	return dev.unit
}

// Stats returns the rolling average, minimum and maximum, live or
// held.
func (dev *Device) Stats(hold bool) (avg, min, max float64) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	s := dev.stats
	if hold && dev.hold != nil {
		s = &dev.hold.Stats
	}
	return s.Avg, s.Min, s.Max
}

// GraphLen returns the number of stored graph samples, live or held.
func (dev *Device) GraphLen(hold bool) int {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.graphView(hold).Len()
}

// GraphAt returns the graph sample at logical index i, 0 being the
// oldest, live or held.
func (dev *Device) GraphAt(hold bool, i int) float64 {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.graphView(hold).At(i)
}

// GraphScale computes the axis bounds for the stored samples, live or
// held. With no samples both bounds are zero.
func (dev *Device) GraphScale(hold bool, policy YScalePolicy) (low, high Label, includesZero bool) {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	g := dev.graphView(hold)
	if g.Len() == 0 {
		return Label{}, Label{}, true
	}
	min := g.At(0)
	max := min
	for i := 1; i < g.Len(); i++ {
		v := g.At(i)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return ComputeScale(min, max, policy)
}

func (dev *Device) graphView(hold bool) *Graph {
	if hold && dev.hold != nil {
		return &dev.hold.Graph
	}
	return dev.graph
}

// SetHold enters or exits hold mode. Entering captures a snapshot of
// the current state; exiting discards it. Live sampling continues
// either way.
func (dev *Device) SetHold(on bool) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	switch {
	case on && dev.hold == nil:
		dev.hold = Capture(dev.reading, dev.unit, dev.stats, dev.graph)
	case !on:
		dev.hold = nil
	}
}

// Hold reports whether hold mode is active.
func (dev *Device) Hold() bool {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.hold != nil
}

// SetSampleCount changes the EMA divisor.
func (dev *Device) SetSampleCount(n uint8) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.stats.SetSampleCount(n)
}

// SetDecimation changes the graph decimation factor.
func (dev *Device) SetDecimation(skip int) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.graph.SetDecimation(skip)
}

// SetAutoDecimate enables or disables graph compaction on saturation.
func (dev *Device) SetAutoDecimate(on bool) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.graph.SetAutoDecimate(on)
}

// SetThermocouple enables or disables the temperature unit
// substitution.
func (dev *Device) SetThermocouple(on bool) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.tc = on
}

// ResetStats restarts the statistics from the most recent numeric
// value.
func (dev *Device) ResetStats() {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.stats.Reset()
}

// ResetGraph discards the graph history.
func (dev *Device) ResetGraph() {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.graph.Reset()
}
