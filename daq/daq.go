// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package daq plugs a K197 display tap into a TDAQ process: the run
// loop pumps frames from the tap into the measurement pipeline and
// publishes decoded readings on the /meas output stream.
package daq // import "github.com/alx2009/K197Display-sub000/daq"

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/go-daq/tdaq"
	"golang.org/x/xerrors"

	"github.com/alx2009/K197Display-sub000/k197"
	"github.com/alx2009/K197Display-sub000/meter"
	"github.com/alx2009/K197Display-sub000/tap"
)

// Reading is the payload published on the /meas stream, one JSON
// object per decoded frame.
type Reading struct {
	Timestamp time.Time `json:"ts"`
	Text      string    `json:"text"`
	Unit      string    `json:"unit"`
	Value     float64   `json:"value"`
	Overrange bool      `json:"overrange"`
	Battery   bool      `json:"battery_low"`
}

// Server adapts a measurement device to the TDAQ state machine.
type Server struct {
	name string

	newSource func() (tap.Source, error)
	opts      []meter.Option

	src tap.Source
	dev *meter.Device

	started atomic.Bool
	n       int
	data    chan []byte
}

// New creates a TDAQ server named name, acquiring frames from the
// source newSource opens at /init time.
func New(name string, newSource func() (tap.Source, error), opts ...meter.Option) *Server {
	return &Server{
		name:      name,
		newSource: newSource,
		opts:      opts,
	}
}

func (srv *Server) OnConfig(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /config command...")
	return nil
}

func (srv *Server) OnInit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /init command...")

	dev, err := meter.New(srv.opts...)
	if err != nil {
		ctx.Msg.Errorf("could not create measurement device: %+v", err)
		return xerrors.Errorf("could not create measurement device: %w", err)
	}

	src, err := srv.newSource()
	if err != nil {
		ctx.Msg.Errorf("could not open frame source: %+v", err)
		return xerrors.Errorf("could not open frame source: %w", err)
	}

	srv.dev = dev
	srv.src = src
	srv.n = 0
	srv.data = make(chan []byte, 1024)
	return nil
}

func (srv *Server) OnReset(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /reset command...")
	srv.started.Store(false)
	if srv.dev != nil {
		srv.dev.ResetStats()
		srv.dev.ResetGraph()
	}
	srv.n = 0
	srv.data = make(chan []byte, 1024)
	return nil
}

func (srv *Server) OnStart(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /start command...")
	srv.started.Store(true)
	return nil
}

func (srv *Server) OnStop(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	srv.started.Store(false)
	ctx.Msg.Debugf("received /stop command... -> n=%d", srv.n)
	return nil
}

func (srv *Server) OnQuit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /quit command...")
	srv.started.Store(false)
	if srv.src != nil {
		err := srv.src.Close()
		srv.src = nil
		if err != nil {
			ctx.Msg.Errorf("could not close frame source: %+v", err)
			return xerrors.Errorf("could not close frame source: %w", err)
		}
	}
	return nil
}

// Meas feeds the /meas output stream.
func (srv *Server) Meas(ctx tdaq.Context, dst *tdaq.Frame) error {
	select {
	case <-ctx.Ctx.Done():
		dst.Body = nil
		return nil
	case data := <-srv.data:
		dst.Body = data
	}
	return nil
}

// Run is the acquisition loop: frames flow through the measurement
// pipeline while the run is started, decoded readings are published
// on /meas.
func (srv *Server) Run(ctx tdaq.Context) error {
	var buf [k197.MaxFrameLen]byte
	for {
		select {
		case <-ctx.Ctx.Done():
			return nil
		default:
		}

		if !srv.started.Load() || srv.src == nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		n, err := srv.src.Frame(buf[:])
		if err != nil {
			ctx.Msg.Errorf("could not acquire frame: %+v", err)
			return xerrors.Errorf("could not acquire frame: %w", err)
		}

		r := srv.dev.OnFrame(buf[:n])
		u := srv.dev.Unit(false)

		raw, err := json.Marshal(Reading{
			Timestamp: time.Now().UTC(),
			Text:      r.Text,
			Unit:      u.Symbol,
			Value:     r.Value,
			Overrange: r.Overrange,
			Battery:   r.Ann.BatteryLow(),
		})
		if err != nil {
			ctx.Msg.Errorf("could not marshal reading: %+v", err)
			continue
		}

		select {
		case srv.data <- raw:
			srv.n++
		default:
			// slow consumer, drop.
		}
	}
}
