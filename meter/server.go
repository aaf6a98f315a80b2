// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
)

// server exposes a measurement device over a JSON control socket, one
// request object per command.
type server struct {
	ctl net.Listener
	msg *log.Logger
	dev *Device
}

// Serve listens on addr and serves control commands for dev.
func Serve(addr string, dev *Device) error {
	srv, err := newServer(addr, dev)
	if err != nil {
		return fmt.Errorf("meter: could not create control server: %w", err)
	}
	return srv.serve()
}

func newServer(addr string, dev *Device) (*server, error) {
	ctl, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("meter: could not listen on %q: %w", addr, err)
	}
	srv := &server{
		ctl: ctl,
		msg: log.New(os.Stdout, "k197-svc: ", 0),
		dev: dev,
	}
	return srv, nil
}

func (srv *server) serve() error {
	defer srv.close()

	for {
		conn, err := srv.ctl.Accept()
		if err != nil {
			return fmt.Errorf("meter: could not accept connection: %w", err)
		}

		err = srv.handle(conn)
		if err != nil {
			srv.msg.Printf("could not serve connection: %+v", err)
			continue
		}
	}
}

type ctlRequest struct {
	Name string           `json:"name"`
	Args *json.RawMessage `json:"args"`
}

type ctlReply struct {
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// readingReply mirrors the render-facing accessors of Device for the
// "reading" and "stats" commands.
type readingReply struct {
	Text  string  `json:"text"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
	Over  bool    `json:"overrange"`
	Batt  bool    `json:"battery_low"`
	Hold  bool    `json:"hold"`
}

type statsReply struct {
	Avg  float64 `json:"avg"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

func (srv *server) handle(conn net.Conn) error {
	defer conn.Close()
	srv.msg.Printf("serving %v...", conn.RemoteAddr())
	defer srv.msg.Printf("serving %v... [done]", conn.RemoteAddr())

loop:
	for {
		var req ctlRequest
		err := json.NewDecoder(conn).Decode(&req)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break loop
			}
			srv.msg.Printf("could not decode command request: %+v", err)
			srv.reply(conn, nil, err)
			continue
		}
		srv.msg.Printf("received request: name=%q", req.Name)

		switch strings.ToLower(req.Name) {
		case "hold":
			var on bool
			err = srv.unmarshal(req, &on)
			if err != nil {
				srv.reply(conn, nil, err)
				continue
			}
			srv.dev.SetHold(on)
			srv.reply(conn, nil, nil)

		case "sample-count":
			var n uint8
			err = srv.unmarshal(req, &n)
			if err != nil {
				srv.reply(conn, nil, err)
				continue
			}
			srv.reply(conn, nil, srv.dev.SetSampleCount(n))

		case "decimation":
			var skip int
			err = srv.unmarshal(req, &skip)
			if err != nil {
				srv.reply(conn, nil, err)
				continue
			}
			srv.reply(conn, nil, srv.dev.SetDecimation(skip))

		case "auto-decimate":
			var on bool
			err = srv.unmarshal(req, &on)
			if err != nil {
				srv.reply(conn, nil, err)
				continue
			}
			srv.dev.SetAutoDecimate(on)
			srv.reply(conn, nil, nil)

		case "thermocouple":
			var on bool
			err = srv.unmarshal(req, &on)
			if err != nil {
				srv.reply(conn, nil, err)
				continue
			}
			srv.dev.SetThermocouple(on)
			srv.reply(conn, nil, nil)

		case "reset":
			srv.dev.ResetStats()
			srv.dev.ResetGraph()
			srv.reply(conn, nil, nil)

		case "reading":
			hold := srv.dev.Hold()
			r := srv.dev.Reading(hold)
			u := srv.dev.Unit(hold)
			srv.reply(conn, readingReply{
				Text:  r.Text,
				Unit:  u.Symbol,
				Value: r.Value,
				Over:  r.Overrange,
				Batt:  r.Ann.BatteryLow(),
				Hold:  hold,
			}, nil)

		case "stats":
			hold := srv.dev.Hold()
			avg, min, max := srv.dev.Stats(hold)
			srv.reply(conn, statsReply{
				Avg:  avg,
				Min:  min,
				Max:  max,
				Unit: srv.dev.Unit(hold).Symbol,
			}, nil)

		case "graph":
			hold := srv.dev.Hold()
			n := srv.dev.GraphLen(hold)
			data := make([]float64, n)
			for i := range data {
				data[i] = srv.dev.GraphAt(hold, i)
			}
			srv.reply(conn, data, nil)

		case "quit":
			srv.reply(conn, nil, nil)
			break loop

		default:
			srv.msg.Printf("unknown command name=%q", req.Name)
			srv.reply(conn, nil, fmt.Errorf("unknown command %q", req.Name))
			continue
		}
	}

	return nil
}

func (srv *server) unmarshal(req ctlRequest, ptr interface{}) error {
	if req.Args == nil {
		return fmt.Errorf("meter: missing %q payload", req.Name)
	}
	err := json.Unmarshal(*req.Args, ptr)
	if err != nil {
		srv.msg.Printf("could not decode %q payload: %+v", req.Name, err)
		return err
	}
	return nil
}

func (srv *server) reply(conn net.Conn, data interface{}, err error) {
	rep := ctlReply{Msg: "ok", Data: data}
	if err != nil {
		rep.Msg = fmt.Sprintf("%+v", err)
	}
	_ = json.NewEncoder(conn).Encode(rep)
}

func (srv *server) close() {
	_ = srv.ctl.Close()
}
