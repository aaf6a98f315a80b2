// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/alx2009/K197Display-sub000/k197"
)

func TestServer(t *testing.T) {
	dev, err := New(WithSampleCount(2))
	if err != nil {
		t.Fatalf("could not create device: %+v", err)
	}
	volt := k197.Annunciators{Mid: 0x01}
	dev.OnFrame(frameOf(t, " 4", volt))
	dev.OnFrame(frameOf(t, " 8", volt))

	srv, err := newServer("127.0.0.1:0", dev)
	if err != nil {
		t.Fatalf("could not create server: %+v", err)
	}
	defer srv.close()
	go func() { _ = srv.serve() }()

	conn, err := net.Dial("tcp", srv.ctl.Addr().String())
	if err != nil {
		t.Fatalf("could not dial server: %+v", err)
	}
	defer conn.Close()

	var (
		enc = json.NewEncoder(conn)
		dec = json.NewDecoder(conn)
	)

	send := func(name, args string) (string, json.RawMessage) {
		t.Helper()
		raw := "{" + `"name":"` + name + `"`
		if args != "" {
			raw += `,"args":` + args
		}
		raw += "}"
		err := enc.Encode(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("could not send %q: %+v", name, err)
		}
		var rep struct {
			Msg  string          `json:"msg"`
			Data json.RawMessage `json:"data"`
		}
		err = dec.Decode(&rep)
		if err != nil {
			t.Fatalf("could not decode %q reply: %+v", name, err)
		}
		return rep.Msg, rep.Data
	}

	msg, data := send("reading", "")
	if msg != "ok" {
		t.Fatalf("invalid reading reply: msg=%q", msg)
	}
	var r struct {
		Text  string  `json:"text"`
		Unit  string  `json:"unit"`
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("could not decode reading payload: %+v", err)
	}
	if r.Value != 8 || r.Unit != "V" {
		t.Fatalf("invalid reading: %#v", r)
	}

	msg, data = send("stats", "")
	if msg != "ok" {
		t.Fatalf("invalid stats reply: msg=%q", msg)
	}
	var s struct {
		Avg float64 `json:"avg"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	}
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("could not decode stats payload: %+v", err)
	}
	if s.Avg != 6 || s.Min != 4 || s.Max != 8 {
		t.Fatalf("invalid stats: %#v", s)
	}

	msg, data = send("graph", "")
	if msg != "ok" {
		t.Fatalf("invalid graph reply: msg=%q", msg)
	}
	var samples []float64
	if err := json.Unmarshal(data, &samples); err != nil {
		t.Fatalf("could not decode graph payload: %+v", err)
	}
	if len(samples) != 2 || samples[0] != 4 || samples[1] != 8 {
		t.Fatalf("invalid graph samples: %v", samples)
	}

	if msg, _ := send("hold", "true"); msg != "ok" {
		t.Fatalf("invalid hold reply: msg=%q", msg)
	}
	if !dev.Hold() {
		t.Fatalf("hold not active")
	}

	if msg, _ := send("sample-count", "0"); msg == "ok" {
		t.Fatalf("expected an error for sample count 0")
	}
	if msg, _ := send("sample-count", "32"); msg != "ok" {
		t.Fatalf("could not set sample count")
	}
	if msg, _ := send("bogus", ""); msg == "ok" {
		t.Fatalf("expected an error for unknown command")
	}

	if msg, _ := send("quit", ""); msg != "ok" {
		t.Fatalf("invalid quit reply: msg=%q", msg)
	}
}
