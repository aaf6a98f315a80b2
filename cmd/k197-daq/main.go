// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command k197-daq starts a TDAQ server reading a K197 display tap.
package main // import "github.com/alx2009/K197Display-sub000/cmd/k197-daq"

import (
	"context"
	"log"
	"os"

	"github.com/go-daq/tdaq"
	"github.com/go-daq/tdaq/flags"

	"github.com/alx2009/K197Display-sub000/daq"
	"github.com/alx2009/K197Display-sub000/meter"
	"github.com/alx2009/K197Display-sub000/tap"
)

func main() {
	cmd := flags.New()

	dev := daq.New("k197", newSource(cmd.Args), meter.WithAutoDecimate(true))

	srv := tdaq.New(cmd, os.Stdout)
	srv.CmdHandle("/config", dev.OnConfig)
	srv.CmdHandle("/init", dev.OnInit)
	srv.CmdHandle("/reset", dev.OnReset)
	srv.CmdHandle("/start", dev.OnStart)
	srv.CmdHandle("/stop", dev.OnStop)
	srv.CmdHandle("/quit", dev.OnQuit)

	srv.OutputHandle("/meas", dev.Meas)

	srv.RunHandle(dev.Run)

	err := srv.Run(context.Background())
	if err != nil {
		log.Panicf("error: %+v", err)
	}
}

// newSource builds the frame-source constructor from the trailing
// command-line argument: "i2c" for the bus-tap bridge, a file path
// for capture replay.
func newSource(args []string) func() (tap.Source, error) {
	if len(args) == 0 || args[0] == "i2c" {
		return func() (tap.Source, error) {
			return tap.NewI2C(1, 0x2e)
		}
	}
	fname := args[0]
	return func() (tap.Source, error) {
		return tap.NewFile(fname)
	}
}
