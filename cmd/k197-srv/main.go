// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command k197-srv runs the K197 measurement pipeline standalone,
// without a TDAQ orchestrator: it acquires frames from the display
// tap and serves the JSON control socket.
package main // import "github.com/alx2009/K197Display-sub000/cmd/k197-srv"

import (
	"flag"
	"log"

	"github.com/alx2009/K197Display-sub000/k197"
	"github.com/alx2009/K197Display-sub000/meter"
	"github.com/alx2009/K197Display-sub000/tap"
)

func main() {
	log.SetPrefix("k197-srv: ")
	log.SetFlags(0)

	var (
		addr  = flag.String("addr", ":8867", "[ip]:port of the control socket")
		bus   = flag.Int("i2c-bus", 1, "I2C bus of the tap bridge")
		dev   = flag.Int("i2c-addr", 0x2e, "I2C address of the tap bridge")
		mem   = flag.String("mem", "", "capture window to map instead of I2C")
		fname = flag.String("file", "", "capture file to replay instead of I2C")
		count = flag.Int("n", 10, "sample count of the rolling average")
		skip  = flag.Int("skip", 0, "graph decimation factor")
		auto  = flag.Bool("auto-decimate", true, "compact graph on saturation")
		tc    = flag.Bool("tc", false, "enable thermocouple unit substitution")
	)

	flag.Parse()

	src, err := newSource(*bus, *dev, *mem, *fname)
	if err != nil {
		log.Fatalf("could not open frame source: %+v", err)
	}
	defer src.Close()

	log.Printf("serving on %q...", *addr)
	err = meter.RunStandalone(*addr, src,
		meter.WithSampleCount(uint8(*count)),
		meter.WithDecimation(*skip),
		meter.WithAutoDecimate(*auto),
		meter.WithThermocouple(*tc),
		meter.WithDiagSink(k197.LogSink{Msg: log.Default()}),
	)
	if err != nil {
		log.Fatalf("could not run server: %+v", err)
	}
}

func newSource(bus, addr int, mem, fname string) (tap.Source, error) {
	switch {
	case fname != "":
		return tap.NewFile(fname)
	case mem != "":
		return tap.NewMem(mem, 0)
	default:
		return tap.NewI2C(bus, uint8(addr))
	}
}
