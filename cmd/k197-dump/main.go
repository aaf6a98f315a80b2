// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// k197-dump decodes and displays K197 capture files.
//
// Usage: k197-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//  $> k197-dump ./testdata/volts.k197
//  -12.3456 V   [DC auto]
//  -12.3455 V   [DC auto]
//    0L      Ω  [overrange]
//  [...]
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alx2009/K197Display-sub000/k197"
)

func main() {
	log.SetPrefix("k197-dump: ")
	log.SetFlags(0)

	tc := flag.Bool("tc", false, "enable thermocouple unit substitution")

	flag.Usage = func() {
		fmt.Printf(`k197-dump decodes and displays K197 capture files.

Usage: k197-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> k197-dump ./testdata/volts.k197
 -12.3456 V   [DC auto]
 -12.3455 V   [DC auto]
   0L      Ω  [overrange]
 [...]

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("missing path to input capture file")
	}

	for _, fname := range flag.Args() {
		err := process(os.Stdout, fname, *tc)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, tc bool) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer f.Close()

	var (
		rdo = k197.NewReadout(f)
		dec = k197.NewDecoder(k197.LogSink{Msg: log.Default()})
	)
loop:
	for {
		var frame k197.Frame
		err := rdo.Read(&frame)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break loop
			}
			return fmt.Errorf("could not read frame: %w", err)
		}

		r := dec.Decode(frame.Bytes())
		u := k197.ResolveUnit(r.Ann, tc)
		fmt.Fprintf(wbuf, "%-9s %-3s [%s]\n", r.Text, u.Symbol, flagsOf(r))
	}

	return nil
}

func flagsOf(r k197.Reading) string {
	var fs []string
	if r.Ann.AC() {
		fs = append(fs, "AC")
	}
	if r.Ann.DC() {
		fs = append(fs, "DC")
	}
	if r.Ann.Auto() {
		fs = append(fs, "auto")
	}
	if r.Ann.Rel() {
		fs = append(fs, "REL")
	}
	if r.Ann.BatteryLow() {
		fs = append(fs, "batt")
	}
	if r.Overrange {
		fs = append(fs, "overrange")
	}
	return strings.Join(fs, " ")
}
