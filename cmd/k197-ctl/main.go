// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command k197-ctl is an interactive console for the k197-srv control
// socket.
//
//  $> k197-ctl -addr localhost:8867
//  k197>> reading
//  msg="ok" data={"text":"-12.3456","unit":"V",...}
//  k197>> hold true
//  msg="ok"
//  k197>> quit
package main // import "github.com/alx2009/K197Display-sub000/cmd/k197-ctl"

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

func main() {
	log.SetPrefix("k197-ctl: ")
	log.SetFlags(0)

	addr := flag.String("addr", "localhost:8867", "address of the k197-srv control socket")

	flag.Parse()

	err := run(*addr)
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not dial %q: %w", addr, err)
	}
	defer conn.Close()

	term := liner.NewLiner()
	defer term.Close()
	term.SetCtrlCAborts(true)

	for {
		line, err := term.Prompt("k197>> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("could not read line: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		term.AppendHistory(line)

		req, err := parse(line)
		if err != nil {
			log.Printf("%+v", err)
			continue
		}

		err = json.NewEncoder(conn).Encode(req)
		if err != nil {
			return fmt.Errorf("could not send command %q: %w", req.Name, err)
		}

		var rep struct {
			Msg  string           `json:"msg"`
			Data *json.RawMessage `json:"data"`
		}
		err = json.NewDecoder(conn).Decode(&rep)
		if err != nil {
			return fmt.Errorf("could not decode reply: %w", err)
		}

		switch {
		case rep.Data != nil:
			fmt.Printf("msg=%q data=%s\n", rep.Msg, *rep.Data)
		default:
			fmt.Printf("msg=%q\n", rep.Msg)
		}

		if req.Name == "quit" {
			return nil
		}
	}
}

type request struct {
	Name string           `json:"name"`
	Args *json.RawMessage `json:"args,omitempty"`
}

// parse turns "hold true" or "sample-count 32" into a control
// request, marshaling the single argument as bool or number.
func parse(line string) (request, error) {
	toks := strings.Fields(line)
	req := request{Name: toks[0]}
	if len(toks) == 1 {
		return req, nil
	}
	if len(toks) > 2 {
		return req, fmt.Errorf("too many arguments for %q", req.Name)
	}

	var raw json.RawMessage
	switch arg := toks[1]; {
	case arg == "true" || arg == "false" || arg == "on" || arg == "off":
		raw = json.RawMessage(strconv.FormatBool(arg == "true" || arg == "on"))
	default:
		if _, err := strconv.Atoi(arg); err != nil {
			return req, fmt.Errorf("invalid argument %q for %q", arg, req.Name)
		}
		raw = json.RawMessage(arg)
	}
	req.Args = &raw
	return req, nil
}
