// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command k197-watch monitors a k197-srv control socket and sends a
// mail alert when the meter reports an overrange or a low battery.
package main // import "github.com/alx2009/K197Display-sub000/cmd/k197-watch"

import (
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	mail "gopkg.in/gomail.v2"
)

func main() {
	var (
		addr = flag.String("addr", "localhost:8867", "address of the k197-srv control socket")
		freq = flag.Duration("freq", 30*time.Second, "probing interval")
	)

	flag.Parse()

	log.SetPrefix("k197-watch: ")
	log.SetFlags(0)

	err := run(*addr, *freq)
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(addr string, freq time.Duration) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not dial %q: %w", addr, err)
	}
	defer conn.Close()

	w := &watcher{
		conn:   conn,
		freq:   freq,
		alerts: make(map[string]int),
	}
	return w.watch()
}

type watcher struct {
	conn net.Conn
	freq time.Duration

	alerts map[string]int // alerts sent, per condition
}

type reading struct {
	Text  string  `json:"text"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
	Over  bool    `json:"overrange"`
	Batt  bool    `json:"battery_low"`
}

func (w *watcher) watch() error {
	tick := time.NewTicker(w.freq)
	defer tick.Stop()

	for range tick.C {
		r, err := w.probe()
		if err != nil {
			return fmt.Errorf("could not probe meter: %w", err)
		}
		if r.Over {
			w.alert("overrange", fmt.Sprintf("reading: %q %s", r.Text, r.Unit))
		}
		if r.Batt {
			w.alert("battery-low", "meter reports a low battery")
		}
	}
	return nil
}

func (w *watcher) probe() (reading, error) {
	var r reading

	req := struct {
		Name string `json:"name"`
	}{"reading"}
	err := json.NewEncoder(w.conn).Encode(req)
	if err != nil {
		return r, fmt.Errorf("could not send reading request: %w", err)
	}

	var rep struct {
		Msg  string  `json:"msg"`
		Data reading `json:"data"`
	}
	err = json.NewDecoder(w.conn).Decode(&rep)
	if err != nil {
		return r, fmt.Errorf("could not decode reading reply: %w", err)
	}
	if rep.Msg != "ok" {
		return r, fmt.Errorf("meter replied %q", rep.Msg)
	}

	return rep.Data, nil
}

func (w *watcher) alert(cond, body string) {
	log.Printf("alert: %s (%s)", cond, body)
	w.alerts[cond]++

	const maxAlerts = 5
	if w.alerts[cond] < maxAlerts {
		w.alertMail(cond, body)
	}
}

var (
	alertMailUsr  = os.Getenv("MAIL_USERNAME")
	alertMailPwd  = os.Getenv("MAIL_PASSWORD")
	alertMailSrv  = os.Getenv("MAIL_SERVER")
	alertMailPort = atoi(os.Getenv("MAIL_PORT"))
	alertMailTgts = strings.Split(os.Getenv("MAIL_TGTS"), ",")
)

func (w *watcher) alertMail(cond, body string) {
	if alertMailUsr == "" || alertMailPwd == "" ||
		alertMailSrv == "" || alertMailPort == 0 ||
		len(alertMailTgts) == 0 {
		log.Printf("could not send mail alert: missing credentials")
		return
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", alertMailUsr)
	msg.SetHeader("Bcc", alertMailTgts...)
	msg.SetHeader("Subject", fmt.Sprintf("[k197-watch] meter alert: %s", cond))
	msg.SetBody("text/plain", fmt.Sprintf("%s\nfreq: %v", body, w.freq))

	dial := mail.NewDialer(alertMailSrv, alertMailPort, alertMailUsr, alertMailPwd)
	dial.TLSConfig = &tls.Config{
		InsecureSkipVerify: true,
	}
	err := dial.DialAndSend(msg)
	if err != nil {
		log.Printf("could not send mail alert: %+v", err)
	}
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
