// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command k197-boot (re)starts the bench acquisition processes: the
// acquisition server first, then the alert watcher once the control
// socket is expected to be up.
package main // import "github.com/alx2009/K197Display-sub000/cmd/k197-boot"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sbinet/pmon"
	"golang.org/x/sync/errgroup"
)

type proc struct {
	name string
	args []string
	wait time.Duration // delay before launch
}

func main() {
	var (
		addr   = flag.String("addr", ":8867", "control socket address")
		doMon  = flag.Bool("pmon", false, "enable pmon monitoring")
		doFreq = flag.Duration("freq", 1*time.Second, "pmon frequency")
	)
	flag.Parse()

	log.SetPrefix("k197-boot: ")
	log.SetFlags(0)

	dir := os.Getenv("K197LOGDIR")
	if dir == "" {
		dir = "/var/log/k197"
	}

	procs := []proc{
		{name: "k197-srv", args: []string{"-addr", *addr}},
		{name: "k197-watch", args: []string{"-addr", *addr}, wait: 2 * time.Second},
	}

	err := boot(procs, dir, *doMon, *doFreq)
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func boot(procs []proc, dir string, doMon bool, freq time.Duration) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)

	for _, p := range procs {
		reap(p.name)
	}

	var (
		grp  errgroup.Group
		kill = make(chan int)
	)
	for i := range procs {
		p := procs[i]
		grp.Go(func() error {
			if p.wait > 0 {
				time.Sleep(p.wait)
			}
			return launch(p, dir, kill, doMon, freq)
		})
	}

	go func() {
		<-stop
		close(kill)
	}()

	err := grp.Wait()
	if err != nil {
		return fmt.Errorf("could not boot bench acquisition: %w", err)
	}
	return nil
}

// reap kills any stale instance left over from a previous boot.
func reap(name string) {
	kill := exec.Command("killall", name)
	kill.Stdout = os.Stdout
	kill.Stderr = os.Stderr
	err := kill.Run()
	if err != nil {
		log.Printf("could not kill stale %q: %+v", name, err)
	}
}

func launch(p proc, dir string, kill chan int, doMon bool, freq time.Duration) error {
	out, err := os.Create(filepath.Join(dir, p.name+".log"))
	if err != nil {
		return fmt.Errorf("could not create log file for %q: %w", p.name, err)
	}
	defer out.Close()

	cmd := exec.Command(p.name, p.args...)
	cmd.Stdout = out
	cmd.Stderr = out

	log.Printf("starting %q...", p.name)
	err = cmd.Start()
	if err != nil {
		return fmt.Errorf("could not start %q: %w", p.name, err)
	}

	if doMon {
		stopMon, err := monitor(p.name, cmd.Process.Pid, dir, freq)
		if err != nil {
			return err
		}
		defer stopMon()
	}

	errch := make(chan error, 1)
	go func() { errch <- cmd.Wait() }()

	select {
	case <-kill:
		err = cmd.Process.Kill()
		if err != nil {
			return fmt.Errorf("could not kill %q: %+v", p.name, err)
		}
	case err = <-errch:
		if err != nil {
			return fmt.Errorf("could not run %q: %w", p.name, err)
		}
	}

	return nil
}

func monitor(name string, pid int, dir string, freq time.Duration) (func(), error) {
	mon, err := pmon.Monitor(pid)
	if err != nil {
		return nil, fmt.Errorf("could not monitor %q (pid=%d): %w", name, pid, err)
	}
	f, err := os.Create(filepath.Join(dir, name+"-pmon.log"))
	if err != nil {
		return nil, fmt.Errorf("could not create pmon log file for %q: %w", name, err)
	}
	mon.W = f
	mon.Freq = freq

	go func() {
		log.Printf("run pmon %q...", name)
		err := mon.Run()
		if err != nil {
			log.Printf("could not run pmon for %q: %+v", name, err)
		}
	}()

	return func() {
		err := mon.Kill()
		if err != nil {
			log.Printf("could not stop pmon for %q: %+v", name, err)
		}
		f.Close()
	}, nil
}
