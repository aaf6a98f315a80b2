// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/alx2009/K197Display-sub000/k197"
)

// FrameSource delivers raw display frames, filling p with the next
// complete frame and returning the populated byte count. io.EOF marks
// the end of a replay source.
type FrameSource interface {
	Frame(p []byte) (int, error)
}

// RunStandalone runs the acquisition loop and the control server in
// one process, without a DAQ orchestrator. It returns when the frame
// source is exhausted or on SIGINT/SIGTERM.
func RunStandalone(addr string, src FrameSource, opts ...Option) error {
	dev, err := New(opts...)
	if err != nil {
		return fmt.Errorf("meter: could not create device: %w", err)
	}

	srv, err := newServer(addr, dev)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		<-ctx.Done()
		srv.close()
		return nil
	})
	grp.Go(func() error {
		err := srv.serve()
		if err != nil && errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	})
	grp.Go(func() error {
		defer cancel()
		return acquire(ctx, dev, src)
	})

	return grp.Wait()
}

// acquire pumps frames from src into dev until src is exhausted or
// ctx is canceled.
func acquire(ctx context.Context, dev *Device, src FrameSource) error {
	var buf [k197.MaxFrameLen]byte
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := src.Frame(buf[:])
		switch {
		case err == nil:
			dev.OnFrame(buf[:n])
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("meter: could not acquire frame: %w", err)
		}
	}
}
