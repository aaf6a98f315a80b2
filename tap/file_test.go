// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tap

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alx2009/K197Display-sub000/k197"
)

func captureOf(t *testing.T, msgs ...string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	enc := k197.NewEncoder(buf)
	for _, msg := range msgs {
		f, err := k197.Pack(msg, k197.Annunciators{Mid: 0x01})
		if err != nil {
			t.Fatalf("could not pack %q: %+v", msg, err)
		}
		err = enc.Encode(f)
		if err != nil {
			t.Fatalf("could not encode %q: %+v", msg, err)
		}
	}
	return buf.Bytes()
}

func TestFileReplay(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "capture.k197")
	err := os.WriteFile(fname, captureOf(t, " 1.5", " 2.5"), 0644)
	if err != nil {
		t.Fatalf("could not write capture file: %+v", err)
	}

	src, err := NewFile(fname)
	if err != nil {
		t.Fatalf("could not open capture file: %+v", err)
	}
	defer src.Close()

	var (
		buf [k197.MaxFrameLen]byte
		dec = k197.NewDecoder(nil)
	)
	for _, want := range []float64{1.5, 2.5} {
		n, err := src.Frame(buf[:])
		if err != nil {
			t.Fatalf("could not read frame: %+v", err)
		}
		if got, want := n, k197.FrameLen; got != want {
			t.Fatalf("invalid frame length: got=%d, want=%d", got, want)
		}
		r := dec.Decode(buf[:n])
		if got := r.Value; got != want {
			t.Fatalf("invalid value: got=%v, want=%v", got, want)
		}
	}

	if _, err := src.Frame(buf[:]); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got: %+v", err)
	}
}

func TestFileShortBuffer(t *testing.T) {
	src := NewFileFrom(bytes.NewReader(captureOf(t, " 1")))
	var buf [2]byte
	_, err := src.Frame(buf[:])
	if err == nil {
		t.Fatalf("expected an error for a short buffer")
	}
}

func TestFileMissing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "no-such-file"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
