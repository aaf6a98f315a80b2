// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/alx2009/K197Display-sub000/measdb"
)

const (
	dbname = "k197bench"
)

func main() {
	log.SetPrefix("k197-sql: ")
	log.SetFlags(0)

	var (
		n    = flag.Int("n", 20, "number of recent readings to display")
		over = flag.Bool("overrange", false, "display the last overrange reading")
	)

	flag.Parse()

	db, err := measdb.Open(dbname)
	if err != nil {
		log.Fatalf("could not open measurement db: %+v", err)
	}
	defer db.Close()

	err = doQuery(db, *n, *over)
	if err != nil {
		log.Fatalf("could not do query: %+v", err)
	}
}

func doQuery(db *measdb.DB, n int, over bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if over {
		m, ok, err := db.LastOverrange(ctx)
		if err != nil {
			return fmt.Errorf("could not get last overrange reading: %w", err)
		}
		if !ok {
			log.Printf("no overrange reading logged")
			return nil
		}
		log.Printf("last overrange: %s %q %s", m.Timestamp.Format(time.RFC3339), m.Text, m.Unit)
		return nil
	}

	ms, err := db.RecentReadings(ctx, n)
	if err != nil {
		return fmt.Errorf("could not get recent readings: %w", err)
	}
	log.Printf("readings: %d", len(ms))
	for _, m := range ms {
		log.Printf(">>> %s %-9q %12g %-3s", m.Timestamp.Format(time.RFC3339), m.Text, m.Value, m.Unit)
	}

	return nil
}
