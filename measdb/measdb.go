// Copyright 2024 The K197Display Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measdb logs decoded measurements to the bench measurement
// database and retrieves them for offline analysis.
package measdb // import "github.com/alx2009/K197Display-sub000/measdb"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/alx2009/K197Display-sub000/k197"
)

const (
	host = "localhost"
)

var (
	usr = "username"
	pwd = "s3cr3t"

	drvName = "mysql"
)

// Measurement is one logged reading row.
type Measurement struct {
	ID        int64
	Timestamp time.Time
	Text      string
	Value     float64
	Unit      string
	Exp       int8
	Overrange bool
	AC        bool
	Rel       bool
}

// DB exposes convenience methods to log and retrieve measurements
// from the bench database.
type DB struct {
	db   *sql.DB
	name string // name of the measurement database
}

// Open opens a connection to the measurement database dbname.
func Open(dbname string) (*DB, error) {
	db, err := sql.Open(drvName, dsn(dbname))
	if err != nil {
		return nil, fmt.Errorf("measdb: could not open %q db: %w", dbname, err)
	}

	err = ping(db, dbname)
	if err != nil {
		return nil, fmt.Errorf("measdb: could not ping %q db: %w", dbname, err)
	}

	return &DB{db: db, name: dbname}, nil
}

func dsn(db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", usr, pwd, host, db)
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("measdb: could not ping %q db: %w", dbname, err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// InsertReading logs one decoded reading with its resolved unit.
func (db *DB) InsertReading(ctx context.Context, ts time.Time, r k197.Reading, u k197.Unit) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := db.db.ExecContext(
		ctx,
		`INSERT INTO readings (datetime, message, value, unit, exp, overrange, ac, rel)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, r.Text, r.Value, u.Symbol, u.Exp, r.Overrange,
		r.Ann.AC(), r.Ann.Rel(),
	)
	if err != nil {
		return fmt.Errorf("measdb: could not insert reading: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("measdb: context error while inserting reading: %w", err)
	}

	return nil
}

// RecentReadings retrieves the n most recent logged readings, newest
// first.
func (db *DB) RecentReadings(ctx context.Context, n int) ([]Measurement, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ms []Measurement
	rows, err := db.db.QueryContext(
		ctx,
		`SELECT identifier, datetime, message, value, unit, exp, overrange, ac, rel
FROM readings ORDER BY datetime DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return ms, fmt.Errorf("measdb: could not query readings: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var m Measurement
		err = rows.Scan(
			&m.ID, &m.Timestamp, &m.Text, &m.Value,
			&m.Unit, &m.Exp, &m.Overrange, &m.AC, &m.Rel,
		)
		if err != nil {
			return ms, fmt.Errorf("measdb: could not scan row %d for readings: %w", i, err)
		}
		i++

		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return ms, fmt.Errorf("measdb: could not scan db for readings: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return ms, fmt.Errorf("measdb: context error while retrieving readings: %w", err)
	}

	return ms, nil
}

// LastOverrange retrieves the most recent overrange reading, if any.
func (db *DB) LastOverrange(ctx context.Context) (Measurement, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		m  Measurement
		ok bool
	)
	rows, err := db.db.QueryContext(
		ctx,
		`SELECT identifier, datetime, message, value, unit, exp, overrange, ac, rel
FROM readings WHERE overrange=1 ORDER BY datetime DESC LIMIT 1`,
	)
	if err != nil {
		return m, ok, fmt.Errorf("measdb: could not query overrange reading: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		err = rows.Scan(
			&m.ID, &m.Timestamp, &m.Text, &m.Value,
			&m.Unit, &m.Exp, &m.Overrange, &m.AC, &m.Rel,
		)
		if err != nil {
			return m, ok, fmt.Errorf("measdb: could not get overrange reading: %w", err)
		}
		ok = true
	}

	if err := rows.Err(); err != nil {
		return m, ok, fmt.Errorf("measdb: could not scan db for overrange reading: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return m, ok, fmt.Errorf("measdb: context error while retrieving overrange reading: %w", err)
	}

	return m, ok, nil
}
