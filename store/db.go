// Package store persists computed books in a SQLite database: the lot
// summaries with their fills, and the daily balance series.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Open opens the SQLite database at path, it is created if needed.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection: each connection to ":memory:" is a new database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}
	return db, nil
}

// withTx runs fn in a transaction, committed only if fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("panic in transaction: %v", p)
		} else if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = fmt.Errorf("transaction failed: %w (rollback also failed: %v)", err, rollbackErr)
			}
		} else if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()
	return fn(tx)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS book (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		end_date TEXT NOT NULL,
		saved_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lot (
		id INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		method TEXT NOT NULL,
		description TEXT NOT NULL,
		code TEXT NOT NULL,
		short_selling INTEGER NOT NULL,
		open_quantity TEXT NOT NULL,
		closed_quantity TEXT NOT NULL,
		buy_amount TEXT NOT NULL,
		sell_amount TEXT NOT NULL,
		open_cost TEXT NOT NULL,
		profit TEXT,
		profit_percent REAL,
		buy_count INTEGER NOT NULL,
		sell_count INTEGER NOT NULL,
		open_date TEXT NOT NULL,
		close_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS fill (
		id INTEGER PRIMARY KEY,
		lot_id INTEGER NOT NULL REFERENCES lot(id) ON DELETE CASCADE,
		contract_date TEXT NOT NULL,
		description TEXT NOT NULL,
		code TEXT NOT NULL,
		market TEXT NOT NULL,
		category TEXT NOT NULL,
		method TEXT NOT NULL,
		direction TEXT NOT NULL,
		expiry TEXT NOT NULL,
		account TEXT NOT NULL,
		tax_type TEXT NOT NULL,
		quantity TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		fee TEXT NOT NULL,
		tax TEXT NOT NULL,
		settlement_date TEXT NOT NULL,
		settlement_amount TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fill_lot ON fill(lot_id)`,
	`CREATE TABLE IF NOT EXISTS daily_balance (
		date TEXT PRIMARY KEY,
		deposit TEXT NOT NULL,
		withdrawal TEXT NOT NULL,
		transfer_in TEXT NOT NULL,
		transfer_out TEXT NOT NULL,
		principal TEXT NOT NULL,
		open_cost TEXT NOT NULL,
		revenue TEXT NOT NULL,
		cash_balance TEXT NOT NULL,
		total TEXT NOT NULL
	)`,
}
