package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
)

// isJSONL reports whether the file is in the JSON lines format, anything
// else is read as an SBI csv export.
func isJSONL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jsonl")
}

// loadTransactions reads the trade history from the file.
func loadTransactions(path string) ([]plbook.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trade history: %w", err)
	}
	defer f.Close()

	if isJSONL(path) {
		return plbook.DecodeTransactions(path, f)
	}
	p, err := newParser()
	if err != nil {
		return nil, err
	}
	txs, err := p.ParseTrades(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read trade history %q: %w", path, err)
	}
	return txs, nil
}

// loadCashEvents reads the deposit and withdrawal history from the file, an
// empty path means there is no history.
func loadCashEvents(path string) ([]plbook.CashEvent, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open cash history: %w", err)
	}
	defer f.Close()

	if isJSONL(path) {
		return plbook.DecodeCashEvents(path, f)
	}
	p, err := newParser()
	if err != nil {
		return nil, err
	}
	events, err := p.ParseCash(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read cash history %q: %w", path, err)
	}
	return events, nil
}

// computeBook loads both histories and computes the book up to 'end'.
func computeBook(ctx context.Context, tradesFile, cashFile string, end date.Date) (*plbook.Book, error) {
	txs, err := loadTransactions(tradesFile)
	if err != nil {
		return nil, err
	}
	events, err := loadCashEvents(cashFile)
	if err != nil {
		return nil, err
	}
	book, err := plbook.Compute(ctx, txs, events, end)
	if err != nil {
		return nil, err
	}
	log := logger()
	log.Info().Int("count", len(book.Lots)).Msg("lots built")
	log.Info().Int("count", len(book.Daily)).Msg("daily balances")
	return book, nil
}

// parseDay parses a date flag, empty means today.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
