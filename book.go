package plbook

import (
	"context"
	"fmt"

	"github.com/etnz/plbook/date"
)

// Book is the result of a computation: the lots built from the trade
// history and the daily balance series.
type Book struct {
	End   date.Date // last day of the daily series
	Lots  []*Lot
	Daily []DailyBalance
}

// Compute builds the lots from all transactions, then the daily series from
// the raw cash events and the lots, up to 'end' included.
func Compute(ctx context.Context, transactions []Transaction, cash []CashEvent, end date.Date) (*Book, error) {
	lots := BuildLots(transactions)
	daily, err := BuildDailySeries(ctx, MergeCashEvents(cash), lots, end)
	if err != nil {
		return nil, fmt.Errorf("cannot build daily series: %w", err)
	}
	return &Book{End: end, Lots: lots, Daily: daily}, nil
}

// Revenue returns the total realized profit of the book.
func (b *Book) Revenue() Money { return RevenueOn(b.Lots, b.End) }

// Latest returns the last daily balance, ok is false for an empty series.
func (b *Book) Latest() (DailyBalance, bool) {
	if len(b.Daily) == 0 {
		return DailyBalance{}, false
	}
	return b.Daily[len(b.Daily)-1], true
}
