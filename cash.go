package plbook

import (
	"slices"

	"github.com/etnz/plbook/date"
)

// CashEvent is a dated movement of cash in or out of the account,
// independent of trading.
type CashEvent struct {
	Date        date.Date
	Deposit     Money
	Withdrawal  Money
	TransferIn  Money
	TransferOut Money
}

// add returns the per field sum of e and o, keeping e's date.
func (e CashEvent) add(o CashEvent) CashEvent {
	e.Deposit = e.Deposit.Add(o.Deposit)
	e.Withdrawal = e.Withdrawal.Add(o.Withdrawal)
	e.TransferIn = e.TransferIn.Add(o.TransferIn)
	e.TransferOut = e.TransferOut.Add(o.TransferOut)
	return e
}

// Net returns the principal change caused by the event.
func (e CashEvent) Net() Money {
	return e.Deposit.Add(e.TransferIn).Sub(e.Withdrawal).Sub(e.TransferOut)
}

// MergeCashEvents sorts events by date and sums the events of the same
// calendar day into a single event.
func MergeCashEvents(events []CashEvent) []CashEvent {
	if len(events) == 0 {
		return nil
	}
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b CashEvent) int { return a.Date.Compare(b.Date) })

	merged := []CashEvent{sorted[0]}
	for _, e := range sorted[1:] {
		last := &merged[len(merged)-1]
		if last.Date == e.Date {
			*last = last.add(e)
			continue
		}
		merged = append(merged, e)
	}
	return merged
}
