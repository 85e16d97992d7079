package plbook

import (
	"context"
	"runtime"

	"github.com/etnz/plbook/date"
	"golang.org/x/sync/errgroup"
)

// DailyBalance is the state of the account at the end of a calendar day.
//
// Deposit, Withdrawal, TransferIn and TransferOut are cumulative since the
// first cash event. OpenCost is the FIFO cost of the positions held that day
// (a cost, not a market value) and Revenue is the cumulative realized profit.
type DailyBalance struct {
	Date        date.Date
	Deposit     Money
	Withdrawal  Money
	TransferIn  Money
	TransferOut Money
	Principal   Money // Deposit + TransferIn - Withdrawal - TransferOut
	OpenCost    Money
	Revenue     Money
	CashBalance Money // Principal + Revenue - OpenCost
	Total       Money // Principal + Revenue
}

// ExposureOn returns the open cost of all the lots held at the end of day
// 'on', each lot being replayed as of that day.
func ExposureOn(lots []*Lot, on date.Date) Money {
	var total Money
	for _, l := range lots {
		if !l.heldOn(on) {
			continue
		}
		if past := l.AsOf(on); past != nil {
			total = total.Add(past.OpenCost())
		}
	}
	return total
}

// RevenueOn returns the realized profit of all the lots closed on or before
// day 'on'.
func RevenueOn(lots []*Lot, on date.Date) Money {
	var total Money
	for _, l := range lots {
		if l.realizedBy(on) {
			total = total.Add(l.profit)
		}
	}
	return total
}

// BuildDailySeries computes one DailyBalance per calendar day, from the
// first cash event date to 'end' included. Days without a cash event carry
// the cumulative cash totals over.
//
// Events are expected to be merged by day (see MergeCashEvents); events
// sharing a day are summed anyway. It returns no balance when there is no
// cash event or when end is before the first event.
//
// Exposure and revenue of each day only depend on the finalized lots, they
// are computed concurrently. The only error returned is the context's.
func BuildDailySeries(ctx context.Context, events []CashEvent, lots []*Lot, end date.Date) ([]DailyBalance, error) {
	merged := MergeCashEvents(events)
	if len(merged) == 0 {
		return nil, nil
	}
	span := date.Range{From: merged[0].Date, To: end}
	n := span.Len()
	if n == 0 {
		return nil, nil
	}

	exposure := make([]Money, n)
	revenue := make([]Money, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range n {
		day := span.From.Add(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			exposure[i] = ExposureOn(lots, day)
			revenue[i] = RevenueOn(lots, day)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := make([]DailyBalance, 0, n)
	var prev DailyBalance
	next := 0 // index of the next merged event
	for i := range n {
		day := span.From.Add(i)
		b := DailyBalance{
			Date:        day,
			Deposit:     prev.Deposit,
			Withdrawal:  prev.Withdrawal,
			TransferIn:  prev.TransferIn,
			TransferOut: prev.TransferOut,
		}
		if next < len(merged) && merged[next].Date == day {
			e := merged[next]
			b.Deposit = b.Deposit.Add(e.Deposit)
			b.Withdrawal = b.Withdrawal.Add(e.Withdrawal)
			b.TransferIn = b.TransferIn.Add(e.TransferIn)
			b.TransferOut = b.TransferOut.Add(e.TransferOut)
			next++
		}
		b.Principal = b.Deposit.Add(b.TransferIn).Sub(b.Withdrawal).Sub(b.TransferOut)
		b.OpenCost = exposure[i]
		b.Revenue = revenue[i]
		b.CashBalance = b.Principal.Add(b.Revenue).Sub(b.OpenCost)
		b.Total = b.Principal.Add(b.Revenue)

		series = append(series, b)
		prev = b
	}
	return series, nil
}

// SampleSeries keeps the last balance of each period. The Daily period
// returns the series unchanged.
func SampleSeries(series []DailyBalance, period date.Period) []DailyBalance {
	if period == date.Daily || len(series) == 0 {
		return series
	}
	var sampled []DailyBalance
	for i, b := range series {
		last := i == len(series)-1
		if last || series[i+1].Date.StartOf(period) != b.Date.StartOf(period) {
			sampled = append(sampled, b)
		}
	}
	return sampled
}
