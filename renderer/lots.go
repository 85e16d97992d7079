package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
	md "github.com/nao1215/markdown"
)

// LotsMarkdown renders the lots as a markdown report: open lots first, then
// closed lots with their realized profit and the total.
func LotsMarkdown(lots []*plbook.Lot, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Lots")

	var open, closed []*plbook.Lot
	for _, l := range lots {
		if l.Closed() {
			closed = append(closed, l)
		} else {
			open = append(open, l)
		}
	}

	if len(open) > 0 {
		doc.H2("Open Lots")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Instrument", "Method", "Opened", "Quantity", "Open Cost", "Fills"},
		}
		var exposure plbook.Money
		for _, l := range open {
			exposure = exposure.Add(l.OpenCost())
			table.Rows = append(table.Rows, []string{
				instrument(l),
				method(l),
				l.OpenDate().String(),
				l.OpenQuantity().String(),
				opts.money(l.OpenCost()),
				fmt.Sprintf("%d", len(l.Fills())),
			})
		}
		table.Rows = append(table.Rows, []string{md.Bold("Total"), "", "", "", md.Bold(opts.money(exposure)), ""})
		doc.Table(table)
	}

	if len(closed) > 0 {
		doc.H2("Closed Lots")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Instrument", "Method", "Opened", "Closed", "Buy", "Sell", "Profit", "%"},
		}
		var revenue plbook.Money
		for _, l := range closed {
			profit, _ := l.Profit()
			revenue = revenue.Add(profit)
			on, _ := l.CloseDate()
			pct := "n/a"
			if p, ok := l.ProfitPercent(); ok {
				pct = p.SignedString()
			}
			table.Rows = append(table.Rows, []string{
				instrument(l),
				method(l),
				l.OpenDate().String(),
				on.String(),
				opts.money(l.BuyAmount()),
				opts.money(l.SellAmount()),
				profit.SignedString(opts.currency()),
				pct,
			})
		}
		table.Rows = append(table.Rows, []string{md.Bold("Total"), "", "", "", "", "", md.Bold(revenue.SignedString(opts.currency())), ""})
		doc.Table(table)
	}

	if len(lots) == 0 {
		doc.PlainText("No lots.")
	}

	return doc.String()
}

// AsOfMarkdown renders the state of the lots replayed as of a given day.
func AsOfMarkdown(lots []*plbook.Lot, on date.Date, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Lots as of %s", on))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Instrument", "Status", "Quantity", "Open Cost", "Profit"},
	}
	for _, l := range lots {
		status, profit := "open", ""
		if p, ok := l.Profit(); ok {
			status, profit = "closed", p.SignedString(opts.currency())
		}
		table.Rows = append(table.Rows, []string{
			instrument(l),
			status,
			l.OpenQuantity().String(),
			opts.money(l.OpenCost()),
			profit,
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "", "",
		md.Bold(opts.money(plbook.ExposureOn(lots, on))),
		md.Bold(plbook.RevenueOn(lots, on).SignedString(opts.currency())),
	})
	doc.Table(table)
	return doc.String()
}

// instrument returns the lot name as printed in tables.
func instrument(l *plbook.Lot) string {
	if l.Code() == "" {
		return l.Description()
	}
	return fmt.Sprintf("%s (%s)", l.Description(), l.Code())
}

// method returns the trade method, with a short marker.
func method(l *plbook.Lot) string {
	if l.ShortSelling() {
		return l.Method().String() + " (short)"
	}
	return l.Method().String()
}
