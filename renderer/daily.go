package renderer

import (
	"bytes"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
	md "github.com/nao1215/markdown"
)

// DailyMarkdown renders the series, one row per balance, as a markdown report.
func DailyMarkdown(series []plbook.DailyBalance, period date.Period, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Balance History")

	if len(series) == 0 {
		doc.PlainText("No cash movement.")
		return doc.String()
	}

	last := series[len(series)-1]
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total on " + last.Date.String()),
			md.Bold(opts.money(last.Total)),
		},
		Rows: [][]string{
			{"Principal", opts.money(last.Principal)},
			{"Revenue", last.Revenue.SignedString(opts.currency())},
			{"Open Cost", opts.money(last.OpenCost)},
			{"Cash Balance", opts.money(last.CashBalance)},
		},
	})

	doc.H2("History (" + period.String() + ")")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Principal", "Open Cost", "Revenue", "Cash", "Total"},
	}
	for _, b := range series {
		label := b.Date.String()
		if period != date.Daily {
			label = date.NewRange(b.Date, period).Identifier()
		}
		table.Rows = append(table.Rows, []string{
			label,
			opts.money(b.Principal),
			opts.money(b.OpenCost),
			b.Revenue.SignedString(opts.currency()),
			opts.money(b.CashBalance),
			opts.money(b.Total),
		})
	}
	doc.Table(table)
	return doc.String()
}
