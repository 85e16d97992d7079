// Package renderer formats lots and daily balances for people: Markdown
// reports, their HTML conversion, and the CSV sheets with the original
// spreadsheet layout.
package renderer

import (
	"strconv"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
)

// Options holds the configuration shared by the markdown reports.
type Options struct {
	Currency string // currency used to format amounts, plbook.DefaultCurrency if empty.
}

func (o Options) currency() string {
	if o.Currency == "" {
		return plbook.DefaultCurrency
	}
	return o.Currency
}

// money formats m in the report currency.
func (o Options) money(m plbook.Money) string { return m.Format(o.currency()) }

// slashDate formats d like the broker does: 2024/1/5.
func slashDate(d date.Date) string { return d.Format("2006/1/2") }

// categoryLabel returns the label of the sheet export.
func categoryLabel(c plbook.TradeCategory) string {
	switch c {
	case plbook.Equity:
		return "株式"
	case plbook.Fund:
		return "投資信託"
	default:
		return "未知の取引種類"
	}
}

func methodLabel(m plbook.TradeMethod) string {
	switch m {
	case plbook.SpotEquity:
		return "現物"
	case plbook.FundByUnits:
		return "投信口数"
	case plbook.FundByAmount:
		return "投信金額"
	default:
		return "未知の取引方法"
	}
}

// percent returns the profit percent of l, "" when undefined.
func percent(l *plbook.Lot) string {
	p, ok := l.ProfitPercent()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}
