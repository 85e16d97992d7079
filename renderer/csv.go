package renderer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/plbook"
)

var lotsHeader = []string{
	"取引種別",
	"取引方法",
	"銘柄",
	"銘柄コード",
	"未決済数量",
	"決済済み数量",
	"買付金額(円)",
	"売却金額(円)",
	"未決済金額(円)",
	"損益金額(円)",
	"損益率(%)",
	"買付取引回数",
	"売却取引回数",
	"取引開始日",
	"決済日",
}

var dailyHeader = []string{
	"日付",
	"累計入金額(円)",
	"累計出金額(円)",
	"累計振替入金額(円)",
	"累計振替出金額(円)",
	"元本(円)",
	"保有中銘柄買付額合計(円)",
	"累計収益(円)",
	"現金残高(円)",
	"資産合計(円)",
}

// WriteLotsCSV writes one row per lot, after a header row.
//
// Open lots have an empty profit and close date, the profit percent is empty
// whenever it is undefined.
func WriteLotsCSV(w io.Writer, lots []*plbook.Lot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(lotsHeader); err != nil {
		return fmt.Errorf("cannot write lots header: %w", err)
	}
	for _, l := range lots {
		var profit, closeDate string
		if p, ok := l.Profit(); ok {
			profit = p.String()
		}
		if d, ok := l.CloseDate(); ok {
			closeDate = slashDate(d)
		}
		row := []string{
			categoryLabel(l.Category()),
			methodLabel(l.Method()),
			l.Description(),
			l.Code(),
			l.OpenQuantity().String(),
			l.ClosedQuantity().String(),
			l.BuyAmount().String(),
			l.SellAmount().String(),
			l.OpenCost().String(),
			profit,
			percent(l),
			strconv.Itoa(l.BuyCount()),
			strconv.Itoa(l.SellCount()),
			slashDate(l.OpenDate()),
			closeDate,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write lot %q: %w", l.Description(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDailyCSV writes one row per daily balance, after a header row.
func WriteDailyCSV(w io.Writer, series []plbook.DailyBalance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dailyHeader); err != nil {
		return fmt.Errorf("cannot write daily header: %w", err)
	}
	for _, b := range series {
		row := []string{
			slashDate(b.Date),
			b.Deposit.String(),
			b.Withdrawal.String(),
			b.TransferIn.String(),
			b.TransferOut.String(),
			b.Principal.String(),
			b.OpenCost.String(),
			b.Revenue.String(),
			b.CashBalance.String(),
			b.Total.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write balance of %s: %w", b.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
