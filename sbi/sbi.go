// Package sbi reads the CSV exports of SBI securities: the trade history
// (取引履歴) and the deposit and withdrawal history (入出金履歴).
//
// Exports are Shift_JIS encoded. Both files start with a free form preamble
// and a header; a row is a data row if and only if its first cell is a date.
package sbi

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ErrNoRows is returned when an export does not contain a single data row.
var ErrNoRows = errors.New("no data rows")

// Encoding of the csv files.
type Encoding int

const (
	ShiftJIS Encoding = iota
	UTF8
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	default:
		return "sjis"
	}
}

// ParseEncoding parses an encoding name: "sjis" (or "shift_jis") and "utf8" (or "utf-8").
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "sjis", "shift_jis", "shiftjis":
		return ShiftJIS, nil
	case "utf8", "utf-8":
		return UTF8, nil
	default:
		return ShiftJIS, fmt.Errorf("unknown encoding %q", s)
	}
}

// Columns of the trade history.
const (
	colContractDate     = iota // 約定日
	colDescription             // 銘柄
	colCode                    // 銘柄コード
	colMarket                  // 市場
	colTrade                   // 取引
	colExpiry                  // 期限
	colAccount                 // 預り
	colTaxType                 // 課税
	colQuantity                // 約定数量
	colUnitPrice               // 約定単価
	colFee                     // 手数料/諸経費等
	colTax                     // 税額
	colSettlementDate          // 受渡日
	colSettlementAmount        // 受渡金額/決済損益
	tradeColumns
)

// Columns of the deposit and withdrawal history.
const (
	colCashDate    = iota // 入出金日
	_                     // 区分
	_                     // 摘要
	colWithdrawal         // 出金額
	colDeposit            // 入金額
	colTransferOut        // 振替出金額
	colTransferIn         // 振替入金額
	cashColumns
)

// Parser reads SBI exports.
type Parser struct {
	log      zerolog.Logger
	encoding Encoding
}

// NewParser returns a Parser for Shift_JIS encoded files.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{
		log:      log.With().Str("parser", "sbi").Logger(),
		encoding: ShiftJIS,
	}
}

// WithEncoding sets the encoding of the files to read.
func (p *Parser) WithEncoding(e Encoding) *Parser {
	p.encoding = e
	return p
}

// decode returns a reader of utf-8 text, without BOM.
func (p *Parser) decode(r io.Reader) io.Reader {
	if p.encoding == ShiftJIS {
		r = transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	}
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}
	return br
}

// row is a data row and its line number.
type row struct {
	line  int
	cells []string
}

// dataRows reads all the records of r and keeps the data rows.
func (p *Parser) dataRows(r io.Reader, columns int) ([]row, error) {
	reader := csv.NewReader(p.decode(r))
	reader.FieldsPerRecord = -1 // the preamble has a variable number of fields
	reader.LazyQuotes = true

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read csv: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		if _, err := date.Parse(record[0]); err != nil {
			continue // preamble or header
		}
		line, _ := reader.FieldPos(0)
		if len(record) < columns {
			return nil, fmt.Errorf("line %d: got %d columns, want %d", line, len(record), columns)
		}
		rows = append(rows, row{line: line, cells: record})
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// ParseTrades reads a trade history export.
func (p *Parser) ParseTrades(r io.Reader) ([]plbook.Transaction, error) {
	rows, err := p.dataRows(r, tradeColumns)
	if err != nil {
		return nil, fmt.Errorf("cannot read trade history: %w", err)
	}
	txs := make([]plbook.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := p.parseTrade(row)
		if err != nil {
			return nil, fmt.Errorf("cannot read trade history line %d: %w", row.line, err)
		}
		txs = append(txs, tx)
	}
	p.log.Info().Int("count", len(txs)).Msg("transactions imported")
	return txs, nil
}

// fields collects the first parsing error of a row.
type fields struct {
	cells []string
	err   error
}

func (f *fields) text(i int) string { return strings.TrimSpace(f.cells[i]) }

func (f *fields) date(i int) date.Date {
	if f.err != nil {
		return date.Date{}
	}
	d, err := date.Parse(f.cells[i])
	if err != nil {
		f.err = fmt.Errorf("column %d: %w", i+1, err)
	}
	return d
}

func (f *fields) money(i int) plbook.Money {
	if f.err != nil {
		return plbook.Money{}
	}
	m, err := plbook.ParseMoney(f.cells[i])
	if err != nil {
		f.err = fmt.Errorf("column %d: %w", i+1, err)
	}
	return m
}

func (f *fields) quantity(i int) plbook.Quantity {
	if f.err != nil {
		return plbook.Quantity{}
	}
	q, err := plbook.ParseQuantity(f.cells[i])
	if err != nil {
		f.err = fmt.Errorf("column %d: %w", i+1, err)
	}
	return q
}

func (p *Parser) parseTrade(r row) (plbook.Transaction, error) {
	f := fields{cells: r.cells}
	trade := f.text(colTrade)
	tx := plbook.Transaction{
		ContractDate:     f.date(colContractDate),
		Description:      f.text(colDescription),
		Code:             f.text(colCode),
		Market:           f.text(colMarket),
		Category:         p.category(r.line, trade),
		Method:           p.method(r.line, trade),
		Direction:        p.direction(r.line, trade),
		Expiry:           f.text(colExpiry),
		Account:          f.text(colAccount),
		TaxType:          f.text(colTaxType),
		Quantity:         f.quantity(colQuantity),
		UnitPrice:        f.money(colUnitPrice),
		Fee:              f.money(colFee),
		Tax:              f.money(colTax),
		SettlementDate:   f.date(colSettlementDate),
		SettlementAmount: f.money(colSettlementAmount),
	}
	return tx, f.err
}

// category classifies the 取引 descriptor, "株式現物買" is an equity.
func (p *Parser) category(line int, trade string) plbook.TradeCategory {
	switch {
	case strings.HasPrefix(trade, "株式現物"):
		return plbook.Equity
	case strings.HasPrefix(trade, "投信"):
		return plbook.Fund
	}
	p.log.Warn().Int("line", line).Str("trade", trade).Msg("unknown trade category")
	return plbook.UnknownCategory
}

// method classifies the 取引 descriptor, "投信金額買付" is a fund bought by amount.
func (p *Parser) method(line int, trade string) plbook.TradeMethod {
	switch {
	case strings.Contains(trade, "現物"):
		return plbook.SpotEquity
	case strings.Contains(trade, "口数"):
		return plbook.FundByUnits
	case strings.Contains(trade, "金額"):
		return plbook.FundByAmount
	}
	p.log.Warn().Int("line", line).Str("trade", trade).Msg("unknown trade method")
	return plbook.UnknownMethod
}

// direction classifies the 取引 descriptor, a fund redemption (解約) is a sell.
func (p *Parser) direction(line int, trade string) plbook.Direction {
	switch {
	case strings.Contains(trade, "買"):
		return plbook.Buy
	case strings.Contains(trade, "売"), strings.Contains(trade, "解約"):
		return plbook.Sell
	}
	p.log.Warn().Int("line", line).Str("trade", trade).Msg("unknown trade direction")
	return plbook.UnknownDirection
}

// ParseCash reads a deposit and withdrawal history export. Events are
// returned as read, several events can share the same day.
func (p *Parser) ParseCash(r io.Reader) ([]plbook.CashEvent, error) {
	rows, err := p.dataRows(r, cashColumns)
	if err != nil {
		return nil, fmt.Errorf("cannot read cash history: %w", err)
	}
	events := make([]plbook.CashEvent, 0, len(rows))
	for _, row := range rows {
		f := fields{cells: row.cells}
		e := plbook.CashEvent{
			Date:        f.date(colCashDate),
			Withdrawal:  f.money(colWithdrawal),
			Deposit:     f.money(colDeposit),
			TransferOut: f.money(colTransferOut),
			TransferIn:  f.money(colTransferIn),
		}
		if f.err != nil {
			return nil, fmt.Errorf("cannot read cash history line %d: %w", row.line, f.err)
		}
		events = append(events, e)
	}
	p.log.Info().Int("count", len(events)).Msg("cash events imported")
	return events, nil
}
