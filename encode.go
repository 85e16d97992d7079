package plbook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/plbook/date"
)

// This file contains the JSONL formats: one json object per line. Lots and
// daily balances are output only, transactions and cash events can be read
// back so that the core can be fed without a broker specific export.

// MarshalJSON implements json.Marshaler with a stable field order.
func (l *Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("category", l.category)
	w.Append("method", l.method)
	w.Append("description", l.description)
	w.Optional("code", l.code)
	w.Optional("shortSelling", l.shortSelling)
	w.Append("openQuantity", l.openQuantity)
	w.Append("closedQuantity", l.closedQuantity)
	w.Append("buyAmount", l.buyAmount)
	w.Append("sellAmount", l.sellAmount)
	w.Append("openCost", l.openCost)
	w.AppendIf(l.closed, "profit", l.profit)
	percent, ok := l.ProfitPercent()
	w.AppendIf(ok, "profitPercent", float64(percent))
	w.Append("buyCount", l.BuyCount())
	w.Append("sellCount", l.SellCount())
	w.Append("openDate", l.openDate)
	w.AppendIf(l.closed, "closeDate", l.closeDate)
	return w.MarshalJSON()
}

// MarshalJSON implements json.Marshaler with a stable field order.
func (b DailyBalance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", b.Date)
	w.Append("deposit", b.Deposit)
	w.Append("withdrawal", b.Withdrawal)
	w.Append("transferIn", b.TransferIn)
	w.Append("transferOut", b.TransferOut)
	w.Append("principal", b.Principal)
	w.Append("openCost", b.OpenCost)
	w.Append("revenue", b.Revenue)
	w.Append("cashBalance", b.CashBalance)
	w.Append("total", b.Total)
	return w.MarshalJSON()
}

// jtransaction is the persisted form of a Transaction.
type jtransaction struct {
	ContractDate     date.Date     `json:"contractDate"`
	Description      string        `json:"description"`
	Code             string        `json:"code,omitempty"`
	Market           string        `json:"market,omitempty"`
	Category         TradeCategory `json:"category"`
	Method           TradeMethod   `json:"method"`
	Direction        Direction     `json:"direction"`
	Expiry           string        `json:"expiry,omitempty"`
	Account          string        `json:"account,omitempty"`
	TaxType          string        `json:"taxType,omitempty"`
	Quantity         Quantity      `json:"quantity"`
	UnitPrice        Money         `json:"unitPrice"`
	Fee              Money         `json:"fee"`
	Tax              Money         `json:"tax"`
	SettlementDate   date.Date     `json:"settlementDate"`
	SettlementAmount Money         `json:"settlementAmount"`
}

// jcash is the persisted form of a CashEvent.
type jcash struct {
	Date        date.Date `json:"date"`
	Deposit     Money     `json:"deposit"`
	Withdrawal  Money     `json:"withdrawal"`
	TransferIn  Money     `json:"transferIn"`
	TransferOut Money     `json:"transferOut"`
}

// encodeLines writes each item as a json line.
func encodeLines[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for i, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("cannot encode item #%d: %w", i, err)
		}
	}
	return nil
}

// decodeLines reads one json object per non blank line. filename is for error messages only.
func decodeLines[T any](filename string, r io.Reader) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("format error in %q line %d: %w", filename, n, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return items, nil
}

// EncodeLots writes lots in JSONL format.
func EncodeLots(w io.Writer, lots []*Lot) error { return encodeLines(w, lots) }

// EncodeDaily writes the daily series in JSONL format.
func EncodeDaily(w io.Writer, series []DailyBalance) error { return encodeLines(w, series) }

// EncodeTransactions writes transactions in JSONL format.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	items := make([]jtransaction, len(txs))
	for i, t := range txs {
		items[i] = jtransaction(t)
	}
	return encodeLines(w, items)
}

// DecodeTransactions reads transactions in JSONL format.
func DecodeTransactions(filename string, r io.Reader) ([]Transaction, error) {
	items, err := decodeLines[jtransaction](filename, r)
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, len(items))
	for i, it := range items {
		txs[i] = Transaction(it)
	}
	return txs, nil
}

// EncodeCashEvents writes cash events in JSONL format.
func EncodeCashEvents(w io.Writer, events []CashEvent) error {
	items := make([]jcash, len(events))
	for i, e := range events {
		items[i] = jcash(e)
	}
	return encodeLines(w, items)
}

// DecodeCashEvents reads cash events in JSONL format.
func DecodeCashEvents(filename string, r io.Reader) ([]CashEvent, error) {
	items, err := decodeLines[jcash](filename, r)
	if err != nil {
		return nil, err
	}
	events := make([]CashEvent, len(items))
	for i, it := range items {
		events[i] = CashEvent(it)
	}
	return events, nil
}
