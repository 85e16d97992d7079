package plbook

import (
	"slices"

	"github.com/etnz/plbook/date"
	"github.com/shopspring/decimal"
)

// Lot is one round trip trade on an instrument group: it is opened by a
// first fill, grows with additional fills in the same direction, and is
// reduced by settlement fills in the opposite direction until no open
// quantity remains. Then it is closed, and its realized profit is frozen.
//
// A lot opened by a sell is a short selling lot: buys are its settlement
// fills.
type Lot struct {
	description  string
	code         string
	category     TradeCategory
	method       TradeMethod
	shortSelling bool

	fills []Transaction // in the order they were added, fills[0] opened the lot

	closedQuantity Quantity
	openQuantity   Quantity
	buyAmount      Money
	sellAmount     Money
	openCost       Money // FIFO cost of the units still open
	openDate       date.Date

	closed        bool
	closeDate     date.Date
	profit        Money
	profitPercent Percent
	percentOK     bool // false when the percent is undefined
}

// newLot opens a lot seeded by t.
func newLot(t Transaction) *Lot {
	l := &Lot{
		description:  t.Description,
		code:         t.Code,
		category:     t.Category,
		method:       t.Method,
		shortSelling: opensShort(t.Direction),
		openQuantity: t.Quantity,
		openCost:     t.SettlementAmount,
		openDate:     t.ContractDate,
	}
	l.record(t)
	return l
}

// opensShort reports whether a lot seeded by a fill in direction d is a
// short selling lot.
func opensShort(d Direction) bool {
	switch d {
	case Sell:
		return true
	case Buy, UnknownDirection:
		return false
	default:
		return false
	}
}

// IsSettlement reports whether a fill in direction d reduces the exposure of
// a lot: a sell settles a lot opened by a buy, a buy settles a short selling
// lot. A fill of unknown direction never settles.
func IsSettlement(shortSelling bool, d Direction) bool {
	switch d {
	case Buy:
		return shortSelling
	case Sell:
		return !shortSelling
	case UnknownDirection:
		return false
	default:
		return false
	}
}

// record appends t to the fills and updates the buy or sell totals.
// Fills of unknown direction are accounted on the buy side.
func (l *Lot) record(t Transaction) {
	l.fills = append(l.fills, t)
	switch t.Direction {
	case Sell:
		l.sellAmount = l.sellAmount.Add(t.SettlementAmount)
	case Buy, UnknownDirection:
		l.buyAmount = l.buyAmount.Add(t.SettlementAmount)
	}
}

// add feeds a fill into the lot. It is a no-op on a closed lot, closed lots
// never reopen.
func (l *Lot) add(t Transaction) {
	if l.closed {
		return
	}
	l.record(t)

	if IsSettlement(l.shortSelling, t.Direction) {
		l.closedQuantity = l.closedQuantity.Add(t.Quantity)
		l.openQuantity = l.openQuantity.Sub(t.Quantity)
		// the FIFO boundary moved, the open cost must be recomputed.
		l.openCost = l.fifoOpenCost()
	} else {
		l.openQuantity = l.openQuantity.Add(t.Quantity)
		l.openCost = l.openCost.Add(t.SettlementAmount)
	}

	if l.openQuantity.IsZero() {
		l.close(t.ContractDate)
	}
}

// fifoOpenCost computes the cost of the units still open, assuming the
// opening fills are settled first in, first out.
//
// Opening fills are walked in their original order: the first closedQuantity
// units are considered settled, every unit beyond counts for the per unit
// price of the fill it belongs to.
func (l *Lot) fifoOpenCost() Money {
	settled := l.closedQuantity
	var cost Money
	for _, f := range l.fills {
		if IsSettlement(l.shortSelling, f.Direction) || !f.Quantity.IsPositive() {
			continue
		}
		consumed := settled.Min(f.Quantity)
		if consumed.IsNegative() {
			consumed = Quantity{}
		}
		settled = settled.Sub(consumed)
		open := f.Quantity.Sub(consumed)
		if open.IsZero() {
			continue
		}
		// amount * open / quantity is the per unit price times open units,
		// without the rounding of the unit price.
		cost = cost.Add(f.SettlementAmount.Mul(open).Div(f.Quantity))
	}
	return cost
}

// close freezes the lot on the given day.
func (l *Lot) close(on date.Date) {
	l.profit = l.sellAmount.Sub(l.buyAmount)
	if ratio, ok := l.buyAmount.Ratio(l.sellAmount); ok {
		l.profitPercent = Percent(decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100)).InexactFloat64())
		l.percentOK = true
	}
	l.closeDate = on
	l.openCost = Money{}
	l.closed = true
}

// AsOf returns the state the lot had at the end of day 'on', or nil if the
// lot was not open yet.
//
// The state is rebuilt by replaying, in contract date order, only the fills
// known on that day.
func (l *Lot) AsOf(on date.Date) *Lot {
	if on.Before(l.openDate) {
		return nil
	}
	known := make([]Transaction, 0, len(l.fills))
	for _, f := range l.fills {
		if !f.ContractDate.After(on) {
			known = append(known, f)
		}
	}
	if len(known) == 0 {
		return nil
	}
	slices.SortStableFunc(known, func(a, b Transaction) int {
		return a.ContractDate.Compare(b.ContractDate)
	})

	replay := newLot(known[0])
	for _, f := range known[1:] {
		replay.add(f)
	}
	return replay
}

// heldOn reports whether the lot carried an exposure at the end of day 'on'.
func (l *Lot) heldOn(on date.Date) bool {
	if on.Before(l.openDate) {
		return false
	}
	return !l.closed || l.closeDate.After(on)
}

// realizedBy reports whether the lot was closed on or before day 'on'.
func (l *Lot) realizedBy(on date.Date) bool {
	return l.closed && !l.closeDate.After(on)
}

// Description returns the instrument name.
func (l *Lot) Description() string { return l.description }

// Code returns the instrument code, possibly empty.
func (l *Lot) Code() string { return l.code }

func (l *Lot) Category() TradeCategory { return l.category }
func (l *Lot) Method() TradeMethod     { return l.method }

// ShortSelling returns true if the lot was opened by a sell.
func (l *Lot) ShortSelling() bool { return l.shortSelling }

// ClosedQuantity returns the cumulative quantity of the settlement fills.
func (l *Lot) ClosedQuantity() Quantity { return l.closedQuantity }

// OpenQuantity returns the quantity still held.
func (l *Lot) OpenQuantity() Quantity { return l.openQuantity }

// BuyAmount returns the sum of the buy fills settlement amounts.
func (l *Lot) BuyAmount() Money { return l.buyAmount }

// SellAmount returns the sum of the sell fills settlement amounts.
func (l *Lot) SellAmount() Money { return l.sellAmount }

// OpenCost returns the FIFO cost of the units still held, zero once closed.
func (l *Lot) OpenCost() Money { return l.openCost }

// OpenDate returns the contract date of the fill that opened the lot.
func (l *Lot) OpenDate() date.Date { return l.openDate }

// Closed returns true once the open quantity reached zero.
func (l *Lot) Closed() bool { return l.closed }

// CloseDate returns the contract date of the fill that closed the lot.
func (l *Lot) CloseDate() (date.Date, bool) { return l.closeDate, l.closed }

// Profit returns the realized profit (sell amount minus buy amount), ok is
// false while the lot is open.
func (l *Lot) Profit() (Money, bool) { return l.profit, l.closed }

// ProfitPercent returns (1 - buy amount / sell amount) * 100. ok is false
// while the lot is open, or when the sell amount is zero and the ratio is
// undefined.
func (l *Lot) ProfitPercent() (Percent, bool) {
	return l.profitPercent, l.closed && l.percentOK
}

// Fills returns a copy of the fills in the order they were added.
func (l *Lot) Fills() []Transaction { return slices.Clone(l.fills) }

// Buys returns the fills on the buy side, fills of unknown direction included.
func (l *Lot) Buys() []Transaction {
	var buys []Transaction
	for _, f := range l.fills {
		if f.Direction != Sell {
			buys = append(buys, f)
		}
	}
	return buys
}

// Sells returns the sell fills.
func (l *Lot) Sells() []Transaction {
	var sells []Transaction
	for _, f := range l.fills {
		if f.Direction == Sell {
			sells = append(sells, f)
		}
	}
	return sells
}

// BuyCount returns the number of buy side fills.
func (l *Lot) BuyCount() int { return len(l.fills) - l.SellCount() }

// SellCount returns the number of sell fills.
func (l *Lot) SellCount() int {
	n := 0
	for _, f := range l.fills {
		if f.Direction == Sell {
			n++
		}
	}
	return n
}

// Equal reports whether both lots describe the same state.
func (l *Lot) Equal(o *Lot) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.description == o.description &&
		l.code == o.code &&
		l.category == o.category &&
		l.method == o.method &&
		l.shortSelling == o.shortSelling &&
		len(l.fills) == len(o.fills) &&
		l.closedQuantity.Equal(o.closedQuantity) &&
		l.openQuantity.Equal(o.openQuantity) &&
		l.buyAmount.Equal(o.buyAmount) &&
		l.sellAmount.Equal(o.sellAmount) &&
		l.openCost.Equal(o.openCost) &&
		l.openDate == o.openDate &&
		l.closed == o.closed &&
		l.closeDate == o.closeDate &&
		l.profit.Equal(o.profit) &&
		l.percentOK == o.percentOK &&
		l.profitPercent.Equal(o.profitPercent)
}
