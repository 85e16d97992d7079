package plbook

import (
	"github.com/etnz/plbook/date"
)

// Transaction is a single executed trade fill, as read from the broker's
// trade history. It is an immutable value: the matcher copies it into the
// lot it belongs to.
type Transaction struct {
	ContractDate     date.Date // 約定日
	Description      string    // instrument name
	Code             string    // instrument code, empty for most funds
	Market           string
	Category         TradeCategory
	Method           TradeMethod
	Direction        Direction
	Expiry           string // order validity, passed through
	Account          string // custody account type (特定, 一般, NISA...)
	TaxType          string
	Quantity         Quantity
	UnitPrice        Money // contract unit price
	Fee              Money
	Tax              Money
	SettlementDate   date.Date
	SettlementAmount Money // amount actually paid or received, fees and taxes included
}

// PricePerUnit returns the settlement amount per unit, fees and taxes
// included. It is zero for a zero quantity.
func (t Transaction) PricePerUnit() Money {
	return t.SettlementAmount.Div(t.Quantity)
}

// groupKey identifies the instrument group a transaction belongs to.
//
// The category and the method must be identical. Then the instrument code is
// used when there is one, the description otherwise.
type groupKey struct {
	category TradeCategory
	method   TradeMethod
	byCode   bool
	ident    string
}

func (t Transaction) groupKey() groupKey {
	if t.Code != "" {
		return groupKey{category: t.Category, method: t.Method, byCode: true, ident: t.Code}
	}
	return groupKey{category: t.Category, method: t.Method, ident: t.Description}
}

// SameInstrumentGroup reports whether t and o are fills of the same
// instrument traded the same way, and can therefore belong to the same lot.
func SameInstrumentGroup(t, o Transaction) bool {
	return t.groupKey() == o.groupKey()
}
