package plbook

import "github.com/etnz/plbook/date"

// JPY is a helper for test to create money from const
func JPY(v float64) Money { return M(v) }

// buy is a helper for test to create a spot equity buy fill.
func buy(on, code string, qty, amount float64) Transaction {
	return fill(on, code, Buy, qty, amount)
}

// sell is a helper for test to create a spot equity sell fill.
func sell(on, code string, qty, amount float64) Transaction {
	return fill(on, code, Sell, qty, amount)
}

func fill(on, code string, d Direction, qty, amount float64) Transaction {
	day := date.MustParse(on)
	return Transaction{
		ContractDate:     day,
		Description:      "instrument " + code,
		Code:             code,
		Market:           "東証",
		Category:         Equity,
		Method:           SpotEquity,
		Direction:        d,
		Quantity:         Q(qty),
		UnitPrice:        M(amount / qty),
		SettlementDate:   day.Add(2),
		SettlementAmount: M(amount),
	}
}

// deposit is a helper for test to create a cash event.
func deposit(on string, amount float64) CashEvent {
	return CashEvent{Date: date.MustParse(on), Deposit: M(amount)}
}
