package plbook

import (
	"errors"
	"fmt"
)

// ErrUnknownEnum is returned when parsing an enum name that is not known.
var ErrUnknownEnum = errors.New("unknown enum value")

// TradeCategory is the kind of instrument traded.
type TradeCategory int

const (
	UnknownCategory TradeCategory = iota
	Equity
	Fund
)

func (c TradeCategory) String() string {
	switch c {
	case Equity:
		return "equity"
	case Fund:
		return "fund"
	default:
		return "unknown"
	}
}

// ParseTradeCategory parses the String form of a TradeCategory.
func ParseTradeCategory(s string) (TradeCategory, error) {
	switch s {
	case "equity":
		return Equity, nil
	case "fund":
		return Fund, nil
	case "unknown":
		return UnknownCategory, nil
	default:
		return UnknownCategory, fmt.Errorf("trade category %q: %w", s, ErrUnknownEnum)
	}
}

// TradeMethod is how the instrument is traded. Two fills of the same
// instrument with different methods never belong to the same lot.
type TradeMethod int

const (
	UnknownMethod TradeMethod = iota
	SpotEquity
	FundByUnits
	FundByAmount
)

func (m TradeMethod) String() string {
	switch m {
	case SpotEquity:
		return "spot-equity"
	case FundByUnits:
		return "fund-units"
	case FundByAmount:
		return "fund-amount"
	default:
		return "unknown"
	}
}

// ParseTradeMethod parses the String form of a TradeMethod.
func ParseTradeMethod(s string) (TradeMethod, error) {
	switch s {
	case "spot-equity":
		return SpotEquity, nil
	case "fund-units":
		return FundByUnits, nil
	case "fund-amount":
		return FundByAmount, nil
	case "unknown":
		return UnknownMethod, nil
	default:
		return UnknownMethod, fmt.Errorf("trade method %q: %w", s, ErrUnknownEnum)
	}
}

// Direction is the side of a fill.
type Direction int

const (
	UnknownDirection Direction = iota
	Buy
	Sell
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseDirection parses the String form of a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	case "unknown":
		return UnknownDirection, nil
	default:
		return UnknownDirection, fmt.Errorf("direction %q: %w", s, ErrUnknownEnum)
	}
}

func (c TradeCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (m TradeMethod) MarshalText() ([]byte, error)   { return []byte(m.String()), nil }
func (d Direction) MarshalText() ([]byte, error)     { return []byte(d.String()), nil }

func (c *TradeCategory) UnmarshalText(b []byte) (err error) {
	*c, err = ParseTradeCategory(string(b))
	return
}

func (m *TradeMethod) UnmarshalText(b []byte) (err error) {
	*m, err = ParseTradeMethod(string(b))
	return
}

func (d *Direction) UnmarshalText(b []byte) (err error) {
	*d, err = ParseDirection(string(b))
	return
}
