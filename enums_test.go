package plbook

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseEnums(t *testing.T) {
	for _, c := range []TradeCategory{UnknownCategory, Equity, Fund} {
		if got, err := ParseTradeCategory(c.String()); err != nil || got != c {
			t.Errorf("ParseTradeCategory(%q) = %v, %v, want %v", c.String(), got, err, c)
		}
	}
	for _, m := range []TradeMethod{UnknownMethod, SpotEquity, FundByUnits, FundByAmount} {
		if got, err := ParseTradeMethod(m.String()); err != nil || got != m {
			t.Errorf("ParseTradeMethod(%q) = %v, %v, want %v", m.String(), got, err, m)
		}
	}
	for _, d := range []Direction{UnknownDirection, Buy, Sell} {
		if got, err := ParseDirection(d.String()); err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v, want %v", d.String(), got, err, d)
		}
	}

	if _, err := ParseDirection("short"); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("ParseDirection(\"short\") error = %v, want %v", err, ErrUnknownEnum)
	}
	if _, err := ParseTradeMethod(""); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("ParseTradeMethod(\"\") error = %v, want %v", err, ErrUnknownEnum)
	}
}

func TestEnums_JSON(t *testing.T) {
	var v struct {
		Category  TradeCategory `json:"category"`
		Method    TradeMethod   `json:"method"`
		Direction Direction     `json:"direction"`
	}
	if err := json.Unmarshal([]byte(`{"category":"fund","method":"fund-amount","direction":"sell"}`), &v); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if v.Category != Fund || v.Method != FundByAmount || v.Direction != Sell {
		t.Errorf("json.Unmarshal() = %+v", v)
	}
	if err := json.Unmarshal([]byte(`{"direction":"hold"}`), &v); err == nil {
		t.Errorf("json.Unmarshal(unknown direction) succeeded, want error")
	}
}
