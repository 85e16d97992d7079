package plbook

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"12,000", JPY(12000)},
		{" 1234.5 ", JPY(1234.5)},
		{"--", JPY(0)},
		{"-", JPY(0)},
		{"", JPY(0)},
		{"-300", JPY(-300)},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if err != nil {
			t.Errorf("ParseMoney(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseMoney(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseMoney("abc"); err == nil {
		t.Errorf("ParseMoney(\"abc\") succeeded, want error")
	}
}

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		m        Money
		currency string
		want     string
	}{
		{JPY(12000), "JPY", "¥12,000"},
		{JPY(1234567.4), "JPY", "¥1,234,567"},
		{JPY(12.345), "USD", "$12.35"},
	}
	for _, tt := range tests {
		if got := tt.m.Format(tt.currency); got != tt.want {
			t.Errorf("%v.Format(%q) = %q, want %q", tt.m, tt.currency, got, tt.want)
		}
	}
	if got := JPY(0).SignedString("JPY"); got != "-" {
		t.Errorf("SignedString(0) = %q, want \"-\"", got)
	}
	if got := JPY(10).SignedString("JPY"); got != "+¥10" {
		t.Errorf("SignedString(10) = %q, want \"+¥10\"", got)
	}
}

func TestMoney_Div(t *testing.T) {
	if got := JPY(100).Div(Q(0)); !got.IsZero() {
		t.Errorf("Div(0) = %v, want 0", got)
	}
	if got := JPY(100).Div(Q(8)); !got.Equal(JPY(12.5)) {
		t.Errorf("Div(8) = %v, want 12.5", got)
	}
	if _, ok := JPY(100).Ratio(JPY(0)); ok {
		t.Errorf("Ratio(0) is defined")
	}
}

func TestParseQuantity(t *testing.T) {
	got, err := ParseQuantity("1,234.56")
	if err != nil || !got.Equal(Q(1234.56)) {
		t.Errorf("ParseQuantity(\"1,234.56\") = %v, %v, want 1234.56", got, err)
	}
}
