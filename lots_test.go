package plbook

import (
	"testing"

	"github.com/etnz/plbook/date"
)

func TestBuildLots(t *testing.T) {
	txs := []Transaction{
		buy("2024-01-05", "7203", 100, 10000),
		buy("2024-01-06", "9984", 10, 5000),
		sell("2024-01-10", "7203", 100, 12000),
		buy("2024-01-11", "7203", 50, 6000), // opens a new lot
		sell("2024-01-12", "9984", 5, 3000),
	}
	lots := BuildLots(txs)
	if len(lots) != 3 {
		t.Fatalf("len(BuildLots()) = %d, want 3", len(lots))
	}

	n := 0
	for _, l := range lots {
		n += len(l.Fills())
	}
	if n != len(txs) {
		t.Errorf("BuildLots() assigned %d fills, want %d", n, len(txs))
	}

	tests := []struct {
		code   string
		open   date.Date
		closed bool
		qty    Quantity
	}{
		{"7203", date.New(2024, 1, 5), true, Q(0)},
		{"9984", date.New(2024, 1, 6), false, Q(5)},
		{"7203", date.New(2024, 1, 11), false, Q(50)},
	}
	for i, tt := range tests {
		l := lots[i]
		if l.Code() != tt.code || l.OpenDate() != tt.open {
			t.Errorf("lots[%d] = %s opened %v, want %s opened %v", i, l.Code(), l.OpenDate(), tt.code, tt.open)
		}
		if l.Closed() != tt.closed {
			t.Errorf("lots[%d].Closed() = %v, want %v", i, l.Closed(), tt.closed)
		}
		if !l.OpenQuantity().Equal(tt.qty) {
			t.Errorf("lots[%d].OpenQuantity() = %v, want %v", i, l.OpenQuantity(), tt.qty)
		}
	}
}

func TestBuildLots_Empty(t *testing.T) {
	if got := BuildLots(nil); len(got) != 0 {
		t.Errorf("BuildLots(nil) = %v, want empty", got)
	}
}

func TestBuildLots_Unsorted(t *testing.T) {
	sorted := []Transaction{
		buy("2024-01-05", "7203", 50, 5000),
		buy("2024-01-06", "7203", 50, 6000),
		sell("2024-01-10", "7203", 30, 3600),
	}
	unsorted := []Transaction{sorted[2], sorted[0], sorted[1]}

	want := BuildLots(sorted)
	got := BuildLots(unsorted)
	if len(got) != 1 || len(want) != 1 {
		t.Fatalf("BuildLots() returned %d and %d lots, want 1", len(got), len(want))
	}
	if !got[0].Equal(want[0]) {
		t.Errorf("BuildLots(unsorted) differs from BuildLots(sorted)")
	}
	if !got[0].OpenCost().Equal(JPY(8000)) {
		t.Errorf("OpenCost() = %v, want 8000", got[0].OpenCost())
	}
}

func TestBuildLots_Grouping(t *testing.T) {
	fund := func(on, name string, m TradeMethod, d Direction, qty, amount float64) Transaction {
		tx := fill(on, "", d, qty, amount)
		tx.Description = name
		tx.Category = Fund
		tx.Method = m
		return tx
	}

	tests := []struct {
		name string
		txs  []Transaction
		want int
	}{
		{
			name: "different codes never merge",
			txs: []Transaction{
				buy("2024-01-05", "7203", 10, 1000),
				sell("2024-01-06", "7267", 10, 1200),
			},
			want: 2,
		},
		{
			name: "same code, different description",
			txs: func() []Transaction {
				a := buy("2024-01-05", "7203", 10, 1000)
				b := sell("2024-01-06", "7203", 10, 1200)
				b.Description = "renamed"
				return []Transaction{a, b}
			}(),
			want: 1,
		},
		{
			name: "funds grouped by description",
			txs: []Transaction{
				fund("2024-01-05", "eMAXIS", FundByAmount, Buy, 10, 1000),
				fund("2024-01-06", "eMAXIS", FundByAmount, Sell, 10, 1200),
			},
			want: 1,
		},
		{
			name: "different methods never merge",
			txs: []Transaction{
				fund("2024-01-05", "eMAXIS", FundByAmount, Buy, 10, 1000),
				fund("2024-01-06", "eMAXIS", FundByUnits, Sell, 10, 1200),
			},
			want: 2,
		},
		{
			name: "unknown category and method still group",
			txs: []Transaction{
				fund("2024-01-05", "odd", UnknownMethod, Buy, 10, 1000),
				fund("2024-01-06", "odd", UnknownMethod, Sell, 10, 1200),
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildLots(tt.txs); len(got) != tt.want {
				t.Errorf("len(BuildLots()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestOpenLots(t *testing.T) {
	lots := BuildLots([]Transaction{
		buy("2024-01-05", "7203", 100, 10000),
		sell("2024-01-10", "7203", 100, 12000),
		buy("2024-01-06", "9984", 10, 5000),
	})
	open := OpenLots(lots)
	if len(open) != 1 || open[0].Code() != "9984" {
		t.Errorf("OpenLots() = %v, want the 9984 lot only", open)
	}
}

func TestLotsAsOf(t *testing.T) {
	lots := BuildLots([]Transaction{
		buy("2024-01-05", "7203", 100, 10000),
		sell("2024-01-10", "7203", 100, 12000),
		buy("2024-01-06", "9984", 10, 5000),
	})
	got := LotsAsOf(lots, date.New(2024, 1, 5))
	if len(got) != 1 || got[0].Code() != "7203" || got[0].Closed() {
		t.Errorf("LotsAsOf(2024-01-05) = %v, want the open 7203 lot only", got)
	}
}
