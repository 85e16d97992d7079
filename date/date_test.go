package date

import (
	"slices"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	if got, want := New(2024, time.February, 30), New(2024, time.March, 1); got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
	if got, want := New(2025, time.January, 0), New(2024, time.December, 31); got != want {
		t.Errorf("New(2025, 1, 0) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, time.July, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2024/01/05", New(2024, time.January, 5), false},
		{"2024/1/5", New(2024, time.January, 5), false},
		{" 2024/12/31 ", New(2024, time.December, 31), false},
		{"約定日", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	from := New(2024, time.February, 27)
	got := slices.Collect(Days(from, New(2024, time.March, 1)))
	want := []Date{from, New(2024, time.February, 28), New(2024, time.February, 29), New(2024, time.March, 1)}
	if !slices.Equal(got, want) {
		t.Errorf("Days() = %v, want %v", got, want)
	}

	if got := slices.Collect(Days(from, from.Add(-1))); len(got) != 0 {
		t.Errorf("Days() on inverted range = %v, want empty", got)
	}
}

func TestDaysUntil(t *testing.T) {
	a := New(2024, time.December, 30)
	if got := a.DaysUntil(New(2025, time.January, 2)); got != 3 {
		t.Errorf("DaysUntil() = %d, want 3", got)
	}
	if got := a.DaysUntil(a.Add(-10)); got != -10 {
		t.Errorf("DaysUntil() = %d, want -10", got)
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2025, time.March, 1), New(2025, time.March, 2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare() inconsistent for %v and %v", a, b)
	}
}

func TestStartEndOf(t *testing.T) {
	d := New(2025, time.September, 10) // a Wednesday
	testCases := []struct {
		period     Period
		start, end Date
	}{
		{Daily, d, d},
		{Weekly, New(2025, time.September, 8), New(2025, time.September, 14)},
		{Monthly, New(2025, time.September, 1), New(2025, time.September, 30)},
		{Quarterly, New(2025, time.July, 1), New(2025, time.September, 30)},
		{Yearly, New(2025, time.January, 1), New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.StartOf(tc.period); got != tc.start {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.start)
			}
			if got := d.EndOf(tc.period); got != tc.end {
				t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.end)
			}
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"daily", NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{"weekly", NewRange(New(2025, time.September, 8), Weekly), "2025-W37"},
		{"monthly", NewRange(New(2025, time.September, 1), Monthly), "2025-09"},
		{"quarterly", NewRange(New(2025, time.July, 1), Quarterly), "2025-Q3"},
		{"yearly", NewRange(New(2025, time.January, 1), Yearly), "2025"},
		{"custom", Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02_2025-09-10"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRange_Len(t *testing.T) {
	r := NewRange(New(2024, time.February, 10), Monthly)
	if got := r.Len(); got != 29 {
		t.Errorf("Len() = %d, want 29", got)
	}
	if got := (Range{From: r.To, To: r.From}).Len(); got != 0 {
		t.Errorf("Len() of inverted range = %d, want 0", got)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, name := range PeriodNames {
		if _, err := ParsePeriod(name); err != nil {
			t.Errorf("ParsePeriod(%q) error = %v", name, err)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Errorf("ParsePeriod(%q) expected an error", "fortnight")
	}
}
