package plbook

import (
	"testing"

	"github.com/etnz/plbook/date"
)

func TestMergeCashEvents(t *testing.T) {
	events := []CashEvent{
		deposit("2024-01-03", 100),
		{Date: date.New(2024, 1, 1), TransferIn: M(50)},
		deposit("2024-01-01", 1000),
		{Date: date.New(2024, 1, 3), Withdrawal: M(30), TransferOut: M(20)},
	}
	got := MergeCashEvents(events)
	if len(got) != 2 {
		t.Fatalf("len(MergeCashEvents()) = %d, want 2", len(got))
	}
	if got[0].Date != date.New(2024, 1, 1) || !got[0].Net().Equal(JPY(1050)) {
		t.Errorf("MergeCashEvents()[0] = %v net %v, want 2024-01-01 net 1050", got[0].Date, got[0].Net())
	}
	if got[1].Date != date.New(2024, 1, 3) || !got[1].Net().Equal(JPY(50)) {
		t.Errorf("MergeCashEvents()[1] = %v net %v, want 2024-01-03 net 50", got[1].Date, got[1].Net())
	}
	if !got[1].Withdrawal.Equal(JPY(30)) || !got[1].Deposit.Equal(JPY(100)) {
		t.Errorf("MergeCashEvents()[1] = %+v, want deposit 100 and withdrawal 30", got[1])
	}
	if len(MergeCashEvents(nil)) != 0 {
		t.Errorf("MergeCashEvents(nil) is not empty")
	}
}
