package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a migrated store in a temporary database.
func setupTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := New(db, zerolog.Nop())
	require.NoError(t, s.Migrate(context.Background()))
	return s, db
}

func fill(on, code string, d plbook.Direction, qty, amount float64) plbook.Transaction {
	day := date.MustParse(on)
	return plbook.Transaction{
		ContractDate:     day,
		Description:      "instrument " + code,
		Code:             code,
		Market:           "東証",
		Category:         plbook.Equity,
		Method:           plbook.SpotEquity,
		Direction:        d,
		Account:          "特定",
		Quantity:         plbook.Q(qty),
		UnitPrice:        plbook.M(amount / qty),
		SettlementDate:   day.Add(2),
		SettlementAmount: plbook.M(amount),
	}
}

func testBook(t *testing.T) *plbook.Book {
	t.Helper()
	book, err := plbook.Compute(context.Background(),
		[]plbook.Transaction{
			fill("2024-01-05", "7203", plbook.Buy, 100, 10000),
			fill("2024-01-08", "9984", plbook.Buy, 10, 5000),
			fill("2024-01-10", "7203", plbook.Sell, 100, 12000),
		},
		[]plbook.CashEvent{{Date: date.New(2024, 1, 4), Deposit: plbook.M(100000)}},
		date.New(2024, 1, 12))
	require.NoError(t, err)
	return book
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := New(db, zerolog.Nop())
	require.NoError(t, s.Migrate(context.Background()))
	// migrating twice is harmless
	require.NoError(t, s.Migrate(context.Background()))
}

func TestSaveBook(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)
	book := testBook(t)
	require.NoError(t, s.SaveBook(ctx, book))

	end, err := s.End(ctx)
	require.NoError(t, err)
	assert.Equal(t, date.New(2024, 1, 12), end)

	lots, err := s.Lots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 2)

	closed := lots[0]
	assert.Equal(t, "7203", closed.Code)
	assert.Equal(t, plbook.Equity, closed.Category)
	assert.Equal(t, plbook.SpotEquity, closed.Method)
	assert.True(t, closed.Closed)
	assert.True(t, closed.Profit.Equal(plbook.M(2000)), "profit = %v", closed.Profit)
	assert.True(t, closed.PercentOK)
	assert.True(t, closed.ProfitPercent.Equal(16.666666), "percent = %v", closed.ProfitPercent)
	assert.Equal(t, date.New(2024, 1, 10), closed.CloseDate)
	assert.Equal(t, 1, closed.BuyCount)
	assert.Equal(t, 1, closed.SellCount)

	open := lots[1]
	assert.Equal(t, "9984", open.Code)
	assert.False(t, open.Closed)
	assert.False(t, open.PercentOK)
	assert.True(t, open.CloseDate.IsZero())
	assert.True(t, open.OpenCost.Equal(plbook.M(5000)), "open cost = %v", open.OpenCost)
	assert.True(t, open.OpenQuantity.Equal(plbook.Q(10)), "open quantity = %v", open.OpenQuantity)

	series, err := s.DailyBalances(ctx)
	require.NoError(t, err)
	require.Len(t, series, len(book.Daily))
	for i := range series {
		assert.Equal(t, book.Daily[i].Date, series[i].Date)
		assert.True(t, book.Daily[i].Total.Equal(series[i].Total), "total of %s", series[i].Date)
		assert.True(t, book.Daily[i].OpenCost.Equal(series[i].OpenCost), "open cost of %s", series[i].Date)
	}
}

func TestSaveBook_Replaces(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)
	require.NoError(t, s.SaveBook(ctx, testBook(t)))
	require.NoError(t, s.SaveBook(ctx, testBook(t)))

	lots, err := s.Lots(ctx)
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	var fills int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM fill").Scan(&fills))
	assert.Equal(t, 3, fills)
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)
	book := testBook(t)
	require.NoError(t, s.SaveBook(ctx, book))

	txs, err := s.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, date.New(2024, 1, 5), txs[0].ContractDate)
	assert.Equal(t, "特定", txs[0].Account)
	assert.Equal(t, plbook.Sell, txs[2].Direction)

	// the stored fills rebuild the same lots.
	rebuilt := plbook.BuildLots(txs)
	require.Len(t, rebuilt, len(book.Lots))
	for i := range rebuilt {
		assert.True(t, rebuilt[i].Equal(book.Lots[i]), "lot %d differs", i)
	}
}

func TestDailyBalance(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)
	require.NoError(t, s.SaveBook(ctx, testBook(t)))

	b, err := s.DailyBalance(ctx, date.New(2024, 1, 10))
	require.NoError(t, err)
	assert.True(t, b.Revenue.Equal(plbook.M(2000)), "revenue = %v", b.Revenue)
	assert.True(t, b.OpenCost.Equal(plbook.M(5000)), "open cost = %v", b.OpenCost)
	assert.True(t, b.CashBalance.Equal(plbook.M(97000)), "cash = %v", b.CashBalance)

	_, err = s.DailyBalance(ctx, date.New(2023, 12, 31))
	assert.True(t, errors.Is(err, ErrNotFound), "error = %v", err)
}

func TestEnd_NotFound(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := s.End(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLots_UnknownEnum(t *testing.T) {
	ctx := context.Background()
	s, db := setupTestStore(t)
	require.NoError(t, s.SaveBook(ctx, testBook(t)))
	_, err := db.Exec("UPDATE lot SET category = 'bond' WHERE code = '7203'")
	require.NoError(t, err)

	_, err = s.Lots(ctx)
	assert.ErrorIs(t, err, plbook.ErrUnknownEnum)
}
