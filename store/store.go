package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
	"github.com/rs/zerolog"
)

// Store reads and writes books.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// New creates a Store on an opened database, see Open.
func New(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("repo", "book").Logger(),
	}
}

// Migrate creates the tables if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// LotRecord is the persisted summary of a lot.
type LotRecord struct {
	ID             int64
	Category       plbook.TradeCategory
	Method         plbook.TradeMethod
	Description    string
	Code           string
	ShortSelling   bool
	OpenQuantity   plbook.Quantity
	ClosedQuantity plbook.Quantity
	BuyAmount      plbook.Money
	SellAmount     plbook.Money
	OpenCost       plbook.Money
	Closed         bool
	Profit         plbook.Money   // zero while open
	ProfitPercent  plbook.Percent // valid only if PercentOK
	PercentOK      bool
	BuyCount       int
	SellCount      int
	OpenDate       date.Date
	CloseDate      date.Date // zero while open
}

// SaveBook replaces the stored book with b.
func (s *Store) SaveBook(ctx context.Context, b *plbook.Book) error {
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, table := range []string{"fill", "lot", "daily_balance", "book"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s table: %w", table, err)
			}
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO book (id, end_date, saved_at) VALUES (1, ?, ?)",
			b.End.String(), time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to insert book: %w", err)
		}
		for _, l := range b.Lots {
			if err := insertLot(ctx, tx, l); err != nil {
				return err
			}
		}
		for _, d := range b.Daily {
			if err := insertDaily(ctx, tx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Int("lots", len(b.Lots)).Int("days", len(b.Daily)).Str("end", b.End.String()).Msg("book saved")
	return nil
}

func insertLot(ctx context.Context, tx *sql.Tx, l *plbook.Lot) error {
	var profit, closeDate sql.NullString
	var percent sql.NullFloat64
	if p, ok := l.Profit(); ok {
		profit = sql.NullString{String: p.String(), Valid: true}
	}
	if d, ok := l.CloseDate(); ok {
		closeDate = sql.NullString{String: d.String(), Valid: true}
	}
	if p, ok := l.ProfitPercent(); ok {
		percent = sql.NullFloat64{Float64: float64(p), Valid: true}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO lot (category, method, description, code, short_selling,
			open_quantity, closed_quantity, buy_amount, sell_amount, open_cost,
			profit, profit_percent, buy_count, sell_count, open_date, close_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Category().String(), l.Method().String(), l.Description(), l.Code(), l.ShortSelling(),
		l.OpenQuantity().String(), l.ClosedQuantity().String(),
		l.BuyAmount().String(), l.SellAmount().String(), l.OpenCost().String(),
		profit, percent, l.BuyCount(), l.SellCount(), l.OpenDate().String(), closeDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lot %q: %w", l.Description(), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get lot id: %w", err)
	}

	for _, f := range l.Fills() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO fill (lot_id, contract_date, description, code, market,
				category, method, direction, expiry, account, tax_type,
				quantity, unit_price, fee, tax, settlement_date, settlement_amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, f.ContractDate.String(), f.Description, f.Code, f.Market,
			f.Category.String(), f.Method.String(), f.Direction.String(), f.Expiry, f.Account, f.TaxType,
			f.Quantity.String(), f.UnitPrice.String(), f.Fee.String(), f.Tax.String(),
			dateText(f.SettlementDate), f.SettlementAmount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert fill of lot %q: %w", l.Description(), err)
		}
	}
	return nil
}

func insertDaily(ctx context.Context, tx *sql.Tx, d plbook.DailyBalance) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO daily_balance (date, deposit, withdrawal, transfer_in, transfer_out,
			principal, open_cost, revenue, cash_balance, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Date.String(), d.Deposit.String(), d.Withdrawal.String(), d.TransferIn.String(), d.TransferOut.String(),
		d.Principal.String(), d.OpenCost.String(), d.Revenue.String(), d.CashBalance.String(), d.Total.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert balance of %s: %w", d.Date, err)
	}
	return nil
}

// End returns the last day of the stored book, ErrNotFound if none was saved.
func (s *Store) End(ctx context.Context) (date.Date, error) {
	var end string
	err := s.db.QueryRowContext(ctx, "SELECT end_date FROM book WHERE id = 1").Scan(&end)
	if errors.Is(err, sql.ErrNoRows) {
		return date.Date{}, ErrNotFound
	}
	if err != nil {
		return date.Date{}, fmt.Errorf("failed to query book: %w", err)
	}
	return date.Parse(end)
}

// Lots returns the stored lots in the order they were opened.
func (s *Store) Lots(ctx context.Context) ([]LotRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, method, description, code, short_selling,
			open_quantity, closed_quantity, buy_amount, sell_amount, open_cost,
			profit, profit_percent, buy_count, sell_count, open_date, close_date
		FROM lot
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lot table: %w", err)
	}
	defer rows.Close()

	lots := []LotRecord{}
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lot table results: %w", err)
		}
		lots = append(lots, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lot table: %w", err)
	}
	return lots, nil
}

func scanLot(rows *sql.Rows) (LotRecord, error) {
	var (
		l                                                   LotRecord
		category, method, openDate                          string
		openQty, closedQty, buyAmount, sellAmount, openCost string
		profit, closeDate                                   sql.NullString
		percent                                             sql.NullFloat64
	)
	err := rows.Scan(&l.ID, &category, &method, &l.Description, &l.Code, &l.ShortSelling,
		&openQty, &closedQty, &buyAmount, &sellAmount, &openCost,
		&profit, &percent, &l.BuyCount, &l.SellCount, &openDate, &closeDate)
	if err != nil {
		return l, err
	}

	p := parser{}
	l.Category = p.category(category)
	l.Method = p.method(method)
	l.OpenQuantity = p.quantity(openQty)
	l.ClosedQuantity = p.quantity(closedQty)
	l.BuyAmount = p.money(buyAmount)
	l.SellAmount = p.money(sellAmount)
	l.OpenCost = p.money(openCost)
	l.OpenDate = p.date(openDate)
	if profit.Valid {
		l.Closed = true
		l.Profit = p.money(profit.String)
	}
	if closeDate.Valid {
		l.CloseDate = p.date(closeDate.String)
	}
	if percent.Valid {
		l.ProfitPercent, l.PercentOK = plbook.Percent(percent.Float64), true
	}
	return l, p.err
}

// Transactions returns the fills of every stored lot, by contract date.
func (s *Store) Transactions(ctx context.Context) ([]plbook.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT contract_date, description, code, market, category, method, direction,
			expiry, account, tax_type, quantity, unit_price, fee, tax,
			settlement_date, settlement_amount
		FROM fill
		ORDER BY contract_date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fill table: %w", err)
	}
	defer rows.Close()

	txs := []plbook.Transaction{}
	for rows.Next() {
		var (
			t                                            plbook.Transaction
			contract, category, method, direction        string
			quantity, unitPrice, fee, tax, settled, paid string
		)
		err := rows.Scan(&contract, &t.Description, &t.Code, &t.Market, &category, &method, &direction,
			&t.Expiry, &t.Account, &t.TaxType, &quantity, &unitPrice, &fee, &tax, &settled, &paid)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fill table results: %w", err)
		}
		p := parser{}
		t.ContractDate = p.date(contract)
		t.Category = p.category(category)
		t.Method = p.method(method)
		t.Direction = p.direction(direction)
		t.Quantity = p.quantity(quantity)
		t.UnitPrice = p.money(unitPrice)
		t.Fee = p.money(fee)
		t.Tax = p.money(tax)
		t.SettlementDate = p.date(settled)
		t.SettlementAmount = p.money(paid)
		if p.err != nil {
			return nil, fmt.Errorf("invalid fill: %w", p.err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fill table: %w", err)
	}
	return txs, nil
}

const dailyColumns = `date, deposit, withdrawal, transfer_in, transfer_out,
	principal, open_cost, revenue, cash_balance, total`

// DailyBalances returns the stored series by date.
func (s *Store) DailyBalances(ctx context.Context) ([]plbook.DailyBalance, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+dailyColumns+" FROM daily_balance ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_balance table: %w", err)
	}
	defer rows.Close()

	series := []plbook.DailyBalance{}
	for rows.Next() {
		b, err := scanDaily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily_balance table results: %w", err)
		}
		series = append(series, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_balance table: %w", err)
	}
	return series, nil
}

// DailyBalance returns the stored balance of a day, ErrNotFound if the day is
// out of the series.
func (s *Store) DailyBalance(ctx context.Context, day date.Date) (plbook.DailyBalance, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+dailyColumns+" FROM daily_balance WHERE date = ?", day.String())
	b, err := scanDaily(row)
	if errors.Is(err, sql.ErrNoRows) {
		return b, fmt.Errorf("balance of %s: %w", day, ErrNotFound)
	}
	if err != nil {
		return b, fmt.Errorf("failed to query balance of %s: %w", day, err)
	}
	return b, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDaily(row scanner) (plbook.DailyBalance, error) {
	var b plbook.DailyBalance
	var on string
	var v [9]string
	if err := row.Scan(&on, &v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6], &v[7], &v[8]); err != nil {
		return b, err
	}
	p := parser{}
	b.Date = p.date(on)
	b.Deposit = p.money(v[0])
	b.Withdrawal = p.money(v[1])
	b.TransferIn = p.money(v[2])
	b.TransferOut = p.money(v[3])
	b.Principal = p.money(v[4])
	b.OpenCost = p.money(v[5])
	b.Revenue = p.money(v[6])
	b.CashBalance = p.money(v[7])
	b.Total = p.money(v[8])
	return b, p.err
}

// dateText returns the ISO form of d, "" for the zero date.
func dateText(d date.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// parser converts stored text into values, keeping the first error.
type parser struct{ err error }

func (p *parser) keep(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

func (p *parser) date(s string) date.Date {
	if s == "" {
		return date.Date{}
	}
	d, err := date.Parse(s)
	p.keep(err)
	return d
}

func (p *parser) money(s string) plbook.Money {
	m, err := plbook.ParseMoney(s)
	p.keep(err)
	return m
}

func (p *parser) quantity(s string) plbook.Quantity {
	q, err := plbook.ParseQuantity(s)
	p.keep(err)
	return q
}

func (p *parser) category(s string) plbook.TradeCategory {
	c, err := plbook.ParseTradeCategory(s)
	p.keep(err)
	return c
}

func (p *parser) method(s string) plbook.TradeMethod {
	m, err := plbook.ParseTradeMethod(s)
	p.keep(err)
	return m
}

func (p *parser) direction(s string) plbook.Direction {
	d, err := plbook.ParseDirection(s)
	p.keep(err)
	return d
}
