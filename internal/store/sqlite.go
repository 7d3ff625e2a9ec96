package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/misi/internal/logging"
	"fjacquet/misi/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const (
	timeLayout = time.RFC3339Nano
	seededKey  = "seeded"
)

// SQLiteStore keeps the ledger in a SQLite database. Row order within each
// table is kept in a position column so a Load returns collections in the
// order they were saved.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// OpenSQLite opens (creating if needed) the database at path and migrates
// it. With seed set, a database that was never seeded receives the default
// categories and templates.
func OpenSQLite(ctx context.Context, path string, seed bool, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("error creating directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, path: path, logger: logger}
	if seed {
		if err := s.seed(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	logger.Debug("Opened ledger database", logging.Field{Key: logging.FieldPath, Value: path})
	return s, nil
}

func (s *SQLiteStore) seed(ctx context.Context) error {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM ledger_meta WHERE key = ?`, seededKey).Scan(&value)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("error reading seed marker: %w", err)
	}

	snapshot := models.DefaultSnapshot()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := writeSnapshot(ctx, tx, snapshot); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO ledger_meta(key, value) VALUES (?, ?)`,
			seededKey, time.Now().UTC().Format(timeLayout))
		return err
	})
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{}
	var err error

	if snapshot.Categories, err = s.loadCategories(ctx); err != nil {
		return nil, fmt.Errorf("error loading categories: %w", err)
	}
	if snapshot.Transactions, err = s.loadTransactions(ctx); err != nil {
		return nil, fmt.Errorf("error loading transactions: %w", err)
	}
	if snapshot.Templates, err = s.loadTemplates(ctx); err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}
	if snapshot.Loans, err = s.loadLoans(ctx); err != nil {
		return nil, fmt.Errorf("error loading loans: %w", err)
	}
	if snapshot.LoanPayments, err = s.loadPayments(ctx); err != nil {
		return nil, fmt.Errorf("error loading loan payments: %w", err)
	}
	return snapshot, nil
}

// Save replaces every stored row with the snapshot in one SQL transaction.
func (s *SQLiteStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"loan_payments", "loans", "transaction_templates", "transactions", "categories"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("error clearing %s: %w", table, err)
			}
		}
		return writeSnapshot(ctx, tx, snapshot)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Saved ledger",
		logging.Field{Key: logging.FieldPath, Value: s.path},
		logging.Field{Key: logging.FieldCount, Value: len(snapshot.Transactions)})
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func writeSnapshot(ctx context.Context, tx *sql.Tx, snapshot *models.Snapshot) error {
	for i, c := range snapshot.Categories {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO categories(id, name, type, color, position)
		VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, string(c.Type), c.Color, i); err != nil {
			return fmt.Errorf("error writing category %s: %w", c.ID, err)
		}
	}

	for i, t := range snapshot.Transactions {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO transactions(id, type, amount, category_name, description, date, revenue_stream, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, string(t.Type), t.Amount.String(), t.Category, t.Description,
			formatTime(t.Date), t.RevenueStream, i); err != nil {
			return fmt.Errorf("error writing transaction %s: %w", t.ID, err)
		}
	}

	for i, t := range snapshot.Templates {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO transaction_templates(id, type, amount, category_name, description, revenue_stream, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, string(t.Type), t.Amount.String(), t.Category, t.Description, t.RevenueStream, i); err != nil {
			return fmt.Errorf("error writing template %s: %w", t.ID, err)
		}
	}

	for i, l := range snapshot.Loans {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO loans(id, type, name, principal_amount, current_balance, interest_rate, term_months,
			monthly_payment, start_date, next_payment_date, revenue_stream_allocation, category_name, description, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, string(l.Type), l.Name, l.PrincipalAmount.String(), l.CurrentBalance.String(),
			l.InterestRate.String(), l.TermMonths, l.MonthlyPayment.String(),
			formatTime(l.StartDate), formatTime(l.NextPaymentDate),
			l.RevenueStreamAllocation, l.Category, l.Description, i); err != nil {
			return fmt.Errorf("error writing loan %s: %w", l.ID, err)
		}
	}

	for i, p := range snapshot.LoanPayments {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO loan_payments(id, loan_id, amount, principal_amount, interest_amount, date, revenue_stream, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.LoanID, p.Amount.String(), p.PrincipalAmount.String(), p.InterestAmount.String(),
			formatTime(p.Date), p.RevenueStream, i); err != nil {
			return fmt.Errorf("error writing loan payment %s: %w", p.ID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, color FROM categories ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		var kind string
		if err := rows.Scan(&c.ID, &c.Name, &kind, &c.Color); err != nil {
			return nil, err
		}
		c.Type = models.CategoryType(kind)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, type, amount, category_name, description, date, revenue_stream
	FROM transactions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		var kind, date string
		if err := rows.Scan(&t.ID, &kind, &t.Amount, &t.Category, &t.Description, &date, &t.RevenueStream); err != nil {
			return nil, err
		}
		t.Type = models.TransactionType(kind)
		if t.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadTemplates(ctx context.Context) ([]models.TransactionTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, type, amount, category_name, description, revenue_stream
	FROM transaction_templates ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.TransactionTemplate, 0)
	for rows.Next() {
		var t models.TransactionTemplate
		var kind string
		if err := rows.Scan(&t.ID, &kind, &t.Amount, &t.Category, &t.Description, &t.RevenueStream); err != nil {
			return nil, err
		}
		t.Type = models.TransactionType(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadLoans(ctx context.Context) ([]models.Loan, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, type, name, principal_amount, current_balance, interest_rate, term_months,
		monthly_payment, start_date, next_payment_date, revenue_stream_allocation, category_name, description
	FROM loans ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Loan, 0)
	for rows.Next() {
		var l models.Loan
		var kind, start, next string
		if err := rows.Scan(&l.ID, &kind, &l.Name, &l.PrincipalAmount, &l.CurrentBalance, &l.InterestRate,
			&l.TermMonths, &l.MonthlyPayment, &start, &next, &l.RevenueStreamAllocation,
			&l.Category, &l.Description); err != nil {
			return nil, err
		}
		l.Type = models.LoanType(kind)
		if l.StartDate, err = parseTime(start); err != nil {
			return nil, err
		}
		if l.NextPaymentDate, err = parseTime(next); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadPayments(ctx context.Context) ([]models.LoanPayment, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, loan_id, amount, principal_amount, interest_amount, date, revenue_stream
	FROM loan_payments ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.LoanPayment, 0)
	for rows.Next() {
		var p models.LoanPayment
		var date string
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &p.PrincipalAmount, &p.InterestAmount, &date, &p.RevenueStream); err != nil {
			return nil, err
		}
		if p.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return t, nil
}
