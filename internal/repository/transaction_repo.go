package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"institute-api/internal/model"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, type, status, category, description, amount, date, method, created_at`

func (r *TransactionRepository) List(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListRange returns transactions filtered by an optional inclusive date
// range and an optional type, newest first. Empty arguments skip the filter.
func (r *TransactionRepository) ListRange(ctx context.Context, from string, to string, txType string) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE true`
	args := make([]any, 0, 3)

	if txType != "" {
		args = append(args, txType)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions in range: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (model.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Transaction{}, model.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("find transaction by id: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (type, status, category, description, amount, date, method, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		t.Type, t.Status, t.Category, t.Description, t.Amount, t.Date, t.Method, now).
		Scan(&t.ID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	t.CreatedAt = now
	return t, nil
}

func (r *TransactionRepository) Update(ctx context.Context, t model.Transaction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions
		 SET type = $2, status = $3, category = $4, description = $5, amount = $6, date = $7, method = $8
		 WHERE id = $1`,
		t.ID, t.Type, t.Status, t.Category, t.Description, t.Amount, t.Date, t.Method)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTransactionNotFound
	}
	return nil
}

// Summary computes income/expense totals in SQL so currency math never goes
// through float accumulation.
func (r *TransactionRepository) Summary(ctx context.Context) (model.FinanceSummary, error) {
	var summary model.FinanceSummary
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'Income'), 0),
		        COALESCE(SUM(amount) FILTER (WHERE type = 'Expense'), 0)
		 FROM transactions`).
		Scan(&summary.TotalIncome, &summary.TotalExpenses)
	if err != nil {
		return model.FinanceSummary{}, fmt.Errorf("finance summary: %w", err)
	}

	summary.NetProfit = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}

func collectTransactions(rows pgx.Rows) ([]model.Transaction, error) {
	transactions := make([]model.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var t model.Transaction
	var date time.Time

	err := row.Scan(&t.ID, &t.Type, &t.Status, &t.Category, &t.Description,
		&t.Amount, &date, &t.Method, &t.CreatedAt)
	if err != nil {
		return model.Transaction{}, err
	}

	t.Date = date.Format("2006-01-02")
	return t, nil
}
