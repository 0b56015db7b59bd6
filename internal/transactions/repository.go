package transactions

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type Repository interface {
	List(ctx context.Context, q shared.ListQuery) ([]Transaction, int, error)
	Get(ctx context.Context, id int64) (Transaction, error)
	Create(ctx context.Context, t Transaction) (Transaction, error)
	Update(ctx context.Context, id int64, t Transaction) error
	Delete(ctx context.Context, id int64) error
	Balance(ctx context.Context) (Balance, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const txColumns = `id, type, amount, bank, category, status, date, created_at, updated_at`

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.Type, &t.Amount, &t.Bank, &t.Category, &t.Status, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) List(ctx context.Context, q shared.ListQuery) ([]Transaction, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE (bank ILIKE $1 OR category ILIKE $1)`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + txColumns + ` FROM transactions` + where + ` ORDER BY date DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, httpx.ErrNotFound
	}
	return t, err
}

func (r *repository) Create(ctx context.Context, t Transaction) (Transaction, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (type, amount, bank, category, status, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		t.Type, t.Amount, t.Bank, t.Category, t.Status, t.Date,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) Update(ctx context.Context, id int64, t Transaction) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET type = $1, amount = $2, bank = $3, category = $4, status = $5, date = $6, updated_at = NOW()
		WHERE id = $7`,
		t.Type, t.Amount, t.Bank, t.Category, t.Status, t.Date, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Balance sums COMPLETED transactions only.
func (r *repository) Balance(ctx context.Context) (Balance, error) {
	var b Balance
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)
		FROM transactions
		WHERE status = 'COMPLETED'`,
	).Scan(&b.Income, &b.Expense)
	if err != nil {
		return Balance{}, err
	}
	b.Balance = b.Income - b.Expense
	return b, nil
}
