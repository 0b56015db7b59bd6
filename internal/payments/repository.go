package payments

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-biz/atlas/internal/platform/db"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type Repository interface {
	List(ctx context.Context, q shared.ListQuery) ([]Payment, int, error)
	Get(ctx context.Context, id int64) (Payment, error)
	ExistsByReceiptNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	CustomerExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, p Payment) (Payment, error)
	Update(ctx context.Context, id int64, p Payment) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const paymentSelect = `
	SELECT p.id, p.receipt_number, p.customer_id, c.name, p.amount, p.payment_mode, p.status,
		p.created_at, p.updated_at
	FROM payments p
	JOIN customers c ON c.id = p.customer_id`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.ReceiptNumber, &p.CustomerID, &p.CustomerName, &p.Amount, &p.PaymentMode, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *repository) List(ctx context.Context, q shared.ListQuery) ([]Payment, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE (p.receipt_number ILIKE $1 OR c.name ILIKE $1)`
		args = append(args, "%"+q.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM payments p JOIN customers c ON c.id = p.customer_id` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := paymentSelect + where + ` ORDER BY p.created_at DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Payment, error) {
	row := r.pool.QueryRow(ctx, paymentSelect+` WHERE p.id = $1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) ExistsByReceiptNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE receipt_number = $1 AND id <> $2)`,
		number, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, p Payment) (Payment, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payments (receipt_number, customer_id, amount, payment_mode, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		p.ReceiptNumber, p.CustomerID, p.Amount, p.PaymentMode, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return Payment{}, httpx.ErrConflict
	}
	if db.IsForeignKeyViolation(err) {
		return Payment{}, httpx.ErrReference
	}
	return p, err
}

func (r *repository) Update(ctx context.Context, id int64, p Payment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments
		SET customer_id = $1, amount = $2, payment_mode = $3, status = $4, updated_at = NOW()
		WHERE id = $5`,
		p.CustomerID, p.Amount, p.PaymentMode, p.Status, id,
	)
	if db.IsForeignKeyViolation(err) {
		return httpx.ErrReference
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
