package orders

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
	List(ctx context.Context, q shared.ListQuery) ([]Order, int, error)
	Get(ctx context.Context, id int64) (Order, error)
	ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	CustomerExists(ctx context.Context, id int64) (bool, error)
	ProductExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, o Order) (Order, error)
	Update(ctx context.Context, id int64, o Order) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const orderSelect = `
	SELECT o.id, o.number, o.customer_id, c.name, o.product_id, p.name, o.company_id,
		o.quantity, o.price, o.discount, o.total, o.status, o.created_at, o.updated_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	JOIN products p ON p.id = o.product_id`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.CustomerName, &o.ProductID, &o.ProductName,
		&o.CompanyID, &o.Quantity, &o.Price, &o.Discount, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *repository) List(ctx context.Context, q shared.ListQuery) ([]Order, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE (o.number ILIKE $1 OR c.name ILIKE $1)`
		args = append(args, "%"+q.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM orders o JOIN customers c ON c.id = o.customer_id` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := orderSelect + where + ` ORDER BY o.created_at DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Order, error) {
	row := r.pool.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, httpx.ErrNotFound
	}
	return o, err
}

func (r *repository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE number = $1 AND id <> $2)`,
		number, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) ProductExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, o Order) (Order, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (number, customer_id, product_id, company_id, quantity, price, discount, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		o.Number, o.CustomerID, o.ProductID, o.CompanyID, o.Quantity, o.Price, o.Discount, o.Total, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return Order{}, httpx.ErrConflict
	}
	if db.IsForeignKeyViolation(err) {
		return Order{}, httpx.ErrReference
	}
	return o, err
}

func (r *repository) Update(ctx context.Context, id int64, o Order) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET customer_id = $1, product_id = $2, company_id = $3, quantity = $4,
			price = $5, discount = $6, total = $7, status = $8, updated_at = NOW()
		WHERE id = $9`,
		o.CustomerID, o.ProductID, o.CompanyID, o.Quantity, o.Price, o.Discount, o.Total, o.Status, id,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
