package sales

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
	List(ctx context.Context, q shared.ListQuery) ([]Sale, int, error)
	Get(ctx context.Context, id int64) (Sale, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository is the write surface available inside a transaction.
// DeductStock only succeeds when enough stock remains, so the check
// and the decrement are one statement.
type TxRepository interface {
	Insert(ctx context.Context, s Sale) (int64, error)
	Update(ctx context.Context, id int64, s Sale) error
	Delete(ctx context.Context, id int64) error
	DeductStock(ctx context.Context, productID int64, quantity int) error
	RestoreStock(ctx context.Context, productID int64, quantity int) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const saleColumns = `s.id, s.sale_id, s.customer_id, c.name, s.product_id, p.name, s.quantity, s.unit_price, s.discount, s.amount, s.payment_method, s.created_at, s.updated_at`

const saleJoins = ` FROM sales s JOIN customers c ON c.id = s.customer_id JOIN products p ON p.id = s.product_id`

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.SaleID, &s.CustomerID, &s.CustomerName, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.Discount, &s.Amount, &s.PaymentMethod, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) List(ctx context.Context, q shared.ListQuery) ([]Sale, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE (s.sale_id ILIKE $1 OR c.name ILIKE $1 OR p.name ILIKE $1)`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+saleJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + saleColumns + saleJoins + where + ` ORDER BY s.created_at DESC, s.id DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Sale, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+saleColumns+saleJoins+` WHERE s.id = $1`, id)
	s, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, httpx.ErrNotFound
	}
	return s, err
}

func (r *repository) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, customerID).Scan(&exists)
	return exists, err
}

func (r *repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	return exists, err
}

type txRepo struct {
	tx pgx.Tx
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

func (t *txRepo) Insert(ctx context.Context, s Sale) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO sales (sale_id, customer_id, product_id, quantity, unit_price, discount, amount, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id`,
		s.SaleID, s.CustomerID, s.ProductID, s.Quantity, s.UnitPrice, s.Discount, s.Amount, s.PaymentMethod,
	).Scan(&id)
	if db.IsUniqueViolation(err) {
		return 0, httpx.ErrConflict
	}
	if db.IsForeignKeyViolation(err) {
		return 0, httpx.ErrReference
	}
	return id, err
}

func (t *txRepo) Update(ctx context.Context, id int64, s Sale) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE sales
		SET customer_id = $1, product_id = $2, quantity = $3, unit_price = $4, discount = $5, amount = $6, payment_method = $7, updated_at = NOW()
		WHERE id = $8`,
		s.CustomerID, s.ProductID, s.Quantity, s.UnitPrice, s.Discount, s.Amount, s.PaymentMethod, id,
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

func (t *txRepo) Delete(ctx context.Context, id int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// DeductStock decrements the product counter only when enough stock
// remains; zero rows affected means insufficient stock.
func (t *txRepo) DeductStock(ctx context.Context, productID int64, quantity int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2 AND quantity >= $1`,
		quantity, productID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrInsufficientStock
	}
	return nil
}

func (t *txRepo) RestoreStock(ctx context.Context, productID int64, quantity int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE products SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2`,
		quantity, productID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrReference
	}
	return nil
}
