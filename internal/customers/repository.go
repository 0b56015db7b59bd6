package customers

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
	List(ctx context.Context, q shared.ListQuery) ([]Customer, int, error)
	Get(ctx context.Context, id int64) (Customer, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	CompanyExists(ctx context.Context, companyID int64) (bool, error)
	DependentCount(ctx context.Context, id int64) (int, error)
	Create(ctx context.Context, c Customer) (Customer, error)
	Update(ctx context.Context, id int64, c Customer) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerSelect = `
	SELECT c.id, c.name, c.email, c.phone, c.address, c.company_id, co.name,
		c.created_at, c.updated_at
	FROM customers c
	LEFT JOIN companies co ON co.id = c.company_id`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CompanyID, &c.CompanyName, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *repository) List(ctx context.Context, q shared.ListQuery) ([]Customer, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE (c.name ILIKE $1 OR c.email ILIKE $1)`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM customers c` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := customerSelect + where + ` ORDER BY c.name ASC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Customer, error) {
	row := r.pool.QueryRow(ctx, customerSelect+` WHERE c.id = $1`, id)
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, httpx.ErrNotFound
	}
	return c, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, companyID).Scan(&exists)
	return exists, err
}

// DependentCount counts invoices and sales that reference the customer.
// A customer with dependents must not be deleted.
func (r *repository) DependentCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM invoices WHERE customer_id = $1)
			 + (SELECT COUNT(*) FROM sales WHERE customer_id = $1)`,
		id,
	).Scan(&count)
	return count, err
}

func (r *repository) Create(ctx context.Context, c Customer) (Customer, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, address, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.Address, c.CompanyID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return Customer{}, httpx.ErrConflict
	}
	if db.IsForeignKeyViolation(err) {
		return Customer{}, httpx.ErrReference
	}
	return c, err
}

func (r *repository) Update(ctx context.Context, id int64, c Customer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4, company_id = $5, updated_at = NOW()
		WHERE id = $6`,
		c.Name, c.Email, c.Phone, c.Address, c.CompanyID, id,
	)
	if db.IsUniqueViolation(err) {
		return httpx.ErrConflict
	}
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return httpx.ErrHasDependents
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
