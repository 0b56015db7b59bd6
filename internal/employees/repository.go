package employees

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
	List(ctx context.Context, q shared.ListQuery) ([]Employee, int, error)
	Get(ctx context.Context, id int64) (Employee, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, id int64, e Employee) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const employeeColumns = `id, employee_id, name, email, phone, department, role, status, hired_at, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Phone, &e.Department, &e.Role, &e.Status, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *repository) List(ctx context.Context, q shared.ListQuery) ([]Employee, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		// Employee search also matches the employee identifier.
		where = ` WHERE (name ILIKE $1 OR email ILIKE $1 OR employee_id ILIKE $1)`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + employeeColumns + ` FROM employees` + where + ` ORDER BY name ASC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *repository) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1 AND id <> $2)`,
		employeeID, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, e Employee) (Employee, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO employees (employee_id, name, email, phone, department, role, status, hired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		e.EmployeeID, e.Name, e.Email, e.Phone, e.Department, e.Role, e.Status, e.HiredAt,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return Employee{}, httpx.ErrConflict
	}
	return e, err
}

func (r *repository) Update(ctx context.Context, id int64, e Employee) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE employees
		SET name = $1, email = $2, phone = $3, department = $4, role = $5, status = $6, hired_at = $7, updated_at = NOW()
		WHERE id = $8`,
		e.Name, e.Email, e.Phone, e.Department, e.Role, e.Status, e.HiredAt, id,
	)
	if db.IsUniqueViolation(err) {
		return httpx.ErrConflict
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
