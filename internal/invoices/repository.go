package invoices

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
	List(ctx context.Context, q shared.ListQuery) ([]Invoice, int, error)
	Get(ctx context.Context, id int64) (Invoice, error)
	ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	// WithTx runs fn inside one transaction; the TxRepository it
	// receives executes against that transaction.
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository is the write surface available inside a transaction.
type TxRepository interface {
	InsertHeader(ctx context.Context, inv Invoice) (int64, error)
	UpdateHeader(ctx context.Context, id int64, inv Invoice) error
	InsertItem(ctx context.Context, item InvoiceItem) error
	DeleteItems(ctx context.Context, invoiceID int64) error
	DeleteHeader(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const headerColumns = `i.id, i.number, i.customer_id, c.name, i.date, i.expire_date, i.status, i.paid, i.tax, i.created_at, i.updated_at`

func scanHeader(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &inv.CustomerName, &inv.Date, &inv.ExpireDate, &inv.Status, &inv.Paid, &inv.Tax, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (r *repository) List(ctx context.Context, q shared.ListQuery) ([]Invoice, int, error) {
	where := ``
	args := []interface{}{}
	if q.Search != "" {
		where = ` WHERE (i.number ILIKE $1 OR c.name ILIKE $1)`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM invoices i JOIN customers c ON c.id = i.customer_id` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + headerColumns + ` FROM invoices i JOIN customers c ON c.id = i.customer_id` + where + ` ORDER BY i.date DESC, i.id DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanHeader(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	items, err := r.itemsForAll(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	attachItems(out, items)
	return out, total, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+headerColumns+` FROM invoices i JOIN customers c ON c.id = i.customer_id WHERE i.id = $1`, id)
	inv, err := scanHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, httpx.ErrNotFound
	}
	if err != nil {
		return Invoice{}, err
	}
	inv.Items, err = r.itemsFor(ctx, id)
	return inv, err
}

// itemsForAll loads the line items for every listed invoice in one
// round trip.
func (r *repository) itemsForAll(ctx context.Context, ids []int64) ([]InvoiceItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, item, description, quantity, price FROM invoice_items WHERE invoice_id = ANY($1) ORDER BY id ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvoiceItem
	for rows.Next() {
		var it InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Item, &it.Description, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// attachItems distributes items onto their parent invoices. Items
// arrive ordered by id, so per-invoice insertion order is preserved.
func attachItems(invoices []Invoice, items []InvoiceItem) {
	byParent := make(map[int64]int, len(invoices))
	for i := range invoices {
		byParent[invoices[i].ID] = i
	}
	for _, it := range items {
		if i, ok := byParent[it.InvoiceID]; ok {
			invoices[i].Items = append(invoices[i].Items, it)
		}
	}
}

// itemsFor returns the line items in insertion order.
func (r *repository) itemsFor(ctx context.Context, invoiceID int64) ([]InvoiceItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, item, description, quantity, price FROM invoice_items WHERE invoice_id = $1 ORDER BY id ASC`,
		invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvoiceItem
	for rows.Next() {
		var it InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Item, &it.Description, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE number = $1 AND id <> $2)`,
		number, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, customerID).Scan(&exists)
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

func (t *txRepo) InsertHeader(ctx context.Context, inv Invoice) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO invoices (number, customer_id, date, expire_date, status, paid, tax, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id`,
		inv.Number, inv.CustomerID, inv.Date, inv.ExpireDate, inv.Status, inv.Paid, inv.Tax,
	).Scan(&id)
	if db.IsUniqueViolation(err) {
		return 0, httpx.ErrConflict
	}
	if db.IsForeignKeyViolation(err) {
		return 0, httpx.ErrReference
	}
	return id, err
}

func (t *txRepo) UpdateHeader(ctx context.Context, id int64, inv Invoice) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE invoices
		SET number = $1, customer_id = $2, date = $3, expire_date = $4, status = $5, paid = $6, tax = $7, updated_at = NOW()
		WHERE id = $8`,
		inv.Number, inv.CustomerID, inv.Date, inv.ExpireDate, inv.Status, inv.Paid, inv.Tax, id,
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

func (t *txRepo) InsertItem(ctx context.Context, item InvoiceItem) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO invoice_items (invoice_id, item, description, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`,
		item.InvoiceID, item.Item, item.Description, item.Quantity, item.Price,
	)
	return err
}

func (t *txRepo) DeleteItems(ctx context.Context, invoiceID int64) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	return err
}

func (t *txRepo) DeleteHeader(ctx context.Context, id int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
