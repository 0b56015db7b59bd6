package quotes

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
	List(ctx context.Context, q shared.ListQuery) ([]Quote, int, error)
	Get(ctx context.Context, id int64) (Quote, error)
	ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

type TxRepository interface {
	InsertHeader(ctx context.Context, q Quote) (int64, error)
	UpdateHeader(ctx context.Context, id int64, q Quote) error
	InsertItem(ctx context.Context, item QuoteItem) error
	DeleteItems(ctx context.Context, quoteID int64) error
	DeleteHeader(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const headerColumns = `q.id, q.number, q.customer_id, c.name, q.date, q.expire_date, q.status, q.tax, q.created_at, q.updated_at`

func scanHeader(row pgx.Row) (Quote, error) {
	var qt Quote
	err := row.Scan(&qt.ID, &qt.Number, &qt.CustomerID, &qt.CustomerName, &qt.Date, &qt.ExpireDate, &qt.Status, &qt.Tax, &qt.CreatedAt, &qt.UpdatedAt)
	return qt, err
}

func (r *repository) List(ctx context.Context, lq shared.ListQuery) ([]Quote, int, error) {
	where := ``
	args := []interface{}{}
	if lq.Search != "" {
		where = ` WHERE (q.number ILIKE $1 OR c.name ILIKE $1)`
		args = append(args, "%"+lq.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM quotes q JOIN customers c ON c.id = q.customer_id` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + headerColumns + ` FROM quotes q JOIN customers c ON c.id = q.customer_id` + where + ` ORDER BY q.date DESC, q.id DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, lq.Limit, lq.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		qt, err := scanHeader(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, qt)
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

func (r *repository) Get(ctx context.Context, id int64) (Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+headerColumns+` FROM quotes q JOIN customers c ON c.id = q.customer_id WHERE q.id = $1`, id)
	qt, err := scanHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, httpx.ErrNotFound
	}
	if err != nil {
		return Quote{}, err
	}
	qt.Items, err = r.itemsFor(ctx, id)
	return qt, err
}

// itemsForAll loads the line items for every listed quote in one
// round trip.
func (r *repository) itemsForAll(ctx context.Context, ids []int64) ([]QuoteItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, quote_id, item, description, quantity, price FROM quote_items WHERE quote_id = ANY($1) ORDER BY id ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuoteItem
	for rows.Next() {
		var it QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Item, &it.Description, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// attachItems distributes items onto their parent quotes. Items arrive
// ordered by id, so per-quote insertion order is preserved.
func attachItems(quotes []Quote, items []QuoteItem) {
	byParent := make(map[int64]int, len(quotes))
	for i := range quotes {
		byParent[quotes[i].ID] = i
	}
	for _, it := range items {
		if i, ok := byParent[it.QuoteID]; ok {
			quotes[i].Items = append(quotes[i].Items, it)
		}
	}
}

// itemsFor returns the line items in insertion order.
func (r *repository) itemsFor(ctx context.Context, quoteID int64) ([]QuoteItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quote_id, item, description, quantity, price FROM quote_items WHERE quote_id = $1 ORDER BY id ASC`,
		quoteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuoteItem
	for rows.Next() {
		var it QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Item, &it.Description, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM quotes WHERE number = $1 AND id <> $2)`,
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

func (t *txRepo) InsertHeader(ctx context.Context, q Quote) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO quotes (number, customer_id, date, expire_date, status, tax, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id`,
		q.Number, q.CustomerID, q.Date, q.ExpireDate, q.Status, q.Tax,
	).Scan(&id)
	if db.IsUniqueViolation(err) {
		return 0, httpx.ErrConflict
	}
	if db.IsForeignKeyViolation(err) {
		return 0, httpx.ErrReference
	}
	return id, err
}

func (t *txRepo) UpdateHeader(ctx context.Context, id int64, q Quote) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE quotes
		SET number = $1, customer_id = $2, date = $3, expire_date = $4, status = $5, tax = $6, updated_at = NOW()
		WHERE id = $7`,
		q.Number, q.CustomerID, q.Date, q.ExpireDate, q.Status, q.Tax, id,
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

func (t *txRepo) InsertItem(ctx context.Context, item QuoteItem) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO quote_items (quote_id, item, description, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`,
		item.QuoteID, item.Item, item.Description, item.Quantity, item.Price,
	)
	return err
}

func (t *txRepo) DeleteItems(ctx context.Context, quoteID int64) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, quoteID)
	return err
}

func (t *txRepo) DeleteHeader(ctx context.Context, id int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
