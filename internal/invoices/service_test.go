package invoices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type mockState struct {
	headers map[int64]*Invoice
	items   map[int64][]InvoiceItem
	nextID  int64
}

func (s *mockState) clone() *mockState {
	c := &mockState{
		headers: make(map[int64]*Invoice, len(s.headers)),
		items:   make(map[int64][]InvoiceItem, len(s.items)),
		nextID:  s.nextID,
	}
	for id, h := range s.headers {
		hc := *h
		c.headers[id] = &hc
	}
	for id, its := range s.items {
		c.items[id] = append([]InvoiceItem(nil), its...)
	}
	return c
}

// mockRepository commits the staged state only when the transaction
// callback succeeds, mirroring rollback semantics.
type mockRepository struct {
	state          *mockState
	customers      map[int64]bool
	failItemInsert bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		state:     &mockState{headers: make(map[int64]*Invoice), items: make(map[int64][]InvoiceItem), nextID: 1},
		customers: make(map[int64]bool),
	}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]Invoice, int, error) {
	out := []Invoice{}
	for _, h := range m.state.headers {
		inv := *h
		inv.Items = append([]InvoiceItem(nil), m.state.items[inv.ID]...)
		out = append(out, inv)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Invoice, error) {
	h, ok := m.state.headers[id]
	if !ok {
		return Invoice{}, httpx.ErrNotFound
	}
	inv := *h
	inv.Items = append([]InvoiceItem(nil), m.state.items[id]...)
	return inv, nil
}

func (m *mockRepository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	for _, h := range m.state.headers {
		if h.Number == number && h.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return m.customers[customerID], nil
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	staged := m.state.clone()
	tx := &mockTxRepo{state: staged, failItemInsert: m.failItemInsert}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	m.state = staged
	return nil
}

type mockTxRepo struct {
	state          *mockState
	failItemInsert bool
}

func (t *mockTxRepo) InsertHeader(ctx context.Context, inv Invoice) (int64, error) {
	inv.ID = t.state.nextID
	t.state.nextID++
	t.state.headers[inv.ID] = &inv
	return inv.ID, nil
}

func (t *mockTxRepo) UpdateHeader(ctx context.Context, id int64, inv Invoice) error {
	if _, ok := t.state.headers[id]; !ok {
		return httpx.ErrNotFound
	}
	inv.ID = id
	t.state.headers[id] = &inv
	return nil
}

func (t *mockTxRepo) InsertItem(ctx context.Context, item InvoiceItem) error {
	if t.failItemInsert {
		return errors.New("item insert failed")
	}
	item.ID = t.state.nextID
	t.state.nextID++
	t.state.items[item.InvoiceID] = append(t.state.items[item.InvoiceID], item)
	return nil
}

func (t *mockTxRepo) DeleteItems(ctx context.Context, invoiceID int64) error {
	delete(t.state.items, invoiceID)
	return nil
}

func (t *mockTxRepo) DeleteHeader(ctx context.Context, id int64) error {
	if _, ok := t.state.headers[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(t.state.headers, id)
	return nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	repo.customers[1] = true
	return NewService(repo, enums.NewRegistry()), repo
}

func validCreateRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		Number:     "INV-1001",
		CustomerID: 1,
		Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpireDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:     "Draft",
		Tax:        10,
		Items: []ItemRequest{
			{Item: "Consulting", Quantity: 2, Price: 150},
			{Item: "Support", Quantity: 1, Price: 80},
		},
	}
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	svc, _ := newTestService()

	inv, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Consulting", inv.Items[0].Item)
	assert.Equal(t, "Support", inv.Items[1].Item)
	assert.InDelta(t, 300.0, inv.Items[0].Total, 1e-9)
	assert.InDelta(t, 380.0, inv.SubTotal, 1e-9)
	assert.InDelta(t, 390.0, inv.Total, 1e-9)
	assert.Equal(t, "Draft", inv.Status)
}

func TestCreateInvoiceGeneratesNumber(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Number = ""
	inv, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Regexp(t, `^INV-[0-9A-F-]{8}$`, inv.Number)
}

func TestCreateInvoiceRequiresItems(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Items = nil
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestCreateInvoiceUnknownCustomer(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.CustomerID = 99
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrReference))
}

func TestCreateInvoiceRollsBackHeaderOnItemFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.failItemInsert = true

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)

	// The header must not survive a failed item insert.
	items, total, err := svc.List(context.Background(), shared.ListQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestUpdateInvoiceReplacesItemSet(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	req := UpdateInvoiceRequest{
		Number:     created.Number,
		CustomerID: created.CustomerID,
		Date:       created.Date,
		ExpireDate: created.ExpireDate,
		Status:     "Paid",
		Paid:       390,
		Tax:        created.Tax,
		Items: []ItemRequest{
			{Item: "Retainer", Quantity: 3, Price: 100},
		},
	}
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Retainer", updated.Items[0].Item)
	assert.InDelta(t, 300.0, updated.SubTotal, 1e-9)
	assert.Equal(t, "Paid", updated.Status)
}

func TestUpdateInvoiceRollsBackOnItemFailure(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	repo.failItemInsert = true
	req := UpdateInvoiceRequest{
		Number:     created.Number,
		CustomerID: created.CustomerID,
		Date:       created.Date,
		ExpireDate: created.ExpireDate,
		Status:     "Paid",
		Tax:        created.Tax,
		Items:      []ItemRequest{{Item: "Retainer", Quantity: 3, Price: 100}},
	}
	_, err = svc.Update(context.Background(), created.ID, req)
	require.Error(t, err)

	// The old item set survives the failed replacement.
	current, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, current.Items, 2)
	assert.Equal(t, "Draft", current.Status)
}

func TestUpdateInvoiceNumberTakenByOther(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.Number = "INV-1002"
	other, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	req := UpdateInvoiceRequest{
		Number:     first.Number,
		CustomerID: other.CustomerID,
		Date:       other.Date,
		ExpireDate: other.ExpireDate,
		Status:     "Draft",
		Tax:        other.Tax,
		Items:      []ItemRequest{{Item: "X", Quantity: 1, Price: 1}},
	}
	_, err = svc.Update(context.Background(), other.ID, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestDeleteInvoiceRemovesItems(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.state.headers)
	assert.Empty(t, repo.state.items)

	err = svc.Delete(context.Background(), created.ID)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}
