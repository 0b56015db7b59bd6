package quotes

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
	headers map[int64]*Quote
	items   map[int64][]QuoteItem
	nextID  int64
}

func (s *mockState) clone() *mockState {
	c := &mockState{
		headers: make(map[int64]*Quote, len(s.headers)),
		items:   make(map[int64][]QuoteItem, len(s.items)),
		nextID:  s.nextID,
	}
	for id, h := range s.headers {
		hc := *h
		c.headers[id] = &hc
	}
	for id, its := range s.items {
		c.items[id] = append([]QuoteItem(nil), its...)
	}
	return c
}

type mockRepository struct {
	state          *mockState
	customers      map[int64]bool
	failItemInsert bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		state:     &mockState{headers: make(map[int64]*Quote), items: make(map[int64][]QuoteItem), nextID: 1},
		customers: make(map[int64]bool),
	}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]Quote, int, error) {
	out := []Quote{}
	for _, h := range m.state.headers {
		qt := *h
		qt.Items = append([]QuoteItem(nil), m.state.items[qt.ID]...)
		out = append(out, qt)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Quote, error) {
	h, ok := m.state.headers[id]
	if !ok {
		return Quote{}, httpx.ErrNotFound
	}
	qt := *h
	qt.Items = append([]QuoteItem(nil), m.state.items[id]...)
	return qt, nil
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

func (t *mockTxRepo) InsertHeader(ctx context.Context, q Quote) (int64, error) {
	q.ID = t.state.nextID
	t.state.nextID++
	t.state.headers[q.ID] = &q
	return q.ID, nil
}

func (t *mockTxRepo) UpdateHeader(ctx context.Context, id int64, q Quote) error {
	if _, ok := t.state.headers[id]; !ok {
		return httpx.ErrNotFound
	}
	q.ID = id
	t.state.headers[id] = &q
	return nil
}

func (t *mockTxRepo) InsertItem(ctx context.Context, item QuoteItem) error {
	if t.failItemInsert {
		return errors.New("item insert failed")
	}
	item.ID = t.state.nextID
	t.state.nextID++
	t.state.items[item.QuoteID] = append(t.state.items[item.QuoteID], item)
	return nil
}

func (t *mockTxRepo) DeleteItems(ctx context.Context, quoteID int64) error {
	delete(t.state.items, quoteID)
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

func validCreateRequest() CreateQuoteRequest {
	return CreateQuoteRequest{
		Number:     "QUO-2001",
		CustomerID: 1,
		Date:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpireDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:     "Draft",
		Tax:        0,
		Items: []ItemRequest{
			{Item: "Installation", Quantity: 1, Price: 500},
			{Item: "Training", Quantity: 2, Price: 200},
		},
	}
}

func TestCreateQuoteComputesTotals(t *testing.T) {
	svc, _ := newTestService()

	qt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.Len(t, qt.Items, 2)
	assert.Equal(t, "Installation", qt.Items[0].Item)
	assert.InDelta(t, 900.0, qt.SubTotal, 1e-9)
	assert.InDelta(t, 900.0, qt.Total, 1e-9)
	assert.Equal(t, "Draft", qt.Status)
}

func TestCreateQuoteGeneratesNumber(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Number = ""
	qt, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Regexp(t, `^QUO-[0-9A-F-]{8}$`, qt.Number)
}

func TestCreateQuoteUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Status = "Negotiating"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateQuoteRollsBackHeaderOnItemFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.failItemInsert = true

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)

	_, total, err := svc.List(context.Background(), shared.ListQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUpdateQuoteReplacesItemSet(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	req := UpdateQuoteRequest{
		Number:     created.Number,
		CustomerID: created.CustomerID,
		Date:       created.Date,
		ExpireDate: created.ExpireDate,
		Status:     "Accepted",
		Tax:        created.Tax,
		Items: []ItemRequest{
			{Item: "Bundle", Quantity: 1, Price: 850},
		},
	}
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Bundle", updated.Items[0].Item)
	assert.InDelta(t, 850.0, updated.Total, 1e-9)
	assert.Equal(t, "Accepted", updated.Status)
}

func TestDeleteQuoteRemovesItems(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.state.headers)
	assert.Empty(t, repo.state.items)
}
