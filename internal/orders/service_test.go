package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type mockRepository struct {
	orders    map[int64]*Order
	nextID    int64
	customers map[int64]bool
	products  map[int64]bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders:    make(map[int64]*Order),
		nextID:    1,
		customers: map[int64]bool{1: true},
		products:  map[int64]bool{1: true},
	}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]Order, int, error) {
	out := []Order{}
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return Order{}, httpx.ErrNotFound
	}
	return *o, nil
}

func (m *mockRepository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	for _, o := range m.orders {
		if o.Number == number && o.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	return m.customers[id], nil
}

func (m *mockRepository) ProductExists(ctx context.Context, id int64) (bool, error) {
	return m.products[id], nil
}

func (m *mockRepository) Create(ctx context.Context, o Order) (Order, error) {
	o.ID = m.nextID
	m.nextID++
	m.orders[o.ID] = &o
	return o, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, o Order) error {
	existing, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	o.ID = id
	o.Number = existing.Number
	m.orders[id] = &o
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, enums.NewRegistry()), repo
}

func TestCreateOrderComputesTotal(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		ProductID:  1,
		Quantity:   4,
		Price:      25,
		Discount:   10,
		Status:     "Pending",
	})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, repo.orders[created.ID].Total, 1e-9) // 4*25*(1-0.10)
	assert.NotEmpty(t, created.Number)
	assert.Equal(t, "PENDING", repo.orders[created.ID].Status)
}

func TestCreateOrderUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: 1, ProductID: 1, Quantity: 1, Price: 10, Status: "Teleported",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateOrderMissingReferences(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: 99, ProductID: 1, Quantity: 1, Price: 10, Status: "Pending",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrReference))

	_, err = svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: 1, ProductID: 99, Quantity: 1, Price: 10, Status: "Pending",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrReference))
}

func TestCreateOrderDuplicateNumber(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		Number: "ORD-1", CustomerID: 1, ProductID: 1, Quantity: 1, Price: 10, Status: "Pending",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateOrderRequest{
		Number: "ORD-1", CustomerID: 1, ProductID: 1, Quantity: 1, Price: 10, Status: "Pending",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestGetOrderProjectsStatusLabel(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: 1, ProductID: 1, Quantity: 1, Price: 10, Status: "Delivered",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Delivered", got.Status)
}
