package payments

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type mockRepository struct {
	payments  map[int64]*Payment
	customers map[int64]string
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		payments:  make(map[int64]*Payment),
		customers: map[int64]string{1: "Acme Ltd"},
		nextID:    1,
	}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]Payment, int, error) {
	out := []Payment{}
	for _, p := range m.payments {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return Payment{}, httpx.ErrNotFound
	}
	out := *p
	out.CustomerName = m.customers[p.CustomerID]
	return out, nil
}

func (m *mockRepository) ExistsByReceiptNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	for _, p := range m.payments {
		if p.ReceiptNumber == number && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.customers[id]
	return ok, nil
}

func (m *mockRepository) Create(ctx context.Context, p Payment) (Payment, error) {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.payments[p.ID] = &p
	return p, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, p Payment) error {
	existing, ok := m.payments[id]
	if !ok {
		return httpx.ErrNotFound
	}
	existing.CustomerID = p.CustomerID
	existing.Amount = p.Amount
	existing.PaymentMode = p.PaymentMode
	existing.Status = p.Status
	existing.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.payments[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.payments, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, enums.NewRegistry())
}

func TestCreatePaymentGeneratesReceiptNumber(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreatePaymentRequest{
		CustomerID:  1,
		Amount:      250,
		PaymentMode: "Cash",
		Status:      "Completed",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^RCT-[0-9A-F-]{8}$`), created.ReceiptNumber)
	assert.Equal(t, "Cash", created.PaymentMode)
	assert.Equal(t, "Completed", created.Status)
	assert.Equal(t, "Acme Ltd", created.CustomerName)

	stored := repo.payments[created.ID]
	assert.Equal(t, "CASH", stored.PaymentMode)
	assert.Equal(t, "COMPLETED", stored.Status)
}

func TestCreatePaymentKeepsClientReceiptNumber(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreatePaymentRequest{
		ReceiptNumber: "RCT-00042",
		CustomerID:    1,
		Amount:        90,
		PaymentMode:   "Card",
		Status:        "Pending",
	})
	require.NoError(t, err)
	assert.Equal(t, "RCT-00042", created.ReceiptNumber)
}

func TestCreatePaymentDuplicateReceiptNumber(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePaymentRequest{
		ReceiptNumber: "RCT-00042",
		CustomerID:    1,
		Amount:        90,
		PaymentMode:   "Card",
		Status:        "Pending",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreatePaymentRequest{
		ReceiptNumber: "RCT-00042",
		CustomerID:    1,
		Amount:        10,
		PaymentMode:   "Cash",
		Status:        "Pending",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
}

func TestCreatePaymentUnknownCustomer(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		CustomerID:  99,
		Amount:      10,
		PaymentMode: "Cash",
		Status:      "Pending",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrReference))
}

func TestCreatePaymentUnknownMode(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		CustomerID:  1,
		Amount:      10,
		PaymentMode: "Barter",
		Status:      "Pending",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestUpdatePaymentPreservesReceiptNumber(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePaymentRequest{
		ReceiptNumber: "RCT-00077",
		CustomerID:    1,
		Amount:        500,
		PaymentMode:   "Bank Transfer",
		Status:        "Pending",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdatePaymentRequest{
		CustomerID:  1,
		Amount:      500,
		PaymentMode: "Bank Transfer",
		Status:      "Completed",
	})
	require.NoError(t, err)

	assert.Equal(t, "RCT-00077", updated.ReceiptNumber)
	assert.Equal(t, "Completed", updated.Status)
}

func TestDeletePayment(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePaymentRequest{
		CustomerID:  1,
		Amount:      75,
		PaymentMode: "Online",
		Status:      "Completed",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}
