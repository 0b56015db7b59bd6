package transactions

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

type mockRepository struct {
	transactions map[int64]*Transaction
	nextID       int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{transactions: make(map[int64]*Transaction), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]Transaction, int, error) {
	out := []Transaction{}
	for _, t := range m.transactions {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return Transaction{}, httpx.ErrNotFound
	}
	return *t, nil
}

func (m *mockRepository) Create(ctx context.Context, t Transaction) (Transaction, error) {
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.transactions[t.ID] = &t
	return t, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, t Transaction) error {
	existing, ok := m.transactions[id]
	if !ok {
		return httpx.ErrNotFound
	}
	t.ID = id
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now()
	m.transactions[id] = &t
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.transactions[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *mockRepository) Balance(ctx context.Context) (Balance, error) {
	var b Balance
	for _, t := range m.transactions {
		if t.Status != "COMPLETED" {
			continue
		}
		switch t.Type {
		case "INCOME":
			b.Income += t.Amount
		case "EXPENSE":
			b.Expense += t.Amount
		}
	}
	b.Balance = b.Income - b.Expense
	return b, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, enums.NewRegistry())
}

func createRequest(typ, category, status string, amount float64) CreateTransactionRequest {
	return CreateTransactionRequest{
		Type:     typ,
		Amount:   amount,
		Bank:     "First National",
		Category: category,
		Status:   status,
		Date:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateTransactionStoresCodesProjectsLabels(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), createRequest("Income", "Sales", "Completed", 1200))
	require.NoError(t, err)

	assert.Equal(t, "Income", created.Type)
	assert.Equal(t, "Sales", created.Category)
	assert.Equal(t, "Completed", created.Status)

	stored := repo.transactions[created.ID]
	assert.Equal(t, "INCOME", stored.Type)
	assert.Equal(t, "SALES", stored.Category)
	assert.Equal(t, "COMPLETED", stored.Status)
}

func TestCreateTransactionUnknownType(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Create(context.Background(), createRequest("Windfall", "Sales", "Completed", 100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateTransactionRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(newMockRepository())

	_, err := svc.Create(context.Background(), createRequest("Income", "Sales", "Completed", 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestBalanceCountsCompletedOnly(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("Income", "Sales", "Completed", 1000))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest("Income", "Services", "Pending", 500))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest("Expense", "Rent", "Completed", 300))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createRequest("Expense", "Utilities", "Failed", 50))
	require.NoError(t, err)

	balance, err := svc.Balance(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, balance.Income)
	assert.Equal(t, 300.0, balance.Expense)
	assert.Equal(t, 700.0, balance.Balance)
}

func TestUpdateTransactionReplacesFields(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("Income", "Sales", "Pending", 800))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateTransactionRequest{
		Type:     "Income",
		Amount:   950,
		Bank:     "Second National",
		Category: "Services",
		Status:   "Completed",
		Date:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 950.0, updated.Amount)
	assert.Equal(t, "Second National", updated.Bank)
	assert.Equal(t, "Services", updated.Category)
	assert.Equal(t, "Completed", updated.Status)
}

func TestDeleteTransaction(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("Expense", "Other", "Completed", 40))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}
