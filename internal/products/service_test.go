package products

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type mockRepository struct {
	products map[int64]*Product
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{products: make(map[int64]*Product), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) ([]Product, int, error) {
	out := []Product{}
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := m.products[id]
	if !ok {
		return Product{}, httpx.ErrNotFound
	}
	return *p, nil
}

func (m *mockRepository) ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error) {
	for _, p := range m.products {
		if p.SKU == sku && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) Create(ctx context.Context, p Product) (Product, error) {
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = &p
	return p, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, p Product) error {
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	p.ID = id
	m.products[id] = &p
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockRepository) ListBelowQuantity(ctx context.Context, threshold int) ([]Product, error) {
	out := []Product{}
	for _, p := range m.products {
		if p.Quantity < threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(newMockRepository(), "http://assets.local")

	p, err := svc.Create(context.Background(), CreateProductRequest{
		SKU: "SKU-1", Name: "Widget", Price: 9.99, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Nil(t, p.ImageURL)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, "")

	_, err := svc.Create(context.Background(), CreateProductRequest{SKU: "SKU-1", Name: "Widget"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateProductRequest{SKU: "SKU-1", Name: "Other"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrConflict))
	assert.Len(t, repo.products, 1)
}

func TestCreateProductNegativeQuantityRejected(t *testing.T) {
	svc := NewService(newMockRepository(), "")

	_, err := svc.Create(context.Background(), CreateProductRequest{SKU: "SKU-1", Name: "Widget", Quantity: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestImageURLProjection(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, "http://assets.local/")

	image := "uploads/widget.png"
	created, err := svc.Create(context.Background(), CreateProductRequest{
		SKU: "SKU-1", Name: "Widget", Image: &image,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ImageURL)
	assert.Equal(t, "http://assets.local/uploads/widget.png", *created.ImageURL)

	// Already-absolute URLs pass through untouched.
	absolute := "https://cdn.example.com/widget.png"
	created2, err := svc.Create(context.Background(), CreateProductRequest{
		SKU: "SKU-2", Name: "Widget 2", Image: &absolute,
	})
	require.NoError(t, err)
	require.NotNil(t, created2.ImageURL)
	assert.Equal(t, absolute, *created2.ImageURL)
}
