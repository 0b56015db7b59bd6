package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type Service struct {
	repo         Repository
	validate     *validator.Validate
	assetBaseURL string
}

func NewService(repo Repository, assetBaseURL string) *Service {
	return &Service{
		repo:         repo,
		validate:     validator.New(),
		assetBaseURL: strings.TrimRight(assetBaseURL, "/"),
	}
}

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Product, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.project(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	s.project(&p)
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	exists, err := s.repo.ExistsBySKU(ctx, req.SKU, 0)
	if err != nil {
		return Product{}, fmt.Errorf("check product sku: %w", err)
	}
	if exists {
		return Product{}, fmt.Errorf("%w: product with sku %s", httpx.ErrConflict, req.SKU)
	}

	p, err := s.repo.Create(ctx, Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return Product{}, err
	}
	s.project(&p)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Product{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	exists, err := s.repo.ExistsBySKU(ctx, req.SKU, id)
	if err != nil {
		return Product{}, fmt.Errorf("check product sku: %w", err)
	}
	if exists {
		return Product{}, fmt.Errorf("%w: product with sku %s", httpx.ErrConflict, req.SKU)
	}

	if err := s.repo.Update(ctx, id, Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		Image:       req.Image,
	}); err != nil {
		return Product{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// project expands the stored image path to an absolute URL.
func (s *Service) project(p *Product) {
	if p.Image == nil || *p.Image == "" {
		return
	}
	if strings.HasPrefix(*p.Image, "http://") || strings.HasPrefix(*p.Image, "https://") {
		p.ImageURL = p.Image
		return
	}
	url := s.assetBaseURL + "/" + strings.TrimLeft(*p.Image, "/")
	p.ImageURL = &url
}
