package companies

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Company, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (Company, error) {
	if id <= 0 {
		return Company{}, fmt.Errorf("%w: invalid company id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCompanyRequest) (Company, error) {
	if err := s.validate.Struct(req); err != nil {
		return Company{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		return Company{}, fmt.Errorf("check company email: %w", err)
	}
	if exists {
		return Company{}, fmt.Errorf("%w: company with email %s", httpx.ErrConflict, req.Email)
	}

	return s.repo.Create(ctx, Company{
		Name:    req.Name,
		Contact: req.Contact,
		Country: req.Country,
		Phone:   req.Phone,
		Email:   req.Email,
		Website: req.Website,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCompanyRequest) (Company, error) {
	if id <= 0 {
		return Company{}, fmt.Errorf("%w: invalid company id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Company{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email, id)
	if err != nil {
		return Company{}, fmt.Errorf("check company email: %w", err)
	}
	if exists {
		return Company{}, fmt.Errorf("%w: company with email %s", httpx.ErrConflict, req.Email)
	}

	if err := s.repo.Update(ctx, id, Company{
		Name:    req.Name,
		Contact: req.Contact,
		Country: req.Country,
		Phone:   req.Phone,
		Email:   req.Email,
		Website: req.Website,
	}); err != nil {
		return Company{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid company id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
