package customers

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

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Customer, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, fmt.Errorf("%w: invalid customer id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	if err := s.validateRequest(ctx, req.Email, 0, req.CompanyID, req); err != nil {
		return Customer{}, err
	}
	return s.repo.Create(ctx, Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CompanyID: req.CompanyID,
	})
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	if id <= 0 {
		return Customer{}, fmt.Errorf("%w: invalid customer id", httpx.ErrValidation)
	}
	if err := s.validateRequest(ctx, req.Email, id, req.CompanyID, req); err != nil {
		return Customer{}, err
	}
	if err := s.repo.Update(ctx, id, Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CompanyID: req.CompanyID,
	}); err != nil {
		return Customer{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a customer unless invoices or sales still reference it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid customer id", httpx.ErrValidation)
	}
	count, err := s.repo.DependentCount(ctx, id)
	if err != nil {
		return fmt.Errorf("check customer dependents: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: customer has %d related invoices or sales", httpx.ErrHasDependents, count)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validateRequest(ctx context.Context, email string, excludeID int64, companyID *int64, req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("check customer email: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: customer with email %s", httpx.ErrConflict, email)
	}

	if companyID != nil {
		ok, err := s.repo.CompanyExists(ctx, *companyID)
		if err != nil {
			return fmt.Errorf("check company: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: company %d", httpx.ErrReference, *companyID)
		}
	}
	return nil
}
