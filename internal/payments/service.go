package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/atlas-biz/atlas/internal/enums"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/shared"
)

type Service struct {
	repo     Repository
	registry *enums.Registry
	validate *validator.Validate
}

func NewService(repo Repository, registry *enums.Registry) *Service {
	return &Service{repo: repo, registry: registry, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Payment, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.projectLabels(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Payment, error) {
	if id <= 0 {
		return Payment{}, fmt.Errorf("%w: invalid payment id", httpx.ErrValidation)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Payment{}, err
	}
	s.projectLabels(&p)
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (Payment, error) {
	if err := s.validate.Struct(req); err != nil {
		return Payment{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	mode, ok := s.registry.PaymentMode.Code(req.PaymentMode)
	if !ok {
		return Payment{}, fmt.Errorf("%w: unknown payment mode %q", httpx.ErrValidation, req.PaymentMode)
	}
	status, ok := s.registry.PaymentStatus.Code(req.Status)
	if !ok {
		return Payment{}, fmt.Errorf("%w: unknown payment status %q", httpx.ErrValidation, req.Status)
	}

	exists, err := s.repo.CustomerExists(ctx, req.CustomerID)
	if err != nil {
		return Payment{}, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return Payment{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}

	receipt := strings.TrimSpace(req.ReceiptNumber)
	if receipt == "" {
		receipt = "RCT-" + strings.ToUpper(uuid.NewString()[:8])
	} else {
		taken, err := s.repo.ExistsByReceiptNumber(ctx, receipt, 0)
		if err != nil {
			return Payment{}, fmt.Errorf("check receipt number: %w", err)
		}
		if taken {
			return Payment{}, fmt.Errorf("%w: payment with receipt number %s", httpx.ErrConflict, receipt)
		}
	}

	p, err := s.repo.Create(ctx, Payment{
		ReceiptNumber: receipt,
		CustomerID:    req.CustomerID,
		Amount:        req.Amount,
		PaymentMode:   mode,
		Status:        status,
	})
	if err != nil {
		return Payment{}, err
	}
	return s.Get(ctx, p.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePaymentRequest) (Payment, error) {
	if id <= 0 {
		return Payment{}, fmt.Errorf("%w: invalid payment id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Payment{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	mode, ok := s.registry.PaymentMode.Code(req.PaymentMode)
	if !ok {
		return Payment{}, fmt.Errorf("%w: unknown payment mode %q", httpx.ErrValidation, req.PaymentMode)
	}
	status, ok := s.registry.PaymentStatus.Code(req.Status)
	if !ok {
		return Payment{}, fmt.Errorf("%w: unknown payment status %q", httpx.ErrValidation, req.Status)
	}

	exists, err := s.repo.CustomerExists(ctx, req.CustomerID)
	if err != nil {
		return Payment{}, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return Payment{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}

	if err := s.repo.Update(ctx, id, Payment{
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		PaymentMode: mode,
		Status:      status,
	}); err != nil {
		return Payment{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid payment id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) projectLabels(p *Payment) {
	p.PaymentMode = s.registry.PaymentMode.LabelOr(p.PaymentMode)
	p.Status = s.registry.PaymentStatus.LabelOr(p.Status)
}
