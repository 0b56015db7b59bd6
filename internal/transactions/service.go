package transactions

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

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

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Transaction, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.projectLabels(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Transaction, error) {
	if id <= 0 {
		return Transaction{}, fmt.Errorf("%w: invalid transaction id", httpx.ErrValidation)
	}
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	s.projectLabels(&t)
	return t, nil
}

func (s *Service) Create(ctx context.Context, req CreateTransactionRequest) (Transaction, error) {
	t, err := s.mapRequest(req.Type, req.Category, req.Status, req)
	if err != nil {
		return Transaction{}, err
	}
	t.Amount = req.Amount
	t.Bank = req.Bank
	t.Date = req.Date

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return Transaction{}, err
	}
	s.projectLabels(&created)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateTransactionRequest) (Transaction, error) {
	if id <= 0 {
		return Transaction{}, fmt.Errorf("%w: invalid transaction id", httpx.ErrValidation)
	}
	t, err := s.mapRequest(req.Type, req.Category, req.Status, req)
	if err != nil {
		return Transaction{}, err
	}
	t.Amount = req.Amount
	t.Bank = req.Bank
	t.Date = req.Date

	if err := s.repo.Update(ctx, id, t); err != nil {
		return Transaction{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid transaction id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// Balance returns income minus expense over completed transactions.
func (s *Service) Balance(ctx context.Context) (Balance, error) {
	return s.repo.Balance(ctx)
}

func (s *Service) mapRequest(typ, category, status string, req any) (Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return Transaction{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	typCode, ok := s.registry.TransactionType.Code(typ)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: unknown transaction type %q", httpx.ErrValidation, typ)
	}
	catCode, ok := s.registry.TransactionCat.Code(category)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: unknown transaction category %q", httpx.ErrValidation, category)
	}
	statusCode, ok := s.registry.TransactionStatus.Code(status)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: unknown transaction status %q", httpx.ErrValidation, status)
	}
	return Transaction{Type: typCode, Category: catCode, Status: statusCode}, nil
}

func (s *Service) projectLabels(t *Transaction) {
	t.Type = s.registry.TransactionType.LabelOr(t.Type)
	t.Category = s.registry.TransactionCat.LabelOr(t.Category)
	t.Status = s.registry.TransactionStatus.LabelOr(t.Status)
}
