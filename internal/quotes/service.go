package quotes

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

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Quote, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.project(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Quote, error) {
	if id <= 0 {
		return Quote{}, fmt.Errorf("%w: invalid quote id", httpx.ErrValidation)
	}
	qt, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	s.project(&qt)
	return qt, nil
}

func (s *Service) Create(ctx context.Context, req CreateQuoteRequest) (Quote, error) {
	if err := s.validate.Struct(req); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status, ok := s.registry.QuoteStatus.Code(req.Status)
	if !ok {
		return Quote{}, fmt.Errorf("%w: unknown quote status %q", httpx.ErrValidation, req.Status)
	}

	number := req.Number
	if number == "" {
		number = "QUO-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if exists, err := s.repo.ExistsByNumber(ctx, number, 0); err != nil {
		return Quote{}, fmt.Errorf("check quote number: %w", err)
	} else if exists {
		return Quote{}, fmt.Errorf("%w: quote with number %s", httpx.ErrConflict, number)
	}
	if exists, err := s.repo.CustomerExists(ctx, req.CustomerID); err != nil {
		return Quote{}, fmt.Errorf("check customer: %w", err)
	} else if !exists {
		return Quote{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}

	header := Quote{
		Number:     number,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		ExpireDate: req.ExpireDate,
		Status:     status,
		Tax:        req.Tax,
	}

	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		id, err = tx.InsertHeader(ctx, header)
		if err != nil {
			return err
		}
		for _, it := range req.Items {
			item := QuoteItem{
				QuoteID:     id,
				Item:        it.Item,
				Description: it.Description,
				Quantity:    it.Quantity,
				Price:       it.Price,
			}
			if err := tx.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("insert quote item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Quote{}, err
	}
	return s.Get(ctx, id)
}

// Update replaces the header fields and the entire item set in one
// transaction.
func (s *Service) Update(ctx context.Context, id int64, req UpdateQuoteRequest) (Quote, error) {
	if id <= 0 {
		return Quote{}, fmt.Errorf("%w: invalid quote id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status, ok := s.registry.QuoteStatus.Code(req.Status)
	if !ok {
		return Quote{}, fmt.Errorf("%w: unknown quote status %q", httpx.ErrValidation, req.Status)
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return Quote{}, err
	}
	if exists, err := s.repo.ExistsByNumber(ctx, req.Number, id); err != nil {
		return Quote{}, fmt.Errorf("check quote number: %w", err)
	} else if exists {
		return Quote{}, fmt.Errorf("%w: quote with number %s", httpx.ErrConflict, req.Number)
	}
	if exists, err := s.repo.CustomerExists(ctx, req.CustomerID); err != nil {
		return Quote{}, fmt.Errorf("check customer: %w", err)
	} else if !exists {
		return Quote{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}

	header := Quote{
		Number:     req.Number,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		ExpireDate: req.ExpireDate,
		Status:     status,
		Tax:        req.Tax,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpdateHeader(ctx, id, header); err != nil {
			return err
		}
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		for _, it := range req.Items {
			item := QuoteItem{
				QuoteID:     id,
				Item:        it.Item,
				Description: it.Description,
				Quantity:    it.Quantity,
				Price:       it.Price,
			}
			if err := tx.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("insert quote item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Quote{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid quote id", httpx.ErrValidation)
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		return tx.DeleteHeader(ctx, id)
	})
}

func (s *Service) project(qt *Quote) {
	qt.Status = s.registry.QuoteStatus.LabelOr(qt.Status)
	for i := range qt.Items {
		qt.Items[i].Total = float64(qt.Items[i].Quantity) * qt.Items[i].Price
	}
	qt.SubTotal = SubTotal(qt.Items)
	qt.Total = qt.SubTotal + qt.Tax
	if qt.Items == nil {
		qt.Items = []QuoteItem{}
	}
}
