package invoices

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

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Invoice, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.project(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Invoice, error) {
	if id <= 0 {
		return Invoice{}, fmt.Errorf("%w: invalid invoice id", httpx.ErrValidation)
	}
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	s.project(&inv)
	return inv, nil
}

func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error) {
	if err := s.validate.Struct(req); err != nil {
		return Invoice{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status, ok := s.registry.InvoiceStatus.Code(req.Status)
	if !ok {
		return Invoice{}, fmt.Errorf("%w: unknown invoice status %q", httpx.ErrValidation, req.Status)
	}

	number := req.Number
	if number == "" {
		number = "INV-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if exists, err := s.repo.ExistsByNumber(ctx, number, 0); err != nil {
		return Invoice{}, fmt.Errorf("check invoice number: %w", err)
	} else if exists {
		return Invoice{}, fmt.Errorf("%w: invoice with number %s", httpx.ErrConflict, number)
	}
	if exists, err := s.repo.CustomerExists(ctx, req.CustomerID); err != nil {
		return Invoice{}, fmt.Errorf("check customer: %w", err)
	} else if !exists {
		return Invoice{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}

	header := Invoice{
		Number:     number,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		ExpireDate: req.ExpireDate,
		Status:     status,
		Paid:       req.Paid,
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
			item := InvoiceItem{
				InvoiceID:   id,
				Item:        it.Item,
				Description: it.Description,
				Quantity:    it.Quantity,
				Price:       it.Price,
			}
			if err := tx.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("insert invoice item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Invoice{}, err
	}
	return s.Get(ctx, id)
}

// Update replaces the header fields and the entire item set in one
// transaction.
func (s *Service) Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (Invoice, error) {
	if id <= 0 {
		return Invoice{}, fmt.Errorf("%w: invalid invoice id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Invoice{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status, ok := s.registry.InvoiceStatus.Code(req.Status)
	if !ok {
		return Invoice{}, fmt.Errorf("%w: unknown invoice status %q", httpx.ErrValidation, req.Status)
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return Invoice{}, err
	}
	if exists, err := s.repo.ExistsByNumber(ctx, req.Number, id); err != nil {
		return Invoice{}, fmt.Errorf("check invoice number: %w", err)
	} else if exists {
		return Invoice{}, fmt.Errorf("%w: invoice with number %s", httpx.ErrConflict, req.Number)
	}
	if exists, err := s.repo.CustomerExists(ctx, req.CustomerID); err != nil {
		return Invoice{}, fmt.Errorf("check customer: %w", err)
	} else if !exists {
		return Invoice{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}

	header := Invoice{
		Number:     req.Number,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		ExpireDate: req.ExpireDate,
		Status:     status,
		Paid:       req.Paid,
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
			item := InvoiceItem{
				InvoiceID:   id,
				Item:        it.Item,
				Description: it.Description,
				Quantity:    it.Quantity,
				Price:       it.Price,
			}
			if err := tx.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("insert invoice item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Invoice{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid invoice id", httpx.ErrValidation)
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		return tx.DeleteHeader(ctx, id)
	})
}

func (s *Service) project(inv *Invoice) {
	inv.Status = s.registry.InvoiceStatus.LabelOr(inv.Status)
	for i := range inv.Items {
		inv.Items[i].Total = float64(inv.Items[i].Quantity) * inv.Items[i].Price
	}
	inv.SubTotal = SubTotal(inv.Items)
	inv.Total = inv.SubTotal + inv.Tax
	if inv.Items == nil {
		inv.Items = []InvoiceItem{}
	}
}
