package sales

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

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Sale, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		s.project(&items[i])
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Sale, error) {
	if id <= 0 {
		return Sale{}, fmt.Errorf("%w: invalid sale id", httpx.ErrValidation)
	}
	sale, err := s.repo.Get(ctx, id)
	if err != nil {
		return Sale{}, err
	}
	s.project(&sale)
	return sale, nil
}

func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (Sale, error) {
	if err := s.validate.Struct(req); err != nil {
		return Sale{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	discount, ok := s.registry.DiscountTier.Code(req.Discount)
	if !ok {
		return Sale{}, fmt.Errorf("%w: unknown discount tier %q", httpx.ErrValidation, req.Discount)
	}
	method, ok := s.registry.SalePaymentMethod.Code(req.PaymentMethod)
	if !ok {
		return Sale{}, fmt.Errorf("%w: unknown payment method %q", httpx.ErrValidation, req.PaymentMethod)
	}

	if exists, err := s.repo.CustomerExists(ctx, req.CustomerID); err != nil {
		return Sale{}, fmt.Errorf("check customer: %w", err)
	} else if !exists {
		return Sale{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}
	if exists, err := s.repo.ProductExists(ctx, req.ProductID); err != nil {
		return Sale{}, fmt.Errorf("check product: %w", err)
	} else if !exists {
		return Sale{}, fmt.Errorf("%w: product %d", httpx.ErrReference, req.ProductID)
	}

	saleID := req.SaleID
	if saleID == "" {
		saleID = "SAL-" + strings.ToUpper(uuid.NewString()[:8])
	}

	percent, ok := s.registry.DiscountPercent(discount)
	if !ok {
		return Sale{}, fmt.Errorf("%w: no percent for discount tier %q", httpx.ErrValidation, req.Discount)
	}

	sale := Sale{
		SaleID:        saleID,
		CustomerID:    req.CustomerID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Discount:      discount,
		Amount:        Amount(req.Quantity, req.UnitPrice, percent),
		PaymentMethod: method,
	}

	var id int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.DeductStock(ctx, sale.ProductID, sale.Quantity); err != nil {
			return err
		}
		var err error
		id, err = tx.Insert(ctx, sale)
		return err
	})
	if err != nil {
		return Sale{}, err
	}
	return s.Get(ctx, id)
}

// Update restores the previous quantity to the previous product, then
// deducts the new quantity from the new product, all in one
// transaction. This handles both quantity changes and a change of
// product.
func (s *Service) Update(ctx context.Context, id int64, req UpdateSaleRequest) (Sale, error) {
	if id <= 0 {
		return Sale{}, fmt.Errorf("%w: invalid sale id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Sale{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	discount, ok := s.registry.DiscountTier.Code(req.Discount)
	if !ok {
		return Sale{}, fmt.Errorf("%w: unknown discount tier %q", httpx.ErrValidation, req.Discount)
	}
	method, ok := s.registry.SalePaymentMethod.Code(req.PaymentMethod)
	if !ok {
		return Sale{}, fmt.Errorf("%w: unknown payment method %q", httpx.ErrValidation, req.PaymentMethod)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Sale{}, err
	}

	if exists, err := s.repo.CustomerExists(ctx, req.CustomerID); err != nil {
		return Sale{}, fmt.Errorf("check customer: %w", err)
	} else if !exists {
		return Sale{}, fmt.Errorf("%w: customer %d", httpx.ErrReference, req.CustomerID)
	}
	if exists, err := s.repo.ProductExists(ctx, req.ProductID); err != nil {
		return Sale{}, fmt.Errorf("check product: %w", err)
	} else if !exists {
		return Sale{}, fmt.Errorf("%w: product %d", httpx.ErrReference, req.ProductID)
	}

	percent, ok := s.registry.DiscountPercent(discount)
	if !ok {
		return Sale{}, fmt.Errorf("%w: no percent for discount tier %q", httpx.ErrValidation, req.Discount)
	}

	sale := Sale{
		SaleID:        current.SaleID,
		CustomerID:    req.CustomerID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Discount:      discount,
		Amount:        Amount(req.Quantity, req.UnitPrice, percent),
		PaymentMethod: method,
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.RestoreStock(ctx, current.ProductID, current.Quantity); err != nil {
			return err
		}
		if err := tx.DeductStock(ctx, sale.ProductID, sale.Quantity); err != nil {
			return err
		}
		return tx.Update(ctx, id, sale)
	})
	if err != nil {
		return Sale{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes the sale and returns its quantity to stock.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid sale id", httpx.ErrValidation)
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.RestoreStock(ctx, current.ProductID, current.Quantity); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}

func (s *Service) project(sale *Sale) {
	sale.Discount = s.registry.DiscountTier.LabelOr(sale.Discount)
	sale.PaymentMethod = s.registry.SalePaymentMethod.LabelOr(sale.PaymentMethod)
}
