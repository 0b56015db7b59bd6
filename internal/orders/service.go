package orders

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

// Total computes the order total from quantity, unit price and discount percent.
func Total(quantity int, price, discount float64) float64 {
	return float64(quantity) * price * (1 - discount/100)
}

func (s *Service) List(ctx context.Context, q shared.ListQuery) ([]Order, int, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].Status = s.registry.OrderStatus.LabelOr(items[i].Status)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	if id <= 0 {
		return Order{}, fmt.Errorf("%w: invalid order id", httpx.ErrValidation)
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	o.Status = s.registry.OrderStatus.LabelOr(o.Status)
	return o, nil
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return Order{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status, ok := s.registry.OrderStatus.Code(req.Status)
	if !ok {
		return Order{}, fmt.Errorf("%w: unknown order status %q", httpx.ErrValidation, req.Status)
	}
	if err := s.checkReferences(ctx, req.CustomerID, req.ProductID); err != nil {
		return Order{}, err
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		number = "ORD-" + strings.ToUpper(uuid.NewString()[:8])
	} else {
		exists, err := s.repo.ExistsByNumber(ctx, number, 0)
		if err != nil {
			return Order{}, fmt.Errorf("check order number: %w", err)
		}
		if exists {
			return Order{}, fmt.Errorf("%w: order with number %s", httpx.ErrConflict, number)
		}
	}

	o, err := s.repo.Create(ctx, Order{
		Number:     number,
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		CompanyID:  req.CompanyID,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Discount:   req.Discount,
		Total:      Total(req.Quantity, req.Price, req.Discount),
		Status:     status,
	})
	if err != nil {
		return Order{}, err
	}
	return s.Get(ctx, o.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (Order, error) {
	if id <= 0 {
		return Order{}, fmt.Errorf("%w: invalid order id", httpx.ErrValidation)
	}
	if err := s.validate.Struct(req); err != nil {
		return Order{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	status, ok := s.registry.OrderStatus.Code(req.Status)
	if !ok {
		return Order{}, fmt.Errorf("%w: unknown order status %q", httpx.ErrValidation, req.Status)
	}
	if err := s.checkReferences(ctx, req.CustomerID, req.ProductID); err != nil {
		return Order{}, err
	}

	if err := s.repo.Update(ctx, id, Order{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		CompanyID:  req.CompanyID,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Discount:   req.Discount,
		Total:      Total(req.Quantity, req.Price, req.Discount),
		Status:     status,
	}); err != nil {
		return Order{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid order id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkReferences(ctx context.Context, customerID, productID int64) error {
	ok, err := s.repo.CustomerExists(ctx, customerID)
	if err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: customer %d", httpx.ErrReference, customerID)
	}
	ok, err = s.repo.ProductExists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: product %d", httpx.ErrReference, productID)
	}
	return nil
}
