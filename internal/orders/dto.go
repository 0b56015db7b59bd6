package orders

type CreateOrderRequest struct {
	Number     string  `json:"number,omitempty" validate:"omitempty,max=64"`
	CustomerID int64   `json:"customerId" validate:"required,gt=0"`
	ProductID  int64   `json:"productId" validate:"required,gt=0"`
	CompanyID  *int64  `json:"companyId,omitempty" validate:"omitempty,gt=0"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	Price      float64 `json:"price" validate:"gte=0"`
	Discount   float64 `json:"discount" validate:"gte=0,lte=100"`
	Status     string  `json:"status" validate:"required"`
}

type UpdateOrderRequest struct {
	CustomerID int64   `json:"customerId" validate:"required,gt=0"`
	ProductID  int64   `json:"productId" validate:"required,gt=0"`
	CompanyID  *int64  `json:"companyId,omitempty" validate:"omitempty,gt=0"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	Price      float64 `json:"price" validate:"gte=0"`
	Discount   float64 `json:"discount" validate:"gte=0,lte=100"`
	Status     string  `json:"status" validate:"required"`
}
