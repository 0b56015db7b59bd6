package sales

type CreateSaleRequest struct {
	SaleID        string  `json:"saleId,omitempty" validate:"omitempty,max=64"`
	CustomerID    int64   `json:"customerId" validate:"required,gt=0"`
	ProductID     int64   `json:"productId" validate:"required,gt=0"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64 `json:"unitPrice" validate:"required,gt=0"`
	Discount      string  `json:"discount" validate:"required"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
}

// UpdateSaleRequest replaces the sale; the stock adjustment is derived
// from the difference against the stored record.
type UpdateSaleRequest struct {
	CustomerID    int64   `json:"customerId" validate:"required,gt=0"`
	ProductID     int64   `json:"productId" validate:"required,gt=0"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64 `json:"unitPrice" validate:"required,gt=0"`
	Discount      string  `json:"discount" validate:"required"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
}
