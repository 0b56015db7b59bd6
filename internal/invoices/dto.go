package invoices

import "time"

type ItemRequest struct {
	Item        string  `json:"item" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type CreateInvoiceRequest struct {
	Number     string        `json:"number,omitempty" validate:"omitempty,max=64"`
	CustomerID int64         `json:"customerId" validate:"required,gt=0"`
	Date       time.Time     `json:"date" validate:"required"`
	ExpireDate time.Time     `json:"expireDate" validate:"required"`
	Status     string        `json:"status" validate:"required"`
	Paid       float64       `json:"paid" validate:"gte=0"`
	Tax        float64       `json:"tax" validate:"gte=0"`
	Items      []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest replaces the header fields and the whole item
// set; there is no partial item patch.
type UpdateInvoiceRequest struct {
	Number     string        `json:"number" validate:"required,max=64"`
	CustomerID int64         `json:"customerId" validate:"required,gt=0"`
	Date       time.Time     `json:"date" validate:"required"`
	ExpireDate time.Time     `json:"expireDate" validate:"required"`
	Status     string        `json:"status" validate:"required"`
	Paid       float64       `json:"paid" validate:"gte=0"`
	Tax        float64       `json:"tax" validate:"gte=0"`
	Items      []ItemRequest `json:"items" validate:"required,min=1,dive"`
}
