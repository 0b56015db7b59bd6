package orders

import "time"

// Order represents a single-product order. Status is stored as a code and
// projected back to its display label.
type Order struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	CustomerID   int64     `json:"customerId"`
	CustomerName string    `json:"customerName,omitempty"`
	ProductID    int64     `json:"productId"`
	ProductName  string    `json:"productName,omitempty"`
	CompanyID    *int64    `json:"companyId"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Discount     float64   `json:"discount"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
