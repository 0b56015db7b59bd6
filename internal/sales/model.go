package sales

import "time"

// Sale is a point-of-sale record. Creating, updating or deleting one
// adjusts the product's stock counter in the same transaction.
type Sale struct {
	ID            int64     `json:"id"`
	SaleID        string    `json:"saleId"`
	CustomerID    int64     `json:"customerId"`
	CustomerName  string    `json:"customerName,omitempty"`
	ProductID     int64     `json:"productId"`
	ProductName   string    `json:"productName,omitempty"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unitPrice"`
	Discount      string    `json:"discount"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Amount computes the sale amount from quantity, unit price and the
// discount percent derived from the tier.
func Amount(quantity int, unitPrice, discountPercent float64) float64 {
	return float64(quantity) * unitPrice * (1 - discountPercent/100)
}
