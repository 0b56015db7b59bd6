package quotes

import "time"

// Quote is a proposal document owning an ordered set of line items.
// It shares the billing-document shape with invoices but carries its
// own status lifecycle.
type Quote struct {
	ID           int64       `json:"id"`
	Number       string      `json:"number"`
	CustomerID   int64       `json:"customerId"`
	CustomerName string      `json:"customerName,omitempty"`
	Date         time.Time   `json:"date"`
	ExpireDate   time.Time   `json:"expireDate"`
	Status       string      `json:"status"`
	Tax          float64     `json:"tax"`
	SubTotal     float64     `json:"subTotal"`
	Total        float64     `json:"total"`
	Items        []QuoteItem `json:"items"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

type QuoteItem struct {
	ID          int64   `json:"id"`
	QuoteID     int64   `json:"-"`
	Item        string  `json:"item"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

func SubTotal(items []QuoteItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.Price
	}
	return sum
}
