package invoices

import "time"

// Invoice is a billing document owning an ordered set of line items.
type Invoice struct {
	ID           int64         `json:"id"`
	Number       string        `json:"number"`
	CustomerID   int64         `json:"customerId"`
	CustomerName string        `json:"customerName,omitempty"`
	Date         time.Time     `json:"date"`
	ExpireDate   time.Time     `json:"expireDate"`
	Status       string        `json:"status"`
	Paid         float64       `json:"paid"`
	Tax          float64       `json:"tax"`
	SubTotal     float64       `json:"subTotal"`
	Total        float64       `json:"total"`
	Items        []InvoiceItem `json:"items"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type InvoiceItem struct {
	ID          int64   `json:"id"`
	InvoiceID   int64   `json:"-"`
	Item        string  `json:"item"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// SubTotal sums quantity times price over the item set.
func SubTotal(items []InvoiceItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.Price
	}
	return sum
}
