package payments

import "time"

// Payment records a customer payment with a unique receipt number.
type Payment struct {
	ID            int64     `json:"id"`
	ReceiptNumber string    `json:"receiptNumber"`
	CustomerID    int64     `json:"customerId"`
	CustomerName  string    `json:"customerName,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentMode   string    `json:"paymentMode"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
