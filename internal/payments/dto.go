package payments

type CreatePaymentRequest struct {
	ReceiptNumber string  `json:"receiptNumber,omitempty" validate:"omitempty,max=64"`
	CustomerID    int64   `json:"customerId" validate:"required,gt=0"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMode   string  `json:"paymentMode" validate:"required"`
	Status        string  `json:"status" validate:"required"`
}

type UpdatePaymentRequest struct {
	CustomerID  int64   `json:"customerId" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentMode string  `json:"paymentMode" validate:"required"`
	Status      string  `json:"status" validate:"required"`
}
