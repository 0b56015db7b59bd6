package transactions

import "time"

type CreateTransactionRequest struct {
	Type     string    `json:"type" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,gt=0"`
	Bank     string    `json:"bank" validate:"required,max=100"`
	Category string    `json:"category" validate:"required"`
	Status   string    `json:"status" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
}

type UpdateTransactionRequest struct {
	Type     string    `json:"type" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,gt=0"`
	Bank     string    `json:"bank" validate:"required,max=100"`
	Category string    `json:"category" validate:"required"`
	Status   string    `json:"status" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
}
