package transactions

import "time"

// Transaction is a single ledger entry. Type, category and status are stored
// as codes and projected back to display labels.
type Transaction struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Bank      string    `json:"bank"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Balance summarises completed income against completed expense.
type Balance struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}
