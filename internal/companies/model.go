package companies

import "time"

// Company represents a company directory record.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact"`
	Country   *string   `json:"country"`
	Phone     *string   `json:"phone"`
	Email     string    `json:"email"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
