package employees

import "time"

type CreateEmployeeRequest struct {
	EmployeeID string     `json:"employeeId" validate:"required,max=64"`
	Name       string     `json:"name" validate:"required,max=200"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	Department string     `json:"department" validate:"required"`
	Role       string     `json:"role" validate:"required"`
	Status     string     `json:"status" validate:"required"`
	HiredAt    *time.Time `json:"hiredAt,omitempty"`
}

// UpdateEmployeeRequest uses pointer fields: absent fields keep their
// existing values (merge semantics).
type UpdateEmployeeRequest struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Email      *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	Department *string    `json:"department,omitempty"`
	Role       *string    `json:"role,omitempty"`
	Status     *string    `json:"status,omitempty"`
	HiredAt    *time.Time `json:"hiredAt,omitempty"`
}
