package customers

type CreateCustomerRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
	CompanyID *int64  `json:"companyId,omitempty" validate:"omitempty,gt=0"`
}

type UpdateCustomerRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
	CompanyID *int64  `json:"companyId,omitempty" validate:"omitempty,gt=0"`
}
