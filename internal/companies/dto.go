package companies

type CreateCompanyRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Contact *string `json:"contact,omitempty" validate:"omitempty,max=200"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email   string  `json:"email" validate:"required,email"`
	Website *string `json:"website,omitempty" validate:"omitempty,url"`
}

type UpdateCompanyRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Contact *string `json:"contact,omitempty" validate:"omitempty,max=200"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email   string  `json:"email" validate:"required,email"`
	Website *string `json:"website,omitempty" validate:"omitempty,url"`
}
