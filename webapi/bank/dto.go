package bank

// NewBank represents the request body for creating a bank.
type NewBank struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"max=255"`
}

// UpdateBankInput is a partial update; absent fields are left unchanged.
type UpdateBankInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}
