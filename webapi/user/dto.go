package user

// NewUser represents the request body for registration.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Phone    string `json:"phone_number" validate:"required,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ActivateInput carries the emailed activation code.
type ActivateInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,alphanum"`
}

// UpdateUserInput is a partial update; absent fields are left unchanged.
type UpdateUserInput struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=100"`
	Phone *string `json:"phone_number" validate:"omitempty,max=32"`
}

// ListQuery is the pagination of GET /user.
type ListQuery struct {
	Page int `query:"page" validate:"omitempty,min=1"`
	Size int `query:"size" validate:"omitempty,min=1,max=100"`
}
