package auth

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Identity string `json:"identity" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
	Type  string `json:"token_type"`
}
