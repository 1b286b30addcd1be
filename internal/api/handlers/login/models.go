package login

// LoginRequest HTTP request model
type LoginRequest struct {
	PIN string `json:"pin" validate:"required,max=64"`
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
