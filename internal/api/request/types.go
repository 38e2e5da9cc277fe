package request

// LoginRequest is the request body for POST /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
