package request

// LoginRequest represents a login request. The password is not checked.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}
