package dto

// Data Transfer Objects for registration and the basic-auth surface

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

// IdentityResponse: the authenticated identity, never includes the hash
type IdentityResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
