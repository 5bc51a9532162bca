package models

// LoginRequest is the body of POST /api/v1/user/login/password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the freshly minted session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ChangePasswordRequest is the body of POST /api/v1/user/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
