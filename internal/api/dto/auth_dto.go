package dto

// LoginRequest payload for operator login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// VerifyResponse reports whether the presented token is valid.
type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetPasswordRequest payload for the security-question reset.
type ResetPasswordRequest struct {
	SecurityAnswer string `json:"securityAnswer"`
	NewPassword    string `json:"newPassword"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
