package dto

// LoginRequest payload for admin login.
type LoginRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest payload for rotating the admin credential.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
