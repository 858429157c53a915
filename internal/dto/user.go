package dto

import dom "Tasker/internal/domain"

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=1"`
	PhoneNumber string `json:"phone_number" binding:"max=32"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateProfileRequest is a partial update: nil = leave unchanged.
// Empty strings are rejected by binding, so absent and "clear" never mix.
type UpdateProfileRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,min=1,max=32"`
}

// ChangePasswordRequest is the JSON body for POST /users/me/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=1"`
}

// UserResponse is the user as returned to clients. No password field.
type UserResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

// UserToResponse maps the domain entity to its JSON shape.
func UserToResponse(u dom.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
}
