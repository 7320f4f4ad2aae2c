package dto

import "github.com/support-kit/helpdesk-service/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int64  `json:"roleId"`
}

// LoginRequest payload for credential verification.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse is the external user representation. The password hash is
// never part of it.
type UserResponse struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	RoleID   int64  `json:"roleId"`
	Role     string `json:"role,omitempty"`
}

// NewUserResponse maps a domain user to its external shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Fullname: user.Fullname,
		Email:    user.Email,
		RoleID:   user.RoleID,
		Role:     user.RoleName,
	}
}
