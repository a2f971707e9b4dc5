package response

import (
	"time"

	"jua-kali/internal/data/entity"
	"jua-kali/pkg/auth"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public projection of an account. The password digest
// is never part of it.
type UserResponse struct {
	ID          string          `json:"id"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phone_number"`
	Role        entity.UserRole `json:"role"`
	Location    string          `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type SessionResponse struct {
	State  auth.AccessState `json:"state"`
	Role   string           `json:"role,omitempty"`
	UserID string           `json:"user_id,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Location:    user.Location,
		CreatedAt:   user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresAt: expiresAt,
		User:      UserToResponse(user),
	}
}
