package identity

import (
	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/identity"
)

// RegisterRequest carries a new account registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	Position  string `json:"position"`
}

// ConfirmRequest redeems an emailed confirmation token
type ConfirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// LoginRequest carries account credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest carries a partial account update
type UpdateAccountRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Password  *string `json:"password"`
}

// ChangeRoleRequest switches the account between buyer and shop.
// The current password is required as a recheck.
type ChangeRoleRequest struct {
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is an account in API responses
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company,omitempty"`
	Position  string    `json:"position,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	Token string `json:"token"`
}

// ToUserDTO converts a user to its API shape
func ToUserDTO(user *identity.User) *UserDTO {
	return &UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
		Role:      string(user.Role),
		Active:    user.Active,
	}
}
