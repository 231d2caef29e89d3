package identity

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

const (
	// EventTypeUserRegistered is published after a new account is stored
	EventTypeUserRegistered = "identity.user.registered"
)

// UserRegisteredEvent signals that an account awaits email confirmation
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	ConfirmToken string    `json:"confirm_token"`
}

// NewUserRegisteredEvent creates a registration event for the given user
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, "User", user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		ConfirmToken:    user.ConfirmToken,
	}
}
