package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// RegistrationHandler sends the confirmation email when an account
// registers
type RegistrationHandler struct {
	logger   *zap.Logger
	notifier Notifier
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(logger *zap.Logger, notifier Notifier) *RegistrationHandler {
	return &RegistrationHandler{
		logger:   logger,
		notifier: notifier,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *RegistrationHandler) EventTypes() []string {
	return []string{identity.EventTypeUserRegistered}
}

// Handle sends the confirmation token to the new account's email
func (h *RegistrationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	registered, ok := event.(*identity.UserRegisteredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	msg := Message{
		Kind:    KindRegistrationConfirm,
		To:      registered.Email,
		Subject: "Confirm your registration",
		Body:    fmt.Sprintf("Your confirmation token: %s", registered.ConfirmToken),
		Meta: map[string]string{
			"user_id": registered.UserID.String(),
		},
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send registration confirmation",
			zap.String("email", registered.Email),
			zap.Error(err))
		return err
	}

	h.logger.Info("registration confirmation sent",
		zap.String("email", registered.Email))
	return nil
}
