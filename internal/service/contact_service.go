package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/domain"
	"github.com/nesthome/lead-service/internal/events"
)

// ContactService relays contact-form messages to the operator. Email is the
// only sink for these, so delivery failure is the caller's failure too.
type ContactService struct {
	notifier   Notifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService builds the service.
func NewContactService(notifier Notifier, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{notifier: notifier, dispatcher: dispatcher, logger: logger}
}

// Send delivers the message and reports whether delivery succeeded.
func (s *ContactService) Send(ctx context.Context, contact domain.ContactMessage) bool {
	if s.notifier == nil {
		s.logger.Warn("contact relay skipped: email not configured")
		return false
	}

	if err := s.notifier.SendContactAlert(ctx, contact); err != nil {
		s.logger.Error("contact relay failed",
			zap.String("source", "email"), zap.String("operation", "send_contact_alert"), zap.Error(err))
		return false
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventContactReceived,
			Payload: map[string]any{"name": contact.Name},
		})
	}
	return true
}
