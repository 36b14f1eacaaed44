package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nesthome/lead-service/internal/events"
)

// AuditService logs lead lifecycle events as an audit trail. Observability
// only; it carries no retry or delivery semantics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to every lead lifecycle event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLeadReceived, a.handle)
	a.dispatcher.Subscribe(events.EventLeadSynced, a.handle)
	a.dispatcher.Subscribe(events.EventLeadAlerted, a.handle)
	a.dispatcher.Subscribe(events.EventContactReceived, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("lead_id", event.LeadID), zap.Any("payload", event.Payload))
	return nil
}
