package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Actual email/webhook dispatch stays stubbed; only the event wiring is real.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInquiryCreated, n.handleInquiryCreated)
	n.dispatcher.Subscribe(events.EventPropertyCreated, n.handlePropertyCreated)
	n.dispatcher.Subscribe(events.EventAgentApproved, n.handleAgentStatusChanged)
	n.dispatcher.Subscribe(events.EventAgentSuspended, n.handleAgentStatusChanged)
}

func (n *NotificationService) handleInquiryCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("InquiryCreated", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePropertyCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("PropertyCreated", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAgentStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("AgentStatusChanged", zap.String("event_type", string(event.Type)), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
