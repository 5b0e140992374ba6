package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/config"
	"github.com/eftah/restaurant-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
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
	n.dispatcher.Subscribe(events.EventMessageReceived, n.handleMessageReceived)
	n.dispatcher.Subscribe(events.EventMenuItemCreated, n.handleMenuItemChanged)
	n.dispatcher.Subscribe(events.EventMenuItemDeleted, n.handleMenuItemChanged)
	n.dispatcher.Subscribe(events.EventAssetUploaded, n.handleAssetEvent)
	n.dispatcher.Subscribe(events.EventAssetDeleted, n.handleAssetEvent)
}

func (n *NotificationService) handleMessageReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("MessageReceived", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMenuItemChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("MenuItemChanged", zap.String("event_type", string(event.Type)), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAssetEvent(_ context.Context, event events.Event) error {
	n.logger.Info("AssetEvent", zap.String("event_type", string(event.Type)), zap.Any("payload", event.Payload))
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
