package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/redesmx/isp-backoffice/internal/config"
	"github.com/redesmx/isp-backoffice/internal/events"
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
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventContractActivated, n.handleContractActivated)
	n.dispatcher.Subscribe(events.EventContractSuspended, n.handleContractSuspended)
	n.dispatcher.Subscribe(events.EventPaymentApproved, n.handlePaymentApproved)
	n.dispatcher.Subscribe(events.EventWorkOrderCompleted, n.handleWorkOrderCompleted)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWhatsAppNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWhatsAppNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketAssigned", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleContractActivated(ctx context.Context, event events.Event) error {
	n.logger.Info("ContractActivated", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWhatsAppNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleContractSuspended(ctx context.Context, event events.Event) error {
	n.logger.Info("ContractSuspended", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWhatsAppNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePaymentApproved(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentApproved", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleWorkOrderCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("WorkOrderCompleted", zap.String("record_id", event.RecordID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWhatsAppNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WhatsAppNumber) == "" {
		return
	}
	n.logger.Debug("sendWhatsAppNotificationStub",
		zap.String("number", n.cfg.WhatsAppNumber),
		zap.String("record_id", event.RecordID),
		zap.String("event_type", string(event.Type)))
}
