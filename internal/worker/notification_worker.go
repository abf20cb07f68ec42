package worker

import (
	"go.uber.org/zap"

	"github.com/redesmx/isp-backoffice/internal/service"
)

// StartNotificationWorker wires the notification handlers into the event
// dispatcher. Delivery itself happens inline on Publish.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification handlers registered")
}
