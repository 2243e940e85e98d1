package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/service"
)

// StartNotificationWorker wires notification handlers into the event
// dispatcher. Delivery is in-process; the worker exists so transport can
// later move out of band without touching the services that publish.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker started")
	}
}
