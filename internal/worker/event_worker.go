package worker

import (
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// EventSinks lists the consumers of ticket events. Nil entries are skipped.
type EventSinks struct {
	Notifications *service.NotificationService
	Redis         *events.RedisForwarder
}

// StartEventWorkers subscribes every configured sink to dispatcher.
func StartEventWorkers(dispatcher events.Dispatcher, sinks EventSinks) {
	if dispatcher == nil {
		return
	}
	if sinks.Notifications != nil {
		sinks.Notifications.RegisterHandlers()
	}
	if sinks.Redis != nil {
		sinks.Redis.Register(dispatcher)
	}
}
