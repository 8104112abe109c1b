package worker

import (
	"github.com/mustafashaheen1/ai-support-dashboard/internal/events"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/live"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/service"
)

// StartEventStreamWorker registers the downstream consumers of ticket
// events: the live hub for connected dashboards, the Kafka sink for the
// audit stream, and the notifier for operator alerts. Nil consumers are
// skipped so deployments can run without Kafka or a notify webhook.
func StartEventStreamWorker(dispatcher events.Dispatcher, hub *live.Hub, sink *events.KafkaSink, notifier *service.Notifier) {
	if dispatcher == nil {
		return
	}
	if hub != nil {
		dispatcher.SubscribeAll(hub.HandleEvent)
	}
	if sink != nil {
		dispatcher.SubscribeAll(sink.Handle)
	}
	if notifier != nil {
		notifier.RegisterHandlers()
	}
}
