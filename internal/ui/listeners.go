package ui

import (
	"fmt"
	"sync"

	"github.com/skobkin/crashboard/internal/bus"
	"github.com/skobkin/crashboard/internal/connectors"
)

type uiEventHandlers struct {
	OnConnStatus   func(connectors.ConnectionStatus)
	OnDeviceStatus func(connectors.DeviceStatus)
	OnCrashData    func(connectors.CrashData)
}

var uiEventTopics = []string{
	connectors.TopicConnStatus,
	connectors.TopicDeviceStatus,
	connectors.TopicCrashData,
}

// startUIEventListeners uses one subscription for all topics so handlers see events in publish order.
func startUIEventListeners(messageBus bus.MessageBus, handlers uiEventHandlers) func() {
	if messageBus == nil {
		appLogger.Debug("skipping UI event listeners: message bus is nil")

		return func() {}
	}

	sub := messageBus.Subscribe(uiEventTopics...)
	appLogger.Debug("subscribed to UI bus topics", "topics", uiEventTopics)
	done := make(chan struct{})
	var stopOnce sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case raw, ok := <-sub:
				if !ok {
					appLogger.Debug("UI event subscription closed")

					return
				}
				select {
				case <-done:
					return
				default:
				}
				dispatchUIEvent(raw, handlers)
			}
		}
	}()

	return func() {
		stopOnce.Do(func() {
			appLogger.Debug("stopping UI event listeners")
			close(done)
			messageBus.Unsubscribe(sub, uiEventTopics...)
		})
	}
}

func dispatchUIEvent(raw any, handlers uiEventHandlers) {
	switch event := raw.(type) {
	case connectors.ConnectionStatus:
		if handlers.OnConnStatus != nil {
			handlers.OnConnStatus(event)
		}
	case connectors.DeviceStatus:
		if handlers.OnDeviceStatus != nil {
			handlers.OnDeviceStatus(event)
		}
	case connectors.CrashData:
		if handlers.OnCrashData != nil {
			handlers.OnCrashData(event)
		}
	default:
		appLogger.Debug("ignoring unexpected UI event payload", "payload_type", fmt.Sprintf("%T", raw))
	}
}
