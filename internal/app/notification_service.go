package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/skobkin/crashboard/internal/bus"
	"github.com/skobkin/crashboard/internal/config"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/domain"
	"github.com/skobkin/crashboard/internal/notifications"
)

const (
	notificationTitleCrashRecorded = "Crash recorded"
	notificationTitleConnected     = "Device connected"
	notificationTitleDisconnected  = "Device connection lost"
)

// NotificationService listens to bus events and emits desktop notifications.
type NotificationService struct {
	bus           bus.MessageBus
	currentConfig func() config.AppConfig
	isForeground  func() bool
	sender        notifications.Sender
	logger        *slog.Logger

	connStatusMu sync.Mutex
	wasConnected bool
}

func NewNotificationService(
	messageBus bus.MessageBus,
	currentConfig func() config.AppConfig,
	isForeground func() bool,
	sender notifications.Sender,
	logger *slog.Logger,
) *NotificationService {
	if logger == nil {
		logger = slog.Default().With("component", "app.notifications")
	}

	return &NotificationService{
		bus:           messageBus,
		currentConfig: currentConfig,
		isForeground:  isForeground,
		sender:        sender,
		logger:        logger,
	}
}

func (s *NotificationService) Start(ctx context.Context) {
	if s == nil || s.bus == nil || s.sender == nil {
		return
	}

	crashSub := s.bus.Subscribe(connectors.TopicCrashData)
	connSub := s.bus.Subscribe(connectors.TopicConnStatus)

	go func() {
		defer s.bus.Unsubscribe(crashSub, connectors.TopicCrashData)
		defer s.bus.Unsubscribe(connSub, connectors.TopicConnStatus)

		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-crashSub:
				if !ok {
					return
				}
				event, ok := raw.(connectors.CrashData)
				if !ok {
					continue
				}
				s.handleCrashData(event)
			case raw, ok := <-connSub:
				if !ok {
					return
				}
				status, ok := raw.(connectors.ConnectionStatus)
				if !ok {
					continue
				}
				s.handleConnectionStatus(status)
			}
		}
	}()
}

func (s *NotificationService) handleCrashData(event connectors.CrashData) {
	prefs := s.notificationPrefs()
	if !s.shouldNotify(prefs, prefs.Events.CrashRecorded) {
		return
	}

	s.send(notifications.Payload{
		Title:   notificationTitleCrashRecorded,
		Content: crashRecordedContent(event.Recording),
	})
}

// handleConnectionStatus reports edges only: the first connect, and each drop of an established connection.
// Failed redials while the device is away stay silent.
func (s *NotificationService) handleConnectionStatus(status connectors.ConnectionStatus) {
	var payload notifications.Payload

	s.connStatusMu.Lock()
	switch status.State {
	case connectors.ConnectionStateConnected:
		if s.wasConnected {
			s.connStatusMu.Unlock()

			return
		}
		s.wasConnected = true
		payload = notifications.Payload{
			Title:   notificationTitleConnected,
			Content: connectionDetails(status.Target, ""),
		}
	case connectors.ConnectionStateReconnecting, connectors.ConnectionStateDisconnected:
		if !s.wasConnected {
			s.connStatusMu.Unlock()

			return
		}
		s.wasConnected = false
		payload = notifications.Payload{
			Title:   notificationTitleDisconnected,
			Content: connectionDetails(status.Target, status.Err),
		}
	default:
		s.connStatusMu.Unlock()

		return
	}
	s.connStatusMu.Unlock()

	prefs := s.notificationPrefs()
	if !s.shouldNotify(prefs, prefs.Events.ConnectionStatus) {
		return
	}
	s.send(payload)
}

func (s *NotificationService) shouldNotify(prefs config.NotificationConfig, kindEnabled bool) bool {
	if !kindEnabled {
		return false
	}
	if prefs.NotifyWhenFocused {
		return true
	}
	if s.isForeground == nil {
		return true
	}

	return !s.isForeground()
}

func (s *NotificationService) notificationPrefs() config.NotificationConfig {
	cfg := config.Default()
	if s.currentConfig != nil {
		cfg = s.currentConfig()
		cfg.FillMissingDefaults()
	}

	return cfg.UI.Notifications
}

func (s *NotificationService) send(notification notifications.Payload) {
	title := strings.TrimSpace(notification.Title)
	content := strings.TrimSpace(notification.Content)
	if title == "" && content == "" {
		return
	}
	s.logger.Debug("sending notification", "title", title)
	s.sender.Send(notifications.Payload{
		Title:   title,
		Content: content,
	})
}

func crashRecordedContent(rec domain.CrashRecording) string {
	samples := rec.Len()
	if samples == 0 {
		return "Empty recording"
	}
	peak, _ := rec.PeakMagnitude()

	return fmt.Sprintf("%d samples, peak %.2f m/s²", samples, peak)
}

func connectionDetails(target, errText string) string {
	details := strings.TrimSpace(target)
	if details == "" {
		details = "No connection details"
	}
	if errText = strings.TrimSpace(errText); errText != "" {
		details = fmt.Sprintf("%s (error: %s)", details, errText)
	}

	return details
}
