package ui

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/skobkin/crashboard/internal/notifications"
)

// FyneNotificationSender shows notifications through the fyne app.
type FyneNotificationSender struct {
	app     fyne.App
	runOnUI func(func())
}

func NewFyneNotificationSender(app fyne.App) *FyneNotificationSender {
	return &FyneNotificationSender{app: app, runOnUI: fyne.Do}
}

func (s *FyneNotificationSender) Send(payload notifications.Payload) {
	if s == nil || s.app == nil {
		return
	}
	title := strings.TrimSpace(payload.Title)
	content := strings.TrimSpace(payload.Content)
	if title == "" && content == "" {
		return
	}

	s.runOnUI(func() {
		s.app.SendNotification(fyne.NewNotification(title, content))
	})
}
