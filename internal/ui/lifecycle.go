package ui

import (
	"context"
	"log/slog"
	"sync/atomic"

	"fyne.io/fyne/v2"

	crashapp "github.com/skobkin/crashboard/internal/app"
	"github.com/skobkin/crashboard/internal/config"
)

// startNotificationService tracks window focus through the app lifecycle and starts desktop notifications.
func startNotificationService(dep RuntimeDependencies, fyApp fyne.App, startHidden bool) func() {
	var appForeground atomic.Bool
	appForeground.Store(!startHidden)
	fyApp.Lifecycle().SetOnEnteredForeground(func() {
		appForeground.Store(true)
	})
	fyApp.Lifecycle().SetOnExitedForeground(func() {
		appForeground.Store(false)
	})

	currentConfig := dep.Data.CurrentConfig
	if currentConfig == nil {
		cfg := dep.Data.Config
		currentConfig = func() config.AppConfig { return cfg }
	}

	ctx, stop := context.WithCancel(context.Background())
	crashapp.NewNotificationService(
		dep.Data.Bus,
		currentConfig,
		appForeground.Load,
		NewFyneNotificationSender(fyApp),
		slog.With("component", "ui.notifications"),
	).Start(ctx)

	return stop
}
