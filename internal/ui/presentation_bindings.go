package ui

import (
	"github.com/skobkin/crashboard/internal/connectors"
)

// bindPresentationListeners routes bus events to the dashboard and the connection status line on the UI goroutine.
func bindPresentationListeners(dep RuntimeDependencies, dashboard *dashboardView, connStatus *connectionStatusPresenter) func() {
	runOnUI := dep.UIHooks.runOnUI()

	stop := startUIEventListeners(dep.Data.Bus, uiEventHandlers{
		OnConnStatus: func(status connectors.ConnectionStatus) {
			runOnUI(func() {
				connStatus.Set(status)
				dashboard.ApplyConnStatus(status)
			})
		},
		OnDeviceStatus: func(status connectors.DeviceStatus) {
			runOnUI(func() {
				dashboard.ApplyDeviceStatus(status)
			})
		},
		OnCrashData: func(event connectors.CrashData) {
			runOnUI(func() {
				dashboard.ApplyCrashData(event)
			})
		},
	})

	// Events published before the subscription existed are replayed from the runtime snapshot.
	if dep.Data.CurrentConnStatus != nil {
		if status, ok := dep.Data.CurrentConnStatus(); ok {
			connStatus.Set(status)
			dashboard.ApplyConnStatus(status)
		}
	}
	if dep.Data.LastCrash != nil {
		if rec, ok := dep.Data.LastCrash(); ok {
			dashboard.ApplyCrashData(connectors.CrashData{Recording: rec})
		}
	}

	return stop
}
