package ui

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	crashapp "github.com/skobkin/crashboard/internal/app"
	"github.com/skobkin/crashboard/internal/resources"
)

var newFyneApp = func() fyne.App {
	return fyneapp.NewWithID(crashapp.Name)
}

func Run(dep RuntimeDependencies) error {
	return runWithApp(dep, newFyneApp())
}

func runWithApp(dep RuntimeDependencies, fyApp fyne.App) error {
	fyApp.SetIcon(resources.AppIconResource())
	appLogger.Info("starting UI runtime", "start_hidden", dep.Launch.StartHidden)

	window := fyApp.NewWindow(crashapp.DisplayName)
	window.Resize(fyne.NewSize(1000, 640))
	view := buildMainView(dep, window, resolveInitialConnStatus(dep))
	window.SetContent(view.tabs)

	stopNotifications := startNotificationService(dep, fyApp, dep.Launch.StartHidden)
	stopUIListeners := bindPresentationListeners(dep, view.dashboard, view.connStatusPresenter)

	uiRuntime := newUIRuntime(fyApp, window, stopNotifications, stopUIListeners, dep.Actions.OnQuit)
	startHidden := dep.Launch.StartHidden
	if configureSystemTray(fyApp, window, uiRuntime.Quit) {
		uiRuntime.BindCloseIntercept()
	} else {
		window.SetCloseIntercept(uiRuntime.Quit)
		startHidden = false
	}

	uiRuntime.Run(startHidden)

	return nil
}
