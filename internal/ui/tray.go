package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	crashapp "github.com/skobkin/crashboard/internal/app"
	"github.com/skobkin/crashboard/internal/resources"
)

func trayIcon(fyApp fyne.App) fyne.Resource {
	return resources.TrayIconResource(fyApp.Settings().ThemeVariant())
}

// configureSystemTray reports whether the app supports a tray. Without one the close intercept must not hide the window.
func configureSystemTray(fyApp fyne.App, window fyne.Window, quit func()) bool {
	desk, ok := fyApp.(desktop.App)
	if !ok {
		return false
	}

	desk.SetSystemTrayIcon(trayIcon(fyApp))
	desk.SetSystemTrayMenu(fyne.NewMenu(crashapp.Name,
		fyne.NewMenuItem("Show", func() {
			appLogger.Debug("system tray show action invoked")
			window.Show()
			window.RequestFocus()
		}),
		fyne.NewMenuItem("Quit", func() {
			appLogger.Debug("system tray quit action invoked")
			if quit != nil {
				quit()
			}
		}),
	))

	return true
}
