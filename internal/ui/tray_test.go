package ui

import (
	"testing"

	fynetest "fyne.io/fyne/v2/test"
)

func TestConfigureSystemTrayDesktopApp(t *testing.T) {
	base := fynetest.NewApp()
	t.Cleanup(base.Quit)

	app := &trayAppSpy{appRunQuitSpy: appRunQuitSpy{App: base}}
	window := &windowSpy{Window: base.NewWindow("tray")}
	var quitCalls int

	if !configureSystemTray(app, window, func() { quitCalls++ }) {
		t.Fatalf("expected tray support for desktop app")
	}
	if app.trayIcon == nil {
		t.Fatalf("expected tray icon to be set")
	}
	if app.trayMenu == nil || len(app.trayMenu.Items) != 2 {
		t.Fatalf("expected two tray menu items, got %#v", app.trayMenu)
	}

	app.trayMenu.Items[0].Action()
	if window.showCalls != 1 || window.focusCalls != 1 {
		t.Fatalf("expected show action to show and focus once, got show=%d focus=%d", window.showCalls, window.focusCalls)
	}

	app.trayMenu.Items[1].Action()
	if quitCalls != 1 {
		t.Fatalf("expected quit action callback once, got %d", quitCalls)
	}
}

func TestConfigureSystemTrayNonDesktopApp(t *testing.T) {
	base := fynetest.NewApp()
	t.Cleanup(base.Quit)

	if configureSystemTray(&basicAppWrapper{App: base}, base.NewWindow("tray"), nil) {
		t.Fatalf("expected no tray for non-desktop app")
	}
}
