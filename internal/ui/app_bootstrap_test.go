package ui

import (
	"testing"

	fynetest "fyne.io/fyne/v2/test"

	"github.com/skobkin/crashboard/internal/config"
)

func TestRunWithAppWiresTrayAndStopsOnReturn(t *testing.T) {
	base := fynetest.NewApp()
	t.Cleanup(base.Quit)
	app := &trayAppSpy{appRunQuitSpy: appRunQuitSpy{App: base}}

	var quitCalls int
	dep := RuntimeDependencies{
		Data: DataDependencies{
			Config:        config.Default(),
			Bus:           newBusSpy(),
			CurrentConfig: config.Default,
		},
		Actions: ActionDependencies{OnQuit: func() { quitCalls++ }},
		UIHooks: syncHooks(),
		Launch:  LaunchOptions{StartHidden: true},
	}

	if err := runWithApp(dep, app); err != nil {
		t.Fatalf("run with app: %v", err)
	}
	if app.runCalls != 1 {
		t.Fatalf("expected app run once, got %d", app.runCalls)
	}
	if app.trayMenu == nil {
		t.Fatalf("expected tray menu to be configured")
	}
	if quitCalls != 1 {
		t.Fatalf("expected quit callback after run returns, got %d", quitCalls)
	}
}
