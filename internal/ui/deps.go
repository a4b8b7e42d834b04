package ui

import (
	"context"

	"fyne.io/fyne/v2"

	"github.com/skobkin/crashboard/internal/bus"
	"github.com/skobkin/crashboard/internal/config"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/device"
	"github.com/skobkin/crashboard/internal/domain"
)

type DataDependencies struct {
	Config            config.AppConfig
	Bus               bus.MessageBus
	CurrentConfig     func() config.AppConfig
	CurrentConnStatus func() (connectors.ConnectionStatus, bool)
	LastCrash         func() (domain.CrashRecording, bool)
}

type ActionDependencies struct {
	SendCommand func(ctx context.Context, cmd device.Command) error
	OnSave      func(cfg config.AppConfig) error
	OnQuit      func()
}

// UIHooks replace fyne globals in tests.
type UIHooks struct {
	RunOnUI         func(func())
	RunAsync        func(func())
	ShowErrorDialog func(err error, window fyne.Window)
}

type LaunchOptions struct {
	StartHidden bool
}

type RuntimeDependencies struct {
	Data    DataDependencies
	Actions ActionDependencies
	UIHooks UIHooks
	Launch  LaunchOptions
}

func (h UIHooks) runOnUI() func(func()) {
	if h.RunOnUI != nil {
		return h.RunOnUI
	}

	return fyne.Do
}

func (h UIHooks) runAsync() func(func()) {
	if h.RunAsync != nil {
		return h.RunAsync
	}

	return func(fn func()) { go fn() }
}
