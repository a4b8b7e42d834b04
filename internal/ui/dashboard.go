package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/skobkin/crashboard/internal/chart"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/device"
	"github.com/skobkin/crashboard/internal/domain"
	"github.com/skobkin/crashboard/internal/resources"
)

const commandTimeout = 5 * time.Second

// dashboardView renders domain.ControlState and the crash chart.
// Methods must be called on the UI goroutine. Command sends run in the background.
type dashboardView struct {
	statusLabel *widget.Label
	startButton *widget.Button
	stopButton  *widget.Button
	chart       *crashChartView
	content     fyne.CanvasObject

	sendCommand func(ctx context.Context, cmd device.Command) error
	runOnUI     func(func())
	runAsync    func(func())

	state domain.ControlState
}

func newDashboardView(dep RuntimeDependencies, render plotRenderer) *dashboardView {
	v := &dashboardView{
		statusLabel: widget.NewLabel(""),
		chart:       newCrashChartView(chart.DefaultSize, render),
		sendCommand: dep.Actions.SendCommand,
		runOnUI:     dep.UIHooks.runOnUI(),
		runAsync:    dep.UIHooks.runAsync(),
	}
	v.statusLabel.Wrapping = fyne.TextWrapWord
	v.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.startButton = widget.NewButtonWithIcon("Start", resources.UIIconResource(resources.UIIconStart), func() {
		v.issue(device.CommandStart)
	})
	v.startButton.Importance = widget.HighImportance
	v.stopButton = widget.NewButtonWithIcon("Stop", resources.UIIconResource(resources.UIIconStop), func() {
		v.issue(device.CommandStop)
	})
	v.stopButton.Importance = widget.DangerImportance

	controls := container.NewHBox(v.startButton, v.stopButton, layout.NewSpacer())
	v.content = container.NewBorder(
		container.NewVBox(v.statusLabel, controls),
		nil, nil, nil,
		v.chart.CanvasObject(),
	)
	v.apply(domain.InitialControlState())

	return v
}

func (v *dashboardView) Content() fyne.CanvasObject {
	return v.content
}

func (v *dashboardView) State() domain.ControlState {
	return v.state
}

func (v *dashboardView) ApplyConnStatus(status connectors.ConnectionStatus) {
	switch status.State {
	case connectors.ConnectionStateConnected:
		v.apply(v.state.ConnectionOpened())
	case connectors.ConnectionStateReconnecting, connectors.ConnectionStateDisconnected:
		v.apply(v.state.ConnectionClosed())
	}
}

func (v *dashboardView) ApplyDeviceStatus(status connectors.DeviceStatus) {
	v.apply(v.state.DeviceStatus(status.Text))
}

func (v *dashboardView) ApplyCrashData(event connectors.CrashData) {
	if err := v.chart.Show(event.Recording); err != nil {
		appLogger.Warn("render crash chart", "samples", event.Recording.Len(), "error", err)
	}
	v.apply(v.state.CrashDataReceived())
}

// issue sends cmd off the UI goroutine. A refused send only changes the status text.
func (v *dashboardView) issue(cmd device.Command) {
	send := v.sendCommand
	if send == nil {
		appLogger.Warn("command ignored: no device service", "command", string(cmd))
		v.apply(v.state.CommandRejected())

		return
	}

	v.runAsync(func() {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := send(ctx, cmd)
		if err == nil {
			return
		}
		appLogger.Warn("command not sent", "command", string(cmd), "error", err)
		v.runOnUI(func() {
			if errors.Is(err, device.ErrNotConnected) {
				v.apply(v.state.CommandRejected())

				return
			}
			next := v.state
			next.StatusText = fmt.Sprintf("Failed to send %s: %v", cmd, err)
			v.apply(next)
		})
	})
}

func (v *dashboardView) apply(state domain.ControlState) {
	v.state = state
	v.statusLabel.SetText(state.StatusText)
	setEnabled(v.startButton, state.StartEnabled)
	setEnabled(v.stopButton, state.StopEnabled)
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()

		return
	}
	button.Disable()
}
