package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	crashapp "github.com/skobkin/crashboard/internal/app"
	"github.com/skobkin/crashboard/internal/connectors"
)

// connectionStatusPresenter mirrors the connector state into the window title and every status label.
type connectionStatusPresenter struct {
	window  fyne.Window
	labels  []*widget.Label
	current connectors.ConnectionStatus
}

func newConnectionStatusPresenter(window fyne.Window, initial connectors.ConnectionStatus, labels ...*widget.Label) *connectionStatusPresenter {
	p := &connectionStatusPresenter{
		window: window,
		labels: labels,
	}
	p.Set(initial)

	return p
}

func (p *connectionStatusPresenter) Set(status connectors.ConnectionStatus) {
	p.current = status
	if p.window != nil {
		p.window.SetTitle(formatWindowTitle(status))
	}
	text := formatConnStatus(status)
	for _, label := range p.labels {
		label.SetText(text)
	}
}

func (p *connectionStatusPresenter) CurrentStatus() connectors.ConnectionStatus {
	return p.current
}

func formatConnStatus(status connectors.ConnectionStatus) string {
	state := string(status.State)
	if state == "" {
		state = string(connectors.ConnectionStateDisconnected)
	}
	text := "Connection: " + state
	if target := strings.TrimSpace(status.Target); target != "" {
		text += " (" + target + ")"
	}
	if errText := strings.TrimSpace(status.Err); errText != "" {
		text += ": " + errText
	}

	return text
}

func formatWindowTitle(status connectors.ConnectionStatus) string {
	return fmt.Sprintf("%s %s - %s", crashapp.DisplayName, crashapp.BuildVersion(), formatConnStatus(status))
}

func resolveInitialConnStatus(dep RuntimeDependencies) connectors.ConnectionStatus {
	if dep.Data.CurrentConnStatus != nil {
		if status, ok := dep.Data.CurrentConnStatus(); ok {
			return status
		}
	}

	return crashapp.ConnectionStatusFromConfig(dep.Data.Config.Connection)
}
