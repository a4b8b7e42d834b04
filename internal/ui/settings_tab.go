package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	crashapp "github.com/skobkin/crashboard/internal/app"
	"github.com/skobkin/crashboard/internal/config"
)

var logLevelOptions = []string{"debug", "info", "warn", "error"}

const hostPlaceholder = "IP address or hostname[:port]"

func newSettingsTab(dep RuntimeDependencies, connStatusLabel *widget.Label) fyne.CanvasObject {
	current := dep.Data.Config
	current.FillMissingDefaults()

	hostEntry := widget.NewEntry()
	hostEntry.SetPlaceHolder(hostPlaceholder)
	hostEntry.SetText(current.Connection.Host)

	secureCheck := widget.NewCheck("Use TLS (wss://)", nil)
	secureCheck.SetChecked(current.Connection.Secure)

	endpointLabel := widget.NewLabel("")
	updateEndpoint := func() {
		endpointLabel.SetText("Endpoint: " + crashapp.ConnectionTarget(config.ConnectionConfig{
			Host:   strings.TrimSpace(hostEntry.Text),
			Secure: secureCheck.Checked,
		}))
	}
	hostEntry.OnChanged = func(string) { updateEndpoint() }
	secureCheck.OnChanged = func(bool) { updateEndpoint() }
	updateEndpoint()

	levelSelect := widget.NewSelect(logLevelOptions, nil)
	levelSelect.SetSelected(strings.ToLower(current.Logging.Level))
	if levelSelect.Selected == "" {
		levelSelect.SetSelected(config.DefaultLogLevel)
	}
	logToFile := widget.NewCheck("", nil)
	logToFile.SetChecked(current.Logging.LogToFile)

	notifyWhenFocused := widget.NewCheck("", nil)
	notifyWhenFocused.SetChecked(current.UI.Notifications.NotifyWhenFocused)
	notifyCrash := widget.NewCheck("", nil)
	notifyCrash.SetChecked(current.UI.Notifications.Events.CrashRecorded)
	notifyConnection := widget.NewCheck("", nil)
	notifyConnection.SetChecked(current.UI.Notifications.Events.ConnectionStatus)

	status := widget.NewLabel("")
	status.Wrapping = fyne.TextWrapWord

	saveButton := widget.NewButton("Save", func() {
		if dep.Actions.OnSave == nil {
			status.SetText("Save failed: settings cannot be saved")

			return
		}

		cfg := current
		cfg.Connection.Host = strings.TrimSpace(hostEntry.Text)
		cfg.Connection.Secure = secureCheck.Checked
		cfg.Logging.Level = levelSelect.Selected
		cfg.Logging.LogToFile = logToFile.Checked
		cfg.UI.Notifications.NotifyWhenFocused = notifyWhenFocused.Checked
		cfg.UI.Notifications.Events.CrashRecorded = notifyCrash.Checked
		cfg.UI.Notifications.Events.ConnectionStatus = notifyConnection.Checked

		if err := dep.Actions.OnSave(cfg); err != nil {
			appLogger.Warn("save settings", "error", err)
			status.SetText("Save failed: " + err.Error())

			return
		}
		current = cfg
		status.SetText("Saved")
	})
	saveButton.Importance = widget.HighImportance

	connectionBlock := widget.NewCard("Device", "", container.NewVBox(
		connStatusLabel,
		widget.NewForm(
			widget.NewFormItem("Host", hostEntry),
			widget.NewFormItem("", secureCheck),
		),
		endpointLabel,
	))
	loggingBlock := widget.NewCard("Logging", "", widget.NewForm(
		widget.NewFormItem("Log level", levelSelect),
		widget.NewFormItem("Log to file", logToFile),
	))
	notificationsBlock := widget.NewCard("Notifications", "", widget.NewForm(
		widget.NewFormItem("Crash recorded", notifyCrash),
		widget.NewFormItem("Connection lost or restored", notifyConnection),
		widget.NewFormItem("Notify while focused", notifyWhenFocused),
	))

	return container.NewVScroll(container.NewVBox(
		connectionBlock,
		loggingBlock,
		notificationsBlock,
		saveButton,
		widget.NewLabel("Version: "+crashapp.BuildVersionWithDate()),
		status,
	))
}
