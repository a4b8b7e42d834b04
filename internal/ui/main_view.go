package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/resources"
)

type mainView struct {
	tabs                *container.AppTabs
	dashboard           *dashboardView
	connStatusPresenter *connectionStatusPresenter
}

func buildMainView(dep RuntimeDependencies, window fyne.Window, initialStatus connectors.ConnectionStatus) *mainView {
	dashboard := newDashboardView(dep, nil)

	dashboardConnLabel := widget.NewLabel("")
	settingsConnLabel := widget.NewLabel("")
	presenter := newConnectionStatusPresenter(window, initialStatus, dashboardConnLabel, settingsConnLabel)

	dashboardTab := container.NewBorder(nil, dashboardConnLabel, nil, nil, dashboard.Content())
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Dashboard", resources.UIIconResource(resources.UIIconDashboard), dashboardTab),
		container.NewTabItemWithIcon("Settings", resources.UIIconResource(resources.UIIconSettings), newSettingsTab(dep, settingsConnLabel)),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	return &mainView{
		tabs:                tabs,
		dashboard:           dashboard,
		connStatusPresenter: presenter,
	}
}
