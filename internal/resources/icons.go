// Package resources maps dashboard icons onto fyne theme resources.
package resources

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type UIIcon string

const (
	UIIconDashboard UIIcon = "dashboard"
	UIIconSettings  UIIcon = "settings"
	UIIconStart     UIIcon = "start"
	UIIconStop      UIIcon = "stop"
)

var uiIconResources = map[UIIcon]func() fyne.Resource{
	UIIconDashboard: theme.HomeIcon,
	UIIconSettings:  theme.SettingsIcon,
	UIIconStart:     theme.MediaPlayIcon,
	UIIconStop:      theme.MediaStopIcon,
}

// UIIconResource returns nil for unknown icons.
func UIIconResource(icon UIIcon) fyne.Resource {
	if res, ok := uiIconResources[icon]; ok {
		return res()
	}

	return nil
}

// AppIconResource is the window and launcher icon.
func AppIconResource() fyne.Resource {
	return theme.NewColoredResource(theme.MediaRecordIcon(), theme.ColorNameError)
}

// TrayIconResource picks a tray icon that stays visible on the given theme variant.
func TrayIconResource(variant fyne.ThemeVariant) fyne.Resource {
	if variant == theme.VariantLight {
		return theme.NewColoredResource(theme.MediaRecordIcon(), theme.ColorNameForeground)
	}

	return theme.MediaRecordIcon()
}
