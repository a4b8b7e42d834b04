package resources

import (
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestUIIconResource(t *testing.T) {
	for _, icon := range []UIIcon{UIIconDashboard, UIIconSettings, UIIconStart, UIIconStop} {
		if got := UIIconResource(icon); got == nil {
			t.Fatalf("expected resource for %q", icon)
		}
	}
	if got := UIIconResource("unknown"); got != nil {
		t.Fatalf("expected nil for unknown icon, got %v", got)
	}
}

func TestTrayIconResourceVariants(t *testing.T) {
	if TrayIconResource(theme.VariantDark) == nil || TrayIconResource(theme.VariantLight) == nil {
		t.Fatalf("expected tray icon for both variants")
	}
	if AppIconResource() == nil {
		t.Fatalf("expected app icon")
	}
}
