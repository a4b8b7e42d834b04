package domain

import "strings"

const (
	StatusTextConnected    = "Connected, awaiting commands."
	StatusTextDisconnected = "Disconnected, reconnecting..."
	StatusTextNotConnected = "Not connected. Please refresh."

	statusMarkerArmed     = "Armed"
	statusMarkerIdle      = "Idle"
	statusMarkerConnected = "Connected"
)

// ControlState is what the dashboard shows: status text and which command buttons are usable.
// Every transition depends only on the current event, so no stale button combination survives it.
type ControlState struct {
	StatusText   string
	StartEnabled bool
	StopEnabled  bool
}

// InitialControlState is shown before the first connection attempt completes.
func InitialControlState() ControlState {
	return ControlState{StatusText: "Connecting..."}
}

func (s ControlState) ConnectionOpened() ControlState {
	return ControlState{StatusText: StatusTextConnected, StartEnabled: true, StopEnabled: false}
}

func (s ControlState) ConnectionClosed() ControlState {
	return ControlState{StatusText: StatusTextDisconnected, StartEnabled: false, StopEnabled: false}
}

// DeviceStatus applies a status message. "Armed" wins over "Idle"/"Connected";
// any other text leaves the buttons as they are.
func (s ControlState) DeviceStatus(text string) ControlState {
	s.StatusText = text
	switch {
	case strings.Contains(text, statusMarkerArmed):
		s.StartEnabled, s.StopEnabled = false, true
	case strings.Contains(text, statusMarkerIdle), strings.Contains(text, statusMarkerConnected):
		s.StartEnabled, s.StopEnabled = true, false
	}

	return s
}

func (s ControlState) CrashDataReceived() ControlState {
	s.StartEnabled, s.StopEnabled = true, false

	return s
}

func (s ControlState) CommandRejected() ControlState {
	s.StatusText = StatusTextNotConnected

	return s
}
