package connectors

import (
	"time"

	"github.com/skobkin/crashboard/internal/domain"
)

// ConnectionState describes the connector lifecycle state shown in UI.
type ConnectionState string

const (
	ConnectionStateDisconnected ConnectionState = "disconnected"
	ConnectionStateConnecting   ConnectionState = "connecting"
	ConnectionStateConnected    ConnectionState = "connected"
	ConnectionStateReconnecting ConnectionState = "reconnecting"
)

// ConnectionStatus is a bus event snapshot of current connector status.
type ConnectionStatus struct {
	State         ConnectionState
	Err           string
	TransportName string
	Target        string
	Timestamp     time.Time
}

// DeviceStatus carries the free-text state reported by the device.
type DeviceStatus struct {
	Text       string
	ReceivedAt time.Time
}

// CrashData wraps a decoded crash recording.
type CrashData struct {
	Recording domain.CrashRecording
}

// RawFrame carries frame diagnostics for debug/log views.
type RawFrame struct {
	Text string
	Len  int
}
