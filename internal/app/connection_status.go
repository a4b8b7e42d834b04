package app

import (
	"strings"

	"github.com/skobkin/crashboard/internal/config"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/transport"
)

// ConnectionTarget is the endpoint URL shown to the user, or the bare host if it cannot be built.
func ConnectionTarget(cfg config.ConnectionConfig) string {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return ""
	}
	endpoint, err := transport.EndpointURL(host, cfg.Secure)
	if err != nil {
		return host
	}

	return endpoint
}

// ConnectionStatusFromConfig is the status shown before the connector publishes its first event.
func ConnectionStatusFromConfig(cfg config.ConnectionConfig) connectors.ConnectionStatus {
	status := connectors.ConnectionStatus{
		State:         connectors.ConnectionStateDisconnected,
		TransportName: transport.WebSocketTransportName,
		Target:        ConnectionTarget(cfg),
	}
	if status.Target != "" {
		status.State = connectors.ConnectionStateConnecting
	}

	return status
}
