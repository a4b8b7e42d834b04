package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/skobkin/crashboard/internal/config"
	"github.com/skobkin/crashboard/internal/transport"
)

var errTransportNotConfigured = errors.New("transport is not configured")

// SwitchableTransport lets settings changes retarget the device socket without restarting the connector.
// Apply closes the previous socket, so the connector sees a close and redials the new endpoint after the usual delay.
type SwitchableTransport struct {
	mu sync.RWMutex

	cfg       config.ConnectionConfig
	transport transport.Transport
}

func NewConnectionTransport(cfg config.ConnectionConfig) (*SwitchableTransport, error) {
	tr, err := NewTransportForConnection(cfg)
	if err != nil {
		return nil, err
	}

	return &SwitchableTransport{
		cfg:       cfg,
		transport: tr,
	}, nil
}

// Apply swaps in a transport for cfg. An unchanged endpoint keeps the live socket.
func (t *SwitchableTransport) Apply(cfg config.ConnectionConfig) error {
	if sameEndpoint(t.Config(), cfg) {
		t.mu.Lock()
		t.cfg = cfg
		t.mu.Unlock()

		return nil
	}

	next, err := NewTransportForConnection(cfg)
	if err != nil {
		return err
	}

	t.mu.Lock()
	current := t.transport
	t.transport = next
	t.cfg = cfg
	t.mu.Unlock()

	if current != nil {
		_ = current.Close()
	}

	return nil
}

func (t *SwitchableTransport) Name() string {
	tr := t.current()
	if tr == nil {
		return "unknown"
	}

	return tr.Name()
}

func (t *SwitchableTransport) StatusTarget() string {
	t.mu.RLock()
	tr := t.transport
	cfg := t.cfg
	t.mu.RUnlock()

	if provider, ok := tr.(transport.StatusTargetResolver); ok {
		if target := strings.TrimSpace(provider.StatusTarget()); target != "" {
			return target
		}
	}

	return ConnectionTarget(cfg)
}

func (t *SwitchableTransport) Connect(ctx context.Context) error {
	tr := t.current()
	if tr == nil {
		return errTransportNotConfigured
	}

	return tr.Connect(ctx)
}

func (t *SwitchableTransport) Close() error {
	tr := t.current()
	if tr == nil {
		return nil
	}

	return tr.Close()
}

func (t *SwitchableTransport) ReadMessage(ctx context.Context) ([]byte, error) {
	tr := t.current()
	if tr == nil {
		return nil, errTransportNotConfigured
	}

	return tr.ReadMessage(ctx)
}

func (t *SwitchableTransport) WriteMessage(ctx context.Context, payload []byte) error {
	tr := t.current()
	if tr == nil {
		return errTransportNotConfigured
	}

	return tr.WriteMessage(ctx, payload)
}

func (t *SwitchableTransport) Config() config.ConnectionConfig {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.cfg
}

func (t *SwitchableTransport) current() transport.Transport {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.transport
}

func NewTransportForConnection(cfg config.ConnectionConfig) (transport.Transport, error) {
	if _, err := transport.EndpointURL(cfg.Host, cfg.Secure); err != nil {
		return nil, fmt.Errorf("build device endpoint: %w", err)
	}

	return transport.NewWebSocketTransport(cfg.Host, cfg.Secure), nil
}

func sameEndpoint(a, b config.ConnectionConfig) bool {
	return strings.EqualFold(strings.TrimSpace(a.Host), strings.TrimSpace(b.Host)) && a.Secure == b.Secure
}
