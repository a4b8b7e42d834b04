package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	EndpointPath           = "/ws"
	WebSocketTransportName = "websocket"

	defaultHandshakeTimeout = 6 * time.Second
	closeFrameTimeout       = time.Second
)

// EndpointURL builds the device socket URL. The scheme mirrors secure: wss for TLS, ws otherwise.
func EndpointURL(host string, secure bool) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", errors.New("websocket host is empty")
	}
	if strings.ContainsAny(host, "/?#") {
		return "", fmt.Errorf("websocket host must not contain a path: %q", host)
	}

	scheme := "ws"
	if secure {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: host, Path: EndpointPath}

	return u.String(), nil
}

// WebSocketTransport keeps at most one live socket to the device.
type WebSocketTransport struct {
	host   string
	secure bool
	dialer *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewWebSocketTransport(host string, secure bool) *WebSocketTransport {
	return &WebSocketTransport{
		host:   strings.TrimSpace(host),
		secure: secure,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: defaultHandshakeTimeout,
		},
	}
}

func (t *WebSocketTransport) Name() string {
	return WebSocketTransportName
}

func (t *WebSocketTransport) StatusTarget() string {
	target, err := EndpointURL(t.host, t.secure)
	if err != nil {
		return ""
	}

	return target
}

func (t *WebSocketTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.conn != nil
}

func (t *WebSocketTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, err := EndpointURL(t.host, t.secure)
	logger := t.logger("target", target)
	if err != nil {
		logger.Warn("connect failed: invalid endpoint", "error", err)

		return err
	}
	if t.conn != nil {
		logger.Debug("connect skipped: already connected")

		return nil
	}

	logger.Info("connecting")
	conn, resp, err := t.dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil {
			logger.Warn("connect failed", "error", err, "http_status", resp.StatusCode)

			return fmt.Errorf("dial websocket: %w (http status %d)", err, resp.StatusCode)
		}
		logger.Warn("connect failed", "error", err)

		return fmt.Errorf("dial websocket: %w", err)
	}
	t.conn = conn
	logger.Info("connected", "remote", conn.RemoteAddr().String())

	return nil
}

func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	logger := t.logger("target", t.StatusTarget())
	if t.conn == nil {
		logger.Debug("close skipped: not connected")

		return nil
	}

	conn := t.conn
	t.conn = nil
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeFrameTimeout),
	)
	if err := conn.Close(); err != nil {
		logger.Warn("close failed", "error", err)

		return err
	}
	logger.Info("closed")

	return nil
}

func (t *WebSocketTransport) ReadMessage(ctx context.Context) ([]byte, error) {
	logger := t.logger()
	conn, err := t.currentConn()
	if err != nil {
		logger.Debug("read message failed: not connected", "error", err)

		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	} else {
		_ = conn.SetReadDeadline(time.Time{})
	}

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("connection closed by peer", "error", err)
			} else {
				logger.Debug("read message failed", "error", err)
			}

			return nil, fmt.Errorf("read websocket message: %w", err)
		}
		if kind != websocket.TextMessage {
			logger.Debug("skipping non-text message", "kind", kind, "len", len(payload))

			continue
		}
		logger.Debug("read message", "len", len(payload))

		return payload, nil
	}
}

func (t *WebSocketTransport) WriteMessage(ctx context.Context, payload []byte) error {
	logger := t.logger()
	conn, err := t.currentConn()
	if err != nil {
		logger.Debug("write message failed: not connected", "error", err)

		return err
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	} else {
		_ = conn.SetWriteDeadline(time.Time{})
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		logger.Warn("write message failed", "len", len(payload), "error", err)

		return fmt.Errorf("write websocket message: %w", err)
	}
	logger.Debug("write message", "len", len(payload))

	return nil
}

func (t *WebSocketTransport) currentConn() (*websocket.Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil, ErrNotConnected
	}

	return t.conn, nil
}

func (t *WebSocketTransport) logger(attrs ...any) *slog.Logger {
	logger := slog.With("component", "transport", "transport", t.Name())
	if len(attrs) == 0 {
		return logger
	}

	return logger.With(attrs...)
}
