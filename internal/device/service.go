package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/skobkin/crashboard/internal/bus"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/transport"
)

// ReconnectDelay is the fixed pause between a closed connection and the next dial.
const ReconnectDelay = 3000 * time.Millisecond

const commandWriteTimeout = 5 * time.Second

var ErrNotConnected = errors.New("device is not connected")

type Service struct {
	logger         *slog.Logger
	transport      transport.Transport
	codec          *Codec
	bus            bus.MessageBus
	reconnectDelay time.Duration
	wait           func(ctx context.Context, d time.Duration) bool

	startOnce sync.Once
	done      chan struct{}

	stateMu sync.RWMutex
	state   connectors.ConnectionState
}

func NewService(logger *slog.Logger, b bus.MessageBus, tr transport.Transport, codec *Codec) *Service {
	if logger == nil {
		logger = slog.Default().With("component", "device")
	}
	if codec == nil {
		codec = NewCodec()
	}

	return &Service{
		logger:         logger,
		transport:      tr,
		codec:          codec,
		bus:            b,
		reconnectDelay: ReconnectDelay,
		wait:           sleepWithContext,
		done:           make(chan struct{}),
		state:          connectors.ConnectionStateDisconnected,
	}
}

// Start launches the connection loop once. It keeps reconnecting until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go func() {
			<-ctx.Done()
			_ = s.transport.Close()
		}()
		go func() {
			defer close(s.done)
			s.runConnector(ctx)
		}()
	})
}

// Done is closed when the connection loop has exited.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) State() connectors.ConnectionState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.state
}

func (s *Service) Connected() bool {
	return s.State() == connectors.ConnectionStateConnected
}

// SendCommand writes cmd if the socket is open. Commands issued while disconnected are dropped, not queued.
func (s *Service) SendCommand(ctx context.Context, cmd Command) error {
	payload, err := s.codec.EncodeCommand(cmd)
	if err != nil {
		return err
	}
	if !s.Connected() {
		s.logger.Warn("command dropped: socket is not open", "command", string(cmd))

		return ErrNotConnected
	}

	writeCtx, cancel := context.WithTimeout(ctx, commandWriteTimeout)
	defer cancel()
	if err := s.transport.WriteMessage(writeCtx, payload); err != nil {
		if errors.Is(err, transport.ErrNotConnected) {
			s.logger.Warn("command dropped: socket closed during send", "command", string(cmd))

			return ErrNotConnected
		}

		return fmt.Errorf("send %s command: %w", cmd, err)
	}
	s.logger.Info("command sent", "command", string(cmd))
	s.bus.Publish(connectors.TopicRawFrameOut, connectors.RawFrame{Text: string(payload), Len: len(payload)})

	return nil
}

func (s *Service) runConnector(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			s.publishConnStatus(connectors.ConnectionStateDisconnected, nil)

			return
		}

		s.publishConnStatus(connectors.ConnectionStateConnecting, nil)
		err := s.transport.Connect(ctx)
		if err == nil {
			s.publishConnStatus(connectors.ConnectionStateConnected, nil)
			err = s.runReader(ctx)
			_ = s.transport.Close()
		} else {
			s.logger.Error("transport connect failed", "error", err)
		}

		if ctx.Err() != nil {
			s.publishConnStatus(connectors.ConnectionStateDisconnected, nil)

			return
		}
		s.logger.Info("connection closed, scheduling reconnect", "delay", s.reconnectDelay.String(), "error", err)
		s.publishConnStatus(connectors.ConnectionStateReconnecting, err)
		if !s.wait(ctx, s.reconnectDelay) {
			s.publishConnStatus(connectors.ConnectionStateDisconnected, nil)

			return
		}
	}
}

func (s *Service) runReader(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		payload, err := s.transport.ReadMessage(ctx)
		if err != nil {
			return err
		}

		s.bus.Publish(connectors.TopicRawFrameIn, connectors.RawFrame{Text: string(payload), Len: len(payload)})
		msg, err := s.codec.DecodeMessage(payload)
		if err != nil {
			s.logger.Warn("dropping undecodable device message", "error", err, "len", len(payload))

			continue
		}
		s.dispatch(msg)
	}
}

func (s *Service) dispatch(msg Message) {
	switch {
	case msg.Status != nil:
		s.logger.Debug("device status", "text", *msg.Status)
		s.bus.Publish(connectors.TopicDeviceStatus, connectors.DeviceStatus{Text: *msg.Status, ReceivedAt: time.Now()})
	case msg.CrashData != nil:
		s.logger.Info("crash data received", "samples", msg.CrashData.Len())
		s.bus.Publish(connectors.TopicCrashData, connectors.CrashData{Recording: *msg.CrashData})
	default:
		s.logger.Debug("ignoring device message", "type", string(msg.Kind))
	}
}

func (s *Service) publishConnStatus(state connectors.ConnectionState, err error) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()

	status := connectors.ConnectionStatus{
		State:         state,
		TransportName: s.transport.Name(),
		Timestamp:     time.Now(),
	}
	if resolver, ok := s.transport.(transport.StatusTargetResolver); ok {
		status.Target = strings.TrimSpace(resolver.StatusTarget())
	}
	if err != nil {
		status.Err = err.Error()
	}
	s.bus.Publish(connectors.TopicConnStatus, status)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
