package transport

import (
	"context"
	"errors"
)

var ErrNotConnected = errors.New("transport is not connected")

// Transport moves whole device messages over a connection that can be reopened.
type Transport interface {
	Name() string
	Connect(ctx context.Context) error
	Close() error
	ReadMessage(ctx context.Context) ([]byte, error)
	WriteMessage(ctx context.Context, payload []byte) error
}

type StatusTargetResolver interface {
	StatusTarget() string
}
