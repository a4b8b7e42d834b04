package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/skobkin/crashboard/internal/domain"
)

// MessageKind is the value of the "type" field of an inbound frame.
type MessageKind string

const (
	MessageKindStatus    MessageKind = "status"
	MessageKindCrashData MessageKind = "crashData"
)

var ErrMalformedMessage = errors.New("malformed device message")

// Message is a decoded inbound frame. Exactly one payload is set for known kinds;
// both are nil for kinds the dashboard does not handle.
type Message struct {
	Kind      MessageKind
	Status    *string
	CrashData *domain.CrashRecording
}

type envelope struct {
	Type MessageKind     `json:"type"`
	Data json.RawMessage `json:"data"`
}

type crashPayload struct {
	AX []float64 `json:"ax"`
	AY []float64 `json:"ay"`
	AZ []float64 `json:"az"`
}

// Codec translates between socket frames and dashboard events.
type Codec struct {
	now func() time.Time
}

func NewCodec() *Codec {
	return &Codec{now: time.Now}
}

func (c *Codec) EncodeCommand(cmd Command) ([]byte, error) {
	if !cmd.Valid() {
		return nil, fmt.Errorf("encode command: unknown command %q", cmd)
	}

	return []byte(cmd), nil
}

func (c *Codec) DecodeMessage(payload []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	msg := Message{Kind: env.Type}
	switch env.Type {
	case MessageKindStatus:
		var text string
		if err := json.Unmarshal(env.Data, &text); err != nil {
			return Message{}, fmt.Errorf("%w: status data: %w", ErrMalformedMessage, err)
		}
		msg.Status = &text
	case MessageKindCrashData:
		var data crashPayload
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return Message{}, fmt.Errorf("%w: crash data: %w", ErrMalformedMessage, err)
		}
		if data.AX == nil || data.AY == nil || data.AZ == nil {
			return Message{}, fmt.Errorf("%w: crash data must carry ax, ay and az", ErrMalformedMessage)
		}
		rec, err := domain.NewCrashRecording(data.AX, data.AY, data.AZ, c.now())
		if err != nil {
			return Message{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		msg.CrashData = &rec
	}

	return msg, nil
}
