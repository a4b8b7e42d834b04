package device

import (
	"fmt"
	"strings"
)

// Command is a literal text command understood by the device firmware.
type Command string

const (
	CommandStart Command = "START"
	CommandStop  Command = "STOP"
)

func ParseCommand(raw string) (Command, error) {
	switch Command(strings.ToUpper(strings.TrimSpace(raw))) {
	case CommandStart:
		return CommandStart, nil
	case CommandStop:
		return CommandStop, nil
	default:
		return "", fmt.Errorf("unknown device command: %q", raw)
	}
}

func (c Command) Valid() bool {
	return c == CommandStart || c == CommandStop
}
