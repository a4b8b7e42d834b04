// Package platform holds OS-specific process helpers.
package platform

import (
	"errors"
	"strings"
)

var (
	ErrInstanceAlreadyRunning  = errors.New("another instance is already running")
	ErrInstanceLockUnsupported = errors.New("single-instance lock is not supported")
)

// InstanceLock is held for the lifetime of the process. Release is idempotent.
type InstanceLock interface {
	Release() error
}

// AcquireInstanceLock takes the per-user lock for appID or fails with ErrInstanceAlreadyRunning.
func AcquireInstanceLock(appID string) (InstanceLock, error) {
	return acquireInstanceLock(sanitizeLockName(appID, "app"))
}

// sanitizeLockName keeps [A-Za-z0-9._-], replaces everything else with '_' and trims separators at the edges.
func sanitizeLockName(raw, fallback string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(raw))

	if cleaned = strings.Trim(cleaned, "_-."); cleaned == "" {
		return fallback
	}

	return cleaned
}
