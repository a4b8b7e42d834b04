//go:build unix

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFileName = "instance.lock"

type flockInstanceLock struct {
	file *os.File
}

func acquireInstanceLock(appID string) (InstanceLock, error) {
	dir := lockDir(appID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create instance lock dir: %w", err)
	}

	// #nosec G304 -- the path is derived from the runtime or temp directory of the current user.
	file, err := os.OpenFile(filepath.Join(dir, lockFileName), os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open instance lock file: %w", err)
	}
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN) {
			return nil, ErrInstanceAlreadyRunning
		}

		return nil, fmt.Errorf("lock instance file: %w", err)
	}

	return &flockInstanceLock{file: file}, nil
}

// Release drops the flock. The kernel also drops it when the process dies.
func (l *flockInstanceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	file := l.file
	l.file = nil

	unlockErr := syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
	if err := file.Close(); err != nil {
		return fmt.Errorf("close instance lock file: %w", err)
	}
	if unlockErr != nil && !errors.Is(unlockErr, syscall.EBADF) {
		return fmt.Errorf("unlock instance file: %w", unlockErr)
	}

	return nil
}

// lockDir prefers XDG_RUNTIME_DIR and falls back to a uid-suffixed directory in the temp dir.
func lockDir(appID string) string {
	if runtimeDir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR")); runtimeDir != "" {
		return filepath.Join(runtimeDir, appID)
	}

	return filepath.Join(os.TempDir(), appID+"-"+strconv.Itoa(os.Getuid()))
}
