//go:build windows

package platform

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

type mutexInstanceLock struct {
	handle windows.Handle
}

// acquireInstanceLock creates a named mutex in the session namespace, scoped to the user SID.
func acquireInstanceLock(appID string) (InstanceLock, error) {
	tokenUser, err := windows.GetCurrentProcessToken().GetTokenUser()
	if err != nil {
		return nil, fmt.Errorf("read current user token: %w", err)
	}

	name := mutexName(appID, tokenUser.User.Sid.String())
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("encode instance mutex name: %w", err)
	}

	handle, err := windows.CreateMutex(nil, false, namePtr)
	if err != nil {
		if handle != 0 {
			_ = windows.CloseHandle(handle)
		}
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			return nil, ErrInstanceAlreadyRunning
		}

		return nil, fmt.Errorf("create instance mutex: %w", err)
	}

	return &mutexInstanceLock{handle: handle}, nil
}

func (l *mutexInstanceLock) Release() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	handle := l.handle
	l.handle = 0
	if err := windows.CloseHandle(handle); err != nil {
		return fmt.Errorf("close instance mutex: %w", err)
	}

	return nil
}

func mutexName(appID, sid string) string {
	return `Local\` + appID + `-instance-` + sanitizeLockName(sid, "sid")
}
