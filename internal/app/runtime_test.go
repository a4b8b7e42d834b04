package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skobkin/crashboard/internal/config"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/device"
)

type recorderServer struct {
	srv      *httptest.Server
	received chan string
	outbound chan string
}

func newRecorderServer(t *testing.T) *recorderServer {
	t.Helper()

	rs := &recorderServer{
		received: make(chan string, 8),
		outbound: make(chan string, 8),
	}
	upgrader := websocket.Upgrader{}
	rs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)

			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		go func() {
			for msg := range rs.outbound {
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
					return
				}
			}
		}()
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			rs.received <- string(payload)
		}
	}))
	t.Cleanup(rs.srv.Close)

	return rs
}

func (rs *recorderServer) host(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(rs.srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	return u.Host
}

func newTestRuntime(t *testing.T, host string) *Runtime {
	t.Helper()

	origDefault := slog.Default()
	t.Cleanup(func() { slog.SetDefault(origDefault) })

	dir := t.TempDir()
	paths := Paths{
		RootDir:    dir,
		ConfigFile: filepath.Join(dir, ConfigFilename),
		LogFile:    filepath.Join(dir, LogFilename),
	}
	cfg := config.Default()
	cfg.Connection.Host = host
	cfg.Logging.Level = "error"
	if err := config.Save(paths.ConfigFile, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	rt, err := initializeWithPaths(context.Background(), paths)
	if err != nil {
		t.Fatalf("initialize runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	return rt
}

func waitForRuntimeState(t *testing.T, rt *Runtime, want connectors.ConnectionState) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if status, ok := rt.CurrentConnStatus(); ok && status.State == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	status, _ := rt.CurrentConnStatus()
	t.Fatalf("timed out waiting for state %q, last %q", want, status.State)
}

func TestRuntimeSendsCommandsAndTracksCrashData(t *testing.T) {
	rs := newRecorderServer(t)
	rt := newTestRuntime(t, rs.host(t))
	waitForRuntimeState(t, rt, connectors.ConnectionStateConnected)

	if err := rt.SendCommand(context.Background(), device.CommandStart); err != nil {
		t.Fatalf("send START: %v", err)
	}
	select {
	case got := <-rs.received:
		if got != "START" {
			t.Fatalf("expected literal START frame, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for START frame")
	}

	rs.outbound <- `{"type":"crashData","data":{"ax":[1,2,3],"ay":[4,5,6],"az":[7,8,9]}}`
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rec, ok := rt.LastCrash(); ok {
			if rec.Len() != 3 {
				t.Fatalf("expected 3 samples, got %d", rec.Len())
			}

			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for crash data")
}

func TestRuntimeSendCommandWhileDisconnected(t *testing.T) {
	rt := &Runtime{}
	if err := rt.SendCommand(context.Background(), device.CommandStop); !errors.Is(err, device.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestRuntimeSaveAndApplyConfigRetargetsTransport(t *testing.T) {
	rs := newRecorderServer(t)
	rt := newTestRuntime(t, rs.host(t))

	next := rt.CurrentConfig()
	next.Connection.Host = "recorder.local:8080"
	next.Connection.Secure = true
	if err := rt.SaveAndApplyConfig(next); err != nil {
		t.Fatalf("save and apply config: %v", err)
	}

	if got := rt.ConnectionTransport.StatusTarget(); got != "wss://recorder.local:8080/ws" {
		t.Fatalf("unexpected transport target: %q", got)
	}
	loaded, err := config.Load(rt.Paths.ConfigFile)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.Connection.Host != "recorder.local:8080" || !loaded.Connection.Secure {
		t.Fatalf("saved config does not match: %+v", loaded.Connection)
	}
}

func TestRuntimeSaveAndApplyConfigRejectsInvalid(t *testing.T) {
	rs := newRecorderServer(t)
	rt := newTestRuntime(t, rs.host(t))
	before := rt.CurrentConfig()

	next := before
	next.Logging.Level = "chatty"
	if err := rt.SaveAndApplyConfig(next); err == nil {
		t.Fatalf("expected invalid config to be rejected")
	}
	if rt.CurrentConfig() != before {
		t.Fatalf("config must not change after rejected save")
	}
}
