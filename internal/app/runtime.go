package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/skobkin/crashboard/internal/bus"
	"github.com/skobkin/crashboard/internal/config"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/device"
	"github.com/skobkin/crashboard/internal/domain"
	"github.com/skobkin/crashboard/internal/logging"
)

type Runtime struct {
	mu sync.RWMutex

	Ctx    context.Context
	cancel context.CancelFunc

	Paths  Paths
	Config config.AppConfig

	LogManager *logging.Manager
	Bus        *bus.PubSubBus

	ConnectionTransport *SwitchableTransport
	Device              *device.Service

	connStatusMu    sync.RWMutex
	connStatus      connectors.ConnectionStatus
	connStatusKnown bool

	crashMu    sync.RWMutex
	lastCrash  domain.CrashRecording
	crashKnown bool
}

func Initialize(parent context.Context) (*Runtime, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, err
	}

	return initializeWithPaths(parent, paths)
}

func initializeWithPaths(parent context.Context, paths Paths) (*Runtime, error) {
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", paths.ConfigFile, err)
	}

	ctx, cancel := context.WithCancel(parent)
	rt := &Runtime{
		Ctx:    ctx,
		cancel: cancel,
		Paths:  paths,
		Config: cfg,
	}

	logMgr := logging.NewManager()
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		_ = logMgr.Close()
		cancel()

		return nil, fmt.Errorf("configure logging: %w", err)
	}
	rt.LogManager = logMgr
	slog.Info("starting crashboard runtime", "version", BuildVersion(), "build_date", BuildDateYMD())

	b := bus.New(logMgr.Logger("bus"))
	rt.Bus = b
	connSub := b.Subscribe(connectors.TopicConnStatus)
	go rt.captureConnStatus(ctx, connSub)
	crashSub := b.Subscribe(connectors.TopicCrashData)
	go rt.captureCrashData(ctx, crashSub)

	connTransport, err := NewConnectionTransport(cfg.Connection)
	if err != nil {
		_ = rt.Close()

		return nil, fmt.Errorf("initialize transport: %w", err)
	}
	rt.ConnectionTransport = connTransport

	rt.Device = device.NewService(logMgr.Logger("device"), b, connTransport, device.NewCodec())
	rt.Device.Start(ctx)

	return rt, nil
}

func (r *Runtime) captureConnStatus(ctx context.Context, sub bus.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-sub:
			if !ok {
				return
			}
			status, ok := raw.(connectors.ConnectionStatus)
			if !ok {
				continue
			}
			r.connStatusMu.Lock()
			r.connStatus = status
			r.connStatusKnown = true
			r.connStatusMu.Unlock()
		}
	}
}

func (r *Runtime) captureCrashData(ctx context.Context, sub bus.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-sub:
			if !ok {
				return
			}
			event, ok := raw.(connectors.CrashData)
			if !ok {
				continue
			}
			r.crashMu.Lock()
			r.lastCrash = event.Recording
			r.crashKnown = true
			r.crashMu.Unlock()
		}
	}
}

func (r *Runtime) CurrentConnStatus() (connectors.ConnectionStatus, bool) {
	r.connStatusMu.RLock()
	defer r.connStatusMu.RUnlock()

	return r.connStatus, r.connStatusKnown
}

// LastCrash returns the most recent crash recording seen during this session.
func (r *Runtime) LastCrash() (domain.CrashRecording, bool) {
	r.crashMu.RLock()
	defer r.crashMu.RUnlock()

	return r.lastCrash, r.crashKnown
}

func (r *Runtime) CurrentConfig() config.AppConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.Config
}

// SendCommand forwards cmd to the device. It fails with device.ErrNotConnected while the socket is down.
func (r *Runtime) SendCommand(ctx context.Context, cmd device.Command) error {
	if r.Device == nil {
		return device.ErrNotConnected
	}

	return r.Device.SendCommand(ctx, cmd)
}

func (r *Runtime) SaveAndApplyConfig(cfg config.AppConfig) error {
	cfg.FillMissingDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if err := config.Save(r.Paths.ConfigFile, cfg); err != nil {
		r.mu.Unlock()

		return err
	}
	r.Config = cfg
	r.mu.Unlock()

	if r.LogManager != nil {
		if err := r.LogManager.Configure(cfg.Logging, r.Paths.LogFile); err != nil {
			return err
		}
	}
	if r.ConnectionTransport != nil {
		if err := r.ConnectionTransport.Apply(cfg.Connection); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runtime) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	if r.ConnectionTransport != nil {
		_ = r.ConnectionTransport.Close()
	}
	if r.Device != nil {
		<-r.Device.Done()
	}
	if r.Bus != nil {
		r.Bus.Close()
	}
	if r.LogManager != nil {
		_ = r.LogManager.Close()
	}

	return nil
}
