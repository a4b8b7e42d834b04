package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/skobkin/crashboard/internal/app"
	"github.com/skobkin/crashboard/internal/bus"
	"github.com/skobkin/crashboard/internal/chart"
	"github.com/skobkin/crashboard/internal/config"
	"github.com/skobkin/crashboard/internal/connectors"
	"github.com/skobkin/crashboard/internal/device"
	"github.com/skobkin/crashboard/internal/domain"
	"github.com/skobkin/crashboard/internal/logging"
	"github.com/skobkin/crashboard/internal/notifications"
	"github.com/skobkin/crashboard/internal/transport"
)

const connectWaitTimeout = 15 * time.Second

type options struct {
	Host      string
	Secure    bool
	SecureSet bool
	Send      device.Command
	ListenFor time.Duration
	ChartOut  string
	LogLevel  string
	Notify    bool
}

func parseOptions(args []string) (options, error) {
	var (
		opts options
		send string
	)

	fs := flag.NewFlagSet("crashboard-debug", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.Host, "host", "", "device host or host:port")
	fs.BoolVar(&opts.Secure, "secure", false, "use wss:// instead of ws://")
	fs.StringVar(&send, "send", "", "command to send once connected: START or STOP")
	fs.DurationVar(&opts.ListenFor, "listen-for", 0, "listen duration, e.g. 30s; 0 waits for interrupt")
	fs.StringVar(&opts.ChartOut, "chart-out", "", "write the last crash chart to this PNG file")
	fs.StringVar(&opts.LogLevel, "log-level", "", "override log level")
	fs.BoolVar(&opts.Notify, "notify", false, "show desktop notifications for crashes and connection changes")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "secure" {
			opts.SecureSet = true
		}
	})

	opts.Host = strings.TrimSpace(opts.Host)
	opts.ChartOut = strings.TrimSpace(opts.ChartOut)
	if opts.ListenFor < 0 {
		return options{}, fmt.Errorf("listen-for must not be negative: %s", opts.ListenFor)
	}
	if strings.TrimSpace(send) != "" {
		cmd, err := device.ParseCommand(strings.TrimSpace(send))
		if err != nil {
			return options{}, err
		}
		opts.Send = cmd
	}
	if opts.ChartOut != "" && !strings.EqualFold(filepath.Ext(opts.ChartOut), ".png") {
		return options{}, fmt.Errorf("chart output must be a .png file: %s", opts.ChartOut)
	}

	return opts, nil
}

// applyOverrides returns cfg with command line values taking precedence.
func applyOverrides(cfg config.AppConfig, opts options) config.AppConfig {
	if opts.Host != "" {
		cfg.Connection.Host = opts.Host
	}
	if opts.SecureSet {
		cfg.Connection.Secure = opts.Secure
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	cfg.Logging.LogToFile = false

	return cfg
}

func main() {
	if err := run(); err != nil {
		slog.Error("run debug tool", "error", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		return fmt.Errorf("parse options: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := app.ResolvePaths()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = applyOverrides(cfg, opts)
	if strings.TrimSpace(cfg.Connection.Host) == "" {
		return errors.New("missing host: set --host or save connection host in config")
	}

	logMgr := logging.NewManager()
	if err := logMgr.Configure(cfg.Logging, paths.LogFile); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer func() {
		if closeErr := logMgr.Close(); closeErr != nil {
			slog.Warn("close log manager", "error", closeErr)
		}
	}()
	logger := logMgr.Logger("cli")
	logger.Info("starting crashboard debug", "version", app.BuildVersion(), "build_date", app.BuildDateYMD())

	var sender notifications.Sender
	if opts.Notify {
		sender = notifications.NewBeeepSender(logMgr.Logger("notifications"))
	}

	return runSession(ctx, opts, cfg, sender, logMgr, logger)
}

// runSession connects to the device, logs bus events and optionally sends a command
// and exports the last crash chart. It returns when the listen window ends or ctx is done.
func runSession(
	ctx context.Context,
	opts options,
	cfg config.AppConfig,
	sender notifications.Sender,
	logMgr *logging.Manager,
	logger *slog.Logger,
) error {
	messageBus := bus.New(logMgr.Logger("bus"))
	defer messageBus.Close()

	tr := transport.NewWebSocketTransport(cfg.Connection.Host, cfg.Connection.Secure)
	sub := messageBus.Subscribe(
		connectors.TopicConnStatus,
		connectors.TopicDeviceStatus,
		connectors.TopicCrashData,
		connectors.TopicRawFrameIn,
		connectors.TopicRawFrameOut,
	)

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if sender != nil {
		app.NewNotificationService(
			messageBus,
			func() config.AppConfig { return cfg },
			func() bool { return false },
			sender,
			logMgr.Logger("notifications"),
		).Start(sessionCtx)
	}

	svc := device.NewService(logMgr.Logger("device"), messageBus, tr, device.NewCodec())
	svc.Start(sessionCtx)
	defer func() {
		cancel()
		<-svc.Done()
		_ = tr.Close()
	}()

	var deadline <-chan time.Time
	if opts.ListenFor > 0 {
		timer := time.NewTimer(opts.ListenFor)
		defer timer.Stop()
		deadline = timer.C
	}

	connectTimer := time.NewTimer(connectWaitTimeout)
	defer connectTimer.Stop()

	var (
		commandSent = opts.Send == ""
		lastCrash   domain.CrashRecording
		haveCrash   bool
	)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-deadline:
			logger.Info("listen window elapsed", "duration", opts.ListenFor)

			break loop
		case <-connectTimer.C:
			if !commandSent {
				return fmt.Errorf("device did not connect within %s", connectWaitTimeout)
			}
		case raw, ok := <-sub:
			if !ok {
				break loop
			}
			switch ev := raw.(type) {
			case connectors.ConnectionStatus:
				logger.Info("connection status", "state", ev.State, "target", ev.Target, "error", ev.Err)
				if ev.State == connectors.ConnectionStateConnected && !commandSent {
					if err := svc.SendCommand(sessionCtx, opts.Send); err != nil {
						return fmt.Errorf("send %s: %w", opts.Send, err)
					}
					commandSent = true
					logger.Info("command sent", "command", opts.Send)
					if opts.ListenFor == 0 && opts.ChartOut == "" {
						break loop
					}
				}
			case connectors.DeviceStatus:
				logger.Info("device status", "text", ev.Text)
			case connectors.CrashData:
				peak, at := ev.Recording.PeakMagnitude()
				logger.Info("crash data", "samples", ev.Recording.Len(), "peak", peak, "peak_index", at)
				lastCrash, haveCrash = ev.Recording, true
			case connectors.RawFrame:
				logger.Debug("raw frame", "len", ev.Len, "text", ev.Text)
			}
		}
	}

	if opts.ChartOut == "" {
		return nil
	}
	if !haveCrash {
		logger.Warn("no crash data received, chart not written", "path", opts.ChartOut)

		return nil
	}

	return writeChart(opts.ChartOut, lastCrash, logger)
}

func writeChart(path string, rec domain.CrashRecording, logger *slog.Logger) error {
	tmp := path + ".tmp"
	// #nosec G304 -- path is an operator-provided output file.
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := chart.WritePNG(f, rec, chart.DefaultSize); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)

		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("close chart file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("move chart file: %w", err)
	}
	logger.Info("crash chart written", "path", path, "samples", rec.Len())

	return nil
}
