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
	"sync"
	"syscall"

	"github.com/skobkin/crashboard/internal/app"
	"github.com/skobkin/crashboard/internal/platform"
	"github.com/skobkin/crashboard/internal/ui"
)

type launchOptions struct {
	StartHidden bool
}

func parseLaunchOptions(args []string) (launchOptions, error) {
	var opts launchOptions

	fs := flag.NewFlagSet(app.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.StartHidden, "start-hidden", false, "start minimized to the system tray")
	if err := fs.Parse(args); err != nil {
		return launchOptions{}, err
	}
	if fs.NArg() > 0 {
		return launchOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func main() {
	opts, err := parseLaunchOptions(os.Args[1:])
	if err != nil {
		slog.Error("parse launch options", "error", err)
		os.Exit(2)
	}

	lock, err := platform.AcquireInstanceLock(app.Name)
	switch {
	case errors.Is(err, platform.ErrInstanceAlreadyRunning):
		slog.Info("another instance is already running, exiting")

		return
	case errors.Is(err, platform.ErrInstanceLockUnsupported):
		slog.Warn("single-instance lock is unavailable on this platform", "error", err)
	case err != nil:
		slog.Error("acquire instance lock", "error", err)
		os.Exit(1)
	}
	if lock != nil {
		defer func() { _ = lock.Release() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Initialize(ctx)
	if err != nil {
		slog.Error("initialize app runtime", "error", err)
		os.Exit(1)
	}

	var closeOnce sync.Once
	closeRuntime := func() {
		closeOnce.Do(func() {
			_ = rt.Close()
		})
	}
	defer closeRuntime()

	launch := ui.LaunchOptions{StartHidden: opts.StartHidden || rt.CurrentConfig().UI.StartHidden}
	dep := ui.BuildRuntimeDependencies(rt, launch, func() {
		stop()
		closeRuntime()
	})
	if err := ui.Run(dep); err != nil {
		slog.Error("run ui", "error", err)
		closeRuntime()
		os.Exit(1)
	}
}
