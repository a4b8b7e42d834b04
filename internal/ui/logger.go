package ui

import "log/slog"

var appLogger = slog.With("component", "ui")
