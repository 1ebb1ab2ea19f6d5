package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-richtext/pkg/interfaces"
)

// TelemetryStatus is the outcome category of a command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one finished execution.
type TelemetryInfo struct {
	Command   string
	CommandID string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	// Logger already carries Fields.
	Logger interfaces.Logger
}

// Telemetry is invoked after every execution, successful or not.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs the outcome and duration of each execution.
func DefaultTelemetry[T command.Message]() Telemetry[T] {
	return func(_ context.Context, _ T, info TelemetryInfo) {
		logger := EnsureLogger(info.Logger)
		args := []any{"duration_ms", info.Duration.Milliseconds(), "status", string(info.Status)}
		if info.Status == TelemetryStatusSuccess {
			logger.Info("command.execute.success", args...)
			return
		}
		event := "command.execute.failed"
		if info.Status == TelemetryStatusContextError {
			event = "command.execute.context_error"
		}
		logger.Error(event, append(args, "error", info.Error)...)
	}
}
