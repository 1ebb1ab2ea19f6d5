package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-richtext/internal/logging"
	"github.com/goliatone/go-richtext/pkg/interfaces"
)

// DefaultCommandTimeout bounds a command when no timeout option is given.
const DefaultCommandTimeout = 30 * time.Second

const (
	fieldCommand   = "command"
	fieldCommandID = "command_id"
)

// EnsureContext returns ctx, or context.Background when ctx is nil.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout applies timeout unless it is zero or negative.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// WithCommandScope prepares the context one command execution runs under.
// It stamps the message type and a fresh command id as logging context
// fields, so conversion logs emitted downstream correlate with the command,
// then applies timeout. The id is returned for the handler's own entries.
func WithCommandScope(ctx context.Context, messageType string, timeout time.Duration) (context.Context, string, context.CancelFunc) {
	id := uuid.NewString()
	ctx = logging.ContextWithFields(EnsureContext(ctx), map[string]any{
		fieldCommand:   messageType,
		fieldCommandID: id,
	})
	ctx, cancel := WithCommandTimeout(ctx, timeout)
	return ctx, id, cancel
}

// CommandID returns the id stamped by WithCommandScope, if any.
func CommandID(ctx context.Context) string {
	id, _ := logging.ContextFields(ctx)[fieldCommandID].(string)
	return id
}

// EnsureLogger returns logger, or a no-op logger when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	return logging.OrNoOp(logger)
}
