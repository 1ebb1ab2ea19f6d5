package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-richtext/document"
	"github.com/goliatone/go-richtext/pkg/interfaces"
)

func assertJSON(t *testing.T, want string, got []*document.Node) {
	t.Helper()
	data, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, want, string(data), spew.Sdump(got))
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	entries []logEntry
}

func (r *recordingLogger) record(level, msg string, args []any) {
	r.entries = append(r.entries, logEntry{level: level, msg: msg, args: args})
}

func (r *recordingLogger) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *recordingLogger) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func (r *recordingLogger) find(level, msg string) (logEntry, bool) {
	for _, entry := range r.entries {
		if entry.level == level && entry.msg == msg {
			return entry, true
		}
	}
	return logEntry{}, false
}

type validatorFunc func(component string, props map[string]any) error

func (f validatorFunc) ValidateProps(component string, props map[string]any) error {
	return f(component, props)
}

func rejectComponent(name string) validatorFunc {
	return func(component string, props map[string]any) error {
		if component == name {
			return fmt.Errorf("%s is not allowed", name)
		}
		return nil
	}
}
