package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-richtext/internal/logging"
	"github.com/goliatone/go-richtext/internal/runtimeconfig"
	"github.com/goliatone/go-richtext/pkg/interfaces"
)

func TestNewProviderCreatesLogger(t *testing.T) {
	p, err := NewProvider(runtimeconfig.LoggingConfig{
		Level:  "debug",
		Format: "console",
		Focus:  []string{"convert"},
	})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("richtext.convert")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}

	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		t.Fatalf("expected %T to implement FieldsLogger", logger)
	}
	child := fieldsLogger.WithFields(map[string]any{"module": "richtext.convert"})
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}

	child.Debug("richtext.convert.start")
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(runtimeconfig.LoggingConfig{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	logger := p.GetLogger("richtext")
	if logger == nil {
		t.Fatal("expected noop logger")
	}
	logger.Info("dropped")
}

func TestGlogLevel(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"warning": glog.Warn,
		" INFO ":  glog.Info,
		"verbose": "",
	}
	for input, want := range cases {
		if got := glogLevel(input); got != want {
			t.Fatalf("glogLevel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFocusModulesQualifiesShortNames(t *testing.T) {
	got := focusModules([]string{"convert", " ", "richtext.markdown", "richtext"})
	want := []string{"richtext.convert", "richtext.markdown", "richtext"}
	if len(got) != len(want) {
		t.Fatalf("focusModules() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("focusModules()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWithContextLiftsContextFields(t *testing.T) {
	stub := &stubLogger{}
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"source_path": "docs/intro.md"})

	wrap(stub).WithContext(ctx)

	if len(stub.contexts) != 1 {
		t.Fatalf("expected context propagation, got %d", len(stub.contexts))
	}
	if len(stub.fields) != 1 || stub.fields[0]["source_path"] != "docs/intro.md" {
		t.Fatalf("expected context fields on child logger, got %#v", stub.fields)
	}
}

func TestAdapterDelegatesToUnderlyingLogger(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Trace("trace", "key", "value")
	adapted.Debug("debug")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	adapted.Fatal("fatal")

	fields := map[string]any{"component": "callout"}
	child := logging.WithFields(adapted, fields)
	if child == adapted {
		t.Fatal("expected WithFields to return logger")
	}

	fields["component"] = "hero"
	if len(stub.fields) != 1 {
		t.Fatalf("expected fields to be recorded once, got %d", len(stub.fields))
	}
	if stub.fields[0]["component"] != "callout" {
		t.Fatalf("expected fields to be cloned, got %v", stub.fields[0]["component"])
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}

	wantCalls := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if len(stub.calls) != len(wantCalls) {
		t.Fatalf("expected %d calls, got %d", len(wantCalls), len(stub.calls))
	}
	for i, want := range wantCalls {
		if stub.calls[i] != want {
			t.Fatalf("call %d: expected %q, got %q", i, want, stub.calls[i])
		}
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.fields = append(s.fields, copied)
	return s
}
