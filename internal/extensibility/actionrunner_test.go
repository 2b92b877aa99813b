package extensibility

import (
	"testing"

	"github.com/kestrelfsm/kestrel/internal/primitives"
	"github.com/kestrelfsm/kestrel/internal/trace"
)

func TestDefaultActionRunnerRunsEachShape(t *testing.T) {
	var got []string
	r := DefaultActionRunner{}
	event := primitives.NewEvent("e")

	r.RunInitial(func(e primitives.Event, target string) { got = append(got, "initial:"+target) }, event, "s")
	r.RunEntry(func(e primitives.Event, cur, prev string) { got = append(got, "entry:"+cur) }, event, "s", "")
	r.RunExit(func(e primitives.Event, cur, next string) { got = append(got, "exit:"+cur) }, event, "s", "t")
	r.RunTransition(func(e primitives.Event, from, to string) { got = append(got, "trans:"+from+"->"+to) }, event, "s", "t")
	r.RunInternal(func(e primitives.Event, cur string) { got = append(got, "internal:"+cur) }, event, "s")

	want := []string{"initial:s", "entry:s", "exit:s", "trans:s->t", "internal:s"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i], w)
		}
	}
}

func TestTracingActionRunnerDelegatesAndTraces(t *testing.T) {
	var recorded []string
	tracer := recordingTracer{out: &recorded}
	called := false
	r := NewTracingActionRunner(DefaultActionRunner{}, tracer)

	r.RunInternal(func(e primitives.Event, cur string) { called = true }, primitives.NewEvent("ping"), "s")

	if !called {
		t.Error("inner action not invoked")
	}
	if len(recorded) < 2 {
		t.Errorf("expected start and completion trace lines, got %v", recorded)
	}
}

func TestNewTracingActionRunnerDefaultsNilArgs(t *testing.T) {
	called := false
	r := NewTracingActionRunner(nil, nil)
	r.RunInternal(func(e primitives.Event, cur string) { called = true }, primitives.NewEvent("ping"), "s")
	if !called {
		t.Error("inner action not invoked when constructed with nil args")
	}
}

// recordingTracer is a minimal trace.Tracer used only to observe call sites.
type recordingTracer struct {
	out *[]string
}

func (r recordingTracer) Debug(msg string, args ...any) { *r.out = append(*r.out, msg) }
func (r recordingTracer) Info(msg string, args ...any)  { *r.out = append(*r.out, msg) }
func (r recordingTracer) Warn(msg string, args ...any)  { *r.out = append(*r.out, msg) }
func (r recordingTracer) Error(msg string, args ...any) { *r.out = append(*r.out, msg) }
func (r recordingTracer) Fatal(msg string, args ...any) { *r.out = append(*r.out, msg) }

var _ trace.Tracer = recordingTracer{}
