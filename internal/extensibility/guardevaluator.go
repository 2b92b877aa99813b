package extensibility

import (
	"github.com/kestrelfsm/kestrel/internal/core"
	"github.com/kestrelfsm/kestrel/internal/primitives"
	"github.com/kestrelfsm/kestrel/internal/trace"
)

// DefaultGuardEvaluator evaluates each guard directly.
type DefaultGuardEvaluator struct{}

func (DefaultGuardEvaluator) EvalTransition(guard primitives.TransitionGuard, trigger primitives.Event, from, to string) bool {
	return guard(trigger, from, to)
}

func (DefaultGuardEvaluator) EvalInternal(guard primitives.InternalGuard, trigger primitives.Event, current string) bool {
	return guard(trigger, current)
}

// TracingGuardEvaluator wraps a GuardEvaluator and traces each guard's
// outcome.
type TracingGuardEvaluator struct {
	inner  core.GuardEvaluator
	tracer trace.Tracer
}

// NewTracingGuardEvaluator wraps inner with tracer. A nil inner defaults to
// DefaultGuardEvaluator; a nil tracer defaults to trace.Noop.
func NewTracingGuardEvaluator(inner core.GuardEvaluator, tracer trace.Tracer) *TracingGuardEvaluator {
	if inner == nil {
		inner = DefaultGuardEvaluator{}
	}
	if tracer == nil {
		tracer = trace.Noop{}
	}
	return &TracingGuardEvaluator{inner: inner, tracer: tracer}
}

func (e *TracingGuardEvaluator) EvalTransition(guard primitives.TransitionGuard, trigger primitives.Event, from, to string) bool {
	result := e.inner.EvalTransition(guard, trigger, from, to)
	e.tracer.Debug("transition guard evaluated", "event", trigger.Name, "from", from, "to", to, "result", result)
	return result
}

func (e *TracingGuardEvaluator) EvalInternal(guard primitives.InternalGuard, trigger primitives.Event, current string) bool {
	result := e.inner.EvalInternal(guard, trigger, current)
	e.tracer.Debug("internal guard evaluated", "event", trigger.Name, "state", current, "result", result)
	return result
}
