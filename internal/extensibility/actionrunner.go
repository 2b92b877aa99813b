// Package extensibility provides swappable ActionRunner and GuardEvaluator
// implementations, plus scripted-callback construction backed by an
// embedded Tengo interpreter. It imports internal/core to implement core's
// collaborator interfaces; core never imports extensibility.
package extensibility

import (
	"time"

	"github.com/kestrelfsm/kestrel/internal/core"
	"github.com/kestrelfsm/kestrel/internal/primitives"
	"github.com/kestrelfsm/kestrel/internal/trace"
)

// DefaultActionRunner runs each action directly. It is equivalent to core's
// own built-in default and exists so callers can compose it inside
// TracingActionRunner or another wrapper without reaching into core.
type DefaultActionRunner struct{}

func (DefaultActionRunner) RunInitial(action primitives.InitialAction, trigger primitives.Event, target string) {
	action(trigger, target)
}

func (DefaultActionRunner) RunEntry(action primitives.EntryAction, trigger primitives.Event, current, previous string) {
	action(trigger, current, previous)
}

func (DefaultActionRunner) RunExit(action primitives.ExitAction, trigger primitives.Event, current, next string) {
	action(trigger, current, next)
}

func (DefaultActionRunner) RunTransition(action primitives.TransitionAction, trigger primitives.Event, from, to string) {
	action(trigger, from, to)
}

func (DefaultActionRunner) RunInternal(action primitives.InternalAction, trigger primitives.Event, current string) {
	action(trigger, current)
}

// TracingActionRunner wraps an ActionRunner and traces each call's start,
// duration, and completion.
type TracingActionRunner struct {
	inner  core.ActionRunner
	tracer trace.Tracer
}

// NewTracingActionRunner wraps inner with tracer. A nil inner defaults to
// DefaultActionRunner; a nil tracer defaults to trace.Noop.
func NewTracingActionRunner(inner core.ActionRunner, tracer trace.Tracer) *TracingActionRunner {
	if inner == nil {
		inner = DefaultActionRunner{}
	}
	if tracer == nil {
		tracer = trace.Noop{}
	}
	return &TracingActionRunner{inner: inner, tracer: tracer}
}

func (r *TracingActionRunner) RunInitial(action primitives.InitialAction, trigger primitives.Event, target string) {
	start := time.Now()
	r.tracer.Debug("initial action starting", "event", trigger.Name, "target", target)
	r.inner.RunInitial(action, trigger, target)
	r.tracer.Debug("initial action complete", "event", trigger.Name, "target", target, "elapsed", time.Since(start))
}

func (r *TracingActionRunner) RunEntry(action primitives.EntryAction, trigger primitives.Event, current, previous string) {
	start := time.Now()
	r.tracer.Debug("entry action starting", "event", trigger.Name, "state", current)
	r.inner.RunEntry(action, trigger, current, previous)
	r.tracer.Debug("entry action complete", "event", trigger.Name, "state", current, "elapsed", time.Since(start))
}

func (r *TracingActionRunner) RunExit(action primitives.ExitAction, trigger primitives.Event, current, next string) {
	start := time.Now()
	r.tracer.Debug("exit action starting", "event", trigger.Name, "state", current)
	r.inner.RunExit(action, trigger, current, next)
	r.tracer.Debug("exit action complete", "event", trigger.Name, "state", current, "elapsed", time.Since(start))
}

func (r *TracingActionRunner) RunTransition(action primitives.TransitionAction, trigger primitives.Event, from, to string) {
	start := time.Now()
	r.tracer.Debug("transition action starting", "event", trigger.Name, "from", from, "to", to)
	r.inner.RunTransition(action, trigger, from, to)
	r.tracer.Debug("transition action complete", "event", trigger.Name, "from", from, "to", to, "elapsed", time.Since(start))
}

func (r *TracingActionRunner) RunInternal(action primitives.InternalAction, trigger primitives.Event, current string) {
	start := time.Now()
	r.tracer.Debug("internal action starting", "event", trigger.Name, "state", current)
	r.inner.RunInternal(action, trigger, current)
	r.tracer.Debug("internal action complete", "event", trigger.Name, "state", current, "elapsed", time.Since(start))
}
