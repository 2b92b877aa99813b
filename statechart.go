// Package kestrel implements a flat, non-hierarchical finite-state-machine
// engine: named states, named events, guarded transitions, and an explicit
// event queue a caller drains one event at a time.
//
// The package itself is a thin façade: every exported type is an alias onto
// internal/primitives or internal/core, and every exported constructor
// forwards to the corresponding internal one. The façade exists so callers
// depend on one stable import path while the engine's layering (primitives,
// core, extensibility) stays internal.
package kestrel

import (
	"log/slog"

	"github.com/kestrelfsm/kestrel/internal/core"
	"github.com/kestrelfsm/kestrel/internal/primitives"
	"github.com/kestrelfsm/kestrel/internal/trace"
)

// Event carries a non-empty Name and an optional, type-erased Parameter.
type Event = primitives.Event

// NewEvent creates an Event with no parameter. Panics if name is empty.
func NewEvent(name string) Event {
	return primitives.NewEvent(name)
}

// NewEventWithParameter creates an Event carrying an opaque parameter.
// Panics if name is empty.
func NewEventWithParameter(name string, parameter any) Event {
	return primitives.NewEventWithParameter(name, parameter)
}

// ParameterAs attempts a typed downcast of the event's parameter. A
// mismatched type (or a missing parameter) yields the zero value and false.
func ParameterAs[T any](e Event) (T, bool) {
	return primitives.ParameterAs[T](e)
}

// The seven callback shapes a state or transition may register.
type (
	InitialAction    = primitives.InitialAction
	EntryAction      = primitives.EntryAction
	ExitAction       = primitives.ExitAction
	TransitionAction = primitives.TransitionAction
	TransitionGuard  = primitives.TransitionGuard
	InternalAction   = primitives.InternalAction
	InternalGuard    = primitives.InternalGuard
)

// ValidationStatus is the outcome of the most recent Validate call.
type ValidationStatus = primitives.ValidationStatus

const (
	Unvalidated = primitives.Unvalidated
	Valid       = primitives.Valid
	Invalid     = primitives.Invalid
)

// Machine is the engine runtime: configure it via AddState/AddStateTransition/
// etc., call Validate, then Start. See internal/core for the full method set;
// this alias re-exports it unchanged.
type Machine = core.Machine

// Option configures a Machine at construction time.
type Option = core.Option

// ActionRunner invokes the five action callback shapes; GuardEvaluator
// invokes the two guard shapes. Both are satisfied by the engine's own
// direct-invocation default and by the richer implementations in the
// extensibility subpackage.
type (
	ActionRunner   = core.ActionRunner
	GuardEvaluator = core.GuardEvaluator
)

// NewMachine returns an empty, unvalidated, not-started Machine.
func NewMachine(opts ...Option) *Machine {
	return core.NewMachine(opts...)
}

// WithActionRunner configures the Machine with a custom ActionRunner.
func WithActionRunner(r ActionRunner) Option {
	return core.WithActionRunner(r)
}

// WithGuardEvaluator configures the Machine with a custom GuardEvaluator.
func WithGuardEvaluator(g GuardEvaluator) Option {
	return core.WithGuardEvaluator(g)
}

// Tracer is the pluggable leveled logging sink a Machine reports through.
type Tracer = trace.Tracer

// WithTracer configures the Machine with a custom Tracer. The default,
// unconfigured Tracer is trace.Noop: an embeddable library must not log by
// default.
func WithTracer(t Tracer) Option {
	return core.WithTracer(t)
}

// NewSlogTracer returns a Tracer backed by logger, tagging every record with
// category="StateMachine". A nil logger uses slog.Default().
func NewSlogTracer(logger *slog.Logger) Tracer {
	return trace.NewSlogTracer(logger)
}
