package core

import "github.com/kestrelfsm/kestrel/internal/trace"

// Option applies configuration to a Machine at construction time via the
// functional options pattern.
type Option func(*Machine)

// WithTracer configures the Machine's trace sink. The default is trace.Noop.
func WithTracer(t trace.Tracer) Option {
	return func(m *Machine) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithActionRunner configures the Machine with a custom ActionRunner. The
// default runs each action directly with no surrounding behavior.
func WithActionRunner(r ActionRunner) Option {
	return func(m *Machine) {
		m.actionRunner = r
	}
}

// WithGuardEvaluator configures the Machine with a custom GuardEvaluator.
// The default evaluates each guard directly with no surrounding behavior.
func WithGuardEvaluator(e GuardEvaluator) Option {
	return func(m *Machine) {
		m.guardEvaluator = e
	}
}
