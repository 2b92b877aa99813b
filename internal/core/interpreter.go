package core

import "github.com/kestrelfsm/kestrel/internal/primitives"

// runInitialTransition executes the initial-transition procedure: run the
// initial action (if any), run the target state's entry action (if any),
// then set current_state to the target, then check for immediate auto-stop.
// Caller holds apiMu.
func (m *Machine) runInitialTransition(trigger primitives.Event) {
	init := m.config.Initial
	target := init.Target

	if init.Action != nil {
		m.runner().RunInitial(init.Action, trigger, target)
	}

	previous := m.currentState
	state := m.config.States[target]
	if state.EntryAction != nil {
		m.runner().RunEntry(state.EntryAction, trigger, target, previous)
	}
	m.currentState = target

	m.checkAutoStop(trigger, state)
}

// resolveAndExecute implements the transition-resolution precedence chain:
// a specific internal transition beats a specific state transition beats the
// default internal transition beats the default state transition; if none
// apply, the event is dropped. Caller holds apiMu.
func (m *Machine) resolveAndExecute(trigger primitives.Event) {
	state, ok := m.config.States[m.currentState]
	if !ok {
		m.tracer.Error("current state does not resolve to a declared state", "state", m.currentState)
		return
	}

	if it, found := state.InternalTransitions[trigger.Name]; found {
		m.runInternalTransition(it, trigger)
		return
	}
	if st, found := state.StateTransitions[trigger.Name]; found {
		m.runStateTransition(st, trigger)
		return
	}
	if state.DefaultInternalTransition != nil {
		m.runInternalTransition(*state.DefaultInternalTransition, trigger)
		return
	}
	if state.DefaultStateTransition != nil {
		m.runStateTransition(*state.DefaultStateTransition, trigger)
		return
	}

	m.tracer.Debug("event dropped: no matching transition", "event", trigger.Name, "state", m.currentState)
}

// runInternalTransition implements the internal-transition procedure:
// evaluate the guard, then, if it passes, run the action. current_state is
// never touched and no entry/exit action fires.
func (m *Machine) runInternalTransition(t primitives.InternalTransition, trigger primitives.Event) {
	current := m.currentState

	if t.Guard != nil && !m.guard().EvalInternal(t.Guard, trigger, current) {
		m.tracer.Debug("internal transition aborted by guard", "event", trigger.Name, "state", current)
		return
	}

	m.runner().RunInternal(t.Action, trigger, current)
}

// runStateTransition implements the state-transition procedure: evaluate the
// guard; if it passes, run the source state's exit action, then the
// transition's own action, then the target state's entry action, then update
// current_state, then check for auto-stop.
func (m *Machine) runStateTransition(t primitives.StateTransition, trigger primitives.Event) {
	from := m.currentState
	to := t.Target

	if t.Guard != nil && !m.guard().EvalTransition(t.Guard, trigger, from, to) {
		m.tracer.Debug("state transition aborted by guard", "event", trigger.Name, "from", from, "to", to)
		return
	}

	fromState := m.config.States[from]
	if fromState != nil && fromState.ExitAction != nil {
		m.runner().RunExit(fromState.ExitAction, trigger, from, to)
	}

	if t.Action != nil {
		m.runner().RunTransition(t.Action, trigger, from, to)
	}

	toState := m.config.States[to]
	if toState.EntryAction != nil {
		m.runner().RunEntry(toState.EntryAction, trigger, to, from)
	}
	m.currentState = to

	m.tracer.Info("state transition taken", "event", trigger.Name, "from", from, "to", to)
	m.checkAutoStop(trigger, toState)
}

// checkAutoStop records the final event and clears the started flag when
// state has no outgoing transitions at all. Caller holds apiMu.
func (m *Machine) checkAutoStop(trigger primitives.Event, state *primitives.StateRecord) {
	if !state.IsFinal() {
		return
	}
	final := trigger
	m.finalEvent = &final

	m.startedMu.Lock()
	m.started = false
	m.startedMu.Unlock()

	m.tracer.Info("final state reached, machine auto-stopped", "state", state.Name)
}

// runner returns the configured ActionRunner, or a direct-invocation default
// if none was supplied via WithActionRunner.
func (m *Machine) runner() ActionRunner {
	if m.actionRunner != nil {
		return m.actionRunner
	}
	return directActionRunner{}
}

// guard returns the configured GuardEvaluator, or a direct-invocation
// default if none was supplied via WithGuardEvaluator.
func (m *Machine) guard() GuardEvaluator {
	if m.guardEvaluator != nil {
		return m.guardEvaluator
	}
	return directGuardEvaluator{}
}

// directActionRunner and directGuardEvaluator are the engine's own built-in
// defaults: a plain call, no tracing or recovery wrapper. They exist so a
// bare NewMachine() with no options is fully functional; extensibility
// provides richer, swappable implementations of the same two interfaces.
type directActionRunner struct{}

func (directActionRunner) RunInitial(action primitives.InitialAction, trigger primitives.Event, target string) {
	action(trigger, target)
}

func (directActionRunner) RunEntry(action primitives.EntryAction, trigger primitives.Event, current, previous string) {
	action(trigger, current, previous)
}

func (directActionRunner) RunExit(action primitives.ExitAction, trigger primitives.Event, current, next string) {
	action(trigger, current, next)
}

func (directActionRunner) RunTransition(action primitives.TransitionAction, trigger primitives.Event, from, to string) {
	action(trigger, from, to)
}

func (directActionRunner) RunInternal(action primitives.InternalAction, trigger primitives.Event, current string) {
	action(trigger, current)
}

type directGuardEvaluator struct{}

func (directGuardEvaluator) EvalTransition(guard primitives.TransitionGuard, trigger primitives.Event, from, to string) bool {
	return guard(trigger, from, to)
}

func (directGuardEvaluator) EvalInternal(guard primitives.InternalGuard, trigger primitives.Event, current string) bool {
	return guard(trigger, current)
}
