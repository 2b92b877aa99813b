package kestrel

// MachineBuilder is a thin, name-based fluent layer over the imperative
// configuration API (AddState, AddStateTransition, ...). It introduces no
// semantics the imperative API lacks: Build() configures a fresh Machine and
// returns exactly the (*Machine, error) shape a caller gets from manual
// configuration followed by Validate().
//
//	m, err := NewMachineBuilder("idle").
//		State("idle").Transition("go", "active").
//		State("active").Transition("stop", "idle").
//		Build()
//
// A StateBuilder's calls are buffered against the state most recently named
// by State(); the buffer flushes into the underlying Machine the next time
// State() or Build() is called, since a state's entry/exit actions and
// transitions may be declared in any order before the builder moves on.
type MachineBuilder struct {
	machine       *Machine
	initialTarget string
	initialAction InitialAction
	pending       *pendingState
	err           error
}

type pendingState struct {
	name              string
	entry             EntryAction
	exit              ExitAction
	transitions       []pendingStateTransition
	internals         []pendingInternalTransition
	defaultTransition *pendingStateTransition
	defaultInternal   *pendingInternalTransition
}

type pendingStateTransition struct {
	event  string
	target string
	action TransitionAction
	guard  TransitionGuard
}

type pendingInternalTransition struct {
	event  string
	action InternalAction
	guard  InternalGuard
}

// NewMachineBuilder returns a builder whose machine will enter initialState
// when started. opts are forwarded to NewMachine unchanged.
func NewMachineBuilder(initialState string, opts ...Option) *MachineBuilder {
	return &MachineBuilder{
		machine:       NewMachine(opts...),
		initialTarget: initialState,
	}
}

// InitialAction sets the action run once, at Start, before the initial
// state's entry action.
func (b *MachineBuilder) InitialAction(action InitialAction) *MachineBuilder {
	b.initialAction = action
	return b
}

// State begins configuring the named state. Any state previously under
// construction is flushed into the underlying Machine first. Naming a state
// that was already configured makes Build fail, since AddState rejects the
// duplicate.
func (b *MachineBuilder) State(name string) *StateBuilder {
	b.flush()
	b.pending = &pendingState{name: name}
	return &StateBuilder{b: b}
}

// Build flushes the state under construction, configures the initial
// transition, validates the result, and returns it. A non-nil error wraps
// whatever AddState/AddStateTransition/Validate call first failed.
func (b *MachineBuilder) Build() (*Machine, error) {
	b.flush()
	if b.err != nil {
		return nil, b.err
	}
	if !b.machine.SetInitialTransition(b.initialTarget, b.initialAction) {
		return nil, &BuildError{Op: "SetInitialTransition", Detail: b.initialTarget}
	}
	if !b.machine.Validate() {
		return nil, &BuildError{Op: "Validate", Detail: b.machine.ValidationStatus().String()}
	}
	return b.machine, nil
}

func (b *MachineBuilder) flush() {
	if b.pending == nil || b.err != nil {
		return
	}
	p := b.pending
	b.pending = nil

	if !b.machine.AddState(p.name, p.entry, p.exit) {
		b.err = &BuildError{Op: "AddState", Detail: p.name}
		return
	}
	for _, t := range p.transitions {
		if !b.machine.AddStateTransition(p.name, t.event, t.target, t.action, t.guard) {
			b.err = &BuildError{Op: "AddStateTransition", Detail: p.name + "/" + t.event}
			return
		}
	}
	for _, t := range p.internals {
		if !b.machine.AddInternalTransition(p.name, t.event, t.action, t.guard) {
			b.err = &BuildError{Op: "AddInternalTransition", Detail: p.name + "/" + t.event}
			return
		}
	}
	if t := p.defaultTransition; t != nil {
		if !b.machine.SetDefaultStateTransition(p.name, t.target, t.action, t.guard) {
			b.err = &BuildError{Op: "SetDefaultStateTransition", Detail: p.name}
			return
		}
	}
	if t := p.defaultInternal; t != nil {
		if !b.machine.SetDefaultInternalTransition(p.name, t.action, t.guard) {
			b.err = &BuildError{Op: "SetDefaultInternalTransition", Detail: p.name}
			return
		}
	}
}

// BuildError reports which configuration call MachineBuilder.Build rejected.
type BuildError struct {
	Op     string
	Detail string
}

func (e *BuildError) Error() string {
	return "kestrel: builder rejected " + e.Op + ": " + e.Detail
}

// StateBuilder configures the state most recently named by
// MachineBuilder.State. Every method returns the same StateBuilder for
// chaining, and every call is buffered until the next State() or Build()
// call flushes it.
type StateBuilder struct {
	b *MachineBuilder
}

// Entry sets the state's entry action.
func (sb *StateBuilder) Entry(action EntryAction) *StateBuilder {
	sb.b.pending.entry = action
	return sb
}

// Exit sets the state's exit action.
func (sb *StateBuilder) Exit(action ExitAction) *StateBuilder {
	sb.b.pending.exit = action
	return sb
}

// Transition registers a specific state transition for event, moving to
// target. action is optional; the transition has no guard (see
// TransitionGuarded).
func (sb *StateBuilder) Transition(event, target string, action ...TransitionAction) *StateBuilder {
	var a TransitionAction
	if len(action) > 0 {
		a = action[0]
	}
	sb.b.pending.transitions = append(sb.b.pending.transitions, pendingStateTransition{
		event: event, target: target, action: a,
	})
	return sb
}

// TransitionGuarded registers a specific state transition guarded by guard.
func (sb *StateBuilder) TransitionGuarded(event, target string, guard TransitionGuard, action TransitionAction) *StateBuilder {
	sb.b.pending.transitions = append(sb.b.pending.transitions, pendingStateTransition{
		event: event, target: target, action: action, guard: guard,
	})
	return sb
}

// Internal registers a specific internal transition for event.
func (sb *StateBuilder) Internal(event string, action InternalAction, guard ...InternalGuard) *StateBuilder {
	var g InternalGuard
	if len(guard) > 0 {
		g = guard[0]
	}
	sb.b.pending.internals = append(sb.b.pending.internals, pendingInternalTransition{
		event: event, action: action, guard: g,
	})
	return sb
}

// DefaultTransition sets the catch-all state transition for this state.
func (sb *StateBuilder) DefaultTransition(target string, action TransitionAction, guard TransitionGuard) *StateBuilder {
	sb.b.pending.defaultTransition = &pendingStateTransition{target: target, action: action, guard: guard}
	return sb
}

// DefaultInternal sets the catch-all internal transition for this state.
func (sb *StateBuilder) DefaultInternal(action InternalAction, guard InternalGuard) *StateBuilder {
	sb.b.pending.defaultInternal = &pendingInternalTransition{action: action, guard: guard}
	return sb
}

// State moves on to configuring a different state, flushing this one first.
// It exists so callers can chain State()...Transition()...State()... without
// returning to the MachineBuilder.
func (sb *StateBuilder) State(name string) *StateBuilder {
	return sb.b.State(name)
}

// Build flushes this state and finishes construction; see
// MachineBuilder.Build.
func (sb *StateBuilder) Build() (*Machine, error) {
	return sb.b.Build()
}

// InitialAction sets the machine's initial action; see
// MachineBuilder.InitialAction.
func (sb *StateBuilder) InitialAction(action InitialAction) *StateBuilder {
	sb.b.InitialAction(action)
	return sb
}
