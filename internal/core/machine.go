// Package core provides the runtime tier of the machine engine: the Machine
// type, its three-lock concurrency discipline, the configuration API,
// lifecycle (Start/Stop), the event queue, and transition resolution.
//
// Dependencies: internal/primitives only. Pluggable collaborators
// (ActionRunner, GuardEvaluator, trace.Tracer) are accepted as interfaces;
// their concrete implementations live one layer up, in internal/extensibility,
// which imports core — never the other way around.
package core

import (
	"sync"

	"github.com/kestrelfsm/kestrel/internal/primitives"
	"github.com/kestrelfsm/kestrel/internal/trace"
)

// DefaultStartEventName is the event name Start synthesizes when the caller
// supplies no trigger.
const DefaultStartEventName = "Started"

// ActionRunner invokes the five action callback shapes. Implementations may
// add cross-cutting behavior (tracing, recovery, metrics) around the call;
// the default behavior is a direct invocation, provided inline by Machine so
// the engine never requires a collaborator to run.
type ActionRunner interface {
	RunInitial(action primitives.InitialAction, trigger primitives.Event, target string)
	RunEntry(action primitives.EntryAction, trigger primitives.Event, current, previous string)
	RunExit(action primitives.ExitAction, trigger primitives.Event, current, next string)
	RunTransition(action primitives.TransitionAction, trigger primitives.Event, from, to string)
	RunInternal(action primitives.InternalAction, trigger primitives.Event, current string)
}

// GuardEvaluator invokes the two guard callback shapes.
type GuardEvaluator interface {
	EvalTransition(guard primitives.TransitionGuard, trigger primitives.Event, from, to string) bool
	EvalInternal(guard primitives.InternalGuard, trigger primitives.Event, current string) bool
}

// Machine is the runtime: a MachineConfig plus the mutable state needed to
// interpret it (current state, event queue, started flag, final event).
//
// Three mutexes guard disjoint concerns, acquired in this fixed order to
// avoid deadlock: apiMu, then queueMu, then startedMu. Operations that only
// need the queue and the started flag (AddEventToBack/Front,
// HasPendingEvents, IsStarted) skip apiMu entirely, so enqueuing from within
// a running action callback cannot deadlock against the apiMu already held
// by the ProcessNextEvent call that invoked it.
type Machine struct {
	apiMu     sync.Mutex
	queueMu   sync.Mutex
	startedMu sync.RWMutex

	config           *primitives.MachineConfig   // guarded by apiMu
	validationStatus primitives.ValidationStatus // guarded by apiMu
	currentState     string                      // guarded by apiMu
	finalEvent       *primitives.Event           // guarded by apiMu

	started bool // guarded by startedMu

	eventQueue []primitives.Event // guarded by queueMu

	tracer         trace.Tracer
	actionRunner   ActionRunner
	guardEvaluator GuardEvaluator
}

// NewMachine returns an empty, unvalidated, not-started Machine.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		config:           primitives.NewMachineConfig(),
		validationStatus: primitives.Unvalidated,
		tracer:           trace.Noop{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) isStartedLocked() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// IsStarted reports whether the machine is currently running.
func (m *Machine) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// --- Configuration API. Every method below rejects the call once the
// machine has been started, so the graph a running machine interprets can
// never change underneath it.

// AddState declares a new named state with its entry and exit actions, both
// of which may be nil. Returns false if name is empty, a state by that name
// already exists, or the machine has been started.
func (m *Machine) AddState(name string, entry primitives.EntryAction, exit primitives.ExitAction) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("AddState rejected: machine already started", "state", name)
		return false
	}
	if name == "" {
		m.tracer.Warn("AddState rejected: empty state name")
		return false
	}
	if _, exists := m.config.States[name]; exists {
		m.tracer.Warn("AddState rejected: duplicate state", "state", name)
		return false
	}

	record := primitives.NewStateRecord(name)
	record.EntryAction = entry
	record.ExitAction = exit
	m.config.States[name] = record
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("state added", "state", name)
	return true
}

// SetStateEntryAction attaches an entry action to an existing state that does
// not yet have one. Returns false if the state does not exist, action is
// nil, the state already has an entry action, or the machine has been
// started.
func (m *Machine) SetStateEntryAction(state string, action primitives.EntryAction) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("SetStateEntryAction rejected: machine already started", "state", state)
		return false
	}
	record, ok := m.config.States[state]
	if !ok {
		m.tracer.Warn("SetStateEntryAction rejected: unknown state", "state", state)
		return false
	}
	if action == nil {
		m.tracer.Warn("SetStateEntryAction rejected: nil action", "state", state)
		return false
	}
	if record.EntryAction != nil {
		m.tracer.Warn("SetStateEntryAction rejected: entry action already set", "state", state)
		return false
	}

	record.EntryAction = action
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("entry action set", "state", state)
	return true
}

// SetStateExitAction attaches an exit action to an existing state that does
// not yet have one. Returns false if the state does not exist, action is
// nil, the state already has an exit action, or the machine has been
// started.
func (m *Machine) SetStateExitAction(state string, action primitives.ExitAction) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("SetStateExitAction rejected: machine already started", "state", state)
		return false
	}
	record, ok := m.config.States[state]
	if !ok {
		m.tracer.Warn("SetStateExitAction rejected: unknown state", "state", state)
		return false
	}
	if action == nil {
		m.tracer.Warn("SetStateExitAction rejected: nil action", "state", state)
		return false
	}
	if record.ExitAction != nil {
		m.tracer.Warn("SetStateExitAction rejected: exit action already set", "state", state)
		return false
	}

	record.ExitAction = action
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("exit action set", "state", state)
	return true
}

// SetInitialTransition declares the state the machine enters on Start.
// Returns false if target is empty or not a declared state, an initial
// transition is already set, or the machine has been started.
func (m *Machine) SetInitialTransition(target string, action primitives.InitialAction) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("SetInitialTransition rejected: machine already started")
		return false
	}
	if target == "" {
		m.tracer.Warn("SetInitialTransition rejected: empty target")
		return false
	}
	if _, ok := m.config.States[target]; !ok {
		m.tracer.Warn("SetInitialTransition rejected: unknown state", "target", target)
		return false
	}
	if m.config.Initial != nil {
		m.tracer.Warn("SetInitialTransition rejected: initial transition already set", "target", target)
		return false
	}

	m.config.Initial = &primitives.InitialTransition{Target: target, Action: action}
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("initial transition set", "target", target)
	return true
}

// AddStateTransition registers a specific state transition for event on the
// named state. Returns false if the state does not exist, event is empty,
// target is empty, the machine has been started, or a transition of either
// kind already exists for (state, event).
func (m *Machine) AddStateTransition(state, event, target string, action primitives.TransitionAction, guard primitives.TransitionGuard) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("AddStateTransition rejected: machine already started", "state", state, "event", event)
		return false
	}
	record, ok := m.config.States[state]
	if !ok {
		m.tracer.Warn("AddStateTransition rejected: unknown state", "state", state)
		return false
	}
	if event == "" || target == "" {
		m.tracer.Warn("AddStateTransition rejected: event and target are required", "state", state)
		return false
	}
	if record.HasTransitionFor(event) {
		m.tracer.Warn("AddStateTransition rejected: transition already exists for event", "state", state, "event", event)
		return false
	}

	record.StateTransitions[event] = primitives.StateTransition{Target: target, Action: action, Guard: guard}
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("state transition added", "state", state, "event", event, "target", target)
	return true
}

// AddInternalTransition registers a specific internal transition for event
// on the named state. action is required: an internal transition with no
// action would be indistinguishable from a dropped event. Returns false if a
// transition of either kind already exists for (state, event).
func (m *Machine) AddInternalTransition(state, event string, action primitives.InternalAction, guard primitives.InternalGuard) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("AddInternalTransition rejected: machine already started", "state", state, "event", event)
		return false
	}
	record, ok := m.config.States[state]
	if !ok {
		m.tracer.Warn("AddInternalTransition rejected: unknown state", "state", state)
		return false
	}
	if event == "" || action == nil {
		m.tracer.Warn("AddInternalTransition rejected: event and action are required", "state", state)
		return false
	}
	if record.HasTransitionFor(event) {
		m.tracer.Warn("AddInternalTransition rejected: transition already exists for event", "state", state, "event", event)
		return false
	}

	record.InternalTransitions[event] = primitives.InternalTransition{Action: action, Guard: guard}
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("internal transition added", "state", state, "event", event)
	return true
}

// SetDefaultStateTransition registers the catch-all state transition fired
// when no specific transition on state matches the incoming event. Returns
// false if state already carries a default of either kind.
func (m *Machine) SetDefaultStateTransition(state, target string, action primitives.TransitionAction, guard primitives.TransitionGuard) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("SetDefaultStateTransition rejected: machine already started", "state", state)
		return false
	}
	record, ok := m.config.States[state]
	if !ok {
		m.tracer.Warn("SetDefaultStateTransition rejected: unknown state", "state", state)
		return false
	}
	if target == "" {
		m.tracer.Warn("SetDefaultStateTransition rejected: empty target", "state", state)
		return false
	}
	if record.DefaultStateTransition != nil || record.DefaultInternalTransition != nil {
		m.tracer.Warn("SetDefaultStateTransition rejected: default already set", "state", state)
		return false
	}

	record.DefaultStateTransition = &primitives.StateTransition{Target: target, Action: action, Guard: guard}
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("default state transition set", "state", state, "target", target)
	return true
}

// SetDefaultInternalTransition registers the catch-all internal transition
// fired when no specific transition on state matches the incoming event.
// Returns false if state already carries a default of either kind.
func (m *Machine) SetDefaultInternalTransition(state string, action primitives.InternalAction, guard primitives.InternalGuard) bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("SetDefaultInternalTransition rejected: machine already started", "state", state)
		return false
	}
	record, ok := m.config.States[state]
	if !ok {
		m.tracer.Warn("SetDefaultInternalTransition rejected: unknown state", "state", state)
		return false
	}
	if action == nil {
		m.tracer.Warn("SetDefaultInternalTransition rejected: nil action", "state", state)
		return false
	}
	if record.DefaultStateTransition != nil || record.DefaultInternalTransition != nil {
		m.tracer.Warn("SetDefaultInternalTransition rejected: default already set", "state", state)
		return false
	}

	record.DefaultInternalTransition = &primitives.InternalTransition{Action: action, Guard: guard}
	m.validationStatus = primitives.Unvalidated
	m.tracer.Debug("default internal transition set", "state", state)
	return true
}

// Validate runs the structural checks described by MachineConfig.Validate
// and records the outcome as ValidationStatus. Returns false if the machine
// has been started or the configuration is invalid.
func (m *Machine) Validate() bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.isStartedLocked() {
		m.tracer.Warn("Validate rejected: machine already started")
		return false
	}

	if err := m.config.Validate(); err != nil {
		m.validationStatus = primitives.Invalid
		m.tracer.Error("validation failed", "error", err.Error())
		return false
	}
	m.validationStatus = primitives.Valid
	m.tracer.Info("validation succeeded")
	return true
}

// ValidationStatus reports the outcome of the most recent Validate call.
func (m *Machine) ValidationStatus() primitives.ValidationStatus {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()
	return m.validationStatus
}

// --- Lifecycle.

// Start runs the initial transition and, if successful, begins interpreting
// the event queue on subsequent ProcessNextEvent calls. trigger supplies the
// event passed to the initial action and the initial state's entry action;
// if omitted, a DefaultStartEventName event is synthesized. Returns false if
// the trigger has an empty name, the machine has not passed Validate, or is
// already started.
func (m *Machine) Start(trigger ...primitives.Event) bool {
	event := primitives.NewEvent(DefaultStartEventName)
	if len(trigger) > 0 {
		event = trigger[0]
	}
	if event.Name == "" {
		m.tracer.Warn("Start rejected: empty trigger event name")
		return false
	}

	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if m.validationStatus != primitives.Valid {
		m.tracer.Warn("Start rejected: machine is not Valid", "status", m.validationStatus.String())
		return false
	}

	m.startedMu.Lock()
	if m.started {
		m.startedMu.Unlock()
		m.tracer.Warn("Start rejected: already started")
		return false
	}
	m.started = true
	m.startedMu.Unlock()

	m.queueMu.Lock()
	m.eventQueue = nil
	m.queueMu.Unlock()

	m.finalEvent = nil
	m.currentState = ""
	m.runInitialTransition(event)
	m.tracer.Info("machine started", "state", m.currentState)
	return true
}

// Stop halts interpretation. The queue, current state, and final event are
// left untouched; a subsequent Start clears them itself as it runs the
// initial transition again. Returns false if the machine was not started.
func (m *Machine) Stop() bool {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()
	if !m.started {
		m.tracer.Warn("Stop rejected: not started")
		return false
	}
	m.started = false
	m.tracer.Info("machine stopped")
	return true
}

// CurrentState returns the name of the state the machine currently occupies.
// Before the first Start, this is "".
func (m *Machine) CurrentState() string {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()
	return m.currentState
}

// InitialTarget returns the configured initial state's name, or "" if unset.
func (m *Machine) InitialTarget() string {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()
	if m.config.Initial == nil {
		return ""
	}
	return m.config.Initial.Target
}

// FinalStateReached reports whether the current state has no outgoing
// transitions, i.e. the machine auto-stopped on entering it.
func (m *Machine) FinalStateReached() bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()
	state, ok := m.config.States[m.currentState]
	return ok && state.IsFinal()
}

// HasFinalEvent reports whether a final event is available to be taken.
func (m *Machine) HasFinalEvent() bool {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()
	return m.finalEvent != nil
}

// TakeFinalEvent returns and clears the event that drove the machine into
// its final state. The second return is false if no final event is pending.
func (m *Machine) TakeFinalEvent() (primitives.Event, bool) {
	m.apiMu.Lock()
	defer m.apiMu.Unlock()
	if m.finalEvent == nil {
		return primitives.Event{}, false
	}
	event := *m.finalEvent
	m.finalEvent = nil
	return event, true
}

// --- Queue.

// AddEventToBack enqueues event for future processing. Returns false if
// event has an empty name or the machine is not started.
func (m *Machine) AddEventToBack(event primitives.Event) bool {
	return m.enqueue(event, false)
}

// AddEventToFront enqueues event ahead of every already-queued event.
func (m *Machine) AddEventToFront(event primitives.Event) bool {
	return m.enqueue(event, true)
}

func (m *Machine) enqueue(event primitives.Event, front bool) bool {
	if event.Name == "" {
		m.tracer.Warn("enqueue rejected: empty event name")
		return false
	}

	m.queueMu.Lock()
	defer m.queueMu.Unlock()

	if !m.isStartedLocked() {
		m.tracer.Warn("enqueue rejected: not started", "event", event.Name)
		return false
	}

	if front {
		m.eventQueue = append([]primitives.Event{event}, m.eventQueue...)
	} else {
		m.eventQueue = append(m.eventQueue, event)
	}
	m.tracer.Debug("event enqueued", "event", event.Name, "front", front)
	return true
}

// HasPendingEvents reports whether the queue is non-empty.
func (m *Machine) HasPendingEvents() bool {
	m.queueMu.Lock()
	defer m.queueMu.Unlock()
	return len(m.eventQueue) > 0
}

// ProcessNextEvent dequeues and interprets one event against the current
// state. Returns false without effect if the machine is not started or the
// queue is empty, and returns false after dequeuing if the current state does
// not resolve to a declared state.
func (m *Machine) ProcessNextEvent() bool {
	if !m.IsStarted() {
		m.tracer.Debug("ProcessNextEvent no-op: not started")
		return false
	}

	m.apiMu.Lock()
	defer m.apiMu.Unlock()

	if !m.isStartedLocked() {
		m.tracer.Debug("ProcessNextEvent no-op: stopped before the lock was acquired")
		return false
	}

	m.queueMu.Lock()
	if len(m.eventQueue) == 0 {
		m.queueMu.Unlock()
		m.tracer.Debug("ProcessNextEvent no-op: queue empty")
		return false
	}
	event := m.eventQueue[0]
	m.eventQueue = m.eventQueue[1:]
	m.queueMu.Unlock()

	if _, ok := m.config.States[m.currentState]; !ok {
		m.tracer.Error("ProcessNextEvent failed: current state does not resolve to a declared state", "state", m.currentState)
		return false
	}
	m.resolveAndExecute(event)
	return true
}

// Poll is a convenience wrapper around ProcessNextEvent: if the machine is
// started and the queue is non-empty, it processes exactly one event and
// returns true; otherwise it returns false without effect.
func (m *Machine) Poll() bool {
	if !m.IsStarted() || !m.HasPendingEvents() {
		return false
	}
	return m.ProcessNextEvent()
}
