// Package primitives defines the foundational data structures for the
// machine engine. All implementations use only the Go standard library.
//
// StateRecord represents a single named state: its entry/exit actions and its
// four transition tables/slots (specific state, specific internal, default
// state, default internal).
package primitives

import "errors"

// StateRecord holds one state's actions and transition tables.
type StateRecord struct {
	Name string

	EntryAction EntryAction
	ExitAction  ExitAction

	StateTransitions    map[string]StateTransition
	InternalTransitions map[string]InternalTransition

	DefaultStateTransition    *StateTransition
	DefaultInternalTransition *InternalTransition
}

// NewStateRecord creates an empty state record for name.
func NewStateRecord(name string) *StateRecord {
	return &StateRecord{
		Name:                name,
		StateTransitions:    make(map[string]StateTransition),
		InternalTransitions: make(map[string]InternalTransition),
	}
}

// IsFinal reports whether s has no outgoing transition of any kind.
// A final state has no state transitions, no internal transitions, and
// neither default transition set.
func (s *StateRecord) IsFinal() bool {
	return len(s.StateTransitions) == 0 &&
		len(s.InternalTransitions) == 0 &&
		s.DefaultStateTransition == nil &&
		s.DefaultInternalTransition == nil
}

// HasTransitionFor reports whether event is handled by any specific
// transition table (not the defaults) on this state.
func (s *StateRecord) HasTransitionFor(event string) bool {
	_, inState := s.StateTransitions[event]
	_, inInternal := s.InternalTransitions[event]
	return inState || inInternal
}

// validate checks the record's own invariants; it does not check that
// transition targets exist elsewhere in the machine (MachineConfig.Validate
// does that, since it alone has the full state set).
func (s *StateRecord) validate() error {
	if s.Name == "" {
		return errors.New("state name is required")
	}
	if s.DefaultStateTransition != nil && s.DefaultInternalTransition != nil {
		return errors.New("state " + s.Name + " cannot have both a default state transition and a default internal transition")
	}
	if s.IsFinal() && s.ExitAction != nil {
		return errors.New("final state " + s.Name + " must not have an exit action")
	}
	return nil
}
