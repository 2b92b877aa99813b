// Package primitives defines the foundational data structures for the
// machine engine. All implementations use only the Go standard library.
//
// StateTransition and InternalTransition are the two transition kinds a
// StateRecord can register per event name (specific or default, see
// StateRecord). There is no priority field and no hierarchical target path:
// resolution order between transition kinds is fixed by the engine (internal
// beats state, specific beats default), not by a per-transition weight.
package primitives

import "errors"

// StateTransition changes current_state and runs exit-then-entry actions.
type StateTransition struct {
	Target string
	Action TransitionAction
	Guard  TransitionGuard
}

// InternalTransition runs its action in place; current_state is unchanged
// and no entry/exit action fires.
type InternalTransition struct {
	Action InternalAction
	Guard  InternalGuard
}

// validate checks field-local invariants. Target existence is checked by
// MachineConfig.Validate, which has the full state set.
func (t StateTransition) validate() error {
	if t.Target == "" {
		return errors.New("state transition target is required")
	}
	return nil
}

func (t InternalTransition) validate() error {
	if t.Action == nil {
		return errors.New("internal transition requires an action")
	}
	return nil
}

// InitialTransition is the distinguished edge executed once at Start,
// targeting the machine's initial state.
type InitialTransition struct {
	Target string
	Action InitialAction
}
