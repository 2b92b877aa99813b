// Package primitives defines the foundational data structures for the
// machine engine. All implementations use only the Go standard library.
//
// MachineConfig is the static graph: a flat map from state name to
// StateRecord plus a single InitialTransition. Validate implements the
// reachability and final-state structural checks; it never mutates the
// config and never depends on map iteration order for anything beyond set
// membership.
package primitives

import (
	"errors"
	"fmt"
)

// ValidationStatus is the three-state outcome of the last Validate call.
type ValidationStatus int

const (
	Unvalidated ValidationStatus = iota
	Valid
	Invalid
)

func (s ValidationStatus) String() string {
	switch s {
	case Unvalidated:
		return "Unvalidated"
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// MachineConfig is the complete static machine graph.
type MachineConfig struct {
	States  map[string]*StateRecord
	Initial *InitialTransition
}

// NewMachineConfig returns an empty config ready for incremental configuration.
func NewMachineConfig() *MachineConfig {
	return &MachineConfig{States: make(map[string]*StateRecord)}
}

// Validate checks, in order:
//  1. at least one state exists;
//  2. the initial transition's target is set and refers to a declared state;
//  3. every state's own invariants (default-transition exclusivity,
//     final-state-has-no-exit-action), and every state transition target
//     (specific or default) refers to a declared state;
//  4. every declared state is reachable by DFS from the initial state,
//     following state_transitions[*].target and default_state_transition.target.
//
// Validate never mutates the configuration; callers decide what to do with
// the error (the engine's own Validate() records Valid/Invalid status).
func (m *MachineConfig) Validate() error {
	if len(m.States) == 0 {
		return errors.New("machine has no states")
	}
	if m.Initial == nil || m.Initial.Target == "" {
		return errors.New("machine has no initial transition target")
	}
	if _, ok := m.States[m.Initial.Target]; !ok {
		return fmt.Errorf("initial transition target %q is not a declared state", m.Initial.Target)
	}

	for name, state := range m.States {
		if err := state.validate(); err != nil {
			return fmt.Errorf("state %q: %w", name, err)
		}
		for event, t := range state.StateTransitions {
			if _, ok := m.States[t.Target]; !ok {
				return fmt.Errorf("state %q: transition on %q targets undeclared state %q", name, event, t.Target)
			}
		}
		if d := state.DefaultStateTransition; d != nil {
			if _, ok := m.States[d.Target]; !ok {
				return fmt.Errorf("state %q: default transition targets undeclared state %q", name, d.Target)
			}
		}
	}

	visited := make(map[string]bool, len(m.States))
	m.markReachable(m.Initial.Target, visited)
	for name := range m.States {
		if !visited[name] {
			return fmt.Errorf("state %q is not reachable from initial state %q", name, m.Initial.Target)
		}
	}

	return nil
}

// markReachable performs the DFS described by Validate. Visit order within a
// state's transition table is irrelevant: only set membership is observed.
func (m *MachineConfig) markReachable(name string, visited map[string]bool) {
	if visited[name] {
		return
	}
	visited[name] = true

	state, ok := m.States[name]
	if !ok {
		return
	}
	for _, t := range state.StateTransitions {
		m.markReachable(t.Target, visited)
	}
	if state.DefaultStateTransition != nil {
		m.markReachable(state.DefaultStateTransition.Target, visited)
	}
}
