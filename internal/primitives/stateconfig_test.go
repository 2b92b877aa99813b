package primitives

import (
	"strings"
	"testing"
)

func TestStateRecordIsFinal(t *testing.T) {
	s := NewStateRecord("a")
	if !s.IsFinal() {
		t.Fatal("freshly created state should be final (no transitions registered)")
	}

	s.StateTransitions["go"] = StateTransition{Target: "b"}
	if s.IsFinal() {
		t.Fatal("state with a state transition must not be final")
	}
}

func TestStateRecordValidate(t *testing.T) {
	tests := []struct {
		name        string
		build       func() *StateRecord
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid empty",
			build:   func() *StateRecord { return NewStateRecord("a") },
			wantErr: false,
		},
		{
			name:        "missing name",
			build:       func() *StateRecord { return NewStateRecord("") },
			wantErr:     true,
			errContains: "name is required",
		},
		{
			name: "both defaults set",
			build: func() *StateRecord {
				s := NewStateRecord("a")
				s.DefaultStateTransition = &StateTransition{Target: "b"}
				s.DefaultInternalTransition = &InternalTransition{Action: func(Event, string) {}}
				return s
			},
			wantErr:     true,
			errContains: "both a default state transition and a default internal transition",
		},
		{
			name: "final state with exit action",
			build: func() *StateRecord {
				s := NewStateRecord("a")
				s.ExitAction = func(Event, string, string) {}
				return s
			},
			wantErr:     true,
			errContains: "must not have an exit action",
		},
		{
			name: "final state with entry action is fine",
			build: func() *StateRecord {
				s := NewStateRecord("a")
				s.EntryAction = func(Event, string, string) {}
				return s
			},
			wantErr: false,
		},
		{
			name: "non-final state may have exit action",
			build: func() *StateRecord {
				s := NewStateRecord("a")
				s.ExitAction = func(Event, string, string) {}
				s.StateTransitions["go"] = StateTransition{Target: "b"}
				return s
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("validate() error = %q, want contains %q", err, tt.errContains)
				}
			} else if err != nil {
				t.Errorf("validate() unexpected error: %v", err)
			}
		})
	}
}
