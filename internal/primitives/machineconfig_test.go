package primitives

import (
	"strings"
	"testing"
)

func TestMachineConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		build       func() *MachineConfig
		wantErr     bool
		errContains string
	}{
		{
			name: "minimal valid",
			build: func() *MachineConfig {
				c := NewMachineConfig()
				c.States["a"] = NewStateRecord("a")
				c.Initial = &InitialTransition{Target: "a"}
				return c
			},
			wantErr: false,
		},
		{
			name:        "no states",
			build:       func() *MachineConfig { return NewMachineConfig() },
			wantErr:     true,
			errContains: "no states",
		},
		{
			name: "no initial transition",
			build: func() *MachineConfig {
				c := NewMachineConfig()
				c.States["a"] = NewStateRecord("a")
				return c
			},
			wantErr:     true,
			errContains: "no initial transition",
		},
		{
			name: "initial target unknown",
			build: func() *MachineConfig {
				c := NewMachineConfig()
				c.States["a"] = NewStateRecord("a")
				c.Initial = &InitialTransition{Target: "missing"}
				return c
			},
			wantErr:     true,
			errContains: "not a declared state",
		},
		{
			name: "final state with exit action rejected",
			build: func() *MachineConfig {
				c := NewMachineConfig()
				final := NewStateRecord("a")
				final.ExitAction = func(Event, string, string) {}
				c.States["a"] = final
				c.Initial = &InitialTransition{Target: "a"}
				return c
			},
			wantErr:     true,
			errContains: "exit action",
		},
		{
			name: "unreachable state rejected",
			build: func() *MachineConfig {
				c := NewMachineConfig()
				c.States["a"] = NewStateRecord("a")
				c.States["b"] = NewStateRecord("b")
				c.States["c"] = NewStateRecord("c")
				a := c.States["a"]
				a.StateTransitions["go"] = StateTransition{Target: "b"}
				c.Initial = &InitialTransition{Target: "a"}
				return c
			},
			wantErr:     true,
			errContains: `state "c" is not reachable`,
		},
		{
			name: "reachable via default state transition",
			build: func() *MachineConfig {
				c := NewMachineConfig()
				c.States["a"] = NewStateRecord("a")
				c.States["b"] = NewStateRecord("b")
				a := c.States["a"]
				a.DefaultStateTransition = &StateTransition{Target: "b"}
				c.Initial = &InitialTransition{Target: "a"}
				return c
			},
			wantErr: false,
		},
		{
			name: "internal transitions do not satisfy reachability",
			build: func() *MachineConfig {
				c := NewMachineConfig()
				c.States["a"] = NewStateRecord("a")
				c.States["b"] = NewStateRecord("b")
				a := c.States["a"]
				a.InternalTransitions["tick"] = InternalTransition{Action: func(Event, string) {}}
				c.Initial = &InitialTransition{Target: "a"}
				return c
			},
			wantErr:     true,
			errContains: `state "b" is not reachable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err, tt.errContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
