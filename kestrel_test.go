package kestrel

import "testing"

func TestNewEventWithParameterRoundTrips(t *testing.T) {
	e := NewEventWithParameter("tick", 42)
	v, ok := ParameterAs[int](e)
	if !ok || v != 42 {
		t.Errorf("ParameterAs[int] = %v, %v, want 42, true", v, ok)
	}
	if _, ok := ParameterAs[string](e); ok {
		t.Error("expected a type mismatch to report false")
	}
}

func TestNewEventPanicsOnEmptyName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected NewEvent(\"\") to panic")
		}
	}()
	NewEvent("")
}

// TestTrafficLightScenario runs a small three-state machine end to end
// through the public façade: construct with AddState/AddStateTransition,
// validate, start, and drain an event queue.
func TestTrafficLightScenario(t *testing.T) {
	var log []string
	record := func(s string) { log = append(log, s) }

	m := NewMachine()
	m.AddState("red", EntryActionFunc0(func() { record("enter:red") }), nil)
	m.AddState("green", EntryActionFunc0(func() { record("enter:green") }), nil)
	m.AddState("yellow", EntryActionFunc0(func() { record("enter:yellow") }), nil)

	m.SetInitialTransition("red", nil)
	m.AddStateTransition("red", "go", "green", TransitionActionFunc0(func() { record("go") }), nil)
	m.AddStateTransition("green", "caution", "yellow", nil, nil)
	m.AddStateTransition("yellow", "stop", "red", nil, nil)

	if !m.Validate() {
		t.Fatal("Validate failed")
	}
	if !m.Start() {
		t.Fatal("Start failed")
	}
	if m.CurrentState() != "red" {
		t.Fatalf("CurrentState() = %q, want red", m.CurrentState())
	}

	m.AddEventToBack(NewEvent("go"))
	m.AddEventToBack(NewEvent("caution"))
	m.AddEventToBack(NewEvent("stop"))

	n := 0
	for m.Poll() {
		n++
	}
	if n != 3 {
		t.Fatalf("polled %d times, want 3", n)
	}
	if m.CurrentState() != "red" {
		t.Fatalf("CurrentState() = %q, want red", m.CurrentState())
	}

	want := []string{"enter:red", "go", "enter:green", "enter:yellow", "enter:red"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestFinalStateAutoStopsAndSurfacesFinalEvent(t *testing.T) {
	m := NewMachine()
	m.AddState("running", nil, nil)
	m.AddState("done", nil, nil) // no outgoing transitions: final
	m.SetInitialTransition("running", nil)
	m.AddStateTransition("running", "finish", "done", nil, nil)

	if !m.Validate() || !m.Start() {
		t.Fatal("setup failed")
	}
	m.AddEventToBack(NewEvent("finish"))
	m.Poll()

	if !m.FinalStateReached() {
		t.Error("expected FinalStateReached after entering done")
	}
	if m.IsStarted() {
		t.Error("expected auto-stop on reaching a final state")
	}
	event, ok := m.TakeFinalEvent()
	if !ok || event.Name != "finish" {
		t.Errorf("TakeFinalEvent() = %v, %v, want finish, true", event, ok)
	}
}
