package extensibility

import (
	"testing"

	"github.com/kestrelfsm/kestrel/internal/primitives"
)

func TestScriptedTransitionGuardEvaluatesExpression(t *testing.T) {
	guard, err := NewScriptedGuard(`result = from == "idle" && to == "active"`, NewScriptContext())
	if err != nil {
		t.Fatalf("NewScriptedGuard: %v", err)
	}

	if !guard(primitives.NewEvent("go"), "idle", "active") {
		t.Error("expected true for idle->active")
	}
	if guard(primitives.NewEvent("go"), "active", "idle") {
		t.Error("expected false for active->idle")
	}
}

func TestScriptedInternalGuardReadsEventName(t *testing.T) {
	guard, err := NewScriptedInternalGuard(`result = event_name == "ping"`, NewScriptContext())
	if err != nil {
		t.Fatalf("NewScriptedInternalGuard: %v", err)
	}

	if !guard(primitives.NewEvent("ping"), "s") {
		t.Error("expected true for ping")
	}
	if guard(primitives.NewEvent("pong"), "s") {
		t.Error("expected false for pong")
	}
}

func TestScriptedActionPersistsThroughContext(t *testing.T) {
	sc := NewScriptContext()
	action, err := NewScriptedInternalAction(`ctx.set("count", 1)`, sc)
	if err != nil {
		t.Fatalf("NewScriptedInternalAction: %v", err)
	}

	action(primitives.NewEvent("tick"), "s")

	v, ok := sc.Get("count")
	if !ok {
		t.Fatal("expected count to be set")
	}
	if v != int64(1) {
		t.Errorf("count = %v (%T), want int64(1)", v, v)
	}
}

func TestScriptedTransitionActionSeesFromAndTo(t *testing.T) {
	sc := NewScriptContext()
	action, err := NewScriptedAction(`ctx.set("last", from + "->" + to)`, sc)
	if err != nil {
		t.Fatalf("NewScriptedAction: %v", err)
	}

	action(primitives.NewEvent("go"), "idle", "active")

	v, ok := sc.Get("last")
	if !ok || v != "idle->active" {
		t.Errorf("last = %v, %v, want idle->active, true", v, ok)
	}
}

func TestNewScriptedGuardRejectsInvalidSource(t *testing.T) {
	if _, err := NewScriptedGuard(`this is not tengo (((`, NewScriptContext()); err == nil {
		t.Error("expected a compile error for malformed source")
	}
}

func TestScriptContextGetSetDelete(t *testing.T) {
	sc := NewScriptContext()
	if _, ok := sc.Get("missing"); ok {
		t.Error("expected missing key to report false")
	}
	sc.Set("k", "v")
	if v, ok := sc.Get("k"); !ok || v != "v" {
		t.Errorf("Get(k) = %v, %v, want v, true", v, ok)
	}
	sc.Delete("k")
	if _, ok := sc.Get("k"); ok {
		t.Error("expected k to be gone after Delete")
	}
}
