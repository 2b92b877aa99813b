package extensibility

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/kestrelfsm/kestrel/internal/primitives"
)

// compileScript compiles src once, exposing event/transition bindings as
// globals and a single `ctx` global map with get/set functions bound to a
// ScriptContext. Every callback invocation clones the compiled program (via
// (*tengo.Compiled).Clone) before running it, so one script runs safely from
// concurrent callback invocations despite sharing one compilation.
func compileScript(src string, sc *ScriptContext) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	for _, name := range []string{"event_name", "from", "to", "current", "previous", "next", "target"} {
		if err := script.Add(name, ""); err != nil {
			return nil, fmt.Errorf("scripting: bind %s: %w", name, err)
		}
	}
	if err := script.Add("result", false); err != nil {
		return nil, fmt.Errorf("scripting: bind result: %w", err)
	}
	if err := script.Add("ctx", contextObject(sc)); err != nil {
		return nil, fmt.Errorf("scripting: bind ctx: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripting: compile: %w", err)
	}
	return compiled, nil
}

func contextObject(sc *ScriptContext) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"get": &tengo.UserFunction{Name: "get", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.UndefinedValue, nil
			}
			key, ok := tengo.ToString(args[0])
			if !ok {
				return tengo.UndefinedValue, nil
			}
			v, found := sc.Get(key)
			if !found {
				return tengo.UndefinedValue, nil
			}
			obj, err := tengo.FromInterface(v)
			if err != nil {
				return tengo.UndefinedValue, nil
			}
			return obj, nil
		}},
		"set": &tengo.UserFunction{Name: "set", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 2 {
				return tengo.FalseValue, nil
			}
			key, ok := tengo.ToString(args[0])
			if !ok {
				return tengo.FalseValue, nil
			}
			sc.Set(key, tengoToAny(args[1]))
			return tengo.TrueValue, nil
		}},
	}}
}

func tengoToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return v.Value
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	default:
		return v.String()
	}
}

func runClone(compiled *tengo.Compiled, sets map[string]any) (*tengo.Compiled, error) {
	clone := compiled.Clone()
	for k, v := range sets {
		if v == nil {
			continue
		}
		if err := clone.Set(k, v); err != nil {
			return nil, fmt.Errorf("scripting: set %s: %w", k, err)
		}
	}
	if err := clone.Run(); err != nil {
		return nil, fmt.Errorf("scripting: run: %w", err)
	}
	return clone, nil
}

// NewScriptedGuard compiles src into a TransitionGuard. The script
// must assign a boolean to the global `result`; event_name, from, and to are
// bound before each run, and `ctx.get`/`ctx.set` expose sc. A script that
// fails to compile is reported as an error here; a script that fails at run
// time or whose final result is not a bool evaluates to false at call time,
// logged nowhere by design: scripted callback authors own their own error
// reporting via ctx.
func NewScriptedGuard(src string, sc *ScriptContext) (primitives.TransitionGuard, error) {
	compiled, err := compileScript(src, sc)
	if err != nil {
		return nil, err
	}
	return func(trigger primitives.Event, from, to string) bool {
		clone, err := runClone(compiled, map[string]any{
			"event_name": trigger.Name,
			"from": from, "to": to,
		})
		if err != nil {
			return false
		}
		result, ok := clone.Get("result").Value().(bool)
		return ok && result
	}, nil
}

// NewScriptedInternalGuard compiles src into an InternalGuard. current is
// bound instead of from/to.
func NewScriptedInternalGuard(src string, sc *ScriptContext) (primitives.InternalGuard, error) {
	compiled, err := compileScript(src, sc)
	if err != nil {
		return nil, err
	}
	return func(trigger primitives.Event, current string) bool {
		clone, err := runClone(compiled, map[string]any{
			"event_name": trigger.Name,
			"current": current,
		})
		if err != nil {
			return false
		}
		result, ok := clone.Get("result").Value().(bool)
		return ok && result
	}, nil
}

// NewScriptedAction compiles src into a TransitionAction. The
// script runs for side effects (ctx.set, stdlib calls); its return value is
// ignored.
func NewScriptedAction(src string, sc *ScriptContext) (primitives.TransitionAction, error) {
	compiled, err := compileScript(src, sc)
	if err != nil {
		return nil, err
	}
	return func(trigger primitives.Event, from, to string) {
		runClone(compiled, map[string]any{
			"event_name": trigger.Name,
			"from": from, "to": to,
		})
	}, nil
}

// NewScriptedInternalAction compiles src into an InternalAction.
func NewScriptedInternalAction(src string, sc *ScriptContext) (primitives.InternalAction, error) {
	compiled, err := compileScript(src, sc)
	if err != nil {
		return nil, err
	}
	return func(trigger primitives.Event, current string) {
		runClone(compiled, map[string]any{
			"event_name": trigger.Name,
			"current": current,
		})
	}, nil
}

// NewScriptedEntryAction compiles src into an EntryAction.
func NewScriptedEntryAction(src string, sc *ScriptContext) (primitives.EntryAction, error) {
	compiled, err := compileScript(src, sc)
	if err != nil {
		return nil, err
	}
	return func(trigger primitives.Event, current, previous string) {
		runClone(compiled, map[string]any{
			"event_name": trigger.Name,
			"current": current, "previous": previous,
		})
	}, nil
}

// NewScriptedExitAction compiles src into an ExitAction.
func NewScriptedExitAction(src string, sc *ScriptContext) (primitives.ExitAction, error) {
	compiled, err := compileScript(src, sc)
	if err != nil {
		return nil, err
	}
	return func(trigger primitives.Event, current, next string) {
		runClone(compiled, map[string]any{
			"event_name": trigger.Name,
			"current": current, "next": next,
		})
	}, nil
}

// NewScriptedInitialAction compiles src into an InitialAction.
func NewScriptedInitialAction(src string, sc *ScriptContext) (primitives.InitialAction, error) {
	compiled, err := compileScript(src, sc)
	if err != nil {
		return nil, err
	}
	return func(trigger primitives.Event, target string) {
		runClone(compiled, map[string]any{
			"event_name": trigger.Name,
			"target": target,
		})
	}, nil
}
