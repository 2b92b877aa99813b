package primitives

// Callback shapes for machine configuration. The engine stores exactly one of
// these concrete function types per slot; there is no `any`-typed reference
// resolved by a runtime type switch.

// InitialAction runs once, at Start, before the initial state's entry action.
// Unlike every other action, it receives no "previous" argument.
type InitialAction func(trigger Event, target string)

// EntryAction runs when current becomes the owning state.
type EntryAction func(trigger Event, current, previous string)

// ExitAction runs when current stops being the owning state.
type ExitAction func(trigger Event, current, next string)

// TransitionAction runs during a state transition, after the exit action and
// before the entry action.
type TransitionAction func(trigger Event, from, to string)

// TransitionGuard aborts a state transition (no-op, not an error) when it
// returns false.
type TransitionGuard func(trigger Event, from, to string) bool

// InternalAction runs in place; it never changes current and never triggers
// entry/exit actions.
type InternalAction func(trigger Event, current string)

// InternalGuard aborts an internal transition (no-op, not an error) when it
// returns false.
type InternalGuard func(trigger Event, current string) bool
