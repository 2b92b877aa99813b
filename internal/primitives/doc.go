// Package primitives provides the foundational, zero-dependency data structures
// for the finite state machine engine: events, callback shapes, state records,
// transition records, and the static machine graph with its validation.
//
// This package and internal/core use ONLY the Go standard library. External
// dependencies (scripting, test fixtures) live above this layer, in
// internal/extensibility and the root package's tests.
//
// Core invariants:
//   - Event is immutable after construction and is never silently copied.
//   - Callback slots are concrete function types, never a boxed any resolved
//     by a runtime type switch.
package primitives
