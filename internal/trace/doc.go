// Package trace provides the machine engine's leveled tracing sink.
//
// The engine assumes a trace sink with five severities is available (debug,
// info, warn, error, fatal); what it prints beyond the required call sites
// is unconstrained. Tracer.Fatal is a severity label, not a control-flow
// primitive — it never calls os.Exit or panics on the engine's behalf.
package trace
