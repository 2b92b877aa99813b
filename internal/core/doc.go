// Package core provides the runtime tier of the machine engine: the Machine
// type, its three-lock concurrency discipline, the configuration API,
// lifecycle (Start/Stop), the event queue, and transition resolution.
//
// Dependencies: internal/primitives only. Pluggable collaborators
// (ActionRunner, GuardEvaluator, trace.Tracer) are accepted as interfaces;
// their concrete implementations live one layer up, in internal/extensibility,
// which imports core — never the other way around.
package core
