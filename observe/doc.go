// Package observe provides tracing, metrics, and structured logging for the
// caches and the quality pipeline.
//
// It is a pure instrumentation library: exporters are set up from Config,
// and components receive a Middleware (or the pieces it is built from).
// Every component works with the no-op defaults returned by Nop.
package observe
