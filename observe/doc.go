// Package observe provides observability primitives for the snippetd service.
//
// It is a pure instrumentation library: no routing, no business logic, no I/O
// beyond exporter setup. Consumers build an Observer once at bootstrap and
// wire its logger, tracer, and meter into the HTTP middleware and the
// application components.
package observe
