/*
Package observability provides Prometheus instrumentation for the megaverse builder.

It counts gateway requests by entity, operation and status class, tracks
request latency, and records dispatcher attempts, backoff time and final
outcomes. A nil *Metrics is valid and records nothing.
*/
package observability
