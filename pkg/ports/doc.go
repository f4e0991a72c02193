/*
Package ports defines the driven ports (interfaces) of the megaverse builder.

These interfaces decouple the dispatcher from concrete transports and lock
backends, allowing the same command queue to run against the real API, the
sandbox or an in-memory fake.

# Key Interfaces

  - Gateway: Single-shot create/delete operations per entity kind.
  - RunLocker: Mutual exclusion so only one run builds a candidate's map at a time.
*/
package ports
