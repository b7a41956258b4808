/*
Package ports defines the driven ports (interfaces) termfolio depends on.

These interfaces decouple the terminal sessions served over HTTP and the line-mode
shell from concrete storage backends.

# Key Interfaces

  - SessionStore: persists and loads terminal snapshots (memory or Redis).
  - DistributedLocker: provides distributed locking for concurrent session access.
*/
package ports
