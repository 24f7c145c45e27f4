/*
Package ports defines the driven ports (interfaces) for the Turing machine engine.

These interfaces decouple the core logic and the session layer from external
implementations, allowing machines to be defined in various storage backends and
shared safely across replicas.

# Key Interfaces

  - ProgramStore: Responsible for persisting and loading machine definitions (Programs).
  - DistributedLocker: Serializes writers of one stored program across replicas.
*/
package ports
