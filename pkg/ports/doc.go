/*
Package ports defines the driven ports (interfaces) of the chatgraph engine.

These interfaces decouple the core from concrete sources, storage backends and
transports.

# Key Interfaces

  - DefinitionSource: yields the raw tagged-record definition text.
  - AvatarSource: yields the avatar resource owned by the Agent.
  - StateStore: persists and loads session Snapshots.
  - DistributedLocker: provides distributed locking for concurrent session access.
  - Conversation: the session-level service consumed by transports (HTTP, MCP, CLI).
*/
package ports
