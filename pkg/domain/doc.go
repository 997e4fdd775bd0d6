/*
Package domain contains the core entities of the chatgraph engine.

It defines the conversation graph (Nodes owning outgoing Edges, Edges tagged
with keywords), the single Agent that occupies one Node at a time, and the
error taxonomy raised while a graph is being built. The package is kept free
of I/O: parsing, matching and persistence live in their own packages and talk
to the domain through the small interfaces declared here.

# Key Entities

  - Node: a point in the conversation holding candidate answers and, at most, the Agent.
  - Edge: a directed link between two Nodes carrying the keywords used for matching.
  - Graph: the arena that owns every Node and Edge and resolves them by ID.
  - Agent: the conversational entity relocated across the Graph on each message.
  - Snapshot: the persisted position of an Agent for a session (no history).

# Ownership

Nodes own their outgoing edges through the Graph arena and keep plain ID
lists for both directions, so no reference cycles exist. The Agent slot of a
Node is the only thing that changes after construction, and it only changes
inside Agent methods that hold the Agent's mutex.
*/
package domain
