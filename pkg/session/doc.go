/*
Package session runs many independent conversations over one compiled graph.

Each session has its own agent position, persisted as a domain.Snapshot in a
ports.StateStore between messages. Access to a session is serialised with a
reference-counted local mutex and, when configured, a distributed lock so that
several replicas can share one store.
*/
package session
