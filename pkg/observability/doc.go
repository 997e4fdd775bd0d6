/*
Package observability turns agent lifecycle events into Prometheus metrics
and structured log records.

Both are exposed as domain.LifecycleHooks and can be combined with
domain.ComposeHooks before being handed to the Controller.
*/
package observability
