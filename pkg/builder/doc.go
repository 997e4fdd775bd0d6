// Package builder turns a parsed definition into a sealed domain.Graph and
// places an Agent at its root.
//
// Construction is all-or-nothing: every failure is reported as an error that
// wraps one of the domain construction sentinels, and no partial graph is
// returned.
package builder
