package domain

import (
	"errors"
	"fmt"
)

// Construction errors. Every failure of a graph build wraps exactly one of these.
var (
	// ErrMalformedDefinition is returned when the definition text cannot be parsed
	// into node and edge records, or a record misses a mandatory field.
	ErrMalformedDefinition = errors.New("malformed definition")

	// ErrDuplicateNodeID is returned when two node records share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrUnknownNodeReference is returned when an edge points to a node that does not exist.
	ErrUnknownNodeReference = errors.New("unknown node reference")

	// ErrAmbiguousRoot is returned when the graph does not have exactly one node without incoming edges.
	ErrAmbiguousRoot = errors.New("ambiguous root")

	// ErrAvatarLoad is returned when the avatar resource cannot be read.
	ErrAvatarLoad = errors.New("avatar load error")
)

var (
	// ErrGraphSealed is returned when a sealed graph, node or edge is modified.
	ErrGraphSealed = errors.New("graph is sealed")

	// ErrGraphNotSealed is returned when an agent is placed into a graph still under construction.
	ErrGraphNotSealed = errors.New("graph is not sealed")

	// ErrAgentPlaced is returned when an agent that already lives in a graph is placed again.
	ErrAgentPlaced = errors.New("agent already placed")

	// ErrSessionNotFound is returned when a session ID cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")
)

// Input errors. A chat loop reports them to the user and keeps going.
var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// DefinitionError carries the location and detail of a construction failure.
// Kind is one of the construction sentinels above, so errors.Is keeps working.
type DefinitionError struct {
	Kind   error
	Line   int // 1-based line of the offending record, 0 when unknown
	Detail string
}

func (e *DefinitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s", e.Kind, e.Line, e.Detail)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *DefinitionError) Unwrap() error {
	return e.Kind
}

// definitionErrorf builds a DefinitionError without location.
func definitionErrorf(kind error, format string, args ...any) *DefinitionError {
	return &DefinitionError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
