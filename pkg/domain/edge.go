package domain

import "slices"

// EdgeID identifies an edge within a graph.
type EdgeID int

// TokenSink is implemented by entities that collect text tokens while a
// definition is being read: answers for a Node, keywords for an Edge.
type TokenSink interface {
	AppendToken(text string) error
}

// Edge is a directed, keyword-tagged link from a source node to a destination node.
// Its keywords can only be appended before the owning graph is sealed.
type Edge struct {
	id          EdgeID
	source      NodeID
	destination NodeID
	keywords    []string
	sealed      bool
}

// NewEdge creates an edge without keywords.
func NewEdge(id EdgeID, source, destination NodeID) *Edge {
	return &Edge{
		id:          id,
		source:      source,
		destination: destination,
	}
}

// ID returns the edge identifier.
func (e *Edge) ID() EdgeID { return e.id }

// Source returns the ID of the node owning this edge.
func (e *Edge) Source() NodeID { return e.source }

// Destination returns the ID of the node this edge leads to.
func (e *Edge) Destination() NodeID { return e.destination }

// Keywords returns a copy of the keyword sequence in definition order.
func (e *Edge) Keywords() []string { return slices.Clone(e.keywords) }

// AppendToken adds a keyword.
func (e *Edge) AppendToken(text string) error {
	if e.sealed {
		return ErrGraphSealed
	}
	e.keywords = append(e.keywords, text)
	return nil
}
