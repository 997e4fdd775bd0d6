package domain

import "slices"

// NodeID identifies a node within a graph.
type NodeID int

// Node is a point in the conversation graph.
//
// Outgoing edges are owned by the node (they are registered through it and
// live as long as the graph does); incoming edges are plain back-references
// kept for introspection and root detection.
type Node struct {
	id       NodeID
	answers  []string
	outgoing []EdgeID
	incoming []EdgeID
	agent    *Agent
	sealed   bool
}

// NewNode creates an empty node.
func NewNode(id NodeID) *Node {
	return &Node{id: id}
}

// ID returns the node identifier.
func (n *Node) ID() NodeID { return n.id }

// Answers returns a copy of the candidate answers in definition order.
func (n *Node) Answers() []string { return slices.Clone(n.answers) }

// AnswerCount returns the number of candidate answers.
func (n *Node) AnswerCount() int { return len(n.answers) }

// Answer returns the i-th candidate answer.
func (n *Node) Answer(i int) string { return n.answers[i] }

// Outgoing returns the IDs of the edges owned by this node.
func (n *Node) Outgoing() []EdgeID { return slices.Clone(n.outgoing) }

// Incoming returns the IDs of the edges pointing at this node.
func (n *Node) Incoming() []EdgeID { return slices.Clone(n.incoming) }

// InDegree returns the number of incoming edges.
func (n *Node) InDegree() int { return len(n.incoming) }

// OutDegree returns the number of outgoing edges.
func (n *Node) OutDegree() int { return len(n.outgoing) }

// Agent returns the agent currently held by this node, or nil.
func (n *Node) Agent() *Agent { return n.agent }

// HasAgent reports whether the agent currently lives in this node.
func (n *Node) HasAgent() bool { return n.agent != nil }

// AppendToken adds a candidate answer.
func (n *Node) AppendToken(text string) error {
	if n.sealed {
		return ErrGraphSealed
	}
	n.answers = append(n.answers, text)
	return nil
}
