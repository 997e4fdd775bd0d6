package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Graph owns every Node and Edge of a conversation.
//
// It is mutated while being built (AddNode, AddEdge) and frozen by Seal, which
// also elects the root. After sealing, the only mutable state is the Agent
// slot of each node.
type Graph struct {
	nodes     []*Node
	nodeIndex map[NodeID]int
	edges     []*Edge
	edgeIndex map[EdgeID]int
	root      *Node
	sealed    bool
}

// NewGraph creates an empty graph ready for construction.
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[NodeID]int),
		edgeIndex: make(map[EdgeID]int),
	}
}

// AddNode registers a node. Node IDs must be unique.
func (g *Graph) AddNode(n *Node) error {
	if g.sealed {
		return ErrGraphSealed
	}
	if _, exists := g.nodeIndex[n.id]; exists {
		return definitionErrorf(ErrDuplicateNodeID, "node %d defined more than once", n.id)
	}
	g.nodeIndex[n.id] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge registers an edge as owned by its source node and referenced by its
// destination node. Both endpoints must already be part of the graph.
func (g *Graph) AddEdge(e *Edge) error {
	if g.sealed {
		return ErrGraphSealed
	}
	if _, exists := g.edgeIndex[e.id]; exists {
		return definitionErrorf(ErrMalformedDefinition, "edge %d defined more than once", e.id)
	}
	src, ok := g.Node(e.source)
	if !ok {
		return definitionErrorf(ErrUnknownNodeReference, "edge %d: source node %d does not exist", e.id, e.source)
	}
	dst, ok := g.Node(e.destination)
	if !ok {
		return definitionErrorf(ErrUnknownNodeReference, "edge %d: destination node %d does not exist", e.id, e.destination)
	}

	g.edgeIndex[e.id] = len(g.edges)
	g.edges = append(g.edges, e)
	src.outgoing = append(src.outgoing, e.id)
	dst.incoming = append(dst.incoming, e.id)
	return nil
}

// Seal freezes the graph and elects the root: the one node without incoming edges.
// Zero or several candidates fail with ErrAmbiguousRoot.
func (g *Graph) Seal() error {
	if g.sealed {
		return nil
	}

	var candidates []NodeID
	for _, n := range g.nodes {
		if n.InDegree() == 0 {
			candidates = append(candidates, n.id)
		}
	}
	switch len(candidates) {
	case 1:
		g.root = g.nodes[g.nodeIndex[candidates[0]]]
	case 0:
		return definitionErrorf(ErrAmbiguousRoot, "no node without incoming edges among %d nodes", len(g.nodes))
	default:
		return definitionErrorf(ErrAmbiguousRoot, "%d nodes without incoming edges: %s", len(candidates), joinIDs(candidates))
	}

	for _, n := range g.nodes {
		n.sealed = true
	}
	for _, e := range g.edges {
		e.sealed = true
	}
	g.sealed = true
	return nil
}

// Sealed reports whether construction is complete.
func (g *Graph) Sealed() bool { return g.sealed }

// Root returns the elected root, or nil before Seal.
func (g *Graph) Root() *Node { return g.root }

// Node resolves a node by ID.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Edge resolves an edge by ID.
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	i, ok := g.edgeIndex[id]
	if !ok {
		return nil, false
	}
	return g.edges[i], true
}

// Nodes returns all nodes in definition order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns all edges in definition order.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// OutgoingEdges returns the edges owned by n, in registration order.
func (g *Graph) OutgoingEdges(n *Node) []*Edge {
	return g.resolveEdges(n.outgoing)
}

// IncomingEdges returns the edges pointing at n, in registration order.
func (g *Graph) IncomingEdges(n *Node) []*Edge {
	return g.resolveEdges(n.incoming)
}

func (g *Graph) resolveEdges(ids []EdgeID) []*Edge {
	edges := make([]*Edge, 0, len(ids))
	for _, id := range ids {
		edges = append(edges, g.edges[g.edgeIndex[id]])
	}
	return edges
}

// Owner returns the node currently holding an agent, or nil when the agent
// is not placed. More than one owner is an invariant violation and panics.
func (g *Graph) Owner() *Node {
	var owner *Node
	for _, n := range g.nodes {
		if n.agent == nil {
			continue
		}
		if owner != nil {
			panic(fmt.Sprintf("domain: agent owned by nodes %d and %d", owner.id, n.id))
		}
		owner = n
	}
	return owner
}

func joinIDs(ids []NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(int(id))
	}
	return strings.Join(parts, ", ")
}
