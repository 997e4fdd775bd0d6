package graph

import "github.com/aretw0/chatgraph/pkg/domain"

// View is the JSON form of a graph served to introspection clients.
type View struct {
	Root  domain.NodeID `json:"root"`
	Nodes []NodeView    `json:"nodes"`
	Edges []EdgeView    `json:"edges"`
}

type NodeView struct {
	ID       domain.NodeID   `json:"id"`
	Answers  []string        `json:"answers"`
	Outgoing []domain.EdgeID `json:"outgoing"`
	Incoming []domain.EdgeID `json:"incoming"`
}

type EdgeView struct {
	ID          domain.EdgeID `json:"id"`
	Source      domain.NodeID `json:"source"`
	Destination domain.NodeID `json:"destination"`
	Keywords    []string      `json:"keywords"`
}

// NewView captures g in insertion order. Empty slices are kept non-nil so
// clients always see arrays.
func NewView(g *domain.Graph) View {
	v := View{
		Nodes: make([]NodeView, 0, g.NodeCount()),
		Edges: make([]EdgeView, 0, g.EdgeCount()),
	}
	if root := g.Root(); root != nil {
		v.Root = root.ID()
	}
	for _, n := range g.Nodes() {
		v.Nodes = append(v.Nodes, NodeView{
			ID:       n.ID(),
			Answers:  nonNil(n.Answers()),
			Outgoing: nonNil(n.Outgoing()),
			Incoming: nonNil(n.Incoming()),
		})
	}
	for _, e := range g.Edges() {
		v.Edges = append(v.Edges, EdgeView{
			ID:          e.ID(),
			Source:      e.Source(),
			Destination: e.Destination(),
			Keywords:    nonNil(e.Keywords()),
		})
	}
	return v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
