package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/ports"
)

// Builder manages the graph construction.
type Builder struct {
	nodes     map[domain.NodeID]*NodeBuilder
	edges     map[domain.EdgeID]*EdgeBuilder
	nodeOrder []*NodeBuilder
	edgeOrder []*EdgeBuilder
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[domain.NodeID]*NodeBuilder),
		edges: make(map[domain.EdgeID]*EdgeBuilder),
	}
}

// Node declares a node.
// If the node already exists, it returns the existing builder.
func (b *Builder) Node(id domain.NodeID) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{id: id, builder: b}
	b.nodes[id] = nb
	b.nodeOrder = append(b.nodeOrder, nb)
	return nb
}

// Edge declares an edge from source to destination.
// If the edge already exists, it returns the existing builder unchanged.
func (b *Builder) Edge(id domain.EdgeID, source, destination domain.NodeID) *EdgeBuilder {
	if eb, ok := b.edges[id]; ok {
		return eb
	}
	eb := &EdgeBuilder{id: id, source: source, destination: destination, builder: b}
	b.edges[id] = eb
	b.edgeOrder = append(b.edgeOrder, eb)
	return eb
}

// Definition renders the declared nodes and edges as records, nodes first.
// It does not validate the graph; see Build.
func (b *Builder) Definition() *definition.Definition {
	def := &definition.Definition{
		Records: make([]definition.Record, 0, len(b.nodeOrder)+len(b.edgeOrder)),
	}
	for _, nb := range b.nodeOrder {
		def.Records = append(def.Records, nb.record())
	}
	for _, eb := range b.edgeOrder {
		def.Records = append(def.Records, eb.record())
	}
	return def
}

// Build validates the graph and returns it as a definition source.
// Construction errors wrap the domain sentinels.
func (b *Builder) Build() (ports.DefinitionSource, error) {
	def := b.Definition()
	if _, err := builder.BuildGraph(def); err != nil {
		return nil, err
	}
	var text strings.Builder
	if err := definition.Encode(&text, def); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}
	data := text.String()
	return ports.DefinitionFunc(func() ([]byte, error) {
		return []byte(data), nil
	}), nil
}

func itoa[T ~int](v T) string { return strconv.Itoa(int(v)) }
