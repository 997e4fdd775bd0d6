package dsl

import (
	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	id      domain.NodeID
	answers []string
	builder *Builder
}

// Answer appends a candidate answer.
func (n *NodeBuilder) Answer(text string) *NodeBuilder {
	n.answers = append(n.answers, text)
	return n
}

// Answers appends several candidate answers in order.
func (n *NodeBuilder) Answers(texts ...string) *NodeBuilder {
	n.answers = append(n.answers, texts...)
	return n
}

// Node continues the chain with another node.
func (n *NodeBuilder) Node(id domain.NodeID) *NodeBuilder {
	return n.builder.Node(id)
}

// Edge continues the chain with an edge.
func (n *NodeBuilder) Edge(id domain.EdgeID, source, destination domain.NodeID) *EdgeBuilder {
	return n.builder.Edge(id, source, destination)
}

func (n *NodeBuilder) record() definition.Record {
	rec := definition.Record{
		Kind:  definition.KindNode,
		Pairs: []definition.Pair{{Tag: definition.TagID, Value: itoa(n.id)}},
	}
	for _, a := range n.answers {
		rec.Pairs = append(rec.Pairs, definition.Pair{Tag: definition.TagAnswer, Value: a})
	}
	return rec
}

// EdgeBuilder provides a fluent API for configuring an edge.
type EdgeBuilder struct {
	id          domain.EdgeID
	source      domain.NodeID
	destination domain.NodeID
	keywords    []string
	builder     *Builder
}

// Keywords appends trigger keywords in order.
func (e *EdgeBuilder) Keywords(words ...string) *EdgeBuilder {
	e.keywords = append(e.keywords, words...)
	return e
}

// Node continues the chain with a node.
func (e *EdgeBuilder) Node(id domain.NodeID) *NodeBuilder {
	return e.builder.Node(id)
}

// Edge continues the chain with another edge.
func (e *EdgeBuilder) Edge(id domain.EdgeID, source, destination domain.NodeID) *EdgeBuilder {
	return e.builder.Edge(id, source, destination)
}

func (e *EdgeBuilder) record() definition.Record {
	rec := definition.Record{
		Kind: definition.KindEdge,
		Pairs: []definition.Pair{
			{Tag: definition.TagID, Value: itoa(e.id)},
			{Tag: definition.TagParent, Value: itoa(e.source)},
			{Tag: definition.TagChild, Value: itoa(e.destination)},
		},
	}
	for _, k := range e.keywords {
		rec.Pairs = append(rec.Pairs, definition.Pair{Tag: definition.TagKeyword, Value: k})
	}
	return rec
}
