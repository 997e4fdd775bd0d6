package builder

import (
	"errors"
	"fmt"

	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
)

// BuildGraph creates the nodes of def, then its edges, then elects the root.
func BuildGraph(def *definition.Definition) (*domain.Graph, error) {
	if def == nil {
		return nil, &domain.DefinitionError{Kind: domain.ErrMalformedDefinition, Detail: "nil definition"}
	}

	g := domain.NewGraph()

	for _, rec := range def.Nodes() {
		id, _ := rec.Int(definition.TagID)
		node := domain.NewNode(domain.NodeID(id))
		if err := appendAll(definition.TagAnswer, rec, node); err != nil {
			return nil, atLine(rec, err)
		}
		if err := g.AddNode(node); err != nil {
			return nil, atLine(rec, err)
		}
	}

	for _, rec := range def.Edges() {
		id, _ := rec.Int(definition.TagID)
		src, _ := rec.Int(definition.TagParent)
		dst, _ := rec.Int(definition.TagChild)
		edge := domain.NewEdge(domain.EdgeID(id), domain.NodeID(src), domain.NodeID(dst))
		if err := appendAll(definition.TagKeyword, rec, edge); err != nil {
			return nil, atLine(rec, err)
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, atLine(rec, err)
		}
	}

	if err := g.Seal(); err != nil {
		return nil, err
	}
	return g, nil
}

// Build constructs the graph and places a new agent owning avatar at its root.
func Build(def *definition.Definition, avatar *domain.Avatar, cfg domain.AgentConfig) (*domain.Graph, *domain.Agent, error) {
	if avatar == nil {
		return nil, nil, fmt.Errorf("build: %w: no avatar", domain.ErrAvatarLoad)
	}
	g, err := BuildGraph(def)
	if err != nil {
		return nil, nil, err
	}
	agent := domain.NewAgent(avatar, cfg)
	if err := g.Place(agent); err != nil {
		return nil, nil, err
	}
	return g, agent, nil
}

// appendAll feeds every value of tag to sink, in record order.
func appendAll(tag string, rec definition.Record, sink domain.TokenSink) error {
	for _, v := range rec.Values(tag) {
		if err := sink.AppendToken(v); err != nil {
			return err
		}
	}
	return nil
}

// atLine attaches the record's source line to a domain construction error.
func atLine(rec definition.Record, err error) error {
	var derr *domain.DefinitionError
	if rec.Line == 0 || !errors.As(err, &derr) || derr.Line != 0 {
		return err
	}
	located := *derr
	located.Line = rec.Line
	return &located
}
