package chatgraph

import (
	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/ports"
)

// Blueprint is a validated definition and avatar from which independent
// Controllers are spawned, one per conversation.
type Blueprint struct {
	def    *definition.Definition
	avatar *domain.Avatar
	graph  *domain.Graph
	opts   []Option
}

// Compile reads and validates the sources once. opts are applied to every
// spawned Controller.
func Compile(defSrc ports.DefinitionSource, avatarSrc ports.AvatarSource, opts ...Option) (*Blueprint, error) {
	def, err := ReadDefinition(defSrc)
	if err != nil {
		return nil, err
	}
	graph, err := builder.BuildGraph(def)
	if err != nil {
		return nil, err
	}
	avatar, err := LoadAvatar(avatarSrc)
	if err != nil {
		return nil, err
	}
	return &Blueprint{def: def, avatar: avatar, graph: graph, opts: opts}, nil
}

// Spawn builds a fresh graph with its own agent. Extra opts are applied after
// the blueprint's.
func (b *Blueprint) Spawn(opts ...Option) (*Controller, error) {
	all := make([]Option, 0, len(b.opts)+len(opts))
	all = append(all, b.opts...)
	all = append(all, opts...)

	c := New(all...)
	if err := c.InitializeFrom(b.def, b.avatar.Clone()); err != nil {
		return nil, err
	}
	return c, nil
}

// NewPicker returns a fresh answer picker configured by the blueprint's
// options, or nil when none was configured. Hosts that spawn a Controller
// per turn keep one picker per session and pass it with WithAnswerPicker.
func (b *Blueprint) NewPicker() (domain.AnswerPicker, error) {
	c := New(b.opts...)
	if c.newPicker == nil {
		return nil, nil
	}
	return c.newPicker()
}

// Graph returns the template graph. It never holds an agent.
func (b *Blueprint) Graph() *domain.Graph { return b.graph }

// Definition returns the parsed definition.
func (b *Blueprint) Definition() *definition.Definition { return b.def }

// Avatar returns the template avatar. Spawned agents own their own copy.
func (b *Blueprint) Avatar() *domain.Avatar { return b.avatar }
