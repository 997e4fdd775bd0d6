package ports

import "github.com/aretw0/chatgraph/pkg/domain"

// DefinitionSource yields the raw definition text of a graph.
type DefinitionSource interface {
	ReadDefinition() ([]byte, error)
}

// AvatarSource yields the avatar resource handed to the Agent.
// Failures should wrap domain.ErrAvatarLoad.
type AvatarSource interface {
	LoadAvatar() (*domain.Avatar, error)
}

// DefinitionFunc adapts a function to DefinitionSource.
type DefinitionFunc func() ([]byte, error)

func (f DefinitionFunc) ReadDefinition() ([]byte, error) { return f() }

// AvatarFunc adapts a function to AvatarSource.
type AvatarFunc func() (*domain.Avatar, error)

func (f AvatarFunc) LoadAvatar() (*domain.Avatar, error) { return f() }
