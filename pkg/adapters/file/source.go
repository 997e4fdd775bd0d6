package file

import (
	"fmt"
	"os"

	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/domain"
)

// DefinitionSource reads a definition file on every call.
type DefinitionSource struct {
	Path string
}

func NewDefinitionSource(path string) *DefinitionSource {
	return &DefinitionSource{Path: path}
}

func (s *DefinitionSource) ReadDefinition() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return data, nil
}

// AvatarSource loads an avatar image from disk.
type AvatarSource struct {
	Path string
}

func NewAvatarSource(path string) *AvatarSource {
	return &AvatarSource{Path: path}
}

func (s *AvatarSource) LoadAvatar() (*domain.Avatar, error) {
	return builder.LoadAvatar(s.Path)
}
