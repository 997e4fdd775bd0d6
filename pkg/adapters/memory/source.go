package memory

import (
	"fmt"

	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/domain"
)

// DefinitionSource serves a definition held in memory.
type DefinitionSource struct {
	data []byte
}

// NewDefinitionSource copies text into a new source.
func NewDefinitionSource(text string) *DefinitionSource {
	return &DefinitionSource{data: []byte(text)}
}

// ReadDefinition returns a copy of the definition text.
func (s *DefinitionSource) ReadDefinition() ([]byte, error) {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// AvatarSource serves avatar bytes held in memory.
type AvatarSource struct {
	name string
	data []byte
}

// NewAvatarSource copies data into a new source; name drives media type detection.
func NewAvatarSource(name string, data []byte) *AvatarSource {
	return &AvatarSource{name: name, data: append([]byte(nil), data...)}
}

// LoadAvatar builds a new avatar on every call.
func (s *AvatarSource) LoadAvatar() (*domain.Avatar, error) {
	if len(s.data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrAvatarLoad, s.name)
	}
	return domain.NewAvatar(s.name, builder.MediaType(s.name, s.data), s.data), nil
}
