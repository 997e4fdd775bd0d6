package domain

import "slices"

// Avatar is the image resource shown next to the agent's answers.
// It is owned by the Agent; collaborators receive it read-only through
// Responder.OnAvatarReady and copy the bytes they need.
type Avatar struct {
	name      string
	mediaType string
	data      []byte
}

// NewAvatar creates an avatar from raw bytes. The slice is copied.
func NewAvatar(name, mediaType string, data []byte) *Avatar {
	return &Avatar{
		name:      name,
		mediaType: mediaType,
		data:      slices.Clone(data),
	}
}

// Name returns the resource name (usually the file base name).
func (a *Avatar) Name() string { return a.name }

// MediaType returns the MIME type of the image.
func (a *Avatar) MediaType() string { return a.mediaType }

// Bytes returns a copy of the image data.
func (a *Avatar) Bytes() []byte { return slices.Clone(a.data) }

// Size returns the image size in bytes.
func (a *Avatar) Size() int { return len(a.data) }

// Clone returns an independent copy, used when one loaded resource seeds many agents.
func (a *Avatar) Clone() *Avatar {
	return NewAvatar(a.name, a.mediaType, a.data)
}
