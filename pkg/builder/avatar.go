package builder

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aretw0/chatgraph/pkg/domain"
)

// LoadAvatar reads the avatar image at path. Any failure wraps domain.ErrAvatarLoad.
func LoadAvatar(path string) (*domain.Avatar, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty avatar path", domain.ErrAvatarLoad)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAvatarLoad, err)
	}
	return newAvatar(filepath.Base(path), data)
}

// ReadAvatar reads an avatar from r; name is used to guess the media type.
func ReadAvatar(name string, r io.Reader) (*domain.Avatar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrAvatarLoad, name, err)
	}
	return newAvatar(name, data)
}

func newAvatar(name string, data []byte) (*domain.Avatar, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrAvatarLoad, name)
	}
	return domain.NewAvatar(name, MediaType(name, data), data), nil
}

// MediaType guesses the media type from the file extension, then from content.
func MediaType(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
