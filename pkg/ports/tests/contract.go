package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/chatgraph/pkg/domain"
	"github.com/aretw0/chatgraph/pkg/ports"
)

// DefinitionSourceContractTest verifies that an adapter yields want verbatim.
func DefinitionSourceContractTest(t *testing.T, src ports.DefinitionSource, want []byte) {
	t.Helper()

	t.Run("ReadDefinition", func(t *testing.T) {
		got, err := src.ReadDefinition()
		if err != nil {
			t.Fatalf("unexpected error reading definition: %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("content mismatch. got %q, want %q", got, want)
		}
	})

	t.Run("ReadDefinition_Repeatable", func(t *testing.T) {
		a, errA := src.ReadDefinition()
		b, errB := src.ReadDefinition()
		if errA != nil || errB != nil {
			t.Fatalf("unexpected errors: %v, %v", errA, errB)
		}
		if string(a) != string(b) {
			t.Error("consecutive reads differ")
		}
	})
}

// AvatarSourceContractTest verifies that an adapter yields a non-empty avatar
// named name, and that broken yields an error wrapping domain.ErrAvatarLoad.
func AvatarSourceContractTest(t *testing.T, src ports.AvatarSource, broken ports.AvatarSource, name string) {
	t.Helper()

	t.Run("LoadAvatar", func(t *testing.T) {
		avatar, err := src.LoadAvatar()
		if err != nil {
			t.Fatalf("unexpected error loading avatar: %v", err)
		}
		if avatar.Name() != name {
			t.Errorf("name mismatch. got %q, want %q", avatar.Name(), name)
		}
		if avatar.Size() == 0 {
			t.Error("avatar is empty")
		}
		if avatar.MediaType() == "" {
			t.Error("avatar has no media type")
		}
	})

	t.Run("LoadAvatar_Error", func(t *testing.T) {
		_, err := broken.LoadAvatar()
		if !errors.Is(err, domain.ErrAvatarLoad) {
			t.Errorf("expected ErrAvatarLoad, got %v", err)
		}
	})
}
