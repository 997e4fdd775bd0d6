package ports

import (
	"context"

	"github.com/aretw0/chatgraph/pkg/domain"
)

// Conversation is the session-level service exposed by transports.
// Each session owns its own agent; sessions never share a position.
type Conversation interface {
	// Send routes one user message through the session's agent, creating
	// the session at the root if it does not exist yet.
	Send(ctx context.Context, sessionID, text string) (*domain.Reply, error)

	// Reset moves the session's agent back to the root.
	Reset(ctx context.Context, sessionID string) (*domain.Reply, error)

	// Load returns the stored snapshot of a session.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete forgets a session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of known sessions.
	List(ctx context.Context) ([]string, error)

	// Graph returns the immutable template graph, for introspection.
	Graph() *domain.Graph

	// Avatar returns the avatar shared by every session.
	Avatar() *domain.Avatar
}
