package domain

import "time"

// Snapshot is the persisted position of a session's agent.
// It holds no conversation history.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	NodeID    NodeID    `json:"node_id"`
	Turns     int       `json:"turns"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSnapshot creates a snapshot for a session positioned at node.
func NewSnapshot(sessionID string, node NodeID) *Snapshot {
	return &Snapshot{
		SessionID: sessionID,
		NodeID:    node,
		UpdatedAt: time.Now().UTC(),
	}
}
