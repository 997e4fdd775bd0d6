package domain

// Reply is the outcome of one routed message, as seen by a transport.
type Reply struct {
	SessionID string    `json:"session_id"`
	Text      string    `json:"text"`
	From      NodeID    `json:"from"`
	NodeID    NodeID    `json:"node_id"`
	Match     MatchKind `json:"match"`
	EdgeID    *EdgeID   `json:"edge_id,omitempty"`
	Distance  int       `json:"distance,omitempty"`
	Turns     int       `json:"turns"`
}

// NewReply summarises a turn for session id.
func NewReply(sessionID string, t Turn, turns int) *Reply {
	r := &Reply{
		SessionID: sessionID,
		Text:      t.Response,
		From:      t.From,
		NodeID:    t.To,
		Match:     t.Match.Kind,
		Distance:  t.Match.Distance,
		Turns:     turns,
	}
	if t.Match.Edge != nil {
		id := t.Match.Edge.ID()
		r.EdgeID = &id
	}
	return r
}
