package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAgentPlaced    EventType = "agent_placed"
	EventEdgeMatched    EventType = "edge_matched"
	EventAgentRelocated EventType = "agent_relocated"
	EventResponse       EventType = "response"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// MatchEvent reports the outcome of edge selection for one message.
type MatchEvent struct {
	EventBase
	NodeID   NodeID    `json:"node_id"`
	Input    string    `json:"input"`
	Kind     MatchKind `json:"kind"`
	EdgeID   EdgeID    `json:"edge_id,omitempty"`
	Distance int       `json:"distance,omitempty"`
}

// RelocationEvent reports the agent moving between nodes (or being placed at the root).
type RelocationEvent struct {
	EventBase
	From   NodeID `json:"from"`
	To     NodeID `json:"to"`
	EdgeID EdgeID `json:"edge_id,omitempty"`
}

// ResponseEvent reports the text emitted to the responder.
type ResponseEvent struct {
	EventBase
	NodeID   NodeID `json:"node_id"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnMatch    func(*MatchEvent)
	OnRelocate func(*RelocationEvent)
	OnResponse func(*ResponseEvent)
}

// ComposeHooks returns hooks that call each of the given hook sets in order.
func ComposeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, s := range sets {
		if s.OnMatch != nil {
			prev, next := out.OnMatch, s.OnMatch
			out.OnMatch = func(e *MatchEvent) {
				if prev != nil {
					prev(e)
				}
				next(e)
			}
		}
		if s.OnRelocate != nil {
			prev, next := out.OnRelocate, s.OnRelocate
			out.OnRelocate = func(e *RelocationEvent) {
				if prev != nil {
					prev(e)
				}
				next(e)
			}
		}
		if s.OnResponse != nil {
			prev, next := out.OnResponse, s.OnResponse
			out.OnResponse = func(e *ResponseEvent) {
				if prev != nil {
					prev(e)
				}
				next(e)
			}
		}
	}
	return out
}

func (h LifecycleHooks) emitMatch(e *MatchEvent) {
	if h.OnMatch != nil {
		e.EventBase = EventBase{Timestamp: time.Now(), Type: EventEdgeMatched}
		h.OnMatch(e)
	}
}

func (h LifecycleHooks) emitRelocate(typ EventType, e *RelocationEvent) {
	if h.OnRelocate != nil {
		e.EventBase = EventBase{Timestamp: time.Now(), Type: typ}
		h.OnRelocate(e)
	}
}

func (h LifecycleHooks) emitResponse(e *ResponseEvent) {
	if h.OnResponse != nil {
		e.EventBase = EventBase{Timestamp: time.Now(), Type: EventResponse}
		h.OnResponse(e)
	}
}
