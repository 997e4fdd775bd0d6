package domain

// MatchKind describes how an edge was selected.
type MatchKind string

const (
	// MatchNone means no edge matched; the agent stays where it is.
	MatchNone MatchKind = "none"
	// MatchExact means at least one keyword appeared verbatim in the input.
	MatchExact MatchKind = "exact"
	// MatchFuzzy means a keyword was within the edit-distance threshold of the input.
	MatchFuzzy MatchKind = "fuzzy"
)

// Match is the outcome of edge selection. Edge is nil when Kind is MatchNone.
type Match struct {
	Edge     *Edge
	Kind     MatchKind
	Hits     int // verbatim keyword hits (exact matches)
	Distance int // smallest keyword distance (fuzzy matches)
}

// Found reports whether an edge was selected.
func (m Match) Found() bool { return m.Edge != nil }

// EdgeSelector chooses the edge to follow for a user input.
// Implementations must be deterministic and never fail.
type EdgeSelector interface {
	SelectEdge(candidates []*Edge, input string) Match
}

// AnswerPicker chooses one of a node's candidate answers.
// It is only called for nodes with at least one answer.
type AnswerPicker interface {
	PickAnswer(n *Node) string
}

// Responder receives the agent's output. The Controller implements it and
// forwards to the presentation layer.
type Responder interface {
	OnResponseReady(text string)
	OnAvatarReady(avatar *Avatar)
}
