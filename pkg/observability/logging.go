package observability

import (
	"log/slog"

	"github.com/aretw0/chatgraph/pkg/domain"
)

// LogHooks returns lifecycle hooks that write every event to logger at
// debug level. Inputs are logged by length only.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMatch: func(e *domain.MatchEvent) {
			logger.Debug("edge_matched",
				"node_id", e.NodeID,
				"kind", e.Kind,
				"edge_id", e.EdgeID,
				"distance", e.Distance,
				"input_len", len(e.Input),
			)
		},
		OnRelocate: func(e *domain.RelocationEvent) {
			logger.Debug(string(e.Type),
				"from", e.From,
				"to", e.To,
				"edge_id", e.EdgeID,
			)
		},
		OnResponse: func(e *domain.ResponseEvent) {
			logger.Debug("response",
				"node_id", e.NodeID,
				"fallback", e.Fallback,
			)
		},
	}
}
