package moderation

import (
	"context"

	"mindhaven/internal/observability"
)

// Gate wraps a classifier with the platform's fail-open policy: when the
// classifier cannot be reached, content is allowed through rather than
// blocking the user.
type Gate struct {
	client Client
}

// NewGate builds a gate over the given classifier.
func NewGate(client Client) *Gate {
	return &Gate{client: client}
}

// Allow reports whether the text may be persisted. kind labels the metric
// when content is blocked ("post", "comment").
func (g *Gate) Allow(ctx context.Context, kind, text string) bool {
	if text == "" {
		return true
	}

	result, err := g.client.CheckToxicity(ctx, text)
	if err != nil {
		observability.ModerationFailOpen.Inc()
		observability.GlobalLogger.Warn("moderation check failed, allowing content",
			"kind", kind,
			"error", err.Error(),
		)
		return true
	}

	if result.IsToxic {
		observability.ModerationBlocked.WithLabelValues(kind).Inc()
		return false
	}
	return true
}
